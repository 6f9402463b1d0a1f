package report

import "github.com/alexanderritik/pgstructure/internal/catalog"

// GodObject is an entity with excessive foreign-key coupling, grounded on
// dbgraph/internal/graph.Graph.DetectGodObjects.
type GodObject struct {
	Entity       *catalog.Entity
	Degree       int
	Dependents   int // fan-in
	Dependencies int // fan-out
}

// godObjectThreshold is the in+out degree at or above which an entity is flagged
// as a coupling risk, carried over from dbgraph's own heuristic.
const godObjectThreshold = 15

// DetectGodObjects flags entities whose total foreign-key degree (incoming
// plus outgoing) meets or exceeds godObjectThreshold.
func DetectGodObjects(db *catalog.Db) []GodObject {
	edges := buildEdges(db)
	inDegree := make(map[*catalog.Entity]int)
	outDegree := make(map[*catalog.Entity]int)
	for _, e := range edges {
		outDegree[e.source]++
		inDegree[e.target]++
	}

	var gods []GodObject
	for _, ent := range allEntities(db) {
		in, out := inDegree[ent], outDegree[ent]
		if total := in + out; total >= godObjectThreshold {
			gods = append(gods, GodObject{Entity: ent, Degree: total, Dependents: in, Dependencies: out})
		}
	}
	return gods
}
