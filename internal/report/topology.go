package report

import "github.com/alexanderritik/pgstructure/internal/catalog"

// NodeRank is one entity's topological standing within the foreign-key
// dependency graph.
type NodeRank struct {
	Entity     *catalog.Entity
	InDegree   int
	OutDegree  int
	Centrality float64
}

// Topology is the set of graph-wide metrics AnalyzeTopology computes,
// mirroring dbgraph/internal/graph.GraphStats.
type Topology struct {
	Nodes          int
	Edges          int
	Density        float64
	Components     int
	MaxCentrality  float64
	CentralEntity  *catalog.Entity
	LongestChain   int
	IsolatedGroups [][]*catalog.Entity
	TopNodes       []NodeRank
}

// AnalyzeTopology computes degree centrality, connected components and the
// longest foreign-key reference chain over db's foreign keys.
func AnalyzeTopology(db *catalog.Db) *Topology {
	entities := allEntities(db)
	edges := buildEdges(db)

	t := &Topology{Nodes: len(entities), Edges: len(edges)}
	if t.Nodes > 1 {
		t.Density = float64(len(edges)) / float64(t.Nodes*(t.Nodes-1))
	}

	inDegree := make(map[*catalog.Entity]int)
	outDegree := make(map[*catalog.Entity]int)
	outEdges := make(map[*catalog.Entity][]edge)
	undirected := make(map[*catalog.Entity][]*catalog.Entity)
	for _, e := range edges {
		outDegree[e.source]++
		inDegree[e.target]++
		outEdges[e.source] = append(outEdges[e.source], e)
		undirected[e.source] = append(undirected[e.source], e.target)
		undirected[e.target] = append(undirected[e.target], e.source)
	}

	var ranks []NodeRank
	maxDegree := -1
	for _, ent := range entities {
		in, out := inDegree[ent], outDegree[ent]
		total := in + out
		if total > maxDegree {
			maxDegree = total
			t.CentralEntity = ent
		}
		ranks = append(ranks, NodeRank{Entity: ent, InDegree: in, OutDegree: out, Centrality: float64(total)})
	}
	t.MaxCentrality = float64(maxDegree)

	for i := 0; i < len(ranks)-1; i++ {
		for j := 0; j < len(ranks)-i-1; j++ {
			if ranks[j].Centrality < ranks[j+1].Centrality {
				ranks[j], ranks[j+1] = ranks[j+1], ranks[j]
			}
		}
	}
	t.TopNodes = ranks

	visited := make(map[*catalog.Entity]bool)
	for _, ent := range entities {
		if visited[ent] {
			continue
		}
		t.Components++
		queue := []*catalog.Entity{ent}
		visited[ent] = true
		group := []*catalog.Entity{ent}
		for i := 0; i < len(queue); i++ {
			for _, n := range undirected[queue[i]] {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
					group = append(group, n)
				}
			}
		}
		if len(group) < 3 {
			t.IsolatedGroups = append(t.IsolatedGroups, group)
		}
	}

	memo := make(map[*catalog.Entity]int)
	var depth func(ent *catalog.Entity, stack map[*catalog.Entity]bool) int
	depth = func(ent *catalog.Entity, stack map[*catalog.Entity]bool) int {
		if d, ok := memo[ent]; ok {
			return d
		}
		if stack[ent] {
			return 0
		}
		stack[ent] = true
		maxD := 0
		for _, e := range outEdges[ent] {
			if d := depth(e.target, stack); d > maxD {
				maxD = d
			}
		}
		stack[ent] = false
		memo[ent] = 1 + maxD
		return 1 + maxD
	}
	for _, ent := range entities {
		if d := depth(ent, make(map[*catalog.Entity]bool)); d > t.LongestChain {
			t.LongestChain = d
		}
	}

	return t
}
