package report

import "github.com/alexanderritik/pgstructure/internal/catalog"

// CheckCycles runs Tarjan's algorithm over the foreign-key dependency graph
// and returns every strongly-connected component of size > 1, plus any
// single-entity component with a self-referencing foreign key — grounded on
// dbgraph/internal/graph.Graph.CheckCycles, generalized from string node
// IDs to *catalog.Entity pointers.
func CheckCycles(db *catalog.Db) [][]*catalog.Entity {
	edges := buildEdges(db)
	adj := make(map[*catalog.Entity][]*catalog.Entity)
	for _, e := range edges {
		adj[e.source] = append(adj[e.source], e.target)
	}

	var index int
	var stack []*catalog.Entity
	indices := make(map[*catalog.Entity]int)
	lowLink := make(map[*catalog.Entity]int)
	onStack := make(map[*catalog.Entity]bool)
	var sccs [][]*catalog.Entity

	var strongconnect func(v *catalog.Entity)
	strongconnect = func(v *catalog.Entity) {
		indices[v] = index
		lowLink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, ok := indices[w]; !ok {
				strongconnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowLink[v] {
					lowLink[v] = indices[w]
				}
			}
		}

		if lowLink[v] == indices[v] {
			var scc []*catalog.Entity
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}

			isCycle := len(scc) > 1
			if len(scc) == 1 {
				for _, w := range adj[v] {
					if w == v {
						isCycle = true
						break
					}
				}
			}
			if isCycle {
				sccs = append(sccs, scc)
			}
		}
	}

	for _, ent := range allEntities(db) {
		if _, ok := indices[ent]; !ok {
			strongconnect(ent)
		}
	}

	return sccs
}
