package transform

import "github.com/matzehuels/relviz/pkg/dag"

// TransitiveReduction removes redundant edges from the graph.
//
// An edge (u, v) is redundant when v is also reachable from u through at
// least one intermediate node. For example, if a cluster "inner" is
// declared inside both "outer" and "root", and "outer" is itself inside
// "root", the edge inner→root is removed because inner reaches root via
// outer. What remains is the direct nesting relation.
//
// Parallel edges between the same pair are not treated as redundant; callers
// that need a simple graph deduplicate before calling.
//
// # Preconditions
//
// The graph must be acyclic. Callers check with [dag.DAG.FindCycle] first;
// on a cyclic graph the result is unspecified.
//
// # Performance
//
// Reachability is computed by one DFS per node, so time is O(V·(V+E)) and
// space is O(V²). Nesting graphs are small.
//
// Edge metadata is preserved for all kept edges.
func TransitiveReduction(g *dag.DAG) {
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return
	}

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	adjacency := make([][]int, len(ids))
	for _, e := range g.Edges() {
		adjacency[index[e.From]] = append(adjacency[index[e.From]], index[e.To])
	}

	reachable := computeReachability(adjacency)

	for _, e := range g.Edges() {
		src, dst := index[e.From], index[e.To]
		for _, mid := range adjacency[src] {
			if mid != dst && reachable[mid][dst] {
				g.RemoveEdge(e.From, e.To)
				break
			}
		}
	}
}

func computeReachability(adjacency [][]int) [][]bool {
	n := len(adjacency)
	reachable := make([][]bool, n)
	for i := range reachable {
		reachable[i] = make([]bool, n)
	}

	var dfs func(source, current int)
	dfs = func(source, current int) {
		if reachable[source][current] {
			return
		}
		reachable[source][current] = true
		for _, next := range adjacency[current] {
			dfs(source, next)
		}
	}

	for i := range reachable {
		dfs(i, i)
	}
	return reachable
}
