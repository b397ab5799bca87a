package network

// Components partitions the graph into connected components.
//
// Components are returned in discovery order: a breadth-first search is
// started from each unvisited node in insertion order. Node IDs within a
// component follow the graph's insertion order.
func Components(g *Graph) [][]string {
	label := make(map[string]int, g.NodeCount())
	count := 0
	for _, start := range g.order {
		if _, seen := label[start]; seen {
			continue
		}
		label[start] = count
		queue := []string{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.adj[v] {
				if _, seen := label[w]; !seen {
					label[w] = count
					queue = append(queue, w)
				}
			}
		}
		count++
	}

	comps := make([][]string, count)
	for _, id := range g.order {
		c := label[id]
		comps[c] = append(comps[c], id)
	}
	return comps
}

// IsConnected reports whether the graph has exactly one component. The
// empty graph is not connected.
func IsConnected(g *Graph) bool {
	if g.NodeCount() == 0 {
		return false
	}
	return len(Distances(g, g.order[0])) == g.NodeCount()
}

// Largest returns the subgraph induced by the largest connected component.
// Ties go to the component discovered first. The receiver is returned
// unchanged when it is already connected.
func Largest(g *Graph) *Graph {
	if IsConnected(g) || g.NodeCount() == 0 {
		return g
	}
	var best []string
	for _, c := range Components(g) {
		if len(c) > len(best) {
			best = c
		}
	}
	return g.Subgraph(best)
}
