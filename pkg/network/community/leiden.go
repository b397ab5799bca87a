package community

const leidenIterations = 100

// leiden repeatedly moves each node to the neighbouring community with the
// largest modularity gain, splitting communities that become disconnected
// after every sweep. Nodes are visited in index order.
func leiden(w *wgraph) []int {
	n := w.n()
	label := make([]int, n)
	for i := range label {
		label[i] = i
	}
	if w.m == 0 {
		return label
	}

	tot := make(map[int]float64, n)
	rebuild := func() {
		clear(tot)
		for u := range label {
			tot[label[u]] += w.strength[u]
		}
	}
	rebuild()

	prevQ := w.modularity(label)
	for it := 0; it < leidenIterations; it++ {
		improved := false
		for u := 0; u < n; u++ {
			cur := label[u]
			ku := w.strength[u]

			links := make(map[int]float64)
			var comms []int
			for _, a := range w.adj[u] {
				c := label[a.to]
				if _, ok := links[c]; !ok {
					comms = append(comms, c)
				}
				links[c] += a.w
			}

			best, bestGain := cur, 0.0
			for _, c := range comms {
				if c == cur {
					continue
				}
				gain := (links[c]-links[cur])/w.m - ku*(tot[c]-(tot[cur]-ku))/(2*w.m*w.m)
				if gain > bestGain+1e-12 {
					best, bestGain = c, gain
				}
			}
			if best != cur {
				tot[cur] -= ku
				tot[best] += ku
				label[u] = best
				improved = true
			}
		}
		if !improved {
			break
		}
		label = w.splitDisconnected(label)
		rebuild()
		q := w.modularity(label)
		if q-prevQ < 1e-9 {
			break
		}
		prevQ = q
	}
	return canonical(label)
}
