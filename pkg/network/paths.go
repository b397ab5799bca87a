package network

import "fmt"

// MaxPaths caps the number of shortest paths returned for display.
const MaxPaths = 50

// PathResult is the answer to a shortest-path query.
//
// A query between nodes in different components is answered with
// Connected == false and no paths; this is a value, not an error, so callers
// can tell "no connection" apart from a failed query.
type PathResult struct {
	From      string
	To        string
	Connected bool
	Paths     [][]string // Each path lists node IDs from From to To
	Truncated bool       // More than the requested limit existed
}

// Length returns the number of edges on each path, or -1 when the
// endpoints are not connected.
func (r PathResult) Length() int {
	if !r.Connected || len(r.Paths) == 0 {
		return -1
	}
	return len(r.Paths[0]) - 1
}

// ShortestPaths enumerates all shortest paths between from and to, up to
// limit paths (limit <= 0 means [MaxPaths]).
//
// Paths are enumerated depth-first over the breadth-first predecessor DAG,
// so the order is fully determined by the graph's insertion order. Returns
// ErrUnknownNode when either endpoint is missing.
func ShortestPaths(g *Graph, from, to string, limit int) (PathResult, error) {
	if !g.HasNode(from) {
		return PathResult{}, fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	if !g.HasNode(to) {
		return PathResult{}, fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}
	if limit <= 0 {
		limit = MaxPaths
	}

	res := PathResult{From: from, To: to}
	if from == to {
		res.Connected = true
		res.Paths = [][]string{{from}}
		return res, nil
	}

	dist := map[string]int{from: 0}
	pred := make(map[string][]string)
	queue := []string{from}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if d, ok := dist[to]; ok && dist[v] >= d {
			break
		}
		for _, w := range g.adj[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				pred[w] = append(pred[w], v)
			}
		}
	}
	if _, ok := dist[to]; !ok {
		return res, nil
	}
	res.Connected = true

	// Walk back from the target; rev holds the path in reverse.
	rev := []string{to}
	var walk func(v string) bool
	walk = func(v string) bool {
		if v == from {
			p := make([]string, len(rev))
			for i := range rev {
				p[i] = rev[len(rev)-1-i]
			}
			if len(res.Paths) == limit {
				res.Truncated = true
				return false
			}
			res.Paths = append(res.Paths, p)
			return true
		}
		for _, u := range pred[v] {
			rev = append(rev, u)
			ok := walk(u)
			rev = rev[:len(rev)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	walk(to)
	return res, nil
}

// Tree is a breadth-first shortest-path tree rooted at one node.
type Tree struct {
	root   string
	parent map[string]string
}

// BFSTree builds the shortest-path tree from root. The first neighbour to
// discover a node becomes its parent.
func BFSTree(g *Graph, root string) *Tree {
	t := &Tree{root: root, parent: map[string]string{root: root}}
	queue := []string{root}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.adj[v] {
			if _, seen := t.parent[w]; !seen {
				t.parent[w] = v
				queue = append(queue, w)
			}
		}
	}
	return t
}

// Reaches reports whether id is reachable from the root.
func (t *Tree) Reaches(id string) bool {
	_, ok := t.parent[id]
	return ok
}

// PathTo returns one shortest path from the root to id, or nil when id is
// unreachable.
func (t *Tree) PathTo(id string) []string {
	if !t.Reaches(id) {
		return nil
	}
	var rev []string
	for v := id; ; v = t.parent[v] {
		rev = append(rev, v)
		if v == t.root {
			break
		}
	}
	out := make([]string, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}

// PairwisePathUnion connects ids pairwise: for each id a shortest-path tree
// is grown and the path to every id listed after it is collected. It returns
// the union of nodes on any such path in first-touched order. IDs missing
// from the graph are skipped.
func PairwisePathUnion(g *Graph, ids []string) []string {
	ids = g.Intersect(ids)
	seen := make(map[string]bool)
	var out []string
	add := func(path []string) {
		for _, v := range path {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	for i, src := range ids {
		if i == len(ids)-1 {
			break
		}
		t := BFSTree(g, src)
		for _, dst := range ids[i+1:] {
			add(t.PathTo(dst))
		}
	}
	return out
}
