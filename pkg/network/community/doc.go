// Package community partitions interaction networks into densely connected
// groups and scores them.
//
// [Detect] runs one of four methods on the largest connected component of a
// graph: walktrap (random-walk agglomeration), flow (Markov clustering),
// label propagation and leiden-style modularity moves. Edges can be
// weighted by external node scores through [EdgeWeight].
//
// Only communities with at least [DefaultMinSize] nodes and one seed are
// reported. Each is scored with a two-sided rank-sum test ([RankSum]) that
// compares the degree of its members inside the community with their
// degree towards the rest of the graph.
package community
