// Package network provides the undirected attributed graph that every
// analysis in this module operates on.
//
// # Overview
//
// An interaction network links genes, compounds and other biological
// entities. Nodes carry an identifier, a display label, an entity [Kind] and
// an optional expression value; edges carry optional evidence, correlation
// coefficient, p-value and adjusted p-value columns.
//
// # Construction
//
// [Build] projects an edge table (and optional node table) onto a graph in
// one of two modes:
//
//   - [ModeAttributed]: nodes come from the node table, attributes attached as
//     given
//   - [ModeTopEdges]: only the most significant edges survive (see
//     [SelectTopEdges]) and nodes are inferred from their endpoints
//
// Multi-edges collapse onto the first-seen record and self-loops are dropped,
// so every [Graph] is simple.
//
// # Queries
//
// [Components], [Largest] and [IsConnected] expose connectivity;
// [Betweenness], [Closeness] and [Degrees] compute centralities on demand;
// [ShortestPaths] enumerates all shortest paths between two nodes and
// [PairwisePathUnion] connects a node set through one shortest path per pair.
//
// # Determinism
//
// Node insertion order is the only ordering any traversal uses. Two graphs
// built from the same tables produce identical components, paths and scores.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. The session layer owns graphs
// and serialises access to them.
package network
