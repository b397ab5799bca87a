// Package io reads the analysis input tables and writes tabular and GraphML
// exports of a network.
//
// # Import
//
// Tables are delimited text with a header row. The delimiter is a tab when
// the header contains one, a comma otherwise. Column names are matched
// case-insensitively against a few common aliases:
//
//	edges:  source|from|id1, target|to|id2, evidence, coefficient|coef|r,
//	        pvalue|p|p.value, adj_pvalue|qvalue|fdr|adj.p.val
//	nodes:  id, label|name, kind|type, symbol|gene, evidence,
//	        value|expression|logfc; other columns become annotations
//
// Empty cells and "NA" leave an optional field unset. [ReadSeeds] accepts
// identifiers separated by whitespace or commas, one or many per line, and
// [ReadScores] reads id/value pairs with an optional header.
//
// # Export
//
// [WriteNodesCSV] writes id, label, kind, degree, betweenness and expression
// ordered by descending degree, then descending betweenness, then id.
// [WriteEdgesCSV] writes the edge table in graph order. [WriteCommunitiesCSV]
// and [WriteAssignmentsCSV] write community detection results.
// [WriteGraphML] writes an undirected GraphML document.
//
// All exports read a snapshot and never modify it.
package io
