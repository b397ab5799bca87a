// Package graph is the serialization layer between the network engine and
// its consumers.
//
// # Core Types
//
//   - [Payload]: node/edge JSON document consumed by the interactive viewer
//   - [Graph]: canonical node-link form of a network, used for graph files
//     and cache keys
//   - [Node], [Edge]: payload entries with rendering attributes
//
// # Payload
//
// [NewPayload] turns a network snapshot into viewer entries. Node size is
// log10(degree)^2 rescaled into [SizeFloor(n), 9]; shape and base colour
// follow the network [Category]; expression colours run blue to white to red
// over the external scores, with nodes lacking a score drawn in the neutral
// pair. Edges carry their optional statistics plus coefficient and
// significance sizes rescaled into [0.5, 10].
//
//	p := graph.NewPayload(g, graph.PayloadOptions{
//	    Name:     "subnetwork1",
//	    Category: graph.CategoryGlobal,
//	    Layout:   res,
//	    Seeds:    seeds,
//	    Scores:   scores,
//	})
//	data, _ := graph.MarshalPayload(p)
//
// # Summaries
//
// [FormatCommunities] and [FormatPaths] render detection and path results as
// the "||"-joined summary strings shown next to the viewer.
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct inputs. None of them
// modify the graph they read.
package graph
