// Package layout computes 2-D node coordinates for a network.
//
// [Compute] dispatches on an [Algorithm]. The force-directed algorithms run
// on Graphviz (via go-graphviz, compiled to WebAssembly and executed
// in-process): fr uses fdp, kk uses neato and large uses sfdp. Circle and
// random layouts are computed natively. [AlgorithmDefault] picks one of the
// Graphviz engines by graph size (see [Resolve]).
//
// Coordinates are returned in the graph's node order and normalised into an
// Options.Width x Options.Height frame with screen orientation (y grows
// downwards). Graphviz engines are seeded with Options.Seed so a layout is
// reproducible for a given graph and seed.
package layout
