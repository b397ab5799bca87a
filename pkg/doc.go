// Package pkg provides the core libraries for metanet interaction network
// analysis.
//
// # Overview
//
// metanet builds an undirected interaction network from edge and node
// tables (gene, compound and other identifiers), splits it into ranked
// connected subnetworks, and answers questions about one subnetwork at a
// time: shortest paths, modules around a set of nodes, communities, and a
// laid-out payload for an interactive viewer.
//
// # Architecture
//
// The typical data flow:
//
//	edge / node / seed / score tables
//	         ↓
//	    [io] package (CSV/TSV import)
//	         ↓
//	    [network] package (projection, metrics, paths)
//	         ↓
//	    [network/transform] (filters, decomposition, MCS, modules)
//	         ↓
//	    [session] package (ranked subnetwork registry)
//	         ↓
//	    [layout] + [graph] (coordinates, viewer payload)
//	         ↓
//	    JSON / CSV / GraphML output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/MASHUOA/MetaboAnalystR/pkg/pipeline"
//	)
//
//	in, _ := pipeline.LoadInput(pipeline.InputFiles{Edges: "edges.csv", Seeds: "seeds.txt"})
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Analyze(context.Background(), in, pipeline.Options{})
//	snap, _ := res.Session.Snapshot(res.Report.Subnetworks[0].Name)
//	payload, _ := runner.Payload(context.Background(), snap, pipeline.Options{Layout: "kk"})
//
// # Main Packages
//
// [network] - Undirected graph with insertion-ordered nodes and edges, the
// attributed and top-edge projections, degree and betweenness, and
// shortest-path enumeration.
//
// [network/transform] - Correlation and topology filters, decomposition into
// ranked subnetworks, the minimal connected subgraph of a seed set, module
// extraction and node exclusion.
//
// [network/community] - Walktrap, flow, label propagation and Leiden
// partitions with a rank-sum significance test per community.
//
// [session] - A session owns the tables, the working graph and the
// subnetwork registry; every mutation replaces the registry atomically.
//
// [layout] - Force-directed, circular and random layouts, with Graphviz
// engines for large graphs.
//
// [graph] - The viewer payload (styled nodes and edges) and the canonical
// graph document.
//
// [io] - Table import and CSV/GraphML export.
//
// [pipeline] - The analysis runner shared by the CLI and the HTTP server,
// with layout and payload caching.
//
// [cache] - Null, file and Redis cache backends.
//
// [observability] - Hooks for analysis, cache and HTTP events.
//
// [errors] - Structured error codes and input validation.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/network/...  # Specific package
//	go test -run Example       # Examples only
//
// [network]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/network
// [network/transform]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/network/transform
// [network/community]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/network/community
// [session]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/session
// [layout]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/layout
// [graph]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/graph
// [io]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/cache
// [observability]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/observability
// [errors]: https://pkg.go.dev/github.com/MASHUOA/MetaboAnalystR/pkg/errors
package pkg
