package transform

import (
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

const (
	// MinModuleSize is the smallest module [ExtractModule] accepts.
	MinModuleSize = 3
	// ModulePrefix names extracted modules: module1, module2...
	ModulePrefix = "module"
)

// ExtractModule builds a module around ids.
//
// When the requested nodes induce a connected subgraph it is used as is.
// Otherwise every requested node is joined to each node requested after it
// by one shortest path and the union of path nodes is induced. Returns a
// GRAPH_TOO_SMALL error when fewer than [MinModuleSize] nodes result.
func ExtractModule(g *network.Graph, ids []string) (*network.Graph, error) {
	present := g.Intersect(ids)
	induced := g.Subgraph(present)

	mod := induced
	if !network.IsConnected(induced) {
		mod = g.Subgraph(network.PairwisePathUnion(g, present))
	}
	if mod.NodeCount() < MinModuleSize {
		return nil, errors.New(errors.ErrCodeTooSmall, "module has %d nodes (minimum %d)", mod.NodeCount(), MinModuleSize)
	}
	return mod, nil
}
