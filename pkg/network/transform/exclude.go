package transform

import "github.com/MASHUOA/MetaboAnalystR/pkg/network"

// Exclude removes ids from g and then every node left without neighbours.
// It returns the new graph and the union of requested and cascaded removals,
// requested ones first. IDs absent from g are ignored, so repeating a
// request is a no-op.
func Exclude(g *network.Graph, ids []string) (*network.Graph, []string) {
	out, removed := g.Without(ids)
	orphans := out.Isolated()
	if len(orphans) == 0 {
		return out, removed
	}
	out, cascaded := out.Without(orphans)
	return out, append(removed, cascaded...)
}
