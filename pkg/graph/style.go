package graph

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// =============================================================================
// Categories and shapes
// =============================================================================

// Category selects the shape and base colour policy of a network.
type Category string

const (
	// CategoryGlobal draws the gene side of a bipartite network as accented
	// squares and compounds as diamonds.
	CategoryGlobal Category = "global"
	// CategoryDiamond draws every node as a diamond.
	CategoryDiamond Category = "diamond"
	// CategoryDefault draws every node as a circle.
	CategoryDefault Category = "default"
)

// ValidCategories is the set of supported categories.
var ValidCategories = map[Category]bool{
	CategoryGlobal:  true,
	CategoryDiamond: true,
	CategoryDefault: true,
}

// ParseCategory converts a name into a Category. The empty string selects
// [CategoryDefault].
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryDefault, nil
	}
	if c := Category(s); ValidCategories[c] {
		return c, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown network category %q (must be one of: global, diamond, default)", s)
}

// Node shapes.
const (
	ShapeCircle  = "circle"
	ShapeSquare  = "square"
	ShapeDiamond = "diamond"
)

// Colours.
const (
	NeutralFill   = "#d3d3d3"
	NeutralBorder = "#808080"
	BaseColor     = "#66ccff"
	AccentColor   = "#ff6f00"
	SeedColor     = "#e31a1c" // border of seed nodes
)

// shapeOf returns the shape and base colour of node n under c. geneSide
// reports whether n appears as an edge source.
func shapeOf(c Category, n *network.Node, geneSide bool) (shape, color string) {
	switch c {
	case CategoryGlobal:
		switch {
		case n.Kind == network.KindCompound:
			return ShapeDiamond, BaseColor
		case geneSide:
			return ShapeSquare, AccentColor
		}
		return ShapeCircle, BaseColor
	case CategoryDiamond:
		return ShapeDiamond, BaseColor
	}
	return ShapeCircle, BaseColor
}

// =============================================================================
// Sizes
// =============================================================================

// Size bounds.
const (
	MaxNodeSize = 9.0
	MinEdgeSize = 0.5
	MaxEdgeSize = 10.0
)

// SizeFloor returns the smallest node size for a graph of n nodes.
func SizeFloor(n int) float64 {
	switch {
	case n >= 500:
		return 1
	case n >= 200:
		return 2
	default:
		return 3
	}
}

// NodeSizes rescales log10(degree)^2 of every node into
// [SizeFloor(n), MaxNodeSize], in node order. Degree-0 nodes count as
// degree 1.
func NodeSizes(g *network.Graph) []float64 {
	ids := g.NodeIDs()
	raw := make([]float64, len(ids))
	for i, id := range ids {
		l := math.Log10(float64(max(g.Degree(id), 1)))
		raw[i] = l * l
	}
	return Rescale(raw, SizeFloor(len(ids)), MaxNodeSize)
}

// =============================================================================
// Colours
// =============================================================================

var (
	gradLow  = colorful.Color{R: 0.13, G: 0.4, B: 0.67} // blue
	gradMid  = colorful.Color{R: 1, G: 1, B: 1}
	gradHigh = colorful.Color{R: 0.7, G: 0.09, B: 0.17} // red
	black    = colorful.Color{}
)

// Gradient returns the colour for t in [-1, 1] on a blue-white-red scale
// blended in Lab space. Values outside the range are clamped.
func Gradient(t float64) string {
	t = math.Max(-1, math.Min(1, t))
	switch {
	case t == 0:
		return gradMid.Hex()
	case t < 0:
		return gradMid.BlendLab(gradLow, -t).Clamped().Hex()
	}
	return gradMid.BlendLab(gradHigh, t).Clamped().Hex()
}

// darker returns hex blended a quarter of the way towards black.
func darker(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return NeutralBorder
	}
	return c.BlendLab(black, 0.25).Clamped().Hex()
}

// ExpressionColors returns fill and border colours for each score. Scores are
// scaled by the largest magnitude so the sign picks the side of the
// gradient. Zero and non-finite scores get the neutral pair.
func ExpressionColors(scores []float64) (fill, border []string) {
	fill = make([]string, len(scores))
	border = make([]string, len(scores))
	maxAbs := 0.0
	for _, v := range scores {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			maxAbs = math.Max(maxAbs, math.Abs(v))
		}
	}
	for i, v := range scores {
		if v == 0 || maxAbs == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			fill[i], border[i] = NeutralFill, NeutralBorder
			continue
		}
		fill[i] = Gradient(v / maxAbs)
		border[i] = darker(fill[i])
	}
	return fill, border
}

// TopologyColors colours nodes by log10(score+1) of a centrality such as
// betweenness, rescaled onto the gradient, lowest blue and highest red.
func TopologyColors(scores []float64) []string {
	logs := make([]float64, len(scores))
	for i, b := range scores {
		logs[i] = math.Log10(b + 1)
	}
	out := make([]string, len(logs))
	for i, t := range Rescale(logs, -1, 1) {
		out[i] = Gradient(t)
	}
	return out
}
