package layout

import (
	"context"
	"fmt"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// Default frame and seed.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultSeed   = 42
	// Margin keeps node glyphs inside the frame.
	Margin = 20.0
)

// Options configures [Compute].
type Options struct {
	Algorithm Algorithm
	Seed      int64
	Width     float64
	Height    float64
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmDefault
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
}

// Position is the coordinate of one node.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Result holds one position per node in the graph's node order.
type Result struct {
	Algorithm Algorithm  `json:"algorithm"`
	Seed      int64      `json:"seed"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Positions []Position `json:"positions"`
}

// Map returns the positions keyed by node id.
func (r *Result) Map() map[string]Position {
	m := make(map[string]Position, len(r.Positions))
	for _, p := range r.Positions {
		m[p.ID] = p
	}
	return m
}

type point struct{ x, y float64 }

// Compute lays out g. The default algorithm is resolved against the node
// count before running; the resolved algorithm is recorded in the result.
func Compute(ctx context.Context, g *network.Graph, opts Options) (*Result, error) {
	opts.SetDefaults()
	if !ValidAlgorithms[opts.Algorithm] {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown layout %q", string(opts.Algorithm))
	}
	ids := g.NodeIDs()
	alg := opts.Algorithm.Resolve(len(ids))

	var (
		pts []point
		err error
	)
	switch alg {
	case AlgorithmCircle:
		pts = circle(len(ids))
	case AlgorithmRandom:
		pts = random(len(ids), opts.Seed)
	case AlgorithmFR, AlgorithmKK, AlgorithmLarge:
		pts, err = runGraphviz(ctx, g, ids, alg, opts.Seed)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s layout failed", alg)
		}
	default:
		return nil, fmt.Errorf("unhandled layout %q", alg)
	}

	pts = normalize(pts, opts.Width, opts.Height)
	res := &Result{
		Algorithm: alg,
		Seed:      opts.Seed,
		Width:     opts.Width,
		Height:    opts.Height,
		Positions: make([]Position, len(ids)),
	}
	for i, id := range ids {
		res.Positions[i] = Position{ID: id, X: pts[i].x, Y: pts[i].y}
	}
	return res, nil
}
