// Package pipeline wires the network engine into one analysis run:
// tables -> session -> filters -> decomposition -> layout -> viewer payload.
//
// The CLI and the HTTP server both go through a [Runner] so caching,
// defaults and logging behave the same on every entry point.
//
// # Usage
//
//	in, err := pipeline.LoadInput(pipeline.InputFiles{Edges: "edges.csv", Seeds: "seeds.txt"})
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Analyze(ctx, in, opts)
//	snap, _ := res.Session.Snapshot(res.Report.Subnetworks[0].Name)
//	payload, err := runner.Payload(ctx, snap, opts)
//
// Options can be loaded from a TOML file with [LoadConfig]; flags given on
// the command line override file values.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/MASHUOA/MetaboAnalystR/pkg/cache"
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
	"github.com/MASHUOA/MetaboAnalystR/pkg/layout"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/transform"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	DefaultMinNodes  = transform.DefaultMinNodes
	DefaultMaxKept   = transform.DefaultMaxKept
	DefaultMaxSeeds  = transform.DefaultMaxSeeds
	DefaultWidth     = layout.DefaultWidth
	DefaultHeight    = layout.DefaultHeight
	DefaultSeed      = int64(layout.DefaultSeed)
	DefaultLayout    = string(layout.AlgorithmDefault)
	DefaultCategory  = string(graph.CategoryDefault)
	DefaultCommunity = string(community.DefaultMethod)
	DefaultMode      = "attributed"
	DefaultMeasure   = string(network.TopologyBetweenness)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It decodes from JSON (API requests)
// and TOML (config files).
type Options struct {
	// Build options
	Mode     string `json:"mode,omitempty" toml:"mode"`
	MinNodes int    `json:"min_nodes,omitempty" toml:"min_nodes"`
	MaxKept  int    `json:"max_kept,omitempty" toml:"max_kept"`
	MaxSeeds int    `json:"max_seeds,omitempty" toml:"max_seeds"`

	// Filters applied before decomposition, in this order.
	Correlation transform.CorrelationFilter `json:"correlation" toml:"correlation"`
	Topology    transform.TopologyFilter    `json:"topology" toml:"topology"`
	MCS         bool                        `json:"mcs,omitempty" toml:"mcs"`

	// Layout options
	Layout string  `json:"layout,omitempty" toml:"layout"`
	Seed   int64   `json:"seed,omitempty" toml:"seed"`
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`

	// Serialization options
	Category string `json:"category,omitempty" toml:"category"`
	Measure  string `json:"measure,omitempty" toml:"measure"`

	// Community options
	Community string `json:"community,omitempty" toml:"community"`
	Weighted  bool   `json:"weighted,omitempty" toml:"weighted"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-"`
	Logger  *log.Logger `json:"-" toml:"-"`
}

// Result is the outcome of [Runner.Analyze].
type Result struct {
	Session *session.Session
	Report  *session.Report
	Stats   Stats
}

// Stats records sizes and timings of an analysis.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	BuildTime     time.Duration
	DecomposeTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.MinNodes <= 0 {
		o.MinNodes = DefaultMinNodes
	}
	if o.MaxKept <= 0 {
		o.MaxKept = DefaultMaxKept
	}
	if o.MaxSeeds <= 0 {
		o.MaxSeeds = DefaultMaxSeeds
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
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
	if o.Category == "" {
		o.Category = DefaultCategory
	}
	if o.Community == "" {
		o.Community = DefaultCommunity
	}
	if o.Measure == "" {
		o.Measure = DefaultMeasure
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every enumerated option and filter.
// Unknown enum strings yield UNSUPPORTED_OPTION.
func (o *Options) Validate() error {
	o.SetDefaults()
	if _, err := network.ParseMode(o.Mode); err != nil {
		return err
	}
	if _, err := layout.ParseAlgorithm(o.Layout); err != nil {
		return err
	}
	if _, err := graph.ParseCategory(o.Category); err != nil {
		return err
	}
	if _, err := network.ParseTopology(o.Measure); err != nil {
		return err
	}
	if _, err := community.ParseMethod(o.Community); err != nil {
		return err
	}
	if err := o.Correlation.Validate(); err != nil {
		return err
	}
	if o.Topology.Role == "" {
		o.Topology.Role = transform.RoleAll
	}
	return o.Topology.Validate()
}

// TopologyActive reports whether the topology filter removes anything.
func (o *Options) TopologyActive() bool {
	return o.Topology.MinDegree > 0 || o.Topology.MinBetweenness > 0
}

// SessionOptions returns the session bounds.
func (o *Options) SessionOptions() session.Options {
	return session.Options{MinNodes: o.MinNodes, MaxKept: o.MaxKept, MaxSeeds: o.MaxSeeds}
}

// LayoutOptions returns the layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Algorithm: layout.Algorithm(o.Layout),
		Seed:      o.Seed,
		Width:     o.Width,
		Height:    o.Height,
	}
}

// LayoutKeyOpts returns the cache key options of a layout of n nodes. The
// algorithm is resolved first so "default" and its concrete choice share
// entries.
func (o *Options) LayoutKeyOpts(n int) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm: string(layout.Algorithm(o.Layout).Resolve(n)),
		Seed:      o.Seed,
		Width:     o.Width,
		Height:    o.Height,
	}
}

// =============================================================================
// Config Files
// =============================================================================

// LoadConfig decodes a TOML file into Options. Undecoded keys are rejected
// so typos surface instead of being ignored.
//
//	mode = "attributed"
//	layout = "kk"
//	[correlation]
//	pos_lo = 0.5
//	pos_hi = 1.0
func LoadConfig(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return opts, nil
}

// Merge returns base with every non-zero field of override applied.
// Filters are replaced wholesale when the override sets any of their fields.
func Merge(base, override Options) Options {
	out := base
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&out.Mode, override.Mode)
	setStr(&out.Layout, override.Layout)
	setStr(&out.Category, override.Category)
	setStr(&out.Measure, override.Measure)
	setStr(&out.Community, override.Community)
	if override.MinNodes > 0 {
		out.MinNodes = override.MinNodes
	}
	if override.MaxKept > 0 {
		out.MaxKept = override.MaxKept
	}
	if override.MaxSeeds > 0 {
		out.MaxSeeds = override.MaxSeeds
	}
	if override.Seed != 0 {
		out.Seed = override.Seed
	}
	if override.Width > 0 {
		out.Width = override.Width
	}
	if override.Height > 0 {
		out.Height = override.Height
	}
	if override.Correlation != (transform.CorrelationFilter{}) {
		out.Correlation = override.Correlation
	}
	if override.Topology != (transform.TopologyFilter{}) {
		out.Topology = override.Topology
	}
	out.MCS = out.MCS || override.MCS
	out.Weighted = out.Weighted || override.Weighted
	out.Refresh = out.Refresh || override.Refresh
	if override.Logger != nil {
		out.Logger = override.Logger
	}
	return out
}

func (o *Options) String() string {
	return fmt.Sprintf("mode=%s layout=%s category=%s community=%s", o.Mode, o.Layout, o.Category, o.Community)
}
