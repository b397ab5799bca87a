package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MASHUOA/MetaboAnalystR/pkg/cache"
	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
	"github.com/MASHUOA/MetaboAnalystR/pkg/layout"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
	"github.com/MASHUOA/MetaboAnalystR/pkg/observability"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// Runner executes pipeline stages with caching. It holds no analysis state,
// so one Runner can serve many goroutines and sessions.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects [cache.DefaultKeyer] and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Analyze builds a session from in and brings its registry up to date:
// the correlation filter, the topology filter and the minimal connected
// subgraph are applied when configured, otherwise the graph is decomposed
// as built.
func (r *Runner) Analyze(ctx context.Context, in session.Input, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	mode, _ := network.ParseMode(opts.Mode)
	in.Mode = mode
	hooks := observability.Analysis()

	start := time.Now()
	sess, err := session.New(in, opts.SessionOptions(), 0)
	if err != nil {
		hooks.OnBuild(ctx, opts.Mode, 0, 0, err)
		return nil, err
	}
	g := sess.Graph()
	hooks.OnBuild(ctx, opts.Mode, g.NodeCount(), g.EdgeCount(), nil)
	res := &Result{
		Session: sess,
		Stats: Stats{
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
			BuildTime: time.Since(start),
		},
	}
	r.Logger.Info("built graph",
		"mode", opts.Mode,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"seeds", len(in.Seeds))

	start = time.Now()
	var report *session.Report
	if opts.Correlation.Active() {
		if report, err = sess.FilterCorrelation(opts.Correlation); err != nil {
			return nil, fmt.Errorf("correlation filter: %w", err)
		}
		r.Logger.Debug("correlation filter", "removed_edges", report.RemovedEdges)
	}
	if opts.TopologyActive() {
		if report, err = sess.FilterTopology(opts.Topology); err != nil {
			return nil, fmt.Errorf("topology filter: %w", err)
		}
		r.Logger.Debug("topology filter", "removed", len(report.Removed))
	}
	if opts.MCS {
		if report, err = sess.MinimalConnected(); err != nil {
			return nil, fmt.Errorf("minimal connected subgraph: %w", err)
		}
		r.Logger.Debug("minimal connected subgraph", "present", report.SeedsPresent, "used", report.SeedsUsed)
	}
	if report == nil {
		if report, err = sess.Decompose(); err != nil {
			return nil, err
		}
	}
	res.Report = report
	res.Stats.DecomposeTime = time.Since(start)
	hooks.OnDecompose(ctx, report.Found, report.Kept(), res.Stats.DecomposeTime)

	r.Logger.Info("decomposed",
		"found", report.Found,
		"kept", report.Kept(),
		"duration", res.Stats.DecomposeTime)
	return res, nil
}

// LayoutWithCacheInfo computes the layout of g, reusing a cached one when
// the graph and layout options match. The bool reports a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *network.Graph, opts Options) (*layout.Result, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	key, err := r.layoutKey(g, &opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Analysis()
	lo := opts.LayoutOptions()
	hooks.OnLayoutStart(ctx, string(lo.Algorithm.Resolve(g.NodeCount())), g.NodeCount())
	start := time.Now()
	res, err := layout.Compute(ctx, g, lo)
	if err != nil {
		hooks.OnLayoutComplete(ctx, string(lo.Algorithm), time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLayoutComplete(ctx, string(res.Algorithm), time.Since(start), nil)
	r.Logger.Debug("computed layout", "algorithm", res.Algorithm, "nodes", len(res.Positions), "duration", time.Since(start))

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return res, false, nil
}

// Layout calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *network.Graph, opts Options) (*layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return res, err
}

// PayloadWithCacheInfo lays out a registry snapshot and converts it into
// the viewer payload. Payloads are cached by graph, layout options,
// category, topology measure, seeds and scores.
func (r *Runner) PayloadWithCacheInfo(ctx context.Context, snap *session.Snapshot, opts Options) (*graph.Payload, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	layoutKey, err := r.layoutKey(snap.Graph, &opts)
	if err != nil {
		return nil, false, err
	}
	scores, _ := json.Marshal(snap.Scores)
	key := r.Keyer.PayloadKey(layoutKey, cache.PayloadKeyOpts{
		Layout:     layoutKey,
		Category:   opts.Category,
		Measure:    opts.Measure,
		Seeds:      snap.Seeds,
		ScoresHash: cache.Hash(scores),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached graph.Payload
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Name = snap.Name
				observability.Cache().OnCacheHit(ctx, "payload")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "payload")
	}

	lay, err := r.Layout(ctx, snap.Graph, opts)
	if err != nil {
		return nil, false, err
	}
	category, _ := graph.ParseCategory(opts.Category)
	p := graph.NewPayload(snap.Graph, graph.PayloadOptions{
		Name:     snap.Name,
		Category: category,
		Layout:   lay,
		Seeds:    snap.Seeds,
		Scores:   snap.Scores,
		Measure:  network.Topology(opts.Measure),
	})
	if data, err := graph.MarshalPayload(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLPayload); err == nil {
			observability.Cache().OnCacheSet(ctx, "payload", len(data))
		}
	}
	return p, false, nil
}

// Payload calls PayloadWithCacheInfo and discards the cache hit info.
func (r *Runner) Payload(ctx context.Context, snap *session.Snapshot, opts Options) (*graph.Payload, error) {
	p, _, err := r.PayloadWithCacheInfo(ctx, snap, opts)
	return p, err
}

// Communities runs community detection on a registry entry with the
// configured method and stores the assignments on the session.
func (r *Runner) Communities(ctx context.Context, sess *session.Session, name string, opts Options) (*community.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	method, _ := community.ParseMethod(opts.Community)
	start := time.Now()
	res, err := sess.DetectCommunities(name, method, opts.Weighted)
	retained := 0
	if res != nil {
		retained = len(res.Communities)
	}
	observability.Analysis().OnCommunities(ctx, string(method), retained, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("detected communities",
		"subnetwork", name,
		"method", method,
		"communities", retained,
		"modularity", fmt.Sprintf("%.3f", res.Modularity))
	return res, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) layoutKey(g *network.Graph, opts *Options) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	return r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts(g.NodeCount())), nil
}
