// Package session holds the per-analysis Graph Store: the working graph, the
// registry of named subnetworks and modules, the seed set and external node
// scores, plus the community assignment table from the last detection run.
//
// # Architecture
//
// A [Session] is created from an edge table, an optional node table and a
// seed list. Every operation takes the session explicitly; there is no
// package-level state. Operations that replace the working graph or a
// registry entry take the session's write lock, queries take the read lock
// and hand back clones, so concurrent requests against one session never
// observe a half-updated registry.
//
// Sessions are kept by a [Store]. [MemoryStore] is the only backend: the
// analysis state is process-local and discarded on expiry.
//
// # Usage
//
//	sess, err := session.New(session.Input{
//	    Edges: edges,
//	    Seeds: seeds,
//	    Mode:  network.ModeAttributed,
//	}, session.Options{}, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	report, err := sess.Decompose()
//	...
//	snap, err := sess.Snapshot("subnetwork1")
package session

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/transform"
)

// Sentinel errors for session storage.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 2 * time.Hour

// Input holds the tables a session is built from.
type Input struct {
	Edges  []network.Edge
	Nodes  []network.Node
	Mode   network.Mode
	Seeds  []string
	Scores map[string]float64 // External per-node values, e.g. expression
}

// Options bounds the session's operations. Zero values select the defaults
// of the transform package.
type Options struct {
	MinNodes int `json:"min_nodes,omitempty" toml:"min_nodes"`
	MaxKept  int `json:"max_kept,omitempty" toml:"max_kept"`
	MaxSeeds int `json:"max_seeds,omitempty" toml:"max_seeds"`
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.MinNodes <= 0 {
		o.MinNodes = transform.DefaultMinNodes
	}
	if o.MaxKept <= 0 {
		o.MaxKept = transform.DefaultMaxKept
	}
	if o.MaxSeeds <= 0 {
		o.MaxSeeds = transform.DefaultMaxSeeds
	}
}

// Session is one analysis: a Graph Store plus its bookkeeping.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	mu     sync.RWMutex
	opts   Options
	edges  []network.Edge // original, unfiltered
	nodes  []network.Node
	mode   network.Mode
	seeds  []string
	scores map[string]float64

	graph       *network.Graph
	registry    []transform.Subnetwork
	found       int
	communities *community.Result
	moduleSeq   int
}

// New builds the working graph from in and returns a session holding it.
// The registry starts empty; call [Session.Decompose] to fill it.
func New(in Input, opts Options, ttl time.Duration) (*Session, error) {
	opts.SetDefaults()
	g, err := network.Build(in.Edges, in.Nodes, in.Mode)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		opts:      opts,
		edges:     slices.Clone(in.Edges),
		nodes:     slices.Clone(in.Nodes),
		mode:      in.Mode,
		seeds:     slices.Clone(in.Seeds),
		scores:    maps.Clone(in.Scores),
		graph:     g,
	}, nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Mode returns the projection mode the working graph was built with.
func (s *Session) Mode() network.Mode { return s.mode }

// Seeds returns a copy of the session's seed list.
func (s *Session) Seeds() []string {
	return slices.Clone(s.seeds)
}

// Scores returns a copy of the external node scores.
func (s *Session) Scores() map[string]float64 {
	return maps.Clone(s.scores)
}

// Graph returns a clone of the working graph.
func (s *Session) Graph() *network.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Clone()
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, ErrNotFound if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}
