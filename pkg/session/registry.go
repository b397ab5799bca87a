package session

import (
	stderrors "errors"
	"fmt"
	"slices"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/transform"
)

// Entry is the serializable identity of a registry entry.
type Entry struct {
	Name  string          `json:"name"`
	Stats transform.Stats `json:"stats"`
}

// Report summarises an operation that changed the registry.
type Report struct {
	// Found counts qualifying components before the cap.
	Found int `json:"found"`
	// Subnetworks lists the registry after the operation, in rank order.
	Subnetworks []Entry `json:"subnetworks"`
	// Removed lists node ids removed by a filter or exclusion.
	Removed []string `json:"removed,omitempty"`
	// RemovedEdges counts edges dropped by a correlation filter.
	RemovedEdges int `json:"removed_edges,omitempty"`
	// SeedsPresent and SeedsUsed are set by the minimal connected subgraph.
	SeedsPresent int `json:"seeds_present,omitempty"`
	SeedsUsed    int `json:"seeds_used,omitempty"`
}

// Kept returns the number of registered subnetworks.
func (r *Report) Kept() int { return len(r.Subnetworks) }

// Snapshot is a read-only copy of one registry entry with what the
// serialization layer needs alongside it.
type Snapshot struct {
	Name   string
	Graph  *network.Graph
	Stats  transform.Stats
	Seeds  []string
	Scores map[string]float64
}

// =============================================================================
// Mutations
// =============================================================================

// Decompose splits the working graph into ranked subnetworks and replaces
// the registry with them. The registry is left unchanged on failure.
func (s *Session) Decompose() (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(s.graph, &Report{})
}

// FilterCorrelation re-projects the original edge table through f with the
// session's projection mode, then decomposes the result. The working graph
// and the registry are replaced only if both steps succeed.
func (s *Session) FilterCorrelation(f transform.CorrelationFilter) (*Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := transform.FilterEdges(s.edges, f)
	g, err := network.Build(kept, s.nodes, s.mode)
	if err != nil {
		return nil, err
	}
	return s.commit(g, &Report{RemovedEdges: removed})
}

// FilterTopology removes thresholded nodes of the selected role from the
// working graph and decomposes the result.
func (s *Session) FilterTopology(f transform.TopologyFilter) (*Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, removed := transform.FilterTopology(s.graph, f)
	return s.commit(g, &Report{Removed: removed})
}

// MinimalConnected replaces the working graph with the smallest subgraph
// connecting the session's seeds and decomposes it.
//
// Returns an EMPTY_RESULT error when no seed is present in the graph.
func (s *Session) MinimalConnected() (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := transform.MinimalConnected(s.graph, s.seeds, s.opts.MaxSeeds)
	if res.Empty() {
		return nil, errors.New(errors.ErrCodeEmpty, "no seeds present")
	}
	return s.commit(res.Graph, &Report{SeedsPresent: res.Present, SeedsUsed: len(res.Used)})
}

// ExcludeNodes removes ids from the named entry along with any node left
// isolated, then refreshes registry statistics. Ids absent from the entry
// are ignored.
func (s *Session) ExcludeNodes(name string, ids []string) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	g, removed := transform.Exclude(s.registry[i].Graph, ids)
	s.registry[i].Graph = g
	transform.RecomputeStats(s.registry, s.seeds)
	return &Report{Found: s.found, Subnetworks: s.entries(), Removed: removed}, nil
}

// ExtractModule registers the module connecting ids within the named entry
// as a new entry named module1, module2...
func (s *Session) ExtractModule(name string, ids []string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(name)
	if err != nil {
		return Entry{}, err
	}
	g, err := transform.ExtractModule(s.registry[i].Graph, ids)
	if err != nil {
		return Entry{}, err
	}
	s.moduleSeq++
	sub := transform.Subnetwork{
		Name:  fmt.Sprintf("%s%d", transform.ModulePrefix, s.moduleSeq),
		Graph: g,
		Stats: transform.StatsOf(g, s.seeds),
	}
	s.registry = append(s.registry, sub)
	transform.RecomputeStats(s.registry, s.seeds)
	return Entry{Name: sub.Name, Stats: sub.Stats}, nil
}

// DetectCommunities partitions the named entry and keeps the assignment
// table of the result on the session.
func (s *Session) DetectCommunities(name string, method community.Method, weighted bool) (*community.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	res, err := community.Detect(s.registry[i].Graph, s.seeds, community.Options{
		Method:   method,
		Weighted: weighted,
		Scores:   s.scores,
	})
	if err != nil {
		return nil, err
	}
	s.communities = res
	return res, nil
}

// commit decomposes g and, on success, installs it as the working graph with
// the decomposition as the new registry.
func (s *Session) commit(g *network.Graph, r *Report) (*Report, error) {
	d, err := transform.Decompose(g, s.seeds, transform.DecomposeOptions{
		MinNodes: s.opts.MinNodes,
		MaxKept:  s.opts.MaxKept,
	})
	if err != nil {
		return nil, err
	}
	s.graph = g
	s.registry = d.Subnetworks
	s.found = d.Found
	s.communities = nil
	r.Found = d.Found
	r.Subnetworks = s.entries()
	return r, nil
}

// =============================================================================
// Queries
// =============================================================================

// Subnetworks lists the registry in rank order.
func (s *Session) Subnetworks() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries()
}

// Found returns how many components qualified at the last decomposition.
func (s *Session) Found() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.found
}

// Snapshot returns a copy of the named entry.
func (s *Session) Snapshot(name string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	sub := s.registry[i]
	return &Snapshot{
		Name:   sub.Name,
		Graph:  sub.Graph.Clone(),
		Stats:  sub.Stats,
		Seeds:  s.Seeds(),
		Scores: s.Scores(),
	}, nil
}

// ShortestPaths enumerates shortest paths between two nodes of the named
// entry. A missing connection is reported through the result, not an error.
func (s *Session) ShortestPaths(name, from, to string) (network.PathResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.lookup(name)
	if err != nil {
		return network.PathResult{}, err
	}
	res, err := network.ShortestPaths(s.registry[i].Graph, from, to, network.MaxPaths)
	if stderrors.Is(err, network.ErrUnknownNode) {
		return res, errors.Wrap(errors.ErrCodeNotFound, err, "node not in %s", name)
	}
	return res, err
}

// Communities returns the assignment table of the last detection run, or
// nil if communities were not detected since the registry last changed.
func (s *Session) Communities() []community.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.communities == nil {
		return nil
	}
	return slices.Clone(s.communities.Assignments)
}

func (s *Session) entries() []Entry {
	out := make([]Entry, len(s.registry))
	for i, sub := range s.registry {
		out[i] = Entry{Name: sub.Name, Stats: sub.Stats}
	}
	return out
}

func (s *Session) lookup(name string) (int, error) {
	for i, sub := range s.registry {
		if sub.Name == name {
			return i, nil
		}
	}
	return -1, errors.New(errors.ErrCodeNotFound, "subnetwork %q not found", name)
}
