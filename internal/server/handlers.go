package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MASHUOA/MetaboAnalystR/pkg/buildinfo"
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/transform"
	"github.com/MASHUOA/MetaboAnalystR/pkg/pipeline"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// CreateRequest is the body of POST /api/sessions.
type CreateRequest struct {
	Edges   []graph.GraphEdge  `json:"edges"`
	Nodes   []graph.GraphNode  `json:"nodes,omitempty"`
	Seeds   []string           `json:"seeds,omitempty"`
	Scores  map[string]float64 `json:"scores,omitempty"`
	Options pipeline.Options   `json:"options"`
}

// SessionResponse describes a session and its registry.
type SessionResponse struct {
	ID        string          `json:"id"`
	ExpiresAt time.Time       `json:"expires_at"`
	Nodes     int             `json:"nodes,omitempty"`
	Edges     int             `json:"edges,omitempty"`
	Report    *session.Report `json:"report,omitempty"`
}

// IDsRequest carries node ids for module extraction and exclusion.
type IDsRequest struct {
	IDs []string `json:"ids"`
}

// PathsResponse is the answer to a shortest-path query.
type PathsResponse struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Connected bool       `json:"connected"`
	Length    int        `json:"length"`
	Paths     [][]string `json:"paths"`
	Truncated bool       `json:"truncated,omitempty"`
	Summary   string     `json:"summary"`
}

// CommunitiesResponse wraps a detection result with its summary string.
type CommunitiesResponse struct {
	*community.Result
	Summary string `json:"summary"`
}

// =============================================================================
// Session Lifecycle
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, id := range req.Seeds {
		if err := errors.ValidateIdentifier(id); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	edges, nodes := graph.Graph{Nodes: req.Nodes, Edges: req.Edges}.Tables()
	in := session.Input{Edges: edges, Nodes: nodes, Seeds: req.Seeds, Scores: req.Scores}

	opts := pipeline.Merge(s.defaults, req.Options)
	opts.Logger = s.logger
	res, err := s.runner.Analyze(r.Context(), in, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Set(r.Context(), res.Session); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{
		ID:        res.Session.ID,
		ExpiresAt: res.Session.ExpiresAt,
		Nodes:     res.Stats.NodeCount,
		Edges:     res.Stats.EdgeCount,
		Report:    res.Report,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubnetworks(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		ID:        sess.ID,
		ExpiresAt: sess.ExpiresAt,
		Report:    &session.Report{Found: sess.Found(), Subnetworks: sess.Subnetworks()},
	})
}

func (s *Server) handleAssignments(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	assignments := sess.Communities()
	if assignments == nil {
		assignments = []community.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// =============================================================================
// Registry Mutations
// =============================================================================

func (s *Server) handleFilterCorrelation(w http.ResponseWriter, r *http.Request) {
	var f transform.CorrelationFilter
	s.mutate(w, r, &f, func(sess *session.Session) (any, error) {
		return sess.FilterCorrelation(f)
	})
}

func (s *Server) handleFilterTopology(w http.ResponseWriter, r *http.Request) {
	var f transform.TopologyFilter
	s.mutate(w, r, &f, func(sess *session.Session) (any, error) {
		return sess.FilterTopology(f)
	})
}

func (s *Server) handleMinimalConnected(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, nil, func(sess *session.Session) (any, error) {
		return sess.MinimalConnected()
	})
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	var req IDsRequest
	s.mutate(w, r, &req, func(sess *session.Session) (any, error) {
		return sess.ExtractModule(chi.URLParam(r, "name"), req.IDs)
	})
}

func (s *Server) handleExclude(w http.ResponseWriter, r *http.Request) {
	var req IDsRequest
	s.mutate(w, r, &req, func(sess *session.Session) (any, error) {
		return sess.ExcludeNodes(chi.URLParam(r, "name"), req.IDs)
	})
}

// mutate decodes body (when non-nil), applies fn to the session and writes
// its result.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, body any, fn func(*session.Session) (any, error)) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if body != nil {
		if err := s.decode(w, r, body); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	res, err := fn(sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// Subnetwork Queries
// =============================================================================

func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	snap, opts, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	p, hit, err := s.runner.PayloadWithCacheInfo(r.Context(), snap, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	snap, opts, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), snap.Graph, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "from and to are required"))
		return
	}
	res, err := sess.ShortestPaths(chi.URLParam(r, "name"), from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pathsResponse(res))
}

func pathsResponse(res network.PathResult) PathsResponse {
	paths := res.Paths
	if paths == nil {
		paths = [][]string{}
	}
	return PathsResponse{
		From:      res.From,
		To:        res.To,
		Connected: res.Connected,
		Length:    res.Length(),
		Paths:     paths,
		Truncated: res.Truncated,
		Summary:   graph.FormatPaths(res),
	}
}

func (s *Server) handleCommunities(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	opts, err := s.queryOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Communities(r.Context(), sess, chi.URLParam(r, "name"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CommunitiesResponse{Result: res, Summary: graph.FormatCommunities(res.Communities)})
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*session.Snapshot, pipeline.Options, bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return nil, pipeline.Options{}, false
	}
	opts, err := s.queryOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, opts, false
	}
	snap, err := sess.Snapshot(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, opts, false
	}
	return snap, opts, true
}

// queryOptions overlays the layout, category, measure, method, seed and
// size query parameters on the server defaults. weighted and refresh replace
// the default whenever they are present.
func (s *Server) queryOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	override := pipeline.Options{
		Layout:    q.Get("layout"),
		Category:  q.Get("category"),
		Measure:   q.Get("measure"),
		Community: q.Get("method"),
	}
	var err error
	parse := func(key string, set func(string) error) {
		if v := q.Get(key); v != "" && err == nil {
			if perr := set(v); perr != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", key, v)
			}
		}
	}
	parse("seed", func(v string) (e error) { override.Seed, e = strconv.ParseInt(v, 10, 64); return })
	parse("width", func(v string) (e error) { override.Width, e = strconv.ParseFloat(v, 64); return })
	parse("height", func(v string) (e error) { override.Height, e = strconv.ParseFloat(v, 64); return })
	// Merge ORs booleans, so explicit values are applied after it.
	var weighted, refresh *bool
	parseBool := func(key string, dst **bool) {
		parse(key, func(v string) error {
			b, e := strconv.ParseBool(v)
			*dst = &b
			return e
		})
	}
	parseBool("weighted", &weighted)
	parseBool("refresh", &refresh)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Merge(s.defaults, override)
	if weighted != nil {
		opts.Weighted = *weighted
	}
	if refresh != nil {
		opts.Refresh = *refresh
	}
	opts.Logger = s.logger
	return opts, opts.Validate()
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
