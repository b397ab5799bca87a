package transform

import (
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// CorrelationFilter keeps edges by coefficient band and significance.
//
// An edge passes when its coefficient lies in [NegLo, NegHi) or
// [PosLo, PosHi), and its p-value and adjusted p-value do not exceed PValue
// and QValue. A band with Lo == Hi is inactive; when both bands are inactive
// the coefficient is not checked. Thresholds of zero are inactive.
type CorrelationFilter struct {
	NegLo  float64 `json:"neg_lo" toml:"neg_lo"`
	NegHi  float64 `json:"neg_hi" toml:"neg_hi"`
	PosLo  float64 `json:"pos_lo" toml:"pos_lo"`
	PosHi  float64 `json:"pos_hi" toml:"pos_hi"`
	PValue float64 `json:"pvalue" toml:"pvalue"`
	QValue float64 `json:"qvalue" toml:"qvalue"`
}

// Validate checks that bands are ordered and thresholds are usable.
func (f CorrelationFilter) Validate() error {
	if err := errors.ValidateBand("negative band", f.NegLo, f.NegHi); err != nil {
		return err
	}
	if err := errors.ValidateBand("positive band", f.PosLo, f.PosHi); err != nil {
		return err
	}
	if err := errors.ValidateThreshold("pvalue", f.PValue); err != nil {
		return err
	}
	return errors.ValidateThreshold("qvalue", f.QValue)
}

// Active reports whether any constraint is set.
func (f CorrelationFilter) Active() bool {
	return f.bandsActive() || f.PValue > 0 || f.QValue > 0
}

func (f CorrelationFilter) bandsActive() bool {
	return f.NegLo < f.NegHi || f.PosLo < f.PosHi
}

// Keep reports whether e passes every active constraint.
func (f CorrelationFilter) Keep(e network.Edge) bool {
	if f.bandsActive() {
		if !e.Has(network.FieldCoefficient) {
			return false
		}
		c := e.Coefficient
		inNeg := c >= f.NegLo && c < f.NegHi
		inPos := c >= f.PosLo && c < f.PosHi
		if !inNeg && !inPos {
			return false
		}
	}
	if f.PValue > 0 && (!e.Has(network.FieldPValue) || e.PValue > f.PValue) {
		return false
	}
	if f.QValue > 0 && (!e.Has(network.FieldAdjPValue) || e.AdjPValue > f.QValue) {
		return false
	}
	return true
}

// FilterEdges applies f to an edge table, returning the kept edges in input
// order and the number removed.
func FilterEdges(edges []network.Edge, f CorrelationFilter) ([]network.Edge, int) {
	kept := make([]network.Edge, 0, len(edges))
	for _, e := range edges {
		if f.Keep(e) {
			kept = append(kept, e)
		}
	}
	return kept, len(edges) - len(kept)
}

// Role selects which nodes a topology filter may remove.
type Role string

const (
	// RoleGene selects nodes that appear as an edge source.
	RoleGene Role = "gene"
	// RoleOther selects nodes that appear as an edge target.
	RoleOther Role = "other"
	// RoleAll selects every node.
	RoleAll Role = "all"
)

// ValidRoles is the set of supported roles.
var ValidRoles = map[Role]bool{
	RoleGene:  true,
	RoleOther: true,
	RoleAll:   true,
}

// ParseRole converts a role name into a Role. The empty string selects
// RoleAll.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleAll, nil
	}
	if r := Role(s); ValidRoles[r] {
		return r, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown node role %q (must be one of: gene, other, all)", s)
}

// Predicate returns the membership test for the role on g.
func (r Role) Predicate(g *network.Graph) func(id string) bool {
	var set map[string]bool
	switch r {
	case RoleGene:
		set = g.Sources()
	case RoleOther:
		set = g.Targets()
	default:
		return func(string) bool { return true }
	}
	return func(id string) bool { return set[id] }
}

// TopologyFilter removes weakly connected nodes of one role.
type TopologyFilter struct {
	Role           Role    `json:"role" toml:"role"`
	MinDegree      int     `json:"min_degree" toml:"min_degree"`
	MinBetweenness float64 `json:"min_betweenness" toml:"min_betweenness"`
}

// Validate checks the thresholds.
func (f TopologyFilter) Validate() error {
	if f.MinDegree < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min_degree cannot be negative")
	}
	if _, err := ParseRole(string(f.Role)); err != nil {
		return err
	}
	return errors.ValidateThreshold("min_betweenness", f.MinBetweenness)
}

// FilterTopology removes every node selected by the role whose degree is at
// most MinDegree (when MinDegree > 0) or whose betweenness is at most
// MinBetweenness (when MinBetweenness > 0). Nodes orphaned by the removal
// stay in the graph.
func FilterTopology(g *network.Graph, f TopologyFilter) (*network.Graph, []string) {
	selected := f.Role.Predicate(g)
	var bc map[string]float64
	if f.MinBetweenness > 0 {
		bc = network.Betweenness(g)
	}

	var drop []string
	for _, id := range g.NodeIDs() {
		if !selected(id) {
			continue
		}
		lowDegree := f.MinDegree > 0 && g.Degree(id) <= f.MinDegree
		lowBetween := f.MinBetweenness > 0 && bc[id] <= f.MinBetweenness
		if lowDegree || lowBetween {
			drop = append(drop, id)
		}
	}
	return g.Without(drop)
}
