package community

import (
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
)

// Method selects a community detection algorithm.
type Method string

const (
	// MethodWalktrap agglomerates nodes by random-walk distance and cuts the
	// dendrogram at maximum modularity.
	MethodWalktrap Method = "walktrap"
	// MethodFlow runs Markov clustering: flow expansion alternating with
	// inflation until the transition matrix settles on attractors.
	MethodFlow Method = "flow"
	// MethodLabelProp propagates labels to the heaviest neighbouring label.
	MethodLabelProp Method = "labelprop"
	// MethodLeiden moves nodes between communities while modularity
	// improves and splits communities that fall apart.
	MethodLeiden Method = "leiden"
)

// DefaultMethod is used when no method is named.
const DefaultMethod = MethodWalktrap

// ValidMethods is the set of supported methods.
var ValidMethods = map[Method]bool{
	MethodWalktrap:  true,
	MethodFlow:      true,
	MethodLabelProp: true,
	MethodLeiden:    true,
}

// ParseMethod converts a method name into a Method. "infomap" is accepted as
// an alias of the flow-based method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "":
		return DefaultMethod, nil
	case "infomap":
		return MethodFlow, nil
	}
	if m := Method(s); ValidMethods[m] {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown community method %q (must be one of: walktrap, flow, labelprop, leiden)", s)
}

// partition runs the method on w and returns one community label per node.
func (m Method) partition(w *wgraph) ([]int, error) {
	switch m {
	case MethodWalktrap:
		return walktrap(w, walkLength), nil
	case MethodFlow:
		return markov(w), nil
	case MethodLabelProp:
		return labelPropagation(w), nil
	case MethodLeiden:
		return leiden(w), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown community method %q", string(m))
}
