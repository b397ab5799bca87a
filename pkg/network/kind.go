package network

import (
	"regexp"
	"strings"
)

// Kind classifies the biological entity behind a node.
type Kind int

const (
	// KindUnknown marks a node whose table gave no kind; [Build] infers it
	// from the identifier.
	KindUnknown Kind = iota
	// KindOther is any entity that is neither a gene product nor a compound
	// (diseases, transcription factors referenced by name, miRNAs...).
	KindOther
	// KindGene is a gene or gene product.
	KindGene
	// KindCompound is a metabolite or other small molecule.
	KindCompound
)

// String returns the lowercase kind name used in tables and payloads.
func (k Kind) String() string {
	switch k {
	case KindGene:
		return "gene"
	case KindCompound:
		return "compound"
	default:
		return "other"
	}
}

// ParseKind converts a table value into a Kind. Unrecognised and empty values
// map to KindUnknown and ok is false, so the caller can fall back to
// [InferKind]. An explicit "other" is kept as KindOther.
func ParseKind(s string) (k Kind, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gene", "protein", "enzyme":
		return KindGene, true
	case "compound", "metabolite", "cmpd":
		return KindCompound, true
	case "other":
		return KindOther, true
	}
	return KindUnknown, false
}

var (
	keggCompound = regexp.MustCompile(`^[CD]\d{5}$`)
	hmdbID       = regexp.MustCompile(`^HMDB\d+$`)
	entrezID     = regexp.MustCompile(`^\d+$`)
	ensemblID    = regexp.MustCompile(`^ENS[A-Z]*G\d+`)
)

// InferKind derives the entity kind from an identifier prefix. KEGG compound
// and drug ids and HMDB ids are compounds, Entrez and Ensembl gene ids are
// genes, everything else is other.
func InferKind(id string) Kind {
	switch {
	case keggCompound.MatchString(id), hmdbID.MatchString(id):
		return KindCompound
	case entrezID.MatchString(id), ensemblID.MatchString(id):
		return KindGene
	}
	return KindOther
}
