package graph

import (
	"strconv"
	"strings"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
)

// Summary separators.
const (
	RecordSep = "||"
	FieldSep  = ";"
	ChainSep  = "->"
)

// FormatCommunities renders communities as size;hits;pvalue;a->b->c records
// joined by "||". P-values keep three significant digits.
func FormatCommunities(comms []community.Community) string {
	records := make([]string, len(comms))
	for i, c := range comms {
		records[i] = strings.Join([]string{
			strconv.Itoa(c.Size),
			strconv.Itoa(c.Hits),
			strconv.FormatFloat(c.PValue, 'g', 3, 64),
			strings.Join(c.Nodes, ChainSep),
		}, FieldSep)
	}
	return strings.Join(records, RecordSep)
}

// FormatPaths renders each path as an "->" chain, joined by "||". A missing
// connection renders as the empty string.
func FormatPaths(res network.PathResult) string {
	if !res.Connected {
		return ""
	}
	records := make([]string, len(res.Paths))
	for i, p := range res.Paths {
		records[i] = strings.Join(p, ChainSep)
	}
	return strings.Join(records, RecordSep)
}
