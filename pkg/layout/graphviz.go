package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

var engines = map[Algorithm]graphviz.Layout{
	AlgorithmFR:    graphviz.FDP,
	AlgorithmKK:    graphviz.NEATO,
	AlgorithmLarge: graphviz.SFDP,
}

// ToDOT writes g as an undirected DOT graph for the given algorithm. Nodes
// are renamed n0..nk in ids order so positions can be read back without
// quoting concerns.
func ToDOT(g *network.Graph, ids []string, alg Algorithm, seed int64) string {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  start=%d;\n", seed)
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=false;\n")
	if alg == AlgorithmKK {
		buf.WriteString("  mode=KK;\n")
	}
	buf.WriteString("  node [shape=point, width=0.1];\n")
	for i := range ids {
		fmt.Fprintf(&buf, "  n%d;\n", i)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", index[e.From], index[e.To])
	}
	buf.WriteString("}\n")
	return buf.String()
}

func runGraphviz(ctx context.Context, g *network.Graph, ids []string, alg Algorithm, seed int64) ([]point, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	engine, ok := engines[alg]
	if !ok {
		return nil, fmt.Errorf("no graphviz engine for %q", alg)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine)

	graph, err := graphviz.ParseBytes([]byte(ToDOT(g, ids, alg, seed)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return parsePositions(buf.Bytes(), len(ids))
}

var (
	nodeStmtRe = regexp.MustCompile(`(?m)^\s*n(\d+)\s*\[([^\]]*)\]`)
	posAttrRe  = regexp.MustCompile(`\bpos="([^"]+)"`)
)

// parsePositions reads the pos attribute of nodes n0..n(count-1) from a
// laid-out DOT document.
func parsePositions(out []byte, count int) ([]point, error) {
	text := strings.ReplaceAll(string(out), "\\\n", "")
	pts := make([]point, count)
	seen := make([]bool, count)
	for _, m := range nodeStmtRe.FindAllStringSubmatch(text, -1) {
		i, err := strconv.Atoi(m[1])
		if err != nil || i >= count {
			continue
		}
		pm := posAttrRe.FindStringSubmatch(m[2])
		if pm == nil {
			continue
		}
		p, err := parsePoint(pm[1])
		if err != nil {
			return nil, fmt.Errorf("node n%d: %w", i, err)
		}
		pts[i] = p
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("no position for node n%d", i)
		}
	}
	return pts, nil
}

func parsePoint(s string) (point, error) {
	s = strings.TrimSuffix(s, "!")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return point{}, fmt.Errorf("malformed pos %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return point{}, fmt.Errorf("malformed pos %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return point{}, fmt.Errorf("malformed pos %q", s)
	}
	return point{x, y}, nil
}
