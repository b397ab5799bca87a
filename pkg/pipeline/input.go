package pipeline

import (
	netio "github.com/MASHUOA/MetaboAnalystR/pkg/io"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// InputFiles names the tables of an analysis. Only Edges is required.
type InputFiles struct {
	Edges  string
	Nodes  string
	Seeds  string
	Scores string
}

// LoadInput reads the named tables. The projection mode is left at its zero
// value; [Runner.Analyze] sets it from the options.
func LoadInput(files InputFiles) (session.Input, error) {
	var (
		in  session.Input
		err error
	)
	if in.Edges, err = netio.ImportEdges(files.Edges); err != nil {
		return in, err
	}
	if files.Nodes != "" {
		if in.Nodes, err = netio.ImportNodes(files.Nodes); err != nil {
			return in, err
		}
	}
	if files.Seeds != "" {
		if in.Seeds, err = netio.ImportSeeds(files.Seeds); err != nil {
			return in, err
		}
	}
	if files.Scores != "" {
		if in.Scores, err = netio.ImportScores(files.Scores); err != nil {
			return in, err
		}
	}
	return in, nil
}
