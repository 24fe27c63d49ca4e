// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render implements the render sub-command, which prints the control-flow graphs of functions in the
// node model, either as text or in the graphviz format.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/dataflow"
	"github.com/awslabs/qualflow/cmd/qualflow/facts"
	"github.com/awslabs/qualflow/cmd/qualflow/tools"
	"github.com/awslabs/qualflow/internal/formatutil"
)

// Usage of the render sub-command
const Usage = `Render the control-flow graphs of the functions of your packages.
Usage:
  qualflow render [options] <package path(s)>
Examples:
Print the graphs of the functions of a package
  % qualflow render ./queue
Write the graph of a function, annotated with the facts proven at each block, to a dot file
  % qualflow render -config config.yaml -func '^first$' -facts -dotout first.dot ./queue
`

// Flags represents the parsed render sub-command flags.
type Flags struct {
	tools.CommonFlags
	dotOut    string
	withFacts bool
}

// NewFlags returns the parsed render sub-command flags from args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("render")
	dotOut := flags.FlagSet.String("dotout", "", "output file for the graphviz representation of the graphs")
	withFacts := flags.FlagSet.Bool("facts", false, "annotate the blocks with the facts proven at their start")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, dotOut: *dotOut, withFacts: *withFacts}, nil
}

// Run runs the render tool with flags.
func Run(flags Flags) error {
	conf, err := tools.LoadConfig(flags.ConfigPath, flags.Verbose)
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(conf)
	graphs, err := tools.LoadGraphs(flags.CommonFlags)
	if err != nil {
		return err
	}

	results := make([]*dataflow.Result, len(graphs))
	if flags.withFacts {
		outcomes, err := facts.Analyze(conf, logger, graphs)
		if err != nil {
			return err
		}
		for i, o := range outcomes {
			results[i] = o.Result
		}
	}

	if flags.dotOut == "" {
		for i, g := range graphs {
			if err := WriteText(os.Stdout, g, results[i]); err != nil {
				return err
			}
		}
		return nil
	}

	w, err := os.Create(flags.dotOut)
	if err != nil {
		return fmt.Errorf("could not create file %s: %v", flags.dotOut, err)
	}
	defer w.Close()
	for i, g := range graphs {
		if err := WriteGraphviz(w, g, results[i]); err != nil {
			return err
		}
	}
	logger.Infof("%s", formatutil.Faint(fmt.Sprintf("Wrote %d graphs in %s", len(graphs), flags.dotOut)))
	return nil
}

// WriteText writes the textual representation of g to w. If res is not nil, the facts holding at the start of
// each block are printed after the graph.
func WriteText(w io.Writer, g *cfg.Graph, res *dataflow.Result) error {
	if err := cfg.Fprint(w, g); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	if res == nil {
		return nil
	}
	for _, b := range g.Blocks {
		if input := res.BlockInput(b.Index); input != nil {
			if _, err := fmt.Fprintf(w, "facts .%d: %s\n", b.Index, input); err != nil {
				return fmt.Errorf("error while writing facts: %w", err)
			}
		}
	}
	return nil
}

// WriteGraphviz writes a graphviz representation of g to w. Blocks are boxes listing their nodes, and the true
// and false edges are colored. If res is not nil, each block is labelled with the facts holding at its start.
func WriteGraphviz(w io.Writer, g *cfg.Graph, res *dataflow.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", g.Name)
	b.WriteString("  node [shape=box fontname=\"monospace\"];\n")
	for _, block := range g.Blocks {
		label := fmt.Sprintf(".%d", block.Index)
		if block.Comment != "" {
			label += " " + block.Comment
		}
		label += "\\l"
		if res != nil {
			if input := res.BlockInput(block.Index); input != nil {
				label += formatutil.SanitizeRepr(input) + "\\l"
			}
		}
		for _, n := range block.Nodes {
			label += formatutil.SanitizeRepr(n) + "\\l"
		}
		fmt.Fprintf(&b, "  b%d [label=\"%s\"];\n", block.Index, label)
	}
	for _, block := range g.Blocks {
		for _, e := range block.Succs {
			fmt.Fprintf(&b, "  b%d -> b%d%s;\n", block.Index, e.To, edgeAttributes(e.Kind))
		}
	}
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	return nil
}

// edgeAttributes defines specific colors for specific edges
// - a true edge is green, a false edge is red
// - exceptional edges are dashed
func edgeAttributes(k cfg.EdgeKind) string {
	switch k {
	case cfg.True:
		return " [label=\"true\" color=green]"
	case cfg.False:
		return " [label=\"false\" color=red]"
	case cfg.Exceptional:
		return " [style=dashed]"
	}
	return ""
}
