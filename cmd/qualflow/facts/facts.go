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

// Package facts implements the facts sub-command: it runs the nullness analysis with the contracts of the config
// file on the functions of the packages given as arguments, and prints the facts proven at each block.
package facts

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/contract"
	"github.com/awslabs/qualflow/analysis/dataflow"
	"github.com/awslabs/qualflow/analysis/nullness"
	"github.com/awslabs/qualflow/cmd/qualflow/tools"
	"github.com/awslabs/qualflow/internal/formatutil"
)

// Usage of the facts sub-command
const Usage = `Print the facts proven by the nullness analysis.
Usage:
  qualflow facts [options] <package path(s)>
Examples:
Print the facts at the start of each block of the functions of a package
  % qualflow facts -config config.yaml ./queue
Print the facts before every node of the functions whose name starts with Queue
  % qualflow facts -config config.yaml -nodes -func '^Queue\.' ./queue
`

// Flags represents the parsed facts sub-command flags.
type Flags struct {
	tools.CommonFlags
	nodes bool
}

// NewFlags returns the parsed facts sub-command flags from args.
func NewFlags(args []string) (Flags, error) {
	flags := tools.NewUnparsedCommonFlags("facts")
	nodes := flags.FlagSet.Bool("nodes", false, "print the facts before every node instead of every block")
	tools.SetUsage(flags.FlagSet, Usage)
	common, err := flags.Parse(args)
	if err != nil {
		return Flags{}, err
	}
	return Flags{CommonFlags: common, nodes: *nodes}, nil
}

// Run runs the facts tool with flags.
func Run(flags Flags) error {
	conf, err := tools.LoadConfig(flags.ConfigPath, flags.Verbose)
	if err != nil {
		return err
	}
	logger := config.NewLogGroup(conf)

	logger.Infof("%s", formatutil.Faint("Reading sources"))
	start := time.Now()
	graphs, err := tools.LoadGraphs(flags.CommonFlags)
	if err != nil {
		return err
	}
	logger.Infof("%s", formatutil.Faint(fmt.Sprintf("Built %d graphs in %.3f s", len(graphs), time.Since(start).Seconds())))

	outcomes, err := Analyze(conf, logger, graphs)
	if err != nil {
		return err
	}
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
		if err := Report(os.Stdout, outcome, flags.nodes); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("analysis failed for %d of %d functions", failed, len(outcomes))
	}
	return nil
}

// Analyze runs the nullness analysis on the graphs, with the contracts declared in conf
func Analyze(conf *config.Config, logger *config.LogGroup, graphs []*cfg.Graph) ([]dataflow.Outcome, error) {
	cache, err := contract.NewCache(conf)
	if err != nil {
		return nil, fmt.Errorf("invalid contracts: %v", err)
	}
	engine := dataflow.NewEngine(conf, logger, nullness.Analysis{}, cache)
	return engine.RunAll(context.Background(), graphs), nil
}

// Report writes the facts of the outcome of the analysis of one procedure to w. When nodes is true, the facts
// holding before each node are printed; otherwise only the facts holding at the start of each block.
func Report(w io.Writer, outcome dataflow.Outcome, nodes bool) error {
	g := outcome.Graph
	if _, err := fmt.Fprintf(w, "%s\n", formatutil.Bold(g.Name)); err != nil {
		return err
	}
	if outcome.Result != nil {
		for _, d := range outcome.Result.Diagnostics {
			fmt.Fprintf(w, "  %s %s\n", formatutil.Yellow("warning:"), d)
		}
	}
	if outcome.Err != nil {
		_, err := fmt.Fprintf(w, "  %s %v\n", formatutil.Red("error:"), outcome.Err)
		return err
	}
	res := outcome.Result
	for _, b := range g.Blocks {
		input := res.BlockInput(b.Index)
		if input == nil {
			fmt.Fprintf(w, "  .%d %s\n", b.Index, formatutil.Faint("unreachable"))
			continue
		}
		fmt.Fprintf(w, "  .%d %s\n", b.Index, blockFacts(input))
		if !nodes {
			continue
		}
		for _, n := range b.Nodes {
			fmt.Fprintf(w, "    %-30s %s\n", n, blockFacts(res.StoreBefore(n)))
		}
	}
	return nil
}

func blockFacts(s *dataflow.Store) string {
	if s.Len() == 0 {
		return formatutil.Faint(s.String())
	}
	return formatutil.Green(s.String())
}
