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

package dataflow

import (
	"context"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/internal/funcutil"
)

// Outcome is the outcome of the analysis of one procedure by RunAll
type Outcome struct {
	Graph  *cfg.Graph
	Result *Result
	Err    error
}

// RunAll analyzes the graphs with e.Config.NumRoutines goroutines. Each graph is analyzed independently; the
// failure of one graph does not affect the others. The outcomes are in the order of the graphs.
func (e *Engine) RunAll(ctx context.Context, graphs []*cfg.Graph) []Outcome {
	e.Logger.Infof("Running %s analysis on %d procedures", e.Analysis.Name(), len(graphs))
	outcomes := funcutil.MapParallel(graphs, func(g *cfg.Graph) Outcome {
		res, err := e.Run(ctx, g)
		return Outcome{Graph: g, Result: res, Err: err}
	}, e.Config.NumRoutines)
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	e.Logger.Infof("%s analysis done: %d procedures, %d failed", e.Analysis.Name(), len(graphs), failed)
	return outcomes
}
