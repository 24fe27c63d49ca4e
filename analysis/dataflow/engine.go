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
	"errors"
	"fmt"
	"time"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/contract"
	"github.com/awslabs/qualflow/analysis/node"
	"golang.org/x/exp/slices"
)

// ErrNonConvergence is returned when the analysis of a procedure exceeds the maximum number of block visits
var ErrNonConvergence = errors.New("analysis did not converge")

// ErrMalformedContract is returned, with strict contracts, when a contract could not be resolved at some call
// site of the procedure
var ErrMalformedContract = errors.New("malformed contract")

// Engine runs an analysis on control-flow graphs. An engine can run several graphs concurrently: the state of the
// analysis of a graph is local to the call to Run.
type Engine struct {
	// Config contains the options of the engine
	Config *config.Config

	// Logger is the logger of the engine
	Logger *config.LogGroup

	// Analysis defines the lattice and the transfer functions
	Analysis Analysis

	// Resolver supplies the contracts of the callees. A nil Resolver disables contracts.
	Resolver contract.Resolver
}

// NewEngine returns an engine for the analysis. If cfg is nil, the default config is used. If logger is nil, a
// logger is built from the config.
func NewEngine(cfg *config.Config, logger *config.LogGroup, analysis Analysis, resolver contract.Resolver) *Engine {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if logger == nil {
		logger = config.NewLogGroup(cfg)
	}
	return &Engine{Config: cfg, Logger: logger, Analysis: analysis, Resolver: resolver}
}

// runState is the state of the analysis of a single graph
type runState struct {
	engine   *Engine
	graph    *cfg.Graph
	transfer node.Visitor[TransferResult, TransferInput]
	result   *Result

	// priority[b] is the position of block b in reverse postorder, or -1 if b is unreachable
	priority []int

	// worklist[b] is true when block b needs to be visited
	worklist []bool
	pending  int

	// order is the reverse postorder of the reachable blocks
	order []int

	// edgeStores[b][i] is the store flowing on the i-th successor edge of block b, nil until b is visited
	edgeStores [][]*Store

	// headers marks the loop headers
	headers []bool

	diagnosed map[diagnosticKey]bool
}

// Run analyzes the graph g until the facts reach a fixed point, and returns the facts at every node.
//
// Run fails with ErrNonConvergence if the number of block visits exceeds the configured maximum, and with the
// error of ctx if ctx is done before the fixed point is reached; in both cases no result is returned. With
// strict contracts, Run returns the result together with ErrMalformedContract if some contract could not be
// resolved.
func (e *Engine) Run(ctx context.Context, g *cfg.Graph) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	state := e.newRunState(g)
	if err := state.iterate(ctx); err != nil {
		e.Logger.Warnf("%s analysis of %s failed: %v", e.Analysis.Name(), g.Name, err)
		return nil, err
	}
	res := state.result
	sortDiagnostics(g, res.Diagnostics)
	e.Logger.Debugf("%s analysis of %s: %d block visits, %d loop headers, %d header revisits (%.3f s)",
		e.Analysis.Name(), g.Name, res.Stats.BlockVisits, res.Stats.LoopHeaders, res.Stats.HeaderRevisits,
		time.Since(start).Seconds())
	if e.Config.StrictContracts && len(res.Diagnostics) > 0 {
		return res, fmt.Errorf("%w: %d unresolved targets in %s", ErrMalformedContract, len(res.Diagnostics), g.Name)
	}
	return res, nil
}

func (e *Engine) newRunState(g *cfg.Graph) *runState {
	n := len(g.Blocks)
	state := &runState{
		engine:     e,
		graph:      g,
		transfer:   e.Analysis.Transfer(),
		priority:   make([]int, n),
		worklist:   make([]bool, n),
		order:      g.ReversePostorder(),
		edgeStores: make([][]*Store, n),
		headers:    make([]bool, n),
		diagnosed:  map[diagnosticKey]bool{},
		result:     newResult(g, e.Analysis.Name()),
	}
	for i := range state.priority {
		state.priority[i] = -1
	}
	for i, b := range state.order {
		state.priority[b] = i
	}
	for _, h := range g.LoopHeaders() {
		if state.priority[h] >= 0 {
			state.headers[h] = true
			state.result.Stats.LoopHeaders++
		}
	}
	for _, b := range g.Blocks {
		state.edgeStores[b.Index] = make([]*Store, len(b.Succs))
	}
	return state
}

func (s *runState) push(b int) {
	if s.priority[b] < 0 || s.worklist[b] {
		return
	}
	s.worklist[b] = true
	s.pending++
}

// pop returns the pending block that comes first in reverse postorder
func (s *runState) pop() int {
	i := slices.IndexFunc(s.order, func(b int) bool { return s.worklist[b] })
	if i < 0 {
		return -1
	}
	b := s.order[i]
	s.worklist[b] = false
	s.pending--
	return b
}

func (s *runState) iterate(ctx context.Context) error {
	g := s.graph
	stats := &s.result.Stats
	s.push(g.Entry)
	for s.pending > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("analysis of %s interrupted: %w", g.Name, err)
		}
		b := s.pop()
		stats.BlockVisits++
		if s.engine.Config.ExceedsMaxIterations(stats.BlockVisits) {
			return fmt.Errorf("%w: %s after %d block visits", ErrNonConvergence, g.Name, stats.BlockVisits-1)
		}

		input := s.blockInput(b)
		previous := s.result.blockInputs[b]
		if previous != nil {
			if s.headers[b] {
				stats.HeaderRevisits++
			}
			if previous.Equal(input) {
				continue
			}
		}
		s.result.blockInputs[b] = input
		if s.engine.Logger.LogsTrace() {
			s.engine.Logger.Tracef("%s: visiting block %d with %s", g.Name, b, input)
		}

		out := s.visitBlock(g.Blocks[b], input)

		for i, edge := range g.Blocks[b].Succs {
			var store *Store
			switch edge.Kind {
			case cfg.True:
				store = out.Then()
			case cfg.False:
				store = out.Else()
			default:
				store = out.Regular()
			}
			if old := s.edgeStores[b][i]; old != nil && old.Equal(store) {
				continue
			}
			s.edgeStores[b][i] = store
			s.push(edge.To)
		}
	}
	return nil
}

// blockInput joins the stores of the edges entering b that have been computed. The entry block also receives
// the initial store of the analysis.
func (s *runState) blockInput(b int) *Store {
	var input *Store
	if b == s.graph.Entry {
		input = s.engine.Analysis.Initial(s.graph)
	}
	for _, p := range s.graph.Blocks[b].Preds {
		for i, edge := range s.graph.Blocks[p].Succs {
			if edge.To != b || s.edgeStores[p][i] == nil {
				continue
			}
			if input == nil {
				input = s.edgeStores[p][i]
			} else {
				input = input.Join(s.edgeStores[p][i])
			}
		}
	}
	if input == nil {
		return NewStore()
	}
	return input
}

// visitBlock applies the transfer functions of the nodes of block in order, and returns the facts at the end of
// the block
func (s *runState) visitBlock(block *cfg.Block, input *Store) TransferInput {
	cur := RegularInput(input)
	for _, n := range block.Nodes {
		s.result.before[n] = cur
		res := node.Accept(n, s.transfer, cur)
		if call, ok := n.(*node.MethodInvocation); ok {
			res = s.applyContracts(call, s.invalidate(call, res))
		}
		s.result.after[n] = res
		cur = res.asInput()
	}
	return cur
}

// applyContracts refines the then and else stores of the result of call with the postconditions of its callee
func (s *runState) applyContracts(call *node.MethodInvocation, res TransferResult) TransferResult {
	if s.engine.Resolver == nil {
		return res
	}
	decl := s.engine.Resolver.Lookup(call)
	if decl == nil {
		return res
	}
	contracts := decl.Contracts()
	if len(contracts) == 0 {
		return res
	}
	thenStore, elseStore := res.ThenStore(), res.ElseStore()
	for _, c := range contracts {
		value, ok := s.engine.Analysis.ValueFor(c.Qualifier)
		if !ok {
			s.diagnose(call, &contract.ResolutionError{
				Declaration: decl.Name,
				Result:      c.Result,
				Target:      "",
				Reason:      fmt.Sprintf("unknown qualifier %q", c.Qualifier),
			})
			continue
		}
		exprs, errs := c.Resolve(call)
		if len(errs) > 0 {
			for _, err := range errs {
				s.diagnose(call, err)
			}
			continue
		}
		if len(exprs) == 0 {
			continue
		}
		var refined *Store
		if c.Result {
			refined = thenStore.Clone()
			thenStore = refined
		} else {
			refined = elseStore.Clone()
			elseStore = refined
		}
		for _, e := range exprs {
			refined.Refine(e, value)
		}
	}
	return ConditionalResult(res.Value, thenStore, elseStore)
}

func (s *runState) diagnose(call *node.MethodInvocation, err *contract.ResolutionError) {
	key := diagnosticKey{call: call, result: err.Result, target: err.Target}
	if s.diagnosed[key] {
		return
	}
	s.diagnosed[key] = true
	d := Diagnostic{
		Kind:        MalformedContract,
		Procedure:   s.graph.Name,
		Pos:         s.graph.Position(call),
		Call:        call,
		Declaration: err.Declaration,
		Result:      err.Result,
		Target:      err.Target,
		Reason:      err.Reason,
	}
	s.result.Diagnostics = append(s.result.Diagnostics, d)
	s.engine.Logger.Warnf("%s", d)
}
