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
	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/node"
)

// Stats are statistics about the analysis of a procedure
type Stats struct {
	// BlockVisits is the number of times a block has been dequeued from the worklist
	BlockVisits int

	// LoopHeaders is the number of reachable loop headers of the graph
	LoopHeaders int

	// HeaderRevisits is the number of visits of loop headers after their first visit
	HeaderRevisits int
}

// Result contains the facts computed by an analysis on a graph
type Result struct {
	// Graph is the graph analyzed
	Graph *cfg.Graph

	// Analysis is the name of the analysis
	Analysis string

	// Diagnostics lists the contracts that could not be resolved, ordered by call site. Each target of a contract
	// is reported at most once per call site.
	Diagnostics []Diagnostic

	// Stats of the analysis
	Stats Stats

	before      map[node.Node]TransferInput
	after       map[node.Node]TransferResult
	blockInputs []*Store
}

func newResult(g *cfg.Graph, analysis string) *Result {
	return &Result{
		Graph:       g,
		Analysis:    analysis,
		before:      map[node.Node]TransferInput{},
		after:       map[node.Node]TransferResult{},
		blockInputs: make([]*Store, len(g.Blocks)),
	}
}

// Reached returns true when n is a node of a block that is reachable from the entry
func (r *Result) Reached(n node.Node) bool {
	_, ok := r.before[n]
	return ok
}

// StoreBefore returns the facts that hold before n, or nil if n has not been reached
func (r *Result) StoreBefore(n node.Node) *Store {
	in, ok := r.before[n]
	if !ok {
		return nil
	}
	return in.Regular()
}

// StoreAfter returns the facts that hold after n regardless of its value, or nil if n has not been reached
func (r *Result) StoreAfter(n node.Node) *Store {
	res, ok := r.after[n]
	if !ok {
		return nil
	}
	return res.RegularStore()
}

// ThenStoreAfter returns the facts that hold after n when it evaluates to true, or nil if n has not been reached
func (r *Result) ThenStoreAfter(n node.Node) *Store {
	res, ok := r.after[n]
	if !ok {
		return nil
	}
	return res.ThenStore()
}

// ElseStoreAfter returns the facts that hold after n when it evaluates to false, or nil if n has not been
// reached
func (r *Result) ElseStoreAfter(n node.Node) *Store {
	res, ok := r.after[n]
	if !ok {
		return nil
	}
	return res.ElseStore()
}

// ValueOf returns the abstract value computed by the transfer function of n, or nil
func (r *Result) ValueOf(n node.Node) Value {
	return r.after[n].Value
}

// FactsBefore returns the facts that hold before n, sorted by expression
func (r *Result) FactsBefore(n node.Node) []Fact {
	s := r.StoreBefore(n)
	if s == nil {
		return nil
	}
	return s.Facts()
}

// IsProven returns true when, before n, the expression e has a value at least as specific as v
func (r *Result) IsProven(n node.Node, e flowexpr.Expr, v Value) bool {
	s := r.StoreBefore(n)
	if s == nil {
		return false
	}
	x, ok := s.Get(e)
	return ok && IsBelow(x, v)
}

// BlockInput returns the facts at the entry of block b, or nil if b has not been reached
func (r *Result) BlockInput(b int) *Store {
	if b < 0 || b >= len(r.blockInputs) {
		return nil
	}
	return r.blockInputs[b]
}
