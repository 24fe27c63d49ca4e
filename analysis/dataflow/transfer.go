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

// An Analysis defines the lattice and the transfer functions of a dataflow analysis.
type Analysis interface {
	// Name of the analysis, used in logs
	Name() string

	// Height is the height of the lattice of values. It bounds the number of times a fact can change.
	Height() int

	// ValueFor returns the value a postcondition with the given qualifier asserts. It returns false when the
	// qualifier is not part of the lattice.
	ValueFor(qualifier string) (Value, bool)

	// Initial returns the facts holding at the entry of the procedure
	Initial(g *cfg.Graph) *Store

	// Transfer returns the transfer function of the analysis. Transfer functions must not modify the stores of
	// their input.
	Transfer() node.Visitor[TransferResult, TransferInput]
}

// TransferInput is the input of the transfer function of a node: the facts holding before the node. When the
// previous node is a condition, the input has distinct facts for the cases where the condition is true and
// false.
type TransferInput struct {
	regular   *Store
	thenStore *Store
	elseStore *Store
}

// RegularInput returns an input with the same store for all cases
func RegularInput(s *Store) TransferInput {
	return TransferInput{regular: s}
}

// IsConditional returns true when the input has distinct facts for the then and else cases
func (in TransferInput) IsConditional() bool {
	return in.regular == nil
}

// Regular returns the facts that hold regardless of the value of the previous condition
func (in TransferInput) Regular() *Store {
	if in.regular != nil {
		return in.regular
	}
	return in.thenStore.Join(in.elseStore)
}

// Then returns the facts that hold when the previous condition is true
func (in TransferInput) Then() *Store {
	if in.regular != nil {
		return in.regular
	}
	return in.thenStore
}

// Else returns the facts that hold when the previous condition is false
func (in TransferInput) Else() *Store {
	if in.regular != nil {
		return in.regular
	}
	return in.elseStore
}

// ValueOf returns the value of the flow expression computed by n, if n is trackable and has a fact in the
// regular store.
func (in TransferInput) ValueOf(n node.Node) (Value, bool) {
	e, ok := flowexpr.FromNode(n)
	if !ok {
		return nil, false
	}
	return in.Regular().Get(e)
}

// TransferResult is the result of the transfer function of a node: the abstract value of the node, and the
// facts after the node. Conditions produce distinct facts for their true and false successors.
type TransferResult struct {
	// Value is the abstract value of the node, or nil if it is unknown
	Value Value

	regular   *Store
	thenStore *Store
	elseStore *Store
}

// RegularResult returns a result with the same facts for every successor
func RegularResult(v Value, s *Store) TransferResult {
	return TransferResult{Value: v, regular: s}
}

// ConditionalResult returns a result with facts specific to the true and false successors
func ConditionalResult(v Value, thenStore, elseStore *Store) TransferResult {
	return TransferResult{Value: v, thenStore: thenStore, elseStore: elseStore}
}

// IsConditional returns true when the result has distinct facts for the then and else cases
func (r TransferResult) IsConditional() bool {
	return r.regular == nil
}

// RegularStore returns the facts holding after the node regardless of its value
func (r TransferResult) RegularStore() *Store {
	return r.asInput().Regular()
}

// ThenStore returns the facts holding after the node when its value is true
func (r TransferResult) ThenStore() *Store {
	return r.asInput().Then()
}

// ElseStore returns the facts holding after the node when its value is false
func (r TransferResult) ElseStore() *Store {
	return r.asInput().Else()
}

func (r TransferResult) asInput() TransferInput {
	return TransferInput{regular: r.regular, thenStore: r.thenStore, elseStore: r.elseStore}
}

// BaseTransfer is a transfer function that passes its input through, and swaps the then and else facts of
// negations. Analyses embed it and override the methods of the nodes they interpret.
type BaseTransfer struct {
	node.SimpleVisitor[TransferResult, TransferInput]
}

// NewBaseTransfer returns a BaseTransfer
func NewBaseTransfer() BaseTransfer {
	return BaseTransfer{node.SimpleVisitor[TransferResult, TransferInput]{Default: PassThrough}}
}

// PassThrough returns the input of n unchanged, merging conditional facts
func PassThrough(_ node.Node, in TransferInput) TransferResult {
	return RegularResult(nil, in.Regular())
}

// VisitConditionalNot swaps the then and else facts of its input
func (BaseTransfer) VisitConditionalNot(_ *node.ConditionalNot, in TransferInput) TransferResult {
	if !in.IsConditional() {
		return RegularResult(nil, in.Regular())
	}
	return ConditionalResult(nil, in.Else(), in.Then())
}
