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

// Package nullness implements a two-point nullness analysis: an expression is NonNull when it is proven not to be
// nil, and Nullable otherwise.
package nullness

import (
	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/dataflow"
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/node"
)

// Nullness is the lattice of the analysis, NonNull below Nullable
type Nullness uint8

const (
	// NonNull values are not nil
	NonNull Nullness = iota
	// Nullable values may be nil
	Nullable
)

func (n Nullness) String() string {
	if n == NonNull {
		return "NonNull"
	}
	return "Nullable"
}

// LeastUpperBound returns Nullable unless both values are NonNull
func (n Nullness) LeastUpperBound(other dataflow.Value) dataflow.Value {
	if n == NonNull && other == NonNull {
		return NonNull
	}
	return Nullable
}

// MostSpecific returns NonNull if one of the values is NonNull
func (n Nullness) MostSpecific(other dataflow.Value) dataflow.Value {
	if n == NonNull || other == NonNull {
		return NonNull
	}
	return Nullable
}

// Equal returns true when other is the same Nullness
func (n Nullness) Equal(other dataflow.Value) bool {
	o, ok := other.(Nullness)
	return ok && o == n
}

// Analysis is the nullness analysis
type Analysis struct{}

// Name returns "nullness"
func (Analysis) Name() string { return "nullness" }

// Height returns 2
func (Analysis) Height() int { return 2 }

// ValueFor maps the qualifiers NonNull and Nullable to their values
func (Analysis) ValueFor(qualifier string) (dataflow.Value, bool) {
	switch qualifier {
	case "NonNull":
		return NonNull, true
	case "Nullable":
		return Nullable, true
	}
	return nil, false
}

// Initial returns the initial store. Nothing is known about the parameters, except that the receiver of a method
// is not nil.
func (Analysis) Initial(g *cfg.Graph) *dataflow.Store {
	s := dataflow.NewStore()
	if g.Receiver != "" {
		s.Set(flowexpr.Local{Name: g.Receiver}, NonNull)
	}
	return s
}

// Transfer returns the transfer function of the analysis
func (Analysis) Transfer() node.Visitor[dataflow.TransferResult, dataflow.TransferInput] {
	return transfer{dataflow.NewBaseTransfer()}
}

type transfer struct {
	dataflow.BaseTransfer
}

// valueOf returns the nullness of the value computed by n before the input store
func valueOf(n node.Node, in dataflow.TransferInput) (Nullness, bool) {
	switch n.Kind() {
	case node.KindNullLiteral:
		return Nullable, true
	case node.KindIntegerLiteral, node.KindFloatLiteral, node.KindStringLiteral, node.KindCharLiteral,
		node.KindBooleanLiteral, node.KindAddressOf:
		return NonNull, true
	}
	if a, ok := n.(*node.Assignment); ok {
		return valueOf(a.Value(), in)
	}
	v, ok := in.ValueOf(n)
	if !ok {
		return Nullable, false
	}
	return v.(Nullness), true
}

// dereferenced marks the expression of n as NonNull in a copy of s, if n is trackable
func dereferenced(s *dataflow.Store, n node.Node) *dataflow.Store {
	e, ok := flowexpr.FromNode(n)
	if !ok || flowexpr.IsConstant(e) {
		return s
	}
	if v, ok := s.Get(e); ok && v == NonNull {
		return s
	}
	s = s.Clone()
	s.Set(e, NonNull)
	return s
}

func (transfer) VisitLocalVariable(n *node.LocalVariable, in dataflow.TransferInput) dataflow.TransferResult {
	v, _ := in.ValueOf(n)
	return dataflow.RegularResult(v, in.Regular())
}

// VisitFieldAccess proves the receiver is not nil after the access
func (transfer) VisitFieldAccess(n *node.FieldAccess, in dataflow.TransferInput) dataflow.TransferResult {
	v, _ := in.ValueOf(n)
	return dataflow.RegularResult(v, dereferenced(in.Regular(), n.Receiver()))
}

func (transfer) VisitMethodInvocation(n *node.MethodInvocation, in dataflow.TransferInput) dataflow.TransferResult {
	v, _ := in.ValueOf(n)
	return dataflow.RegularResult(v, in.Regular())
}

// VisitDereference proves the pointer is not nil after the indirection
func (transfer) VisitDereference(n *node.Dereference, in dataflow.TransferInput) dataflow.TransferResult {
	v, _ := in.ValueOf(n)
	return dataflow.RegularResult(v, dereferenced(in.Regular(), n.Operand()))
}

func (transfer) VisitAddressOf(_ *node.AddressOf, in dataflow.TransferInput) dataflow.TransferResult {
	return dataflow.RegularResult(NonNull, in.Regular())
}

func (transfer) VisitNullLiteral(_ *node.NullLiteral, in dataflow.TransferInput) dataflow.TransferResult {
	return dataflow.RegularResult(Nullable, in.Regular())
}

func (transfer) VisitEqualTo(n *node.EqualTo, in dataflow.TransferInput) dataflow.TransferResult {
	return compareToNil(n.Left(), n.Right(), in, false)
}

func (transfer) VisitNotEqualTo(n *node.NotEqualTo, in dataflow.TransferInput) dataflow.TransferResult {
	return compareToNil(n.Left(), n.Right(), in, true)
}

// compareToNil refines the expression compared to nil: it is NonNull in the then store of x != nil and in the
// else store of x == nil.
func compareToNil(left, right node.Node, in dataflow.TransferInput, notEqual bool) dataflow.TransferResult {
	operand := left
	if left.Kind() == node.KindNullLiteral {
		operand = right
	} else if right.Kind() != node.KindNullLiteral {
		return dataflow.RegularResult(nil, in.Regular())
	}
	store := in.Regular()
	e, ok := flowexpr.FromNode(operand)
	if !ok || flowexpr.IsConstant(e) {
		return dataflow.RegularResult(nil, store)
	}
	refined := store.Clone()
	refined.Refine(e, NonNull)
	if notEqual {
		return dataflow.ConditionalResult(nil, refined, store)
	}
	return dataflow.ConditionalResult(nil, store, refined)
}

// VisitAssignment invalidates the facts that may depend on the target, and records the nullness of the value
func (transfer) VisitAssignment(n *node.Assignment, in dataflow.TransferInput) dataflow.TransferResult {
	v, known := valueOf(n.Value(), in)
	s := in.Regular().Clone()
	target := n.Target()
	switch t := target.(type) {
	case *node.LocalVariable:
		s.RemoveIf(func(e flowexpr.Expr) bool { return flowexpr.Mentions(e, t.Name()) })
	case *node.FieldAccess:
		s.RemoveIf(func(e flowexpr.Expr) bool {
			return flowexpr.Any(e, func(x flowexpr.Expr) bool {
				switch x := x.(type) {
				case flowexpr.FieldAccess:
					return x.Field == t.Field()
				case flowexpr.MethodCall:
					return true
				}
				return false
			})
		})
		if r, ok := flowexpr.FromNode(t.Receiver()); ok {
			s.Refine(r, NonNull)
		}
	default:
		s.RemoveIf(func(e flowexpr.Expr) bool {
			return flowexpr.Any(e, func(x flowexpr.Expr) bool {
				switch x.(type) {
				case flowexpr.ArrayAccess, flowexpr.Deref, flowexpr.MethodCall:
					return true
				}
				return false
			})
		})
	}
	if te, ok := flowexpr.FromNode(target); ok && known && v == NonNull {
		s.Set(te, NonNull)
	}
	return dataflow.RegularResult(v, s)
}
