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

package node

import (
	"go/ast"
	"strings"

	"golang.org/x/exp/slices"
)

// Assignment stores the value in the target. The target is a LocalVariable, a FieldAccess, an ArrayAccess or a
// Dereference.
type Assignment struct {
	base
	target Node
	value  Node
}

// NewAssignment returns a new node for target = value
func NewAssignment(tree ast.Node, target, value Node) *Assignment {
	if target == nil || value == nil {
		panic("assignment with missing operand")
	}
	switch target.Kind() {
	case KindLocalVariable, KindFieldAccess, KindArrayAccess, KindDereference:
	default:
		panic("assignment to " + target.Kind().String())
	}
	return &Assignment{base: newBase(KindAssignment, tree, "", target, value), target: target, value: value}
}

// Target returns the node assigned to
func (n *Assignment) Target() Node { return n.target }

// Value returns the node of the assigned value
func (n *Assignment) Value() Node { return n.value }

// Kind returns KindAssignment
func (*Assignment) Kind() Kind { return KindAssignment }

// Operands returns the target and the value
func (n *Assignment) Operands() []Node { return []Node{n.target, n.value} }

func (n *Assignment) String() string { return n.target.String() + " = " + n.value.String() }

func (n *Assignment) accept(v Visitor[any, any], p any) any { return v.VisitAssignment(n, p) }

// Return exits the procedure with zero or more results
type Return struct {
	base
	results []Node
}

// NewReturn returns a new return node
func NewReturn(tree ast.Node, results ...Node) *Return {
	for _, r := range results {
		if r == nil {
			panic("return with missing result")
		}
	}
	return &Return{base: newBase(KindReturn, tree, "", results...), results: slices.Clone(results)}
}

// Results returns a copy of the returned nodes
func (n *Return) Results() []Node { return slices.Clone(n.results) }

// Kind returns KindReturn
func (*Return) Kind() Kind { return KindReturn }

// Operands returns the results
func (n *Return) Operands() []Node { return slices.Clone(n.results) }

func (n *Return) String() string {
	if len(n.results) == 0 {
		return "return"
	}
	var b strings.Builder
	b.WriteString("return ")
	writeList(&b, n.results)
	return b.String()
}

func (n *Return) accept(v Visitor[any, any], p any) any { return v.VisitReturn(n, p) }

// Opaque is an expression that is not modeled, e.g. a composite literal or a function literal. Its value is
// unknown to the analyses; two opaque nodes are equal when their text is.
type Opaque struct {
	base
	text string
}

// NewOpaque returns a new opaque node with the given text
func NewOpaque(tree ast.Node, text string) *Opaque {
	return &Opaque{base: newBase(KindOpaque, tree, text), text: text}
}

// Text returns the source text of the expression
func (n *Opaque) Text() string { return n.text }

// Kind returns KindOpaque
func (*Opaque) Kind() Kind { return KindOpaque }

// Operands returns nil
func (*Opaque) Operands() []Node { return nil }

func (n *Opaque) String() string { return n.text }

func (n *Opaque) accept(v Visitor[any, any], p any) any { return v.VisitOpaque(n, p) }
