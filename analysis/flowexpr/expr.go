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

// Package flowexpr defines the expressions flow facts are about. A flow expression is a canonical,
// syntax-independent representation of a side-effect free expression of a procedure: a local variable, a field
// read, a call, an array element, a dereference or a constant. Two flow expressions are the same when their keys
// are equal.
package flowexpr

import (
	"strings"

	"github.com/awslabs/qualflow/analysis/node"
	"golang.org/x/exp/slices"
)

// Expr is a flow expression
type Expr interface {
	// String returns the canonical rendering of the expression, which is also its key
	String() string

	// Children returns the sub-expressions of the expression
	Children() []Expr

	isExpr()
}

// Local is a local variable or parameter
type Local struct {
	Name string
}

// FieldAccess is the read of Field on Receiver
type FieldAccess struct {
	Receiver Expr
	Field    string
}

// MethodCall is a call to Method. Receiver is nil for functions.
type MethodCall struct {
	Receiver Expr
	Method   string
	Args     []Expr
}

// ArrayAccess is the read of Array[Index]
type ArrayAccess struct {
	Array Expr
	Index Expr
}

// Deref is the indirection of Pointer
type Deref struct {
	Pointer Expr
}

// Literal is a constant, represented by its rendering
type Literal struct {
	Text string
}

func (Local) isExpr()       {}
func (FieldAccess) isExpr() {}
func (MethodCall) isExpr()  {}
func (ArrayAccess) isExpr() {}
func (Deref) isExpr()       {}
func (Literal) isExpr()     {}

func (e Local) String() string       { return e.Name }
func (e FieldAccess) String() string { return e.Receiver.String() + "." + e.Field }
func (e ArrayAccess) String() string { return e.Array.String() + "[" + e.Index.String() + "]" }
func (e Deref) String() string       { return "(*" + e.Pointer.String() + ")" }
func (e Literal) String() string     { return e.Text }

func (e MethodCall) String() string {
	var b strings.Builder
	if e.Receiver != nil {
		b.WriteString(e.Receiver.String())
		b.WriteByte('.')
	}
	b.WriteString(e.Method)
	b.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Children returns nil
func (Local) Children() []Expr { return nil }

// Children returns the receiver
func (e FieldAccess) Children() []Expr { return []Expr{e.Receiver} }

// Children returns the receiver, if any, and the arguments
func (e MethodCall) Children() []Expr {
	if e.Receiver == nil {
		return slices.Clone(e.Args)
	}
	return append([]Expr{e.Receiver}, e.Args...)
}

// Children returns the array and the index
func (e ArrayAccess) Children() []Expr { return []Expr{e.Array, e.Index} }

// Children returns the pointer
func (e Deref) Children() []Expr { return []Expr{e.Pointer} }

// Children returns nil
func (Literal) Children() []Expr { return nil }

// Key returns the key of e in flow-fact stores
func Key(e Expr) string {
	return e.String()
}

// Equal returns true when a and b represent the same expression
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Key(a) == Key(b)
}

// Any returns true when pred holds on e or on one of its sub-expressions
func Any(e Expr, pred func(Expr) bool) bool {
	if pred(e) {
		return true
	}
	for _, c := range e.Children() {
		if Any(c, pred) {
			return true
		}
	}
	return false
}

// Mentions returns true when the local variable name occurs in e. Facts about such expressions no longer hold
// once the variable is assigned.
func Mentions(e Expr, name string) bool {
	return Any(e, func(x Expr) bool {
		l, ok := x.(Local)
		return ok && l.Name == name
	})
}

// ReadsThrough returns true when e reads memory reachable from root: e is a field read, an element read, a call
// or an indirection with root among its sub-expressions. Facts about such expressions may no longer hold once
// a callee has been given root.
func ReadsThrough(e Expr, root Expr) bool {
	switch e.(type) {
	case Local, Literal:
		return false
	}
	for _, c := range e.Children() {
		if Equal(c, root) || ReadsThrough(c, root) {
			return true
		}
	}
	return false
}

// IsConstant returns true when e is a literal
func IsConstant(e Expr) bool {
	_, ok := e.(Literal)
	return ok
}

// FromNode returns the flow expression computed by n. It returns false when n does not compute a trackable
// expression, for instance an arithmetic operation or an opaque expression. The flow expression of an
// assignment is the one of its target.
//
//gocyclo:ignore
func FromNode(n node.Node) (Expr, bool) {
	switch n := n.(type) {
	case *node.LocalVariable:
		return Local{Name: n.Name()}, true
	case *node.IntegerLiteral, *node.FloatLiteral, *node.StringLiteral, *node.CharLiteral, *node.BooleanLiteral,
		*node.NullLiteral:
		return Literal{Text: n.String()}, true
	case *node.FieldAccess:
		r, ok := FromNode(n.Receiver())
		if !ok {
			return nil, false
		}
		return FieldAccess{Receiver: r, Field: n.Field()}, true
	case *node.ArrayAccess:
		a, ok := FromNode(n.Array())
		if !ok {
			return nil, false
		}
		i, ok := FromNode(n.Index())
		if !ok {
			return nil, false
		}
		return ArrayAccess{Array: a, Index: i}, true
	case *node.Dereference:
		p, ok := FromNode(n.Operand())
		if !ok {
			return nil, false
		}
		return Deref{Pointer: p}, true
	case *node.MethodInvocation:
		var recv Expr
		if n.Receiver() != nil {
			r, ok := FromNode(n.Receiver())
			if !ok {
				return nil, false
			}
			recv = r
		}
		args := make([]Expr, 0, len(n.Args()))
		for _, arg := range n.Args() {
			a, ok := FromNode(arg)
			if !ok {
				return nil, false
			}
			args = append(args, a)
		}
		return MethodCall{Receiver: recv, Method: n.Method(), Args: args}, true
	case *node.Assignment:
		return FromNode(n.Target())
	}
	return nil, false
}
