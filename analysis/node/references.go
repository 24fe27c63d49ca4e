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

// LocalVariable is a read of a local variable or a parameter of the procedure
type LocalVariable struct {
	base
	name string
}

// NewLocalVariable returns a new node reading the variable name
func NewLocalVariable(tree ast.Node, name string) *LocalVariable {
	if name == "" {
		panic("local variable without name")
	}
	return &LocalVariable{base: newBase(KindLocalVariable, tree, name), name: name}
}

// Name returns the name of the variable
func (n *LocalVariable) Name() string { return n.name }

// Kind returns KindLocalVariable
func (*LocalVariable) Kind() Kind { return KindLocalVariable }

// Operands returns nil
func (*LocalVariable) Operands() []Node { return nil }

func (n *LocalVariable) String() string { return n.name }

func (n *LocalVariable) accept(v Visitor[any, any], p any) any { return v.VisitLocalVariable(n, p) }

// FieldAccess is the read of the field of a receiver, receiver.field
type FieldAccess struct {
	base
	receiver Node
	field    string
}

// NewFieldAccess returns a new node reading field on receiver
func NewFieldAccess(tree ast.Node, receiver Node, field string) *FieldAccess {
	if receiver == nil || field == "" {
		panic("field access without receiver or field")
	}
	return &FieldAccess{
		base:     newBase(KindFieldAccess, tree, field, receiver),
		receiver: receiver,
		field:    field,
	}
}

// Receiver returns the node whose field is read
func (n *FieldAccess) Receiver() Node { return n.receiver }

// Field returns the name of the field
func (n *FieldAccess) Field() string { return n.field }

// Kind returns KindFieldAccess
func (*FieldAccess) Kind() Kind { return KindFieldAccess }

// Operands returns the receiver
func (n *FieldAccess) Operands() []Node { return []Node{n.receiver} }

func (n *FieldAccess) String() string { return n.receiver.String() + "." + n.field }

func (n *FieldAccess) accept(v Visitor[any, any], p any) any { return v.VisitFieldAccess(n, p) }

// ArrayAccess is the read of an element of an array, slice or map, array[index]
type ArrayAccess struct {
	base
	array Node
	index Node
}

// NewArrayAccess returns a new node reading array[index]
func NewArrayAccess(tree ast.Node, array, index Node) *ArrayAccess {
	if array == nil || index == nil {
		panic("array access with missing operand")
	}
	return &ArrayAccess{base: newBase(KindArrayAccess, tree, "", array, index), array: array, index: index}
}

// Array returns the node of the array
func (n *ArrayAccess) Array() Node { return n.array }

// Index returns the node of the index
func (n *ArrayAccess) Index() Node { return n.index }

// Kind returns KindArrayAccess
func (*ArrayAccess) Kind() Kind { return KindArrayAccess }

// Operands returns the array and the index
func (n *ArrayAccess) Operands() []Node { return []Node{n.array, n.index} }

func (n *ArrayAccess) String() string { return n.array.String() + "[" + n.index.String() + "]" }

func (n *ArrayAccess) accept(v Visitor[any, any], p any) any { return v.VisitArrayAccess(n, p) }

// MethodInvocation is a call. The receiver is nil for calls to functions.
//
// The target is the name of the declaration of the callee, e.g. "Queue.isEmpty" for a method or "strings.Contains"
// for a function. It is empty when the builder could not resolve the callee; contracts are then looked up by
// method name only.
type MethodInvocation struct {
	base
	receiver Node
	method   string
	target   string
	args     []Node
}

// NewMethodInvocation returns a new call node. The receiver may be nil.
func NewMethodInvocation(tree ast.Node, receiver Node, method string, target string, args ...Node) *MethodInvocation {
	if method == "" {
		panic("method invocation without method name")
	}
	for _, arg := range args {
		if arg == nil {
			panic("method invocation " + method + " with missing argument")
		}
	}
	attr := method + "|" + target
	operands := args
	if receiver != nil {
		attr += "|receiver"
		operands = append([]Node{receiver}, args...)
	}
	return &MethodInvocation{
		base:     newBase(KindMethodInvocation, tree, attr, operands...),
		receiver: receiver,
		method:   method,
		target:   target,
		args:     slices.Clone(args),
	}
}

// Receiver returns the receiver of the call, or nil
func (n *MethodInvocation) Receiver() Node { return n.receiver }

// Method returns the name of the method or function called
func (n *MethodInvocation) Method() string { return n.method }

// Target returns the name of the declaration of the callee, or "" if unknown
func (n *MethodInvocation) Target() string { return n.target }

// Args returns a copy of the arguments of the call
func (n *MethodInvocation) Args() []Node { return slices.Clone(n.args) }

// Kind returns KindMethodInvocation
func (*MethodInvocation) Kind() Kind { return KindMethodInvocation }

// Operands returns the receiver, if any, followed by the arguments
func (n *MethodInvocation) Operands() []Node {
	if n.receiver == nil {
		return slices.Clone(n.args)
	}
	return append([]Node{n.receiver}, n.args...)
}

func (n *MethodInvocation) String() string {
	var b strings.Builder
	if n.receiver != nil {
		b.WriteString(n.receiver.String())
		b.WriteByte('.')
	}
	b.WriteString(n.method)
	b.WriteByte('(')
	writeList(&b, n.args)
	b.WriteByte(')')
	return b.String()
}

func (n *MethodInvocation) accept(v Visitor[any, any], p any) any { return v.VisitMethodInvocation(n, p) }

func writeList(b *strings.Builder, nodes []Node) {
	for i, x := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(x.String())
	}
}
