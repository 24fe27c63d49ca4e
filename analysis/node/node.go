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

// Package node defines the nodes of the control-flow graphs analyzed by the dataflow engine.
//
// The set of node kinds is closed: every kind is a type of this package, and every consumer of nodes
// implements a Visitor with one method per kind. Adding a kind without adding the corresponding visitor
// method does not compile.
//
// Nodes are immutable. They optionally link back to the Go syntax they have been built from; nodes
// synthesized by the builder (e.g. the addition of x += 1) have no syntax. Two nodes of the same kind
// with structurally equal operands are Equal and have the same Hash, regardless of their syntax.
package node

import (
	"encoding/binary"
	"fmt"
	"go/ast"
	"go/token"
	"hash/fnv"

	"golang.org/x/tools/go/ast/astutil"
)

// A Node is a primitive operation evaluated at one program point of a control-flow graph.
type Node interface {
	fmt.Stringer

	// Kind returns the kind of the node, which is fixed by its type.
	Kind() Kind

	// Tree returns the syntax the node has been built from, or nil if the node is synthesized.
	Tree() ast.Node

	// Operands returns the nodes the node reads. Operands are shared with the rest of the graph.
	Operands() []Node

	// Hash returns the structural hash of the node.
	Hash() uint64

	// attribute returns the data of the node that is not an operand (a name, a literal value).
	attribute() string

	// accept calls the method of v corresponding to the kind of the node.
	accept(v Visitor[any, any], p any) any
}

// base holds the fields common to all nodes
type base struct {
	tree ast.Node
	attr string
	hash uint64
}

func newBase(k Kind, tree ast.Node, attr string, operands ...Node) base {
	if !matchesSyntax(k, tree) {
		panic(fmt.Sprintf("cannot build %s node from %T syntax", k, tree))
	}
	return base{tree: tree, attr: attr, hash: hashOf(k, attr, operands)}
}

// Tree returns the syntax of the node, or nil if it is synthesized.
func (b *base) Tree() ast.Node { return b.tree }

// Hash returns the structural hash of the node.
func (b *base) Hash() uint64 { return b.hash }

func (b *base) attribute() string { return b.attr }

// Pos returns the position of the syntax of n, or token.NoPos if n is synthesized.
func Pos(n Node) token.Pos {
	if n == nil || n.Tree() == nil {
		return token.NoPos
	}
	return n.Tree().Pos()
}

// Equal returns true when a and b are structurally equal: they have the same kind, the same attributes and
// their operands are pairwise Equal. The syntax of the nodes is ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() || a.Hash() != b.Hash() || a.attribute() != b.attribute() {
		return false
	}
	ao, bo := a.Operands(), b.Operands()
	if len(ao) != len(bo) {
		return false
	}
	for i := range ao {
		if !Equal(ao[i], bo[i]) {
			return false
		}
	}
	return true
}

func hashOf(k Kind, attr string, operands []Node) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	h.Write([]byte{byte(k)})
	binary.LittleEndian.PutUint64(buf[:], uint64(len(attr)))
	h.Write(buf[:])
	h.Write([]byte(attr))
	for _, op := range operands {
		binary.LittleEndian.PutUint64(buf[:], op.Hash())
		h.Write(buf[:])
	}
	return h.Sum64()
}

// matchesSyntax returns true when a node of kind k can be built from tree. A nil tree matches every kind.
//
//gocyclo:ignore
func matchesSyntax(k Kind, tree ast.Node) bool {
	if tree == nil {
		return true
	}
	if k == KindOpaque {
		return true
	}
	if e, ok := tree.(ast.Expr); ok {
		tree = astutil.Unparen(e)
	}
	switch t := tree.(type) {
	case *ast.BasicLit:
		switch t.Kind {
		case token.INT:
			return k == KindIntegerLiteral
		case token.FLOAT:
			return k == KindFloatLiteral
		case token.STRING:
			return k == KindStringLiteral
		case token.CHAR:
			return k == KindCharLiteral
		}
		return false
	case *ast.Ident:
		// nil, true and false may be shadowed by variables
		switch t.Name {
		case "nil":
			return k == KindNullLiteral || k == KindLocalVariable
		case "true", "false":
			return k == KindBooleanLiteral || k == KindLocalVariable
		}
		return k == KindLocalVariable
	case *ast.SelectorExpr:
		return k == KindFieldAccess
	case *ast.IndexExpr:
		return k == KindArrayAccess
	case *ast.CallExpr:
		return k == KindMethodInvocation
	case *ast.BinaryExpr:
		bk, ok := binaryKinds[t.Op]
		return ok && bk == k
	case *ast.UnaryExpr:
		uk, ok := unaryKinds[t.Op]
		return ok && uk == k
	case *ast.StarExpr:
		return k == KindDereference
	case *ast.AssignStmt, *ast.IncDecStmt, *ast.ValueSpec:
		return k == KindAssignment
	case *ast.ReturnStmt:
		return k == KindReturn
	}
	return false
}

// binaryKinds maps Go binary operators to the kinds of the nodes representing them
var binaryKinds = map[token.Token]Kind{
	token.ADD:     KindNumericalAddition,
	token.SUB:     KindNumericalSubtraction,
	token.MUL:     KindNumericalMultiplication,
	token.QUO:     KindIntegerDivision,
	token.REM:     KindIntegerRemainder,
	token.LSS:     KindLessThan,
	token.LEQ:     KindLessThanOrEqual,
	token.GTR:     KindGreaterThan,
	token.GEQ:     KindGreaterThanOrEqual,
	token.EQL:     KindEqualTo,
	token.NEQ:     KindNotEqualTo,
	token.LAND:    KindConditionalAnd,
	token.LOR:     KindConditionalOr,
	token.AND:     KindBitwiseAnd,
	token.OR:      KindBitwiseOr,
	token.XOR:     KindBitwiseXor,
	token.AND_NOT: KindBitwiseAndNot,
	token.SHL:     KindLeftShift,
	token.SHR:     KindRightShift,
}

// unaryKinds maps Go unary operators to the kinds of the nodes representing them
var unaryKinds = map[token.Token]Kind{
	token.SUB: KindNumericalMinus,
	token.ADD: KindNumericalPlus,
	token.XOR: KindBitwiseComplement,
	token.NOT: KindConditionalNot,
	token.AND: KindAddressOf,
}

// BinaryKind returns the kind of the node representing the binary operator op, if there is one.
func BinaryKind(op token.Token) (Kind, bool) {
	k, ok := binaryKinds[op]
	return k, ok
}

// UnaryKind returns the kind of the node representing the unary operator op, if there is one.
func UnaryKind(op token.Token) (Kind, bool) {
	k, ok := unaryKinds[op]
	return k, ok
}
