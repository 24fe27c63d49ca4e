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
)

// binaryOp holds the operands of a binary operator node
type binaryOp struct {
	base
	left, right Node
}

func newBinaryOp(k Kind, tree ast.Node, left, right Node) binaryOp {
	if left == nil || right == nil {
		panic("binary " + k.String() + " node with missing operand")
	}
	return binaryOp{base: newBase(k, tree, "", left, right), left: left, right: right}
}

// Left returns the left operand
func (b *binaryOp) Left() Node { return b.left }

// Right returns the right operand
func (b *binaryOp) Right() Node { return b.right }

// Operands returns the left and right operands
func (b *binaryOp) Operands() []Node { return []Node{b.left, b.right} }

func (b *binaryOp) render(k Kind) string {
	return "(" + b.left.String() + " " + k.Symbol() + " " + b.right.String() + ")"
}

// unaryOp holds the operand of a unary operator node
type unaryOp struct {
	base
	operand Node
}

func newUnaryOp(k Kind, tree ast.Node, operand Node) unaryOp {
	if operand == nil {
		panic("unary " + k.String() + " node with missing operand")
	}
	return unaryOp{base: newBase(k, tree, "", operand), operand: operand}
}

// Operand returns the operand
func (u *unaryOp) Operand() Node { return u.operand }

// Operands returns a slice containing the only operand
func (u *unaryOp) Operands() []Node { return []Node{u.operand} }

// render writes the operator before its operand. A unary operand other than a dereference is parenthesized, so
// that -(-x) is not rendered as --x.
func (u *unaryOp) render(k Kind) string {
	if u.operand.Kind().IsUnary() && u.operand.Kind() != KindDereference {
		return k.Symbol() + "(" + u.operand.String() + ")"
	}
	return k.Symbol() + u.operand.String()
}

// NewBinary returns a new binary operator node of kind k. It panics if k is not a binary operator kind.
//
//gocyclo:ignore
func NewBinary(k Kind, tree ast.Node, left, right Node) Node {
	switch k {
	case KindNumericalAddition:
		return NewNumericalAddition(tree, left, right)
	case KindNumericalSubtraction:
		return NewNumericalSubtraction(tree, left, right)
	case KindNumericalMultiplication:
		return NewNumericalMultiplication(tree, left, right)
	case KindIntegerDivision:
		return NewIntegerDivision(tree, left, right)
	case KindIntegerRemainder:
		return NewIntegerRemainder(tree, left, right)
	case KindLessThan:
		return NewLessThan(tree, left, right)
	case KindLessThanOrEqual:
		return NewLessThanOrEqual(tree, left, right)
	case KindGreaterThan:
		return NewGreaterThan(tree, left, right)
	case KindGreaterThanOrEqual:
		return NewGreaterThanOrEqual(tree, left, right)
	case KindEqualTo:
		return NewEqualTo(tree, left, right)
	case KindNotEqualTo:
		return NewNotEqualTo(tree, left, right)
	case KindConditionalAnd:
		return NewConditionalAnd(tree, left, right)
	case KindConditionalOr:
		return NewConditionalOr(tree, left, right)
	case KindBitwiseAnd:
		return NewBitwiseAnd(tree, left, right)
	case KindBitwiseOr:
		return NewBitwiseOr(tree, left, right)
	case KindBitwiseXor:
		return NewBitwiseXor(tree, left, right)
	case KindBitwiseAndNot:
		return NewBitwiseAndNot(tree, left, right)
	case KindLeftShift:
		return NewLeftShift(tree, left, right)
	case KindRightShift:
		return NewRightShift(tree, left, right)
	}
	panic(k.String() + " is not a binary operator")
}

// NewUnary returns a new unary operator node of kind k. It panics if k is not a unary operator kind.
func NewUnary(k Kind, tree ast.Node, operand Node) Node {
	switch k {
	case KindConditionalNot:
		return NewConditionalNot(tree, operand)
	case KindNumericalMinus:
		return NewNumericalMinus(tree, operand)
	case KindNumericalPlus:
		return NewNumericalPlus(tree, operand)
	case KindBitwiseComplement:
		return NewBitwiseComplement(tree, operand)
	case KindAddressOf:
		return NewAddressOf(tree, operand)
	case KindDereference:
		return NewDereference(tree, operand)
	}
	panic(k.String() + " is not a unary operator")
}

// NumericalAddition is the numerical addition (left + right)
type NumericalAddition struct{ binaryOp }

// NewNumericalAddition returns a new left + right node
func NewNumericalAddition(tree ast.Node, left, right Node) *NumericalAddition {
	return &NumericalAddition{newBinaryOp(KindNumericalAddition, tree, left, right)}
}

// Kind returns KindNumericalAddition
func (*NumericalAddition) Kind() Kind { return KindNumericalAddition }

func (n *NumericalAddition) String() string { return n.render(KindNumericalAddition) }

func (n *NumericalAddition) accept(v Visitor[any, any], p any) any { return v.VisitNumericalAddition(n, p) }

// NumericalSubtraction is the numerical subtraction (left - right)
type NumericalSubtraction struct{ binaryOp }

// NewNumericalSubtraction returns a new left - right node
func NewNumericalSubtraction(tree ast.Node, left, right Node) *NumericalSubtraction {
	return &NumericalSubtraction{newBinaryOp(KindNumericalSubtraction, tree, left, right)}
}

// Kind returns KindNumericalSubtraction
func (*NumericalSubtraction) Kind() Kind { return KindNumericalSubtraction }

func (n *NumericalSubtraction) String() string { return n.render(KindNumericalSubtraction) }

func (n *NumericalSubtraction) accept(v Visitor[any, any], p any) any { return v.VisitNumericalSubtraction(n, p) }

// NumericalMultiplication is the numerical multiplication (left * right)
type NumericalMultiplication struct{ binaryOp }

// NewNumericalMultiplication returns a new left * right node
func NewNumericalMultiplication(tree ast.Node, left, right Node) *NumericalMultiplication {
	return &NumericalMultiplication{newBinaryOp(KindNumericalMultiplication, tree, left, right)}
}

// Kind returns KindNumericalMultiplication
func (*NumericalMultiplication) Kind() Kind { return KindNumericalMultiplication }

func (n *NumericalMultiplication) String() string { return n.render(KindNumericalMultiplication) }

func (n *NumericalMultiplication) accept(v Visitor[any, any], p any) any { return v.VisitNumericalMultiplication(n, p) }

// IntegerDivision is the division (left / right)
type IntegerDivision struct{ binaryOp }

// NewIntegerDivision returns a new left / right node
func NewIntegerDivision(tree ast.Node, left, right Node) *IntegerDivision {
	return &IntegerDivision{newBinaryOp(KindIntegerDivision, tree, left, right)}
}

// Kind returns KindIntegerDivision
func (*IntegerDivision) Kind() Kind { return KindIntegerDivision }

func (n *IntegerDivision) String() string { return n.render(KindIntegerDivision) }

func (n *IntegerDivision) accept(v Visitor[any, any], p any) any { return v.VisitIntegerDivision(n, p) }

// IntegerRemainder is the remainder (left % right)
type IntegerRemainder struct{ binaryOp }

// NewIntegerRemainder returns a new left % right node
func NewIntegerRemainder(tree ast.Node, left, right Node) *IntegerRemainder {
	return &IntegerRemainder{newBinaryOp(KindIntegerRemainder, tree, left, right)}
}

// Kind returns KindIntegerRemainder
func (*IntegerRemainder) Kind() Kind { return KindIntegerRemainder }

func (n *IntegerRemainder) String() string { return n.render(KindIntegerRemainder) }

func (n *IntegerRemainder) accept(v Visitor[any, any], p any) any { return v.VisitIntegerRemainder(n, p) }

// LessThan is the comparison (left < right)
type LessThan struct{ binaryOp }

// NewLessThan returns a new left < right node
func NewLessThan(tree ast.Node, left, right Node) *LessThan {
	return &LessThan{newBinaryOp(KindLessThan, tree, left, right)}
}

// Kind returns KindLessThan
func (*LessThan) Kind() Kind { return KindLessThan }

func (n *LessThan) String() string { return n.render(KindLessThan) }

func (n *LessThan) accept(v Visitor[any, any], p any) any { return v.VisitLessThan(n, p) }

// LessThanOrEqual is the comparison (left <= right)
type LessThanOrEqual struct{ binaryOp }

// NewLessThanOrEqual returns a new left <= right node
func NewLessThanOrEqual(tree ast.Node, left, right Node) *LessThanOrEqual {
	return &LessThanOrEqual{newBinaryOp(KindLessThanOrEqual, tree, left, right)}
}

// Kind returns KindLessThanOrEqual
func (*LessThanOrEqual) Kind() Kind { return KindLessThanOrEqual }

func (n *LessThanOrEqual) String() string { return n.render(KindLessThanOrEqual) }

func (n *LessThanOrEqual) accept(v Visitor[any, any], p any) any { return v.VisitLessThanOrEqual(n, p) }

// GreaterThan is the comparison (left > right)
type GreaterThan struct{ binaryOp }

// NewGreaterThan returns a new left > right node
func NewGreaterThan(tree ast.Node, left, right Node) *GreaterThan {
	return &GreaterThan{newBinaryOp(KindGreaterThan, tree, left, right)}
}

// Kind returns KindGreaterThan
func (*GreaterThan) Kind() Kind { return KindGreaterThan }

func (n *GreaterThan) String() string { return n.render(KindGreaterThan) }

func (n *GreaterThan) accept(v Visitor[any, any], p any) any { return v.VisitGreaterThan(n, p) }

// GreaterThanOrEqual is the comparison (left >= right)
type GreaterThanOrEqual struct{ binaryOp }

// NewGreaterThanOrEqual returns a new left >= right node
func NewGreaterThanOrEqual(tree ast.Node, left, right Node) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{newBinaryOp(KindGreaterThanOrEqual, tree, left, right)}
}

// Kind returns KindGreaterThanOrEqual
func (*GreaterThanOrEqual) Kind() Kind { return KindGreaterThanOrEqual }

func (n *GreaterThanOrEqual) String() string { return n.render(KindGreaterThanOrEqual) }

func (n *GreaterThanOrEqual) accept(v Visitor[any, any], p any) any { return v.VisitGreaterThanOrEqual(n, p) }

// EqualTo is the equality test (left == right)
type EqualTo struct{ binaryOp }

// NewEqualTo returns a new left == right node
func NewEqualTo(tree ast.Node, left, right Node) *EqualTo {
	return &EqualTo{newBinaryOp(KindEqualTo, tree, left, right)}
}

// Kind returns KindEqualTo
func (*EqualTo) Kind() Kind { return KindEqualTo }

func (n *EqualTo) String() string { return n.render(KindEqualTo) }

func (n *EqualTo) accept(v Visitor[any, any], p any) any { return v.VisitEqualTo(n, p) }

// NotEqualTo is the inequality test (left != right)
type NotEqualTo struct{ binaryOp }

// NewNotEqualTo returns a new left != right node
func NewNotEqualTo(tree ast.Node, left, right Node) *NotEqualTo {
	return &NotEqualTo{newBinaryOp(KindNotEqualTo, tree, left, right)}
}

// Kind returns KindNotEqualTo
func (*NotEqualTo) Kind() Kind { return KindNotEqualTo }

func (n *NotEqualTo) String() string { return n.render(KindNotEqualTo) }

func (n *NotEqualTo) accept(v Visitor[any, any], p any) any { return v.VisitNotEqualTo(n, p) }

// ConditionalAnd is the short-circuit conjunction (left && right)
type ConditionalAnd struct{ binaryOp }

// NewConditionalAnd returns a new left && right node
func NewConditionalAnd(tree ast.Node, left, right Node) *ConditionalAnd {
	return &ConditionalAnd{newBinaryOp(KindConditionalAnd, tree, left, right)}
}

// Kind returns KindConditionalAnd
func (*ConditionalAnd) Kind() Kind { return KindConditionalAnd }

func (n *ConditionalAnd) String() string { return n.render(KindConditionalAnd) }

func (n *ConditionalAnd) accept(v Visitor[any, any], p any) any { return v.VisitConditionalAnd(n, p) }

// ConditionalOr is the short-circuit disjunction (left || right)
type ConditionalOr struct{ binaryOp }

// NewConditionalOr returns a new left || right node
func NewConditionalOr(tree ast.Node, left, right Node) *ConditionalOr {
	return &ConditionalOr{newBinaryOp(KindConditionalOr, tree, left, right)}
}

// Kind returns KindConditionalOr
func (*ConditionalOr) Kind() Kind { return KindConditionalOr }

func (n *ConditionalOr) String() string { return n.render(KindConditionalOr) }

func (n *ConditionalOr) accept(v Visitor[any, any], p any) any { return v.VisitConditionalOr(n, p) }

// BitwiseAnd is the bitwise conjunction (left & right)
type BitwiseAnd struct{ binaryOp }

// NewBitwiseAnd returns a new left & right node
func NewBitwiseAnd(tree ast.Node, left, right Node) *BitwiseAnd {
	return &BitwiseAnd{newBinaryOp(KindBitwiseAnd, tree, left, right)}
}

// Kind returns KindBitwiseAnd
func (*BitwiseAnd) Kind() Kind { return KindBitwiseAnd }

func (n *BitwiseAnd) String() string { return n.render(KindBitwiseAnd) }

func (n *BitwiseAnd) accept(v Visitor[any, any], p any) any { return v.VisitBitwiseAnd(n, p) }

// BitwiseOr is the bitwise disjunction (left | right)
type BitwiseOr struct{ binaryOp }

// NewBitwiseOr returns a new left | right node
func NewBitwiseOr(tree ast.Node, left, right Node) *BitwiseOr {
	return &BitwiseOr{newBinaryOp(KindBitwiseOr, tree, left, right)}
}

// Kind returns KindBitwiseOr
func (*BitwiseOr) Kind() Kind { return KindBitwiseOr }

func (n *BitwiseOr) String() string { return n.render(KindBitwiseOr) }

func (n *BitwiseOr) accept(v Visitor[any, any], p any) any { return v.VisitBitwiseOr(n, p) }

// BitwiseXor is the bitwise exclusive disjunction (left ^ right)
type BitwiseXor struct{ binaryOp }

// NewBitwiseXor returns a new left ^ right node
func NewBitwiseXor(tree ast.Node, left, right Node) *BitwiseXor {
	return &BitwiseXor{newBinaryOp(KindBitwiseXor, tree, left, right)}
}

// Kind returns KindBitwiseXor
func (*BitwiseXor) Kind() Kind { return KindBitwiseXor }

func (n *BitwiseXor) String() string { return n.render(KindBitwiseXor) }

func (n *BitwiseXor) accept(v Visitor[any, any], p any) any { return v.VisitBitwiseXor(n, p) }

// BitwiseAndNot is the bit clear (left &^ right)
type BitwiseAndNot struct{ binaryOp }

// NewBitwiseAndNot returns a new left &^ right node
func NewBitwiseAndNot(tree ast.Node, left, right Node) *BitwiseAndNot {
	return &BitwiseAndNot{newBinaryOp(KindBitwiseAndNot, tree, left, right)}
}

// Kind returns KindBitwiseAndNot
func (*BitwiseAndNot) Kind() Kind { return KindBitwiseAndNot }

func (n *BitwiseAndNot) String() string { return n.render(KindBitwiseAndNot) }

func (n *BitwiseAndNot) accept(v Visitor[any, any], p any) any { return v.VisitBitwiseAndNot(n, p) }

// LeftShift is the left shift (left << right)
type LeftShift struct{ binaryOp }

// NewLeftShift returns a new left << right node
func NewLeftShift(tree ast.Node, left, right Node) *LeftShift {
	return &LeftShift{newBinaryOp(KindLeftShift, tree, left, right)}
}

// Kind returns KindLeftShift
func (*LeftShift) Kind() Kind { return KindLeftShift }

func (n *LeftShift) String() string { return n.render(KindLeftShift) }

func (n *LeftShift) accept(v Visitor[any, any], p any) any { return v.VisitLeftShift(n, p) }

// RightShift is the right shift (left >> right)
type RightShift struct{ binaryOp }

// NewRightShift returns a new left >> right node
func NewRightShift(tree ast.Node, left, right Node) *RightShift {
	return &RightShift{newBinaryOp(KindRightShift, tree, left, right)}
}

// Kind returns KindRightShift
func (*RightShift) Kind() Kind { return KindRightShift }

func (n *RightShift) String() string { return n.render(KindRightShift) }

func (n *RightShift) accept(v Visitor[any, any], p any) any { return v.VisitRightShift(n, p) }

// ConditionalNot is the logical negation !x
type ConditionalNot struct{ unaryOp }

// NewConditionalNot returns a new !operand node
func NewConditionalNot(tree ast.Node, operand Node) *ConditionalNot {
	return &ConditionalNot{newUnaryOp(KindConditionalNot, tree, operand)}
}

// Kind returns KindConditionalNot
func (*ConditionalNot) Kind() Kind { return KindConditionalNot }

func (n *ConditionalNot) String() string { return n.render(KindConditionalNot) }

func (n *ConditionalNot) accept(v Visitor[any, any], p any) any { return v.VisitConditionalNot(n, p) }

// NumericalMinus is the arithmetic negation -x
type NumericalMinus struct{ unaryOp }

// NewNumericalMinus returns a new -operand node
func NewNumericalMinus(tree ast.Node, operand Node) *NumericalMinus {
	return &NumericalMinus{newUnaryOp(KindNumericalMinus, tree, operand)}
}

// Kind returns KindNumericalMinus
func (*NumericalMinus) Kind() Kind { return KindNumericalMinus }

func (n *NumericalMinus) String() string { return n.render(KindNumericalMinus) }

func (n *NumericalMinus) accept(v Visitor[any, any], p any) any { return v.VisitNumericalMinus(n, p) }

// NumericalPlus is the unary plus +x
type NumericalPlus struct{ unaryOp }

// NewNumericalPlus returns a new +operand node
func NewNumericalPlus(tree ast.Node, operand Node) *NumericalPlus {
	return &NumericalPlus{newUnaryOp(KindNumericalPlus, tree, operand)}
}

// Kind returns KindNumericalPlus
func (*NumericalPlus) Kind() Kind { return KindNumericalPlus }

func (n *NumericalPlus) String() string { return n.render(KindNumericalPlus) }

func (n *NumericalPlus) accept(v Visitor[any, any], p any) any { return v.VisitNumericalPlus(n, p) }

// BitwiseComplement is the bitwise complement ^x
type BitwiseComplement struct{ unaryOp }

// NewBitwiseComplement returns a new ^operand node
func NewBitwiseComplement(tree ast.Node, operand Node) *BitwiseComplement {
	return &BitwiseComplement{newUnaryOp(KindBitwiseComplement, tree, operand)}
}

// Kind returns KindBitwiseComplement
func (*BitwiseComplement) Kind() Kind { return KindBitwiseComplement }

func (n *BitwiseComplement) String() string { return n.render(KindBitwiseComplement) }

func (n *BitwiseComplement) accept(v Visitor[any, any], p any) any { return v.VisitBitwiseComplement(n, p) }

// AddressOf is the address-of operation &x
type AddressOf struct{ unaryOp }

// NewAddressOf returns a new &operand node
func NewAddressOf(tree ast.Node, operand Node) *AddressOf {
	return &AddressOf{newUnaryOp(KindAddressOf, tree, operand)}
}

// Kind returns KindAddressOf
func (*AddressOf) Kind() Kind { return KindAddressOf }

func (n *AddressOf) String() string { return n.render(KindAddressOf) }

func (n *AddressOf) accept(v Visitor[any, any], p any) any { return v.VisitAddressOf(n, p) }

// Dereference is the pointer indirection *x
type Dereference struct{ unaryOp }

// NewDereference returns a new *operand node
func NewDereference(tree ast.Node, operand Node) *Dereference {
	return &Dereference{newUnaryOp(KindDereference, tree, operand)}
}

// Kind returns KindDereference
func (*Dereference) Kind() Kind { return KindDereference }

func (n *Dereference) String() string { return "(" + n.render(KindDereference) + ")" }

func (n *Dereference) accept(v Visitor[any, any], p any) any { return v.VisitDereference(n, p) }
