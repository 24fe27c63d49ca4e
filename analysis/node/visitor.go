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

// A Visitor has one method per kind of node. R is the type of the result of the visit and P the type of the
// extra argument passed to every method.
//
// Implementations that only handle a few kinds can embed a SimpleVisitor and override the methods of
// interest.
type Visitor[R, P any] interface {
	VisitIntegerLiteral(n *IntegerLiteral, p P) R
	VisitFloatLiteral(n *FloatLiteral, p P) R
	VisitStringLiteral(n *StringLiteral, p P) R
	VisitCharLiteral(n *CharLiteral, p P) R
	VisitBooleanLiteral(n *BooleanLiteral, p P) R
	VisitNullLiteral(n *NullLiteral, p P) R
	VisitLocalVariable(n *LocalVariable, p P) R
	VisitFieldAccess(n *FieldAccess, p P) R
	VisitArrayAccess(n *ArrayAccess, p P) R
	VisitMethodInvocation(n *MethodInvocation, p P) R
	VisitNumericalAddition(n *NumericalAddition, p P) R
	VisitNumericalSubtraction(n *NumericalSubtraction, p P) R
	VisitNumericalMultiplication(n *NumericalMultiplication, p P) R
	VisitIntegerDivision(n *IntegerDivision, p P) R
	VisitIntegerRemainder(n *IntegerRemainder, p P) R
	VisitLessThan(n *LessThan, p P) R
	VisitLessThanOrEqual(n *LessThanOrEqual, p P) R
	VisitGreaterThan(n *GreaterThan, p P) R
	VisitGreaterThanOrEqual(n *GreaterThanOrEqual, p P) R
	VisitEqualTo(n *EqualTo, p P) R
	VisitNotEqualTo(n *NotEqualTo, p P) R
	VisitConditionalAnd(n *ConditionalAnd, p P) R
	VisitConditionalOr(n *ConditionalOr, p P) R
	VisitBitwiseAnd(n *BitwiseAnd, p P) R
	VisitBitwiseOr(n *BitwiseOr, p P) R
	VisitBitwiseXor(n *BitwiseXor, p P) R
	VisitBitwiseAndNot(n *BitwiseAndNot, p P) R
	VisitLeftShift(n *LeftShift, p P) R
	VisitRightShift(n *RightShift, p P) R
	VisitConditionalNot(n *ConditionalNot, p P) R
	VisitNumericalMinus(n *NumericalMinus, p P) R
	VisitNumericalPlus(n *NumericalPlus, p P) R
	VisitBitwiseComplement(n *BitwiseComplement, p P) R
	VisitAddressOf(n *AddressOf, p P) R
	VisitDereference(n *Dereference, p P) R
	VisitAssignment(n *Assignment, p P) R
	VisitReturn(n *Return, p P) R
	VisitOpaque(n *Opaque, p P) R
}

// Accept calls the method of v corresponding to the kind of n with the argument p and returns its result.
func Accept[R, P any](n Node, v Visitor[R, P], p P) R {
	if dv, ok := any(v).(Visitor[any, any]); ok {
		r, _ := n.accept(dv, p).(R)
		return r
	}
	r, _ := n.accept(erased[R, P]{v}, p).(R)
	return r
}

// erased adapts a Visitor[R, P] to a Visitor[any, any], which is the type of visitor the nodes accept.
type erased[R, P any] struct {
	v Visitor[R, P]
}

func arg[P any](p any) P {
	x, _ := p.(P)
	return x
}

func (e erased[R, P]) VisitIntegerLiteral(n *IntegerLiteral, p any) any { return e.v.VisitIntegerLiteral(n, arg[P](p)) }

func (e erased[R, P]) VisitFloatLiteral(n *FloatLiteral, p any) any { return e.v.VisitFloatLiteral(n, arg[P](p)) }

func (e erased[R, P]) VisitStringLiteral(n *StringLiteral, p any) any { return e.v.VisitStringLiteral(n, arg[P](p)) }

func (e erased[R, P]) VisitCharLiteral(n *CharLiteral, p any) any { return e.v.VisitCharLiteral(n, arg[P](p)) }

func (e erased[R, P]) VisitBooleanLiteral(n *BooleanLiteral, p any) any { return e.v.VisitBooleanLiteral(n, arg[P](p)) }

func (e erased[R, P]) VisitNullLiteral(n *NullLiteral, p any) any { return e.v.VisitNullLiteral(n, arg[P](p)) }

func (e erased[R, P]) VisitLocalVariable(n *LocalVariable, p any) any { return e.v.VisitLocalVariable(n, arg[P](p)) }

func (e erased[R, P]) VisitFieldAccess(n *FieldAccess, p any) any { return e.v.VisitFieldAccess(n, arg[P](p)) }

func (e erased[R, P]) VisitArrayAccess(n *ArrayAccess, p any) any { return e.v.VisitArrayAccess(n, arg[P](p)) }

func (e erased[R, P]) VisitMethodInvocation(n *MethodInvocation, p any) any { return e.v.VisitMethodInvocation(n, arg[P](p)) }

func (e erased[R, P]) VisitNumericalAddition(n *NumericalAddition, p any) any { return e.v.VisitNumericalAddition(n, arg[P](p)) }

func (e erased[R, P]) VisitNumericalSubtraction(n *NumericalSubtraction, p any) any { return e.v.VisitNumericalSubtraction(n, arg[P](p)) }

func (e erased[R, P]) VisitNumericalMultiplication(n *NumericalMultiplication, p any) any { return e.v.VisitNumericalMultiplication(n, arg[P](p)) }

func (e erased[R, P]) VisitIntegerDivision(n *IntegerDivision, p any) any { return e.v.VisitIntegerDivision(n, arg[P](p)) }

func (e erased[R, P]) VisitIntegerRemainder(n *IntegerRemainder, p any) any { return e.v.VisitIntegerRemainder(n, arg[P](p)) }

func (e erased[R, P]) VisitLessThan(n *LessThan, p any) any { return e.v.VisitLessThan(n, arg[P](p)) }

func (e erased[R, P]) VisitLessThanOrEqual(n *LessThanOrEqual, p any) any { return e.v.VisitLessThanOrEqual(n, arg[P](p)) }

func (e erased[R, P]) VisitGreaterThan(n *GreaterThan, p any) any { return e.v.VisitGreaterThan(n, arg[P](p)) }

func (e erased[R, P]) VisitGreaterThanOrEqual(n *GreaterThanOrEqual, p any) any { return e.v.VisitGreaterThanOrEqual(n, arg[P](p)) }

func (e erased[R, P]) VisitEqualTo(n *EqualTo, p any) any { return e.v.VisitEqualTo(n, arg[P](p)) }

func (e erased[R, P]) VisitNotEqualTo(n *NotEqualTo, p any) any { return e.v.VisitNotEqualTo(n, arg[P](p)) }

func (e erased[R, P]) VisitConditionalAnd(n *ConditionalAnd, p any) any { return e.v.VisitConditionalAnd(n, arg[P](p)) }

func (e erased[R, P]) VisitConditionalOr(n *ConditionalOr, p any) any { return e.v.VisitConditionalOr(n, arg[P](p)) }

func (e erased[R, P]) VisitBitwiseAnd(n *BitwiseAnd, p any) any { return e.v.VisitBitwiseAnd(n, arg[P](p)) }

func (e erased[R, P]) VisitBitwiseOr(n *BitwiseOr, p any) any { return e.v.VisitBitwiseOr(n, arg[P](p)) }

func (e erased[R, P]) VisitBitwiseXor(n *BitwiseXor, p any) any { return e.v.VisitBitwiseXor(n, arg[P](p)) }

func (e erased[R, P]) VisitBitwiseAndNot(n *BitwiseAndNot, p any) any { return e.v.VisitBitwiseAndNot(n, arg[P](p)) }

func (e erased[R, P]) VisitLeftShift(n *LeftShift, p any) any { return e.v.VisitLeftShift(n, arg[P](p)) }

func (e erased[R, P]) VisitRightShift(n *RightShift, p any) any { return e.v.VisitRightShift(n, arg[P](p)) }

func (e erased[R, P]) VisitConditionalNot(n *ConditionalNot, p any) any { return e.v.VisitConditionalNot(n, arg[P](p)) }

func (e erased[R, P]) VisitNumericalMinus(n *NumericalMinus, p any) any { return e.v.VisitNumericalMinus(n, arg[P](p)) }

func (e erased[R, P]) VisitNumericalPlus(n *NumericalPlus, p any) any { return e.v.VisitNumericalPlus(n, arg[P](p)) }

func (e erased[R, P]) VisitBitwiseComplement(n *BitwiseComplement, p any) any { return e.v.VisitBitwiseComplement(n, arg[P](p)) }

func (e erased[R, P]) VisitAddressOf(n *AddressOf, p any) any { return e.v.VisitAddressOf(n, arg[P](p)) }

func (e erased[R, P]) VisitDereference(n *Dereference, p any) any { return e.v.VisitDereference(n, arg[P](p)) }

func (e erased[R, P]) VisitAssignment(n *Assignment, p any) any { return e.v.VisitAssignment(n, arg[P](p)) }

func (e erased[R, P]) VisitReturn(n *Return, p any) any { return e.v.VisitReturn(n, arg[P](p)) }

func (e erased[R, P]) VisitOpaque(n *Opaque, p any) any { return e.v.VisitOpaque(n, arg[P](p)) }

// SimpleVisitor is a Visitor that calls Default on every node. A nil Default returns the zero value of R.
type SimpleVisitor[R, P any] struct {
	Default func(n Node, p P) R
}

func (s SimpleVisitor[R, P]) visit(n Node, p P) R {
	if s.Default == nil {
		var r R
		return r
	}
	return s.Default(n, p)
}

// VisitIntegerLiteral calls Default
func (s SimpleVisitor[R, P]) VisitIntegerLiteral(n *IntegerLiteral, p P) R { return s.visit(n, p) }

// VisitFloatLiteral calls Default
func (s SimpleVisitor[R, P]) VisitFloatLiteral(n *FloatLiteral, p P) R { return s.visit(n, p) }

// VisitStringLiteral calls Default
func (s SimpleVisitor[R, P]) VisitStringLiteral(n *StringLiteral, p P) R { return s.visit(n, p) }

// VisitCharLiteral calls Default
func (s SimpleVisitor[R, P]) VisitCharLiteral(n *CharLiteral, p P) R { return s.visit(n, p) }

// VisitBooleanLiteral calls Default
func (s SimpleVisitor[R, P]) VisitBooleanLiteral(n *BooleanLiteral, p P) R { return s.visit(n, p) }

// VisitNullLiteral calls Default
func (s SimpleVisitor[R, P]) VisitNullLiteral(n *NullLiteral, p P) R { return s.visit(n, p) }

// VisitLocalVariable calls Default
func (s SimpleVisitor[R, P]) VisitLocalVariable(n *LocalVariable, p P) R { return s.visit(n, p) }

// VisitFieldAccess calls Default
func (s SimpleVisitor[R, P]) VisitFieldAccess(n *FieldAccess, p P) R { return s.visit(n, p) }

// VisitArrayAccess calls Default
func (s SimpleVisitor[R, P]) VisitArrayAccess(n *ArrayAccess, p P) R { return s.visit(n, p) }

// VisitMethodInvocation calls Default
func (s SimpleVisitor[R, P]) VisitMethodInvocation(n *MethodInvocation, p P) R { return s.visit(n, p) }

// VisitNumericalAddition calls Default
func (s SimpleVisitor[R, P]) VisitNumericalAddition(n *NumericalAddition, p P) R { return s.visit(n, p) }

// VisitNumericalSubtraction calls Default
func (s SimpleVisitor[R, P]) VisitNumericalSubtraction(n *NumericalSubtraction, p P) R { return s.visit(n, p) }

// VisitNumericalMultiplication calls Default
func (s SimpleVisitor[R, P]) VisitNumericalMultiplication(n *NumericalMultiplication, p P) R { return s.visit(n, p) }

// VisitIntegerDivision calls Default
func (s SimpleVisitor[R, P]) VisitIntegerDivision(n *IntegerDivision, p P) R { return s.visit(n, p) }

// VisitIntegerRemainder calls Default
func (s SimpleVisitor[R, P]) VisitIntegerRemainder(n *IntegerRemainder, p P) R { return s.visit(n, p) }

// VisitLessThan calls Default
func (s SimpleVisitor[R, P]) VisitLessThan(n *LessThan, p P) R { return s.visit(n, p) }

// VisitLessThanOrEqual calls Default
func (s SimpleVisitor[R, P]) VisitLessThanOrEqual(n *LessThanOrEqual, p P) R { return s.visit(n, p) }

// VisitGreaterThan calls Default
func (s SimpleVisitor[R, P]) VisitGreaterThan(n *GreaterThan, p P) R { return s.visit(n, p) }

// VisitGreaterThanOrEqual calls Default
func (s SimpleVisitor[R, P]) VisitGreaterThanOrEqual(n *GreaterThanOrEqual, p P) R { return s.visit(n, p) }

// VisitEqualTo calls Default
func (s SimpleVisitor[R, P]) VisitEqualTo(n *EqualTo, p P) R { return s.visit(n, p) }

// VisitNotEqualTo calls Default
func (s SimpleVisitor[R, P]) VisitNotEqualTo(n *NotEqualTo, p P) R { return s.visit(n, p) }

// VisitConditionalAnd calls Default
func (s SimpleVisitor[R, P]) VisitConditionalAnd(n *ConditionalAnd, p P) R { return s.visit(n, p) }

// VisitConditionalOr calls Default
func (s SimpleVisitor[R, P]) VisitConditionalOr(n *ConditionalOr, p P) R { return s.visit(n, p) }

// VisitBitwiseAnd calls Default
func (s SimpleVisitor[R, P]) VisitBitwiseAnd(n *BitwiseAnd, p P) R { return s.visit(n, p) }

// VisitBitwiseOr calls Default
func (s SimpleVisitor[R, P]) VisitBitwiseOr(n *BitwiseOr, p P) R { return s.visit(n, p) }

// VisitBitwiseXor calls Default
func (s SimpleVisitor[R, P]) VisitBitwiseXor(n *BitwiseXor, p P) R { return s.visit(n, p) }

// VisitBitwiseAndNot calls Default
func (s SimpleVisitor[R, P]) VisitBitwiseAndNot(n *BitwiseAndNot, p P) R { return s.visit(n, p) }

// VisitLeftShift calls Default
func (s SimpleVisitor[R, P]) VisitLeftShift(n *LeftShift, p P) R { return s.visit(n, p) }

// VisitRightShift calls Default
func (s SimpleVisitor[R, P]) VisitRightShift(n *RightShift, p P) R { return s.visit(n, p) }

// VisitConditionalNot calls Default
func (s SimpleVisitor[R, P]) VisitConditionalNot(n *ConditionalNot, p P) R { return s.visit(n, p) }

// VisitNumericalMinus calls Default
func (s SimpleVisitor[R, P]) VisitNumericalMinus(n *NumericalMinus, p P) R { return s.visit(n, p) }

// VisitNumericalPlus calls Default
func (s SimpleVisitor[R, P]) VisitNumericalPlus(n *NumericalPlus, p P) R { return s.visit(n, p) }

// VisitBitwiseComplement calls Default
func (s SimpleVisitor[R, P]) VisitBitwiseComplement(n *BitwiseComplement, p P) R { return s.visit(n, p) }

// VisitAddressOf calls Default
func (s SimpleVisitor[R, P]) VisitAddressOf(n *AddressOf, p P) R { return s.visit(n, p) }

// VisitDereference calls Default
func (s SimpleVisitor[R, P]) VisitDereference(n *Dereference, p P) R { return s.visit(n, p) }

// VisitAssignment calls Default
func (s SimpleVisitor[R, P]) VisitAssignment(n *Assignment, p P) R { return s.visit(n, p) }

// VisitReturn calls Default
func (s SimpleVisitor[R, P]) VisitReturn(n *Return, p P) R { return s.visit(n, p) }

// VisitOpaque calls Default
func (s SimpleVisitor[R, P]) VisitOpaque(n *Opaque, p P) R { return s.visit(n, p) }
