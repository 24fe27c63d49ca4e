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
	"go/constant"
	"strconv"
)

// IntegerLiteral is an integer constant
type IntegerLiteral struct {
	base
	value constant.Value
}

// NewIntegerLiteral returns a new integer literal. The value must be an integer constant.
func NewIntegerLiteral(tree ast.Node, value constant.Value) *IntegerLiteral {
	if value == nil || value.Kind() != constant.Int {
		panic("integer literal with non-integer value " + strconv.Quote(constantString(value)))
	}
	return &IntegerLiteral{base: newBase(KindIntegerLiteral, tree, value.ExactString()), value: value}
}

// Value returns the constant value of the literal
func (n *IntegerLiteral) Value() constant.Value { return n.value }

// Kind returns KindIntegerLiteral
func (*IntegerLiteral) Kind() Kind { return KindIntegerLiteral }

// Operands returns nil
func (*IntegerLiteral) Operands() []Node { return nil }

func (n *IntegerLiteral) String() string { return n.value.String() }

func (n *IntegerLiteral) accept(v Visitor[any, any], p any) any { return v.VisitIntegerLiteral(n, p) }

// FloatLiteral is a floating-point constant. Floating-point literals with an integer value may be represented
// by integer constants.
type FloatLiteral struct {
	base
	value constant.Value
}

// NewFloatLiteral returns a new floating-point literal. The value must be a numeric constant.
func NewFloatLiteral(tree ast.Node, value constant.Value) *FloatLiteral {
	if value == nil || (value.Kind() != constant.Float && value.Kind() != constant.Int) {
		panic("float literal with non-numeric value " + strconv.Quote(constantString(value)))
	}
	return &FloatLiteral{base: newBase(KindFloatLiteral, tree, value.ExactString()), value: value}
}

// Value returns the constant value of the literal
func (n *FloatLiteral) Value() constant.Value { return n.value }

// Kind returns KindFloatLiteral
func (*FloatLiteral) Kind() Kind { return KindFloatLiteral }

// Operands returns nil
func (*FloatLiteral) Operands() []Node { return nil }

func (n *FloatLiteral) String() string { return n.value.String() }

func (n *FloatLiteral) accept(v Visitor[any, any], p any) any { return v.VisitFloatLiteral(n, p) }

// StringLiteral is a string constant
type StringLiteral struct {
	base
	value string
}

// NewStringLiteral returns a new string literal with the unquoted value
func NewStringLiteral(tree ast.Node, value string) *StringLiteral {
	return &StringLiteral{base: newBase(KindStringLiteral, tree, value), value: value}
}

// Value returns the unquoted value of the literal
func (n *StringLiteral) Value() string { return n.value }

// Kind returns KindStringLiteral
func (*StringLiteral) Kind() Kind { return KindStringLiteral }

// Operands returns nil
func (*StringLiteral) Operands() []Node { return nil }

func (n *StringLiteral) String() string { return strconv.Quote(n.value) }

func (n *StringLiteral) accept(v Visitor[any, any], p any) any { return v.VisitStringLiteral(n, p) }

// CharLiteral is a rune constant
type CharLiteral struct {
	base
	value rune
}

// NewCharLiteral returns a new rune literal
func NewCharLiteral(tree ast.Node, value rune) *CharLiteral {
	return &CharLiteral{base: newBase(KindCharLiteral, tree, string(value)), value: value}
}

// Value returns the rune of the literal
func (n *CharLiteral) Value() rune { return n.value }

// Kind returns KindCharLiteral
func (*CharLiteral) Kind() Kind { return KindCharLiteral }

// Operands returns nil
func (*CharLiteral) Operands() []Node { return nil }

func (n *CharLiteral) String() string { return strconv.QuoteRune(n.value) }

func (n *CharLiteral) accept(v Visitor[any, any], p any) any { return v.VisitCharLiteral(n, p) }

// BooleanLiteral is one of the constants true and false
type BooleanLiteral struct {
	base
	value bool
}

// NewBooleanLiteral returns a new boolean literal
func NewBooleanLiteral(tree ast.Node, value bool) *BooleanLiteral {
	return &BooleanLiteral{base: newBase(KindBooleanLiteral, tree, strconv.FormatBool(value)), value: value}
}

// Value returns the value of the literal
func (n *BooleanLiteral) Value() bool { return n.value }

// Kind returns KindBooleanLiteral
func (*BooleanLiteral) Kind() Kind { return KindBooleanLiteral }

// Operands returns nil
func (*BooleanLiteral) Operands() []Node { return nil }

func (n *BooleanLiteral) String() string { return strconv.FormatBool(n.value) }

func (n *BooleanLiteral) accept(v Visitor[any, any], p any) any { return v.VisitBooleanLiteral(n, p) }

// NullLiteral is the nil constant
type NullLiteral struct {
	base
}

// NewNullLiteral returns a new nil literal
func NewNullLiteral(tree ast.Node) *NullLiteral {
	return &NullLiteral{base: newBase(KindNullLiteral, tree, "")}
}

// Kind returns KindNullLiteral
func (*NullLiteral) Kind() Kind { return KindNullLiteral }

// Operands returns nil
func (*NullLiteral) Operands() []Node { return nil }

func (*NullLiteral) String() string { return "nil" }

func (n *NullLiteral) accept(v Visitor[any, any], p any) any { return v.VisitNullLiteral(n, p) }

func constantString(v constant.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.ExactString()
}
