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

// Kind identifies the operation of a node. Each kind corresponds to exactly one node type.
type Kind uint8

// The kinds of nodes
const (
	KindInvalid Kind = iota

	// literals
	KindIntegerLiteral
	KindFloatLiteral
	KindStringLiteral
	KindCharLiteral
	KindBooleanLiteral
	KindNullLiteral

	// references to memory and calls
	KindLocalVariable
	KindFieldAccess
	KindArrayAccess
	KindMethodInvocation

	// binary operators
	KindNumericalAddition
	KindNumericalSubtraction
	KindNumericalMultiplication
	KindIntegerDivision
	KindIntegerRemainder
	KindLessThan
	KindLessThanOrEqual
	KindGreaterThan
	KindGreaterThanOrEqual
	KindEqualTo
	KindNotEqualTo
	KindConditionalAnd
	KindConditionalOr
	KindBitwiseAnd
	KindBitwiseOr
	KindBitwiseXor
	KindBitwiseAndNot
	KindLeftShift
	KindRightShift

	// unary operators
	KindConditionalNot
	KindNumericalMinus
	KindNumericalPlus
	KindBitwiseComplement
	KindAddressOf
	KindDereference

	// statements
	KindAssignment
	KindReturn

	// expressions that are not modeled
	KindOpaque
)

var kindNames = [...]string{
	KindInvalid:                 "Invalid",
	KindIntegerLiteral:          "IntegerLiteral",
	KindFloatLiteral:            "FloatLiteral",
	KindStringLiteral:           "StringLiteral",
	KindCharLiteral:             "CharLiteral",
	KindBooleanLiteral:          "BooleanLiteral",
	KindNullLiteral:             "NullLiteral",
	KindLocalVariable:           "LocalVariable",
	KindFieldAccess:             "FieldAccess",
	KindArrayAccess:             "ArrayAccess",
	KindMethodInvocation:        "MethodInvocation",
	KindNumericalAddition:       "NumericalAddition",
	KindNumericalSubtraction:    "NumericalSubtraction",
	KindNumericalMultiplication: "NumericalMultiplication",
	KindIntegerDivision:         "IntegerDivision",
	KindIntegerRemainder:        "IntegerRemainder",
	KindLessThan:                "LessThan",
	KindLessThanOrEqual:         "LessThanOrEqual",
	KindGreaterThan:             "GreaterThan",
	KindGreaterThanOrEqual:      "GreaterThanOrEqual",
	KindEqualTo:                 "EqualTo",
	KindNotEqualTo:              "NotEqualTo",
	KindConditionalAnd:          "ConditionalAnd",
	KindConditionalOr:           "ConditionalOr",
	KindBitwiseAnd:              "BitwiseAnd",
	KindBitwiseOr:               "BitwiseOr",
	KindBitwiseXor:              "BitwiseXor",
	KindBitwiseAndNot:           "BitwiseAndNot",
	KindLeftShift:               "LeftShift",
	KindRightShift:              "RightShift",
	KindConditionalNot:          "ConditionalNot",
	KindNumericalMinus:          "NumericalMinus",
	KindNumericalPlus:           "NumericalPlus",
	KindBitwiseComplement:       "BitwiseComplement",
	KindAddressOf:               "AddressOf",
	KindDereference:             "Dereference",
	KindAssignment:              "Assignment",
	KindReturn:                  "Return",
	KindOpaque:                  "Opaque",
}

// String returns the name of the kind
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

var kindSymbols = map[Kind]string{
	KindNumericalAddition:       "+",
	KindNumericalSubtraction:    "-",
	KindNumericalMultiplication: "*",
	KindIntegerDivision:         "/",
	KindIntegerRemainder:        "%",
	KindLessThan:                "<",
	KindLessThanOrEqual:         "<=",
	KindGreaterThan:             ">",
	KindGreaterThanOrEqual:      ">=",
	KindEqualTo:                 "==",
	KindNotEqualTo:              "!=",
	KindConditionalAnd:          "&&",
	KindConditionalOr:           "||",
	KindBitwiseAnd:              "&",
	KindBitwiseOr:               "|",
	KindBitwiseXor:              "^",
	KindBitwiseAndNot:           "&^",
	KindLeftShift:               "<<",
	KindRightShift:              ">>",
	KindConditionalNot:          "!",
	KindNumericalMinus:          "-",
	KindNumericalPlus:           "+",
	KindBitwiseComplement:       "^",
	KindAddressOf:               "&",
	KindDereference:             "*",
}

// Symbol returns the Go operator of an operator kind, or the empty string if k is not an operator.
func (k Kind) Symbol() string {
	return kindSymbols[k]
}

// IsComparison returns true for the kinds whose nodes compare their two operands.
func (k Kind) IsComparison() bool {
	switch k {
	case KindLessThan, KindLessThanOrEqual, KindGreaterThan, KindGreaterThanOrEqual, KindEqualTo, KindNotEqualTo:
		return true
	}
	return false
}

// IsUnary returns true for the kinds of the operators with a single operand.
func (k Kind) IsUnary() bool {
	return k >= KindConditionalNot && k <= KindDereference
}
