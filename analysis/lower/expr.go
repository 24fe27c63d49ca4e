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

package lower

import (
	"bytes"
	"go/ast"
	"go/constant"
	"go/printer"
	"go/token"
	"go/types"

	"github.com/awslabs/qualflow/analysis/node"
	"golang.org/x/tools/go/ast/astutil"
)

var constantOne = constant.MakeInt64(1)

func unparen(e ast.Expr) ast.Expr { return astutil.Unparen(e) }

// text returns the source text of n
func (b *builder) text(n ast.Node) string {
	if e, ok := n.(ast.Expr); ok {
		return types.ExprString(e)
	}
	fset := b.fset
	if fset == nil {
		fset = token.NewFileSet()
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, n); err != nil {
		return "?"
	}
	return buf.String()
}

func (b *builder) opaque(e ast.Expr) node.Node {
	return b.emit(node.NewOpaque(e, b.text(e)))
}

// expr lowers the expression e, emitting its operands before the node representing it, and returns that node.
//
//gocyclo:ignore
func (b *builder) expr(e ast.Expr) node.Node {
	switch x := e.(type) {
	case *ast.ParenExpr:
		return b.expr(x.X)
	case *ast.BasicLit:
		return b.emit(literal(x))
	case *ast.Ident:
		return b.emit(b.ident(x))
	case *ast.SelectorExpr:
		if b.isQualified(x) || b.isMethodValue(x) {
			return b.opaque(x)
		}
		receiver := b.expr(x.X)
		return b.emit(node.NewFieldAccess(x, receiver, x.Sel.Name))
	case *ast.IndexExpr:
		if b.isType(x) || b.isFunc(x.X) {
			return b.opaque(x)
		}
		array := b.expr(x.X)
		index := b.expr(x.Index)
		return b.emit(node.NewArrayAccess(x, array, index))
	case *ast.StarExpr:
		if b.isType(x) {
			return b.opaque(x)
		}
		return b.emit(node.NewDereference(x, b.expr(x.X)))
	case *ast.UnaryExpr:
		k, ok := node.UnaryKind(x.Op)
		if !ok {
			// receive
			b.expr(x.X)
			return b.opaque(x)
		}
		return b.emit(node.NewUnary(k, x, b.expr(x.X)))
	case *ast.BinaryExpr:
		k, ok := node.BinaryKind(x.Op)
		if !ok {
			return b.opaque(x)
		}
		left := b.expr(x.X)
		right := b.expr(x.Y)
		return b.emit(node.NewBinary(k, x, left, right))
	case *ast.CallExpr:
		return b.call(x)
	}
	return b.opaque(e)
}

// target returns the node designating the location assigned by lhs. The operands of the location are emitted,
// but not the location itself, which is not read.
func (b *builder) target(lhs ast.Expr) node.Node {
	switch x := unparen(lhs).(type) {
	case *ast.Ident:
		return node.NewLocalVariable(x, x.Name)
	case *ast.SelectorExpr:
		if !b.isQualified(x) {
			return node.NewFieldAccess(x, b.expr(x.X), x.Sel.Name)
		}
	case *ast.IndexExpr:
		array := b.expr(x.X)
		index := b.expr(x.Index)
		return node.NewArrayAccess(x, array, index)
	case *ast.StarExpr:
		return node.NewDereference(x, b.expr(x.X))
	}
	// package-level variable of another package
	return node.NewLocalVariable(nil, b.text(lhs))
}

func literal(lit *ast.BasicLit) node.Node {
	v := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
	if v.Kind() == constant.Unknown {
		return node.NewOpaque(lit, lit.Value)
	}
	switch lit.Kind {
	case token.INT:
		return node.NewIntegerLiteral(lit, v)
	case token.FLOAT:
		return node.NewFloatLiteral(lit, v)
	case token.STRING:
		return node.NewStringLiteral(lit, constant.StringVal(v))
	case token.CHAR:
		r, _ := constant.Int64Val(v)
		return node.NewCharLiteral(lit, rune(r))
	}
	return node.NewOpaque(lit, lit.Value)
}

// constantLiteral returns a literal node for a named constant. The node has no syntax since the identifier is
// not a literal.
func constantLiteral(v constant.Value) node.Node {
	switch v.Kind() {
	case constant.Int:
		return node.NewIntegerLiteral(nil, v)
	case constant.Float:
		return node.NewFloatLiteral(nil, v)
	case constant.String:
		return node.NewStringLiteral(nil, constant.StringVal(v))
	case constant.Bool:
		return node.NewBooleanLiteral(nil, constant.BoolVal(v))
	}
	return node.NewOpaque(nil, v.String())
}

// ident lowers an identifier. Without type information, every identifier other than nil, true and false is a
// local variable.
func (b *builder) ident(id *ast.Ident) node.Node {
	if b.info != nil {
		switch obj := b.info.ObjectOf(id).(type) {
		case *types.Nil:
			return node.NewNullLiteral(id)
		case *types.Const:
			if obj.Pkg() == nil && (id.Name == "true" || id.Name == "false") {
				return node.NewBooleanLiteral(id, id.Name == "true")
			}
			return constantLiteral(obj.Val())
		case *types.Var:
			return node.NewLocalVariable(id, id.Name)
		case nil:
		default:
			return node.NewOpaque(id, id.Name)
		}
	}
	switch id.Name {
	case "nil":
		return node.NewNullLiteral(id)
	case "true", "false":
		return node.NewBooleanLiteral(id, id.Name == "true")
	}
	return node.NewLocalVariable(id, id.Name)
}

// call lowers a call. Conversions are opaque. The target of a method call is "T.m" where T is the named type
// declaring m; the target of a function of another package is "p.f".
func (b *builder) call(call *ast.CallExpr) node.Node {
	fun := unparen(call.Fun)
	if b.isType(fun) {
		for _, arg := range call.Args {
			b.expr(arg)
		}
		return b.opaque(call)
	}
	var receiver node.Node
	var method, target string
	switch f := fun.(type) {
	case *ast.SelectorExpr:
		method = f.Sel.Name
		if b.isQualified(f) {
			target = f.X.(*ast.Ident).Name + "." + method
		} else {
			receiver = b.expr(f.X)
			target = b.methodTarget(f)
		}
	case *ast.Ident:
		method = f.Name
		target = f.Name
	default:
		method = b.text(fun)
	}
	args := make([]node.Node, len(call.Args))
	for i, arg := range call.Args {
		args[i] = b.expr(arg)
	}
	return b.emit(node.NewMethodInvocation(call, receiver, method, target, args...))
}

// methodTarget returns the qualified name of the method selected by sel, or "" if it is not a method
func (b *builder) methodTarget(sel *ast.SelectorExpr) string {
	if b.info == nil {
		return ""
	}
	selection := b.info.Selections[sel]
	if selection == nil || selection.Kind() != types.MethodVal {
		return ""
	}
	recv := selection.Recv()
	if fn, ok := selection.Obj().(*types.Func); ok {
		if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
			recv = sig.Recv().Type()
		}
	}
	if name := namedTypeName(recv); name != "" {
		return name + "." + sel.Sel.Name
	}
	return ""
}

func namedTypeName(t types.Type) string {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

// isQualified returns true when sel is a qualified identifier p.x of an imported package p
func (b *builder) isQualified(sel *ast.SelectorExpr) bool {
	if b.info == nil {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	_, isPkg := b.info.ObjectOf(id).(*types.PkgName)
	return isPkg
}

// isMethodValue returns true when sel denotes a method that is not called
func (b *builder) isMethodValue(sel *ast.SelectorExpr) bool {
	if b.info == nil {
		return false
	}
	selection := b.info.Selections[sel]
	return selection != nil && selection.Kind() != types.FieldVal
}

func (b *builder) isType(e ast.Expr) bool {
	if b.info == nil {
		return false
	}
	tv, ok := b.info.Types[e]
	return ok && tv.IsType()
}

// isFunc returns true when e denotes a generic function, so that e[T] is an instantiation
func (b *builder) isFunc(e ast.Expr) bool {
	if b.info == nil {
		return false
	}
	id, ok := unparen(e).(*ast.Ident)
	if !ok {
		return false
	}
	_, isFunc := b.info.ObjectOf(id).(*types.Func)
	return isFunc
}

// isNillable returns true when the zero value of t is nil
func isNillable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Map, *types.Slice, *types.Chan, *types.Signature:
		return true
	}
	return false
}
