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

// Package lower builds the control-flow graphs of Go function bodies in the node model of package node.
//
// The block structure is computed by golang.org/x/tools/go/cfg. Each live block becomes a cfg.Block whose
// nodes are the post-order flattening of its statements: the operands of a node always appear before it.
// Short-circuit conditions (&& and ||) are lowered into control flow, so that the last node of a conditional
// block is always the atomic condition deciding which of the true and false successors is taken.
//
// Syntax that the node model does not represent becomes an Opaque node carrying its source text.
package lower

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/node"
	gocfg "golang.org/x/tools/go/cfg"
)

// builder holds the state of the lowering of a single function body
type builder struct {
	fset  *token.FileSet
	info  *types.Info
	graph *cfg.Graph

	// current is the block receiving the nodes being lowered
	current *cfg.Block

	// heads maps each live block of the syntactic graph to the first block of its lowering
	heads map[*gocfg.Block]*cfg.Block

	// rangeVars contains the key and value expressions of the range statements of the body
	rangeVars map[ast.Expr]bool

	// rangeBodies maps the first block of a range loop body to its range statements
	rangeBodies map[*gocfg.Block][]*ast.RangeStmt

	// switchTags maps the case expressions of tagged switch statements to their tag
	switchTags map[ast.Expr]ast.Expr
}

// Function returns the control-flow graph of the body of decl. The type information info may be nil, in
// which case the lowering is purely syntactic: every identifier is a local variable and every call
// through a selector is a method call on a receiver.
func Function(fset *token.FileSet, decl *ast.FuncDecl, info *types.Info) (*cfg.Graph, error) {
	if decl.Body == nil {
		return nil, fmt.Errorf("function %s has no body", decl.Name.Name)
	}
	b := &builder{
		fset:        fset,
		info:        info,
		graph:       cfg.NewGraph(FuncName(decl), paramNames(decl.Type.Params)...),
		heads:       map[*gocfg.Block]*cfg.Block{},
		rangeVars:   map[ast.Expr]bool{},
		rangeBodies: map[*gocfg.Block][]*ast.RangeStmt{},
		switchTags:  map[ast.Expr]ast.Expr{},
	}
	b.graph.Fset = fset
	if decl.Recv != nil {
		if names := paramNames(decl.Recv); len(names) > 0 {
			b.graph.Receiver = names[0]
		}
	}

	syntactic := gocfg.New(decl.Body, mayReturn)
	b.findRangeBodies(decl.Body, syntactic)

	for _, block := range syntactic.Blocks {
		if !block.Live {
			continue
		}
		comment := ""
		if block.Index == 0 {
			comment = "entry"
		} else if len(b.rangeBodies[block]) > 0 {
			comment = "range.body"
		}
		b.heads[block] = b.graph.NewBlock(comment)
	}
	for _, block := range syntactic.Blocks {
		if block.Live {
			b.lowerBlock(block)
		}
	}
	if err := b.graph.Validate(); err != nil {
		return nil, fmt.Errorf("lowering of %s: %w", b.graph.Name, err)
	}
	return b.graph, nil
}

// File returns the graphs of all the functions with a body declared in file.
func File(fset *token.FileSet, file *ast.File, info *types.Info) ([]*cfg.Graph, error) {
	var graphs []*cfg.Graph
	for _, d := range file.Decls {
		decl, ok := d.(*ast.FuncDecl)
		if !ok || decl.Body == nil {
			continue
		}
		g, err := Function(fset, decl, info)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// FuncName returns the name of the procedure declared by decl: "T.m" for methods, the plain name otherwise.
func FuncName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return decl.Name.Name
	}
	return receiverTypeName(decl.Recv.List[0].Type) + "." + decl.Name.Name
}

func receiverTypeName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return "?"
}

func paramNames(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var names []string
	for _, field := range fields.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// mayReturn reports whether a call may return. Calls to panic do not.
func mayReturn(call *ast.CallExpr) bool {
	id, ok := call.Fun.(*ast.Ident)
	return !ok || id.Name != "panic"
}

// findRangeBodies records the case expressions of tagged switches, the key and value expressions of the range statements of body, and the first block
// of each loop body. The syntactic graph places the key and value in the block preceding the loop header,
// followed by the header and then the body:
//
//	.i:   ...; x; k; v    -> .loop
//	.loop:                -> .body, .done
func (b *builder) findRangeBodies(body *ast.BlockStmt, syntactic *gocfg.CFG) {
	ranges := map[ast.Expr]*ast.RangeStmt{}
	ast.Inspect(body, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.RangeStmt:
			for _, e := range []ast.Expr{s.Key, s.Value} {
				if e != nil {
					b.rangeVars[e] = true
					ranges[e] = s
				}
			}
		case *ast.SwitchStmt:
			if s.Tag == nil {
				break
			}
			for _, clause := range s.Body.List {
				if cc, ok := clause.(*ast.CaseClause); ok {
					for _, e := range cc.List {
						b.switchTags[e] = s.Tag
					}
				}
			}
		}
		return true
	})
	for _, block := range syntactic.Blocks {
		for _, n := range block.Nodes {
			e, ok := n.(ast.Expr)
			if !ok || ranges[e] == nil {
				continue
			}
			r := ranges[e]
			if len(block.Succs) != 1 || len(block.Succs[0].Succs) != 2 {
				continue
			}
			entry := block.Succs[0].Succs[0]
			if bodies := b.rangeBodies[entry]; len(bodies) == 0 || bodies[len(bodies)-1] != r {
				b.rangeBodies[entry] = append(bodies, r)
			}
		}
	}
}

// lowerBlock lowers the nodes of block into its head, and adds the edges to the heads of its successors
func (b *builder) lowerBlock(block *gocfg.Block) {
	b.current = b.heads[block]
	for _, r := range b.rangeBodies[block] {
		b.rangeAssignments(r)
	}

	nodes := block.Nodes
	var cond ast.Expr
	if len(block.Succs) == 2 && len(nodes) > 0 {
		if e, ok := nodes[len(nodes)-1].(ast.Expr); ok && !b.rangeVars[e] {
			cond = e
			nodes = nodes[:len(nodes)-1]
		}
	}
	for _, n := range nodes {
		b.syntax(n)
	}

	if cond != nil {
		t, f := b.heads[block.Succs[0]], b.heads[block.Succs[1]]
		if tag, ok := b.switchTags[cond]; ok {
			b.caseCondition(tag, cond, t, f)
		} else {
			b.condition(cond, b.current, t, f)
		}
		return
	}
	for _, succ := range block.Succs {
		b.graph.AddEdge(b.current, b.heads[succ], cfg.Normal)
	}
}

// condition lowers the condition e evaluated in block from, branching to t when it is true and to f otherwise
func (b *builder) condition(e ast.Expr, from, t, f *cfg.Block) {
	e = unparen(e)
	if isShortCircuit(e) {
		if bin, ok := e.(*ast.BinaryExpr); ok {
			rhs := b.graph.NewBlock("cond")
			if bin.Op == token.LAND {
				b.condition(bin.X, from, rhs, f)
			} else {
				b.condition(bin.X, from, t, rhs)
			}
			b.condition(bin.Y, rhs, t, f)
		} else {
			// negation of a short-circuit condition
			b.condition(e.(*ast.UnaryExpr).X, from, f, t)
		}
		return
	}
	b.current = from
	b.expr(e)
	b.graph.AddEdge(from, t, cfg.True)
	b.graph.AddEdge(from, f, cfg.False)
}

// caseCondition lowers the case expression e of a switch on tag as the comparison tag == e
func (b *builder) caseCondition(tag, e ast.Expr, t, f *cfg.Block) {
	from := b.current
	left := b.expr(tag)
	right := b.expr(e)
	b.emit(node.NewEqualTo(nil, left, right))
	b.graph.AddEdge(from, t, cfg.True)
	b.graph.AddEdge(from, f, cfg.False)
}

func isShortCircuit(e ast.Expr) bool {
	switch x := unparen(e).(type) {
	case *ast.BinaryExpr:
		return x.Op == token.LAND || x.Op == token.LOR
	case *ast.UnaryExpr:
		return x.Op == token.NOT && isShortCircuit(x.X)
	}
	return false
}

// emit appends n to the current block and returns it
func (b *builder) emit(n node.Node) node.Node {
	b.current.Nodes = append(b.current.Nodes, n)
	return n
}

// syntax lowers one node of a syntactic block: a statement, an expression or a value specification
//
//gocyclo:ignore
func (b *builder) syntax(n ast.Node) {
	switch s := n.(type) {
	case ast.Expr:
		if !b.rangeVars[s] {
			b.expr(s)
		}
	case *ast.ExprStmt:
		b.expr(s.X)
	case *ast.AssignStmt:
		b.assign(s)
	case *ast.IncDecStmt:
		op := token.ADD
		if s.Tok == token.DEC {
			op = token.SUB
		}
		b.update(s, s.X, op, nil)
	case *ast.ReturnStmt:
		var results []node.Node
		for _, r := range s.Results {
			results = append(results, b.expr(r))
		}
		b.emit(node.NewReturn(s, results...))
	case *ast.ValueSpec:
		b.valueSpec(s)
	case *ast.DeclStmt:
		if gen, ok := s.Decl.(*ast.GenDecl); ok && gen.Tok == token.VAR {
			for _, spec := range gen.Specs {
				if vs, ok := spec.(*ast.ValueSpec); ok {
					b.valueSpec(vs)
				}
			}
		}
	case *ast.SendStmt:
		b.expr(s.Chan)
		b.expr(s.Value)
	case *ast.GoStmt, *ast.DeferStmt:
		// the call is not executed at this point
	case *ast.LabeledStmt, *ast.BranchStmt, *ast.EmptyStmt, *ast.RangeStmt, *ast.CaseClause, *ast.CommClause,
		*ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		// control flow only
	default:
		b.emit(node.NewOpaque(n, b.text(n)))
	}
}

// assign lowers an assignment statement. All right-hand sides are evaluated before any variable is assigned.
func (b *builder) assign(s *ast.AssignStmt) {
	if op, ok := assignOps[s.Tok]; ok && len(s.Lhs) == 1 && len(s.Rhs) == 1 {
		b.update(s, s.Lhs[0], op, s.Rhs[0])
		return
	}
	values := make([]node.Node, len(s.Lhs))
	if len(s.Rhs) == len(s.Lhs) {
		for i, rhs := range s.Rhs {
			values[i] = b.expr(rhs)
		}
	} else if len(s.Rhs) == 1 {
		// multi-valued expression: each variable receives one of its results
		b.expr(s.Rhs[0])
		text := b.text(s.Rhs[0])
		for i := range values {
			values[i] = node.NewOpaque(nil, fmt.Sprintf("%s[%d]", text, i))
		}
	}
	for i, lhs := range s.Lhs {
		if values[i] == nil || isBlank(lhs) {
			continue
		}
		target := b.target(lhs)
		b.emit(node.NewAssignment(s, target, values[i]))
	}
}

// update lowers an assignment of the form "lhs op= rhs". A nil rhs stands for the constant 1 of an increment
// or decrement statement.
func (b *builder) update(s ast.Stmt, lhs ast.Expr, op token.Token, rhs ast.Expr) {
	current := b.expr(lhs)
	var value node.Node
	if rhs == nil {
		value = b.emit(node.NewIntegerLiteral(nil, constantOne))
	} else {
		value = b.expr(rhs)
	}
	k, _ := node.BinaryKind(op)
	result := b.emit(node.NewBinary(k, nil, current, value))
	b.emit(node.NewAssignment(s, b.target(lhs), result))
}

// valueSpec lowers a variable declaration. Variables without an initial value receive the zero value of
// their type, which is nil for pointer-like types when type information is available.
func (b *builder) valueSpec(s *ast.ValueSpec) {
	values := make([]node.Node, len(s.Names))
	switch {
	case len(s.Values) == len(s.Names):
		for i, v := range s.Values {
			values[i] = b.expr(v)
		}
	case len(s.Values) == 1:
		b.expr(s.Values[0])
		text := b.text(s.Values[0])
		for i := range values {
			values[i] = node.NewOpaque(nil, fmt.Sprintf("%s[%d]", text, i))
		}
	default:
		for i, name := range s.Names {
			values[i] = b.zero(name)
		}
	}
	for i, name := range s.Names {
		if name.Name == "_" {
			continue
		}
		b.emit(node.NewAssignment(s, node.NewLocalVariable(name, name.Name), values[i]))
	}
}

func (b *builder) zero(name *ast.Ident) node.Node {
	if b.info != nil {
		if obj := b.info.Defs[name]; obj != nil && isNillable(obj.Type()) {
			return node.NewNullLiteral(nil)
		}
	}
	return node.NewOpaque(nil, "zero value")
}

// rangeAssignments assigns the key and value of the range statement r at the start of each iteration
func (b *builder) rangeAssignments(r *ast.RangeStmt) {
	text := b.text(r.X)
	for _, e := range []ast.Expr{r.Key, r.Value} {
		if e == nil || isBlank(e) {
			continue
		}
		value := node.NewOpaque(nil, "range "+text)
		b.emit(node.NewAssignment(nil, b.target(e), value))
	}
}

var assignOps = map[token.Token]token.Token{
	token.ADD_ASSIGN:     token.ADD,
	token.SUB_ASSIGN:     token.SUB,
	token.MUL_ASSIGN:     token.MUL,
	token.QUO_ASSIGN:     token.QUO,
	token.REM_ASSIGN:     token.REM,
	token.AND_ASSIGN:     token.AND,
	token.OR_ASSIGN:      token.OR,
	token.XOR_ASSIGN:     token.XOR,
	token.SHL_ASSIGN:     token.SHL,
	token.SHR_ASSIGN:     token.SHR,
	token.AND_NOT_ASSIGN: token.AND_NOT,
}

func isBlank(e ast.Expr) bool {
	id, ok := unparen(e).(*ast.Ident)
	return ok && id.Name == "_"
}
