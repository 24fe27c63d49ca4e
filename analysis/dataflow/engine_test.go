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

package dataflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/contract"
	"github.com/awslabs/qualflow/analysis/dataflow"
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/node"
	"github.com/awslabs/qualflow/analysis/nullness"
)

func quietConfig() *config.Config {
	conf := config.NewDefault()
	conf.LogLevel = int(config.ErrLevel)
	return conf
}

func newEngine(t *testing.T, conf *config.Config, decls ...*contract.Declaration) *dataflow.Engine {
	t.Helper()
	resolver := contract.MapResolver{}
	for _, d := range decls {
		resolver[d.Name] = d
	}
	return dataflow.NewEngine(conf, nil, nullness.Analysis{}, resolver)
}

func mustDeclare(t *testing.T, name string, contracts ...*contract.Contract) *contract.Declaration {
	t.Helper()
	d, err := contract.NewDeclaration(name, nil, contracts...)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// ifGraph builds the graph of "if cond { then } else { els }" where the nodes of cond are in the entry block
func ifGraph(name string, cond []node.Node, then []node.Node, els []node.Node) *cfg.Graph {
	g := cfg.NewGraph(name)
	entry := g.NewBlock("entry", cond...)
	thenBlock := g.NewBlock("if.then", then...)
	elseBlock := g.NewBlock("if.else", els...)
	done := g.NewBlock("if.done", node.NewReturn(nil))
	g.AddEdge(entry, thenBlock, cfg.True)
	g.AddEdge(entry, elseBlock, cfg.False)
	g.AddEdge(thenBlock, done, cfg.Normal)
	g.AddEdge(elseBlock, done, cfg.Normal)
	return g
}

func peekOf(q node.Node) flowexpr.Expr {
	r, _ := flowexpr.FromNode(q)
	return flowexpr.MethodCall{Receiver: r, Method: "peek"}
}

func TestContractFalseBranch(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	isEmpty := node.NewMethodInvocation(nil, q, "isEmpty", "Queue.isEmpty")
	thenPeek := node.NewMethodInvocation(nil, q, "peek", "Queue.peek")
	elsePeek := node.NewMethodInvocation(nil, q, "peek", "Queue.peek")
	g := ifGraph("f", []node.Node{q, isEmpty}, []node.Node{thenPeek}, []node.Node{elsePeek})

	decl := mustDeclare(t, "Queue.isEmpty", contract.NewContract(false, "NonNull", "peek()"))
	res, err := newEngine(t, quietConfig(), decl).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsProven(elsePeek, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should be proven NonNull when isEmpty returns false, facts: %v", res.FactsBefore(elsePeek))
	}
	if res.IsProven(thenPeek, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should not be proven when isEmpty returns true")
	}
	if s := res.ThenStoreAfter(isEmpty); s.Len() != 0 {
		t.Errorf("the true branch should be unaffected, got %s", s)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", res.Diagnostics)
	}
	// the fact does not survive the merge
	done := g.Blocks[3].Nodes[0]
	if res.IsProven(done, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should not be proven after the merge")
	}
}

func TestContractUnderNegation(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	isEmpty := node.NewMethodInvocation(nil, q, "isEmpty", "Queue.isEmpty")
	not := node.NewConditionalNot(nil, isEmpty)
	thenPeek := node.NewMethodInvocation(nil, q, "peek", "")
	elseRet := node.NewReturn(nil)
	g := ifGraph("g", []node.Node{q, isEmpty, not}, []node.Node{thenPeek}, []node.Node{elseRet})

	decl := mustDeclare(t, "Queue.isEmpty", contract.NewContract(false, "NonNull", "peek()"))
	res, err := newEngine(t, quietConfig(), decl).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsProven(thenPeek, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should be proven under !q.isEmpty()")
	}
	if res.IsProven(elseRet, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should not be proven when q is empty")
	}
}

func TestNoContract(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	isEmpty := node.NewMethodInvocation(nil, q, "isEmpty", "Queue.isEmpty")
	a, b := node.NewReturn(nil), node.NewReturn(nil)
	g := ifGraph("h", []node.Node{q, isEmpty}, []node.Node{a}, []node.Node{b})
	res, err := newEngine(t, quietConfig()).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if !res.StoreBefore(a).Equal(res.StoreBefore(b)) {
		t.Errorf("both successors should inherit the same store")
	}
}

func TestOutOfRangeParameter(t *testing.T) {
	a := node.NewLocalVariable(nil, "a")
	b := node.NewLocalVariable(nil, "b")
	c := node.NewLocalVariable(nil, "c")
	a2 := node.NewLocalVariable(nil, "a")
	bb := node.NewLocalVariable(nil, "b")
	bad := node.NewMethodInvocation(nil, nil, "check", "", a, b)
	good := node.NewMethodInvocation(nil, nil, "check", "", a2, bb, c)
	afterBad := node.NewFieldAccess(nil, node.NewLocalVariable(nil, "x"), "f")
	afterGood := node.NewReturn(nil)

	g := cfg.NewGraph("sites", "a", "b", "c")
	b0 := g.NewBlock("entry", a, b, bad)
	b1 := g.NewBlock("if.then", afterBad)
	b2 := g.NewBlock("if.else", a2, bb, c, good)
	b3 := g.NewBlock("if.then", afterGood)
	b4 := g.NewBlock("if.done", node.NewReturn(nil))
	g.AddEdge(b0, b1, cfg.True)
	g.AddEdge(b0, b2, cfg.False)
	g.AddEdge(b1, b4, cfg.Normal)
	g.AddEdge(b2, b3, cfg.True)
	g.AddEdge(b2, b4, cfg.False)
	g.AddEdge(b3, b4, cfg.Normal)

	decl := mustDeclare(t, "check", contract.NewContract(true, "NonNull", "#2"))
	res, err := newEngine(t, quietConfig(), decl).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("malformed contracts should not fail the analysis: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Kind != dataflow.MalformedContract || d.Call != bad || d.Target != "#2" || !d.Result || d.Procedure != "sites" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if s := res.StoreBefore(afterBad); s.Len() != 0 {
		t.Errorf("the refinement of the malformed call site should be absent, got %s", s)
	}
	if !res.IsProven(afterGood, flowexpr.Local{Name: "c"}, nullness.NonNull) {
		t.Errorf("sibling call site should be refined, got %v", res.FactsBefore(afterGood))
	}

	strict := quietConfig()
	strict.StrictContracts = true
	res, err = newEngine(t, strict, decl).Run(context.Background(), g)
	if !errors.Is(err, dataflow.ErrMalformedContract) || res == nil {
		t.Errorf("strict contracts should fail after completing the analysis, got %v", err)
	}
}

func TestUnknownQualifier(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	isEmpty := node.NewMethodInvocation(nil, q, "isEmpty", "")
	g := ifGraph("u", []node.Node{q, isEmpty}, nil, nil)
	decl := mustDeclare(t, "isEmpty", contract.NewContract(false, "Tainted", "peek()"))
	res, err := newEngine(t, quietConfig(), decl).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Target != "" {
		t.Errorf("expected one diagnostic for the whole contract, got %v", res.Diagnostics)
	}
}

// pointerLoop builds the graph of
//
//	p := &v; for i < n { p = p.next }; return p
func pointerLoop() (*cfg.Graph, node.Node) {
	p := node.NewLocalVariable(nil, "p")
	g := cfg.NewGraph("walk", "i", "n")
	entry := g.NewBlock("entry", node.NewAssignment(nil, p, node.NewAddressOf(nil, node.NewLocalVariable(nil, "v"))))
	head := g.NewBlock("for.loop", node.NewLessThan(nil, node.NewLocalVariable(nil, "i"), node.NewLocalVariable(nil, "n")))
	next := node.NewFieldAccess(nil, p, "next")
	body := g.NewBlock("for.body", p, next, node.NewAssignment(nil, p, next))
	ret := node.NewReturn(nil, p)
	exit := g.NewBlock("for.done", ret)
	g.AddEdge(entry, head, cfg.Normal)
	g.AddEdge(head, body, cfg.True)
	g.AddEdge(head, exit, cfg.False)
	g.AddEdge(body, head, cfg.Normal)
	return g, ret
}

func TestLoopConvergence(t *testing.T) {
	g, ret := pointerLoop()
	res, err := newEngine(t, quietConfig()).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.LoopHeaders != 1 {
		t.Errorf("expected one loop header, got %d", res.Stats.LoopHeaders)
	}
	bound := nullness.Analysis{}.Height() * res.Stats.LoopHeaders
	if res.Stats.HeaderRevisits > bound {
		t.Errorf("expected at most %d header revisits, got %d", bound, res.Stats.HeaderRevisits)
	}
	if res.IsProven(ret, flowexpr.Local{Name: "p"}, nullness.NonNull) {
		t.Errorf("p should not be proven after the loop")
	}
	if s := res.BlockInput(0); s == nil || s.Len() != 0 {
		t.Errorf("unexpected entry input %v", s)
	}
	if !res.BlockInput(1).Equal(dataflow.NewStore()) {
		t.Errorf("the loop header should have no fact at the fixed point, got %s", res.BlockInput(1))
	}
}

func TestNonConvergence(t *testing.T) {
	g, _ := pointerLoop()
	conf := quietConfig()
	conf.MaxIterations = 2
	res, err := newEngine(t, conf).Run(context.Background(), g)
	if !errors.Is(err, dataflow.ErrNonConvergence) || res != nil {
		t.Errorf("expected non convergence error and no result, got %v", err)
	}
}

func TestCancellation(t *testing.T) {
	g, _ := pointerLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := newEngine(t, quietConfig()).Run(ctx, g)
	if !errors.Is(err, context.Canceled) || res != nil {
		t.Errorf("expected cancellation error and no result, got %v", err)
	}
}

func TestRunAll(t *testing.T) {
	conf := quietConfig()
	conf.NumRoutines = 3
	var graphs []*cfg.Graph
	for i := 0; i < 5; i++ {
		g, _ := pointerLoop()
		graphs = append(graphs, g)
	}
	graphs = append(graphs, cfg.NewGraph("empty"))

	outcomes := newEngine(t, conf).RunAll(context.Background(), graphs)
	if len(outcomes) != len(graphs) {
		t.Fatalf("expected %d outcomes, got %d", len(graphs), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Graph != graphs[i] {
			t.Errorf("outcome %d is not in order", i)
		}
	}
	for _, o := range outcomes[:5] {
		if o.Err != nil || o.Result == nil || o.Result.Graph != o.Graph {
			t.Errorf("unexpected outcome %+v", o)
		}
	}
	if !errors.Is(outcomes[5].Err, cfg.ErrMalformedGraph) {
		t.Errorf("the empty graph should fail, got %v", outcomes[5].Err)
	}
}

func TestCallsInvalidateContractFacts(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	isEmpty := node.NewMethodInvocation(nil, q, "isEmpty", "Queue.isEmpty")
	not := node.NewConditionalNot(nil, isEmpty)
	size := node.NewMethodInvocation(nil, q, "size", "Queue.size")
	clearCall := node.NewMethodInvocation(nil, q, "clear", "Queue.clear")
	peek := node.NewMethodInvocation(nil, q, "peek", "Queue.peek")
	reset := node.NewMethodInvocation(nil, nil, "reset", "", q)
	ret := node.NewReturn(nil)
	g := ifGraph("mutate", []node.Node{q, isEmpty, not}, []node.Node{size, clearCall, peek}, []node.Node{reset, ret})

	queue := &config.TypeSpec{Name: "Queue", Methods: []string{"peek", "size"}}
	decl, err := contract.NewDeclaration("Queue.isEmpty", queue, contract.NewContract(false, "NonNull", "peek()"))
	if err != nil {
		t.Fatal(err)
	}
	sizeDecl, err := contract.NewDeclaration("Queue.size", queue)
	if err != nil {
		t.Fatal(err)
	}
	resolver := contract.MapResolver{decl.Name: decl, sizeDecl.Name: sizeDecl}
	res, err := dataflow.NewEngine(quietConfig(), nil, nullness.Analysis{}, resolver).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsProven(clearCall, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should survive the side-effect free q.size(), facts: %v", res.FactsBefore(clearCall))
	}
	if res.IsProven(peek, peekOf(q), nullness.NonNull) {
		t.Errorf("q.peek() should not survive q.clear(), facts: %v", res.FactsBefore(peek))
	}

	// facts reachable from an argument are invalidated too
	fieldGraph := ifGraph("argument",
		[]node.Node{q, node.NewFieldAccess(nil, q, "head"), node.NewNullLiteral(nil),
			node.NewNotEqualTo(nil, node.NewFieldAccess(nil, q, "head"), node.NewNullLiteral(nil))},
		[]node.Node{reset, ret}, nil)
	res, err = dataflow.NewEngine(quietConfig(), nil, nullness.Analysis{}, resolver).Run(context.Background(), fieldGraph)
	if err != nil {
		t.Fatal(err)
	}
	head := flowexpr.FieldAccess{Receiver: flowexpr.Local{Name: "q"}, Field: "head"}
	if !res.IsProven(reset, head, nullness.NonNull) {
		t.Errorf("q.head should be NonNull before reset(q), facts: %v", res.FactsBefore(reset))
	}
	if res.IsProven(ret, head, nullness.NonNull) {
		t.Errorf("q.head should not survive reset(q), facts: %v", res.FactsBefore(ret))
	}
}

func TestDiagnosticsOrderedByCallSite(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	isEmpty := node.NewMethodInvocation(nil, q, "isEmpty", "")
	first := node.NewMethodInvocation(nil, nil, "check", "", node.NewLocalVariable(nil, "a"))
	second := node.NewMethodInvocation(nil, nil, "check", "", node.NewLocalVariable(nil, "b"))
	g := ifGraph("order", []node.Node{q, isEmpty}, []node.Node{first}, []node.Node{second})
	decl := mustDeclare(t, "check", contract.NewContract(true, "NonNull", "#1"))
	res, err := newEngine(t, quietConfig(), decl).Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 2 || res.Diagnostics[0].Call != first || res.Diagnostics[1].Call != second {
		t.Errorf("expected the diagnostics of check(a) then check(b), got %v", res.Diagnostics)
	}
}
