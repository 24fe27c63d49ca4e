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

package contract

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/node"
)

func TestParseTarget(t *testing.T) {
	for _, tc := range []struct {
		text  string
		kind  TargetKind
		name  string
		index int
	}{
		{"head", FieldTarget, "head", 0},
		{" peek() ", CallTarget, "peek", 0},
		{"peek ()", CallTarget, "peek", 0},
		{"#0", ParamTarget, "", 0},
		{"#12", ParamTarget, "", 12},
		{"#", InvalidTarget, "", 0},
		{"#-1", InvalidTarget, "", 0},
		{"#1a", InvalidTarget, "", 0},
		{"peek(x)", InvalidTarget, "", 0},
		{"q.head", InvalidTarget, "", 0},
		{"", InvalidTarget, "", 0},
		{"()", InvalidTarget, "", 0},
		{"#99999999999999999999999", InvalidTarget, "", 0},
	} {
		target, err := ParseTarget(tc.text)
		if target.Kind != tc.kind {
			t.Errorf("ParseTarget(%q): expected %s, got %s", tc.text, tc.kind, target.Kind)
			continue
		}
		if tc.kind == InvalidTarget {
			if !errors.Is(err, ErrInvalidTarget) || !errors.Is(target.Err(), ErrInvalidTarget) {
				t.Errorf("ParseTarget(%q): expected invalid target error, got %v", tc.text, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTarget(%q): unexpected error %v", tc.text, err)
		}
		if target.Name != tc.name || target.Index != tc.index {
			t.Errorf("ParseTarget(%q): unexpected target %+v", tc.text, target)
		}
	}
}

func queueType() *config.TypeSpec {
	return &config.TypeSpec{Name: "Queue", Fields: []string{"head"}, Methods: []string{"peek"}}
}

func keys(exprs []flowexpr.Expr) []string {
	var res []string
	for _, e := range exprs {
		res = append(res, flowexpr.Key(e))
	}
	return res
}

func TestResolve(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	a := node.NewLocalVariable(nil, "a")
	b := node.NewLocalVariable(nil, "b")

	c := NewContract(false, "NonNull", "peek()", "head", "#0")
	if _, err := NewDeclaration("Queue.contains", queueType(), c); err != nil {
		t.Fatal(err)
	}
	exprs, errs := c.Resolve(node.NewMethodInvocation(nil, q, "contains", "Queue.contains", a))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if got := keys(exprs); len(got) != 3 || got[0] != "q.peek()" || got[1] != "q.head" || got[2] != "a" {
		t.Errorf("unexpected resolution %v", got)
	}

	// the same contract resolves against another call site
	exprs, _ = c.Resolve(node.NewMethodInvocation(nil, b, "contains", "Queue.contains", q))
	if got := keys(exprs); len(got) != 3 || got[0] != "b.peek()" || got[2] != "q" {
		t.Errorf("unexpected resolution %v", got)
	}

	// untrackable arguments are skipped without error
	sum := node.NewNumericalAddition(nil, a, b)
	exprs, errs = c.Resolve(node.NewMethodInvocation(nil, q, "contains", "Queue.contains", sum))
	if len(errs) != 0 || len(exprs) != 2 {
		t.Errorf("expected two expressions and no error, got %v %v", keys(exprs), errs)
	}
}

func TestResolveErrors(t *testing.T) {
	q := node.NewLocalVariable(nil, "q")
	a := node.NewLocalVariable(nil, "a")
	b := node.NewLocalVariable(nil, "b")

	c := NewContract(true, "NonNull", "#2", "size()", "tail", "q.head")
	if _, err := NewDeclaration("Queue.check", queueType(), c); err != nil {
		t.Fatal(err)
	}
	exprs, errs := c.Resolve(node.NewMethodInvocation(nil, q, "check", "Queue.check", a, b))
	if len(exprs) != 0 {
		t.Errorf("expected no expression, got %v", keys(exprs))
	}
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %v", errs)
	}
	expectedTargets := []string{"#2", "size()", "tail", "q.head"}
	for i, err := range errs {
		if err.Target != expectedTargets[i] || err.Declaration != "Queue.check" || !err.Result {
			t.Errorf("unexpected error %+v", err)
		}
	}

	// field targets need a receiver
	f := NewContract(true, "NonNull", "head")
	_, errs = f.Resolve(node.NewMethodInvocation(nil, nil, "check", "", a))
	if len(errs) != 1 || errs[0].Declaration != "check" {
		t.Errorf("expected a missing receiver error, got %v", errs)
	}
}

func TestDeclaration(t *testing.T) {
	tc := NewContract(true, "NonNull", "#0")
	fc := NewContract(false, "NonNull", "peek()")
	d, err := NewDeclaration("Queue.isEmpty", nil, tc, fc)
	if err != nil {
		t.Fatal(err)
	}
	if d.ContractFor(true) != tc || d.ContractFor(false) != fc || tc.Declaration() != d {
		t.Errorf("contracts not attached to the declaration")
	}
	if cs := d.Contracts(); len(cs) != 2 || cs[0] != tc {
		t.Errorf("unexpected contracts %v", cs)
	}
	_, err = NewDeclaration("Queue.isEmpty", nil, tc, NewContract(true, "NonNull", "#1"))
	if !errors.Is(err, ErrDuplicateContract) {
		t.Errorf("expected duplicate contract error, got %v", err)
	}

	fresh := NewContract(true, "NonNull", "#1")
	_, err = NewDeclaration("Stack.isEmpty", nil, fresh, fc)
	if !errors.Is(err, ErrBoundContract) {
		t.Errorf("expected bound contract error, got %v", err)
	}
	if fc.Declaration() != d || fresh.Declaration() != nil {
		t.Errorf("a failed declaration should not rebind its contracts")
	}
}

func TestContractCheck(t *testing.T) {
	c := NewContract(false, "NonNull", "peek()", "tail", "size()", "x.y", "#0")
	if _, err := NewDeclaration("Queue.isEmpty", queueType(), c); err != nil {
		t.Fatal(err)
	}
	errs := c.Check()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	if !errors.Is(errs[2], ErrInvalidTarget) {
		t.Errorf("x.y should be an invalid target, got %v", errs[2])
	}
	if !strings.Contains(errs[0].Error(), "no field tail") || !strings.Contains(errs[1].Error(), "no method size") {
		t.Errorf("unexpected errors %v", errs)
	}
	if errs := NewContract(true, "NonNull", "tail").Check(); len(errs) != 0 {
		t.Errorf("members cannot be checked without a receiver type, got %v", errs)
	}
}

func testConfig() *config.Config {
	cfg := config.NewDefault()
	cfg.Types = []config.TypeSpec{*queueType()}
	cfg.Contracts = []config.DeclarationSpec{
		{
			Name:     "Queue.isEmpty",
			Receiver: "Queue",
			Postconditions: []config.PostconditionSpec{
				{Result: false, Qualifier: "NonNull", Expressions: []string{"peek()"}},
			},
		},
		{
			Name: "Stack.isEmpty",
			Postconditions: []config.PostconditionSpec{
				{Result: false, Qualifier: "NonNull", Expressions: []string{"top()"}},
			},
		},
		{
			Name: "checkNotNull",
			Postconditions: []config.PostconditionSpec{
				{Result: true, Qualifier: "NonNull", Expressions: []string{"#0"}},
			},
		},
		{
			Name: "Map.containsKey",
			Postconditions: []config.PostconditionSpec{
				{Result: true, Qualifier: "NonNull", Expressions: []string{"#0"}},
			},
		},
	}
	return cfg
}

func TestCacheLookup(t *testing.T) {
	c, err := NewCache(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	q := node.NewLocalVariable(nil, "q")
	x := node.NewLocalVariable(nil, "x")
	for _, tc := range []struct {
		call     *node.MethodInvocation
		expected string
	}{
		{node.NewMethodInvocation(nil, q, "isEmpty", "Queue.isEmpty"), "Queue.isEmpty"},
		{node.NewMethodInvocation(nil, q, "isEmpty", "Stack.isEmpty"), "Stack.isEmpty"},
		{node.NewMethodInvocation(nil, q, "isEmpty", "List.isEmpty"), ""},
		// ambiguous method name
		{node.NewMethodInvocation(nil, q, "isEmpty", ""), ""},
		{node.NewMethodInvocation(nil, q, "containsKey", ""), "Map.containsKey"},
		{node.NewMethodInvocation(nil, nil, "checkNotNull", "", x), "checkNotNull"},
		{node.NewMethodInvocation(nil, nil, "checkNotNull", "util.checkNotNull", x), "checkNotNull"},
		{node.NewMethodInvocation(nil, q, "peek", ""), ""},
	} {
		d := c.Lookup(tc.call)
		if tc.expected == "" {
			if d != nil {
				t.Errorf("%s: expected no declaration, got %s", tc.call, d.Name)
			}
			continue
		}
		if d == nil || d.Name != tc.expected {
			t.Errorf("%s: expected declaration %s, got %v", tc.call, tc.expected, d)
		}
	}
	if d := c.Declaration("Queue.isEmpty"); d.ReceiverType == nil || d.ReceiverType.Name != "Queue" {
		t.Errorf("receiver type not resolved")
	}
	if names := c.Names(); len(names) != 4 || names[0] != "Map.containsKey" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestCacheParsesOnce(t *testing.T) {
	c, err := NewCache(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	call := node.NewMethodInvocation(nil, node.NewLocalVariable(nil, "q"), "isEmpty", "Queue.isEmpty")
	decls := make([]*Declaration, 16)
	var wg sync.WaitGroup
	for i := range decls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decls[i] = c.Lookup(call)
		}(i)
	}
	wg.Wait()
	for _, d := range decls {
		if d == nil || d != decls[0] {
			t.Fatalf("lookups should return the same declaration")
		}
	}
	if c.parsed != 1 {
		t.Errorf("expected one parse, got %d", c.parsed)
	}
}

func TestNewCacheErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Contracts = append(cfg.Contracts, cfg.Contracts[0])
	if _, err := NewCache(cfg); err == nil {
		t.Errorf("expected error for duplicate declaration")
	}

	cfg = testConfig()
	cfg.Contracts[0].Postconditions = append(cfg.Contracts[0].Postconditions,
		config.PostconditionSpec{Result: false, Qualifier: "NonNull", Expressions: []string{"head"}})
	if _, err := NewCache(cfg); !errors.Is(err, ErrDuplicateContract) {
		t.Errorf("expected duplicate contract error, got %v", err)
	}

	cfg = testConfig()
	cfg.Types = append(cfg.Types, cfg.Types[0])
	if _, err := NewCache(cfg); err == nil {
		t.Errorf("expected error for duplicate type")
	}
}

func TestMapResolver(t *testing.T) {
	d, _ := NewDeclaration("isEmpty", nil, NewContract(false, "NonNull", "peek()"))
	r := MapResolver{"isEmpty": d}
	if r.Lookup(node.NewMethodInvocation(nil, node.NewLocalVariable(nil, "q"), "isEmpty", "")) != d {
		t.Errorf("expected lookup by method name")
	}
	if r.Lookup(node.NewMethodInvocation(nil, node.NewLocalVariable(nil, "q"), "size", "")) != nil {
		t.Errorf("unexpected declaration")
	}
}

func TestIsPure(t *testing.T) {
	c, err := NewCache(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	q := node.NewLocalVariable(nil, "q")
	for _, tc := range []struct {
		call *node.MethodInvocation
		pure bool
	}{
		{node.NewMethodInvocation(nil, q, "peek", "Queue.peek"), true},
		{node.NewMethodInvocation(nil, q, "peek", ""), true},
		{node.NewMethodInvocation(nil, q, "peek", "Stack.peek"), false},
		{node.NewMethodInvocation(nil, q, "isEmpty", "Queue.isEmpty"), false},
		{node.NewMethodInvocation(nil, q, "clear", ""), false},
		{node.NewMethodInvocation(nil, nil, "peek", "", q), false},
	} {
		if pure := c.IsPure(tc.call); pure != tc.pure {
			t.Errorf("%s (target %q): expected pure=%t", tc.call, tc.call.Target(), tc.pure)
		}
	}

	d, err := NewDeclaration("Queue.peek", queueType())
	if err != nil {
		t.Fatal(err)
	}
	r := MapResolver{"Queue.peek": d}
	if !r.IsPure(node.NewMethodInvocation(nil, q, "peek", "Queue.peek")) {
		t.Errorf("declared method peek should be pure")
	}
	if r.IsPure(node.NewMethodInvocation(nil, q, "clear", "Queue.clear")) {
		t.Errorf("undeclared method clear should not be pure")
	}
}
