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

package cfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/awslabs/qualflow/analysis/node"
)

// whileLoop builds the graph of
//
//	for i < n { i = i + 1 }; return i
func whileLoop() *Graph {
	i := node.NewLocalVariable(nil, "i")
	n := node.NewLocalVariable(nil, "n")
	g := NewGraph("loop", "i", "n")
	entry := g.NewBlock("entry")
	head := g.NewBlock("for.loop", node.NewLessThan(nil, i, n))
	body := g.NewBlock("for.body", node.NewAssignment(nil, i, node.NewNumericalAddition(nil, i, node.NewLocalVariable(nil, "one"))))
	exit := g.NewBlock("for.done", node.NewReturn(nil, i))
	g.AddEdge(entry, head, Normal)
	g.AddEdge(head, body, True)
	g.AddEdge(head, exit, False)
	g.AddEdge(body, head, Normal)
	return g
}

func TestGraphStructure(t *testing.T) {
	g := whileLoop()
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	head := g.Blocks[1]
	if !head.IsConditional() || head.Condition().String() != "(i < n)" {
		t.Errorf("block 1 should be conditional on (i < n)")
	}
	if g.Blocks[2].IsConditional() || g.Blocks[2].Condition() != nil {
		t.Errorf("block 2 should not be conditional")
	}
	if len(head.Preds) != 2 {
		t.Errorf("expected two predecessors for the loop header, got %v", head.Preds)
	}
	headers := g.LoopHeaders()
	if len(headers) != 1 || headers[0] != 1 {
		t.Errorf("expected loop header 1, got %v", headers)
	}
	rpo := g.ReversePostorder()
	if len(rpo) != 4 || rpo[0] != 0 || rpo[1] != 1 {
		t.Errorf("unexpected reverse postorder %v", rpo)
	}
	locs := g.Locations()
	if loc := locs[head.Nodes[0]]; loc.Block != 1 || loc.Index != 0 {
		t.Errorf("unexpected location %v", loc)
	}
}

func TestValidateErrors(t *testing.T) {
	g := whileLoop()
	g.AddEdge(g.Blocks[1], g.Blocks[3], Normal)
	if err := g.Validate(); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("conditional block with normal edge should be malformed, got %v", err)
	}

	g = NewGraph("empty")
	if err := g.Validate(); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("graph without blocks should be malformed")
	}

	g = NewGraph("nocond")
	a := g.NewBlock("")
	g.AddEdge(a, g.NewBlock(""), True)
	g.AddEdge(a, g.NewBlock(""), False)
	if err := g.Validate(); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("conditional block without condition should be malformed")
	}

	g = whileLoop()
	g.Blocks[0].Succs = append(g.Blocks[0].Succs, Edge{Kind: Exceptional, To: 7})
	if err := g.Validate(); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("edge out of range should be malformed")
	}
}

func TestPrint(t *testing.T) {
	g := whileLoop()
	var b strings.Builder
	if err := Fprint(&b, g); err != nil {
		t.Fatal(err)
	}
	expected := `func loop(i, n):
.0: entry (entry)
	-> .1
.1: for.loop
	(i < n)
	-> true .2, false .3
.2: for.body
	i = (i + one)
	-> .1
.3: for.done
	return i
`
	if b.String() != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", b.String(), expected)
	}
}
