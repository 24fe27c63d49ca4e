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

package graphutil

import (
	"reflect"
	"testing"
)

func TestReversePostorderDiamond(t *testing.T) {
	//   0
	//  / \
	// 1   2
	//  \ /
	//   3
	g := AdjacencyList{{1, 2}, {3}, {3}, {}}
	rpo := ReversePostorder(g, 0)
	if !reflect.DeepEqual(rpo, []int{0, 2, 1, 3}) {
		t.Errorf("unexpected reverse postorder %v", rpo)
	}
	if hs := LoopHeaders(g, 0); len(hs) != 0 {
		t.Errorf("a diamond has no loop headers, got %v", hs)
	}
}

func TestReversePostorderSkipsUnreachable(t *testing.T) {
	g := AdjacencyList{{1}, {}, {1}}
	rpo := ReversePostorder(g, 0)
	if !reflect.DeepEqual(rpo, []int{0, 1}) {
		t.Errorf("unexpected reverse postorder %v", rpo)
	}
}

func TestLoopHeaders(t *testing.T) {
	tests := []struct {
		name    string
		g       AdjacencyList
		headers []int
	}{
		{
			name:    "while loop",
			g:       AdjacencyList{{1}, {2, 3}, {1}, {}},
			headers: []int{1},
		},
		{
			name:    "self loop",
			g:       AdjacencyList{{1}, {1, 2}, {}},
			headers: []int{1},
		},
		{
			name:    "nested loops",
			g:       AdjacencyList{{1}, {2, 5}, {3, 1}, {2, 4}, {1}, {}},
			headers: []int{1, 2},
		},
		{
			// 0 -> 1, 0 -> 2, 1 <-> 2: neither 1 nor 2 dominates the other
			name:    "irreducible",
			g:       AdjacencyList{{1, 2}, {2, 3}, {1}, {}},
			headers: []int{1, 2},
		},
		{
			name:    "entry in loop",
			g:       AdjacencyList{{1}, {0, 2}, {}},
			headers: []int{0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := LoopHeaders(tt.g, 0)
			if !reflect.DeepEqual(hs, tt.headers) {
				t.Errorf("LoopHeaders = %v, want %v", hs, tt.headers)
			}
		})
	}
}

func TestCyclicComponents(t *testing.T) {
	g := AdjacencyList{{1}, {2}, {1, 3}, {3}}
	cs := CyclicComponents(g)
	if len(cs) != 2 {
		t.Fatalf("expected two cyclic components, got %v", cs)
	}
	found := map[string]bool{}
	for _, c := range cs {
		if reflect.DeepEqual(c, []int{1, 2}) {
			found["loop"] = true
		}
		if reflect.DeepEqual(c, []int{3}) {
			found["self"] = true
		}
	}
	if !found["loop"] || !found["self"] {
		t.Errorf("unexpected components %v", cs)
	}
}

func TestPredecessorsDeduplicates(t *testing.T) {
	g := AdjacencyList{{1, 1}, {}}
	preds := Predecessors(g)
	if !reflect.DeepEqual(preds[1], []int{0}) {
		t.Errorf("unexpected predecessors %v", preds)
	}
}
