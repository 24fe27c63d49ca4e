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
	"sort"

	"github.com/yourbasic/graph"
	"gonum.org/v1/gonum/graph/flow"
	"gonum.org/v1/gonum/graph/simple"
)

// ReversePostorder returns the nodes reachable from entry in reverse postorder of a depth-first
// traversal. Successors are explored in the order given by g, which makes the result deterministic.
func ReversePostorder(g Indexed, entry int) []int {
	if entry < 0 || entry >= g.Order() {
		return nil
	}
	visited := make([]bool, g.Order())
	var post []int

	type frame struct {
		v    int
		next int
	}
	stack := []frame{{v: entry}}
	visited[entry] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := g.Successors(top.v)
		if top.next < len(succs) {
			w := succs[top.next]
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{v: w})
			}
			continue
		}
		post = append(post, top.v)
		stack = stack[:len(stack)-1]
	}
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// CyclicComponents returns the strongly connected components of g that contain a cycle: components
// with more than one node, or a single node with a self edge.
func CyclicComponents(g Indexed) [][]int {
	var res [][]int
	for _, c := range graph.StrongComponents(iterator{g}) {
		if len(c) > 1 || hasSelfEdge(g, c[0]) {
			sort.Ints(c)
			res = append(res, c)
		}
	}
	return res
}

func hasSelfEdge(g Indexed, v int) bool {
	for _, w := range g.Successors(v) {
		if w == v {
			return true
		}
	}
	return false
}

// LoopHeaders returns the loop-entry nodes of g, sorted in increasing order.
//
// A node h is a loop header when it is the target of a back edge u -> h where h dominates u (natural
// loops), or when it belongs to a cyclic component and can be entered from outside of it (this covers
// irreducible loops, which have no dominating header).
func LoopHeaders(g Indexed, entry int) []int {
	if entry < 0 || entry >= g.Order() {
		return nil
	}
	headers := map[int]bool{}

	d := ToDirected(g)
	dt := flow.Dominators(simple.Node(entry), d)
	for u := 0; u < g.Order(); u++ {
		for _, h := range g.Successors(u) {
			if dominates(dt, h, u) {
				headers[h] = true
			}
		}
	}

	preds := Predecessors(g)
	for _, c := range CyclicComponents(g) {
		in := make(map[int]bool, len(c))
		for _, v := range c {
			in[v] = true
		}
		for _, v := range c {
			if v == entry {
				headers[v] = true
				continue
			}
			for _, p := range preds[v] {
				if !in[p] {
					headers[v] = true
					break
				}
			}
		}
	}

	res := make([]int, 0, len(headers))
	for h := range headers {
		res = append(res, h)
	}
	sort.Ints(res)
	return res
}

// dominates returns true when h dominates u in the dominator tree dt. Nodes unreachable from the root
// are only dominated by themselves.
func dominates(dt flow.DominatorTree, h, u int) bool {
	x := u
	for {
		if x == h {
			return true
		}
		idom := dt.DominatorOf(int64(x))
		if idom == nil {
			return false
		}
		x = int(idom.ID())
	}
}
