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

// Package graphutil contains graph algorithms used by the dataflow engine: orderings of blocks and
// identification of loop-entry blocks. Graphs are given as indexed adjacency lists and converted
// to the representations expected by gonum and yourbasic/graph.
package graphutil

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Indexed is a directed graph whose nodes are the integers 0 <= v < Order().
type Indexed interface {
	// Order returns the number of nodes in the graph
	Order() int

	// Successors returns the targets of the edges leaving v. Duplicates are allowed.
	Successors(v int) []int
}

// AdjacencyList is the simplest Indexed graph: AdjacencyList[v] lists the successors of v.
type AdjacencyList [][]int

// Order returns the number of nodes
func (a AdjacencyList) Order() int { return len(a) }

// Successors returns the successors of v
func (a AdjacencyList) Successors(v int) []int { return a[v] }

// Predecessors computes the reverse adjacency of g. Each predecessor appears once per node.
func Predecessors(g Indexed) [][]int {
	preds := make([][]int, g.Order())
	seen := make(map[[2]int]bool)
	for v := 0; v < g.Order(); v++ {
		for _, w := range g.Successors(v) {
			if seen[[2]int{v, w}] {
				continue
			}
			seen[[2]int{v, w}] = true
			preds[w] = append(preds[w], v)
		}
	}
	return preds
}

// ToDirected converts g into a gonum directed graph where node ids are the indexes of g.
// Self edges are not representable in a simple graph and are dropped; callers interested in
// self loops must inspect g directly.
func ToDirected(g Indexed) *simple.DirectedGraph {
	d := simple.NewDirectedGraph()
	for v := 0; v < g.Order(); v++ {
		d.AddNode(simple.Node(v))
	}
	for v := 0; v < g.Order(); v++ {
		for _, w := range g.Successors(v) {
			if v == w || d.HasEdgeFromTo(int64(v), int64(w)) {
				continue
			}
			d.SetEdge(d.NewEdge(simple.Node(v), simple.Node(w)))
		}
	}
	return d
}

// iterator implements yourbasic's graph.Iterator over an Indexed graph
type iterator struct {
	g Indexed
}

// Order implements the graph.Iterator interface
func (it iterator) Order() int {
	return it.g.Order()
}

// Visit implements the graph.Iterator interface
func (it iterator) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range it.g.Successors(v) {
		if do(w, 1) {
			return true
		}
	}
	return false
}
