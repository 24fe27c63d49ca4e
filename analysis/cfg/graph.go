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

// Package cfg defines the control-flow graphs consumed by the dataflow engine: basic blocks of nodes connected
// by labeled edges.
package cfg

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/awslabs/qualflow/analysis/node"
	"github.com/awslabs/qualflow/internal/graphutil"
)

// EdgeKind labels the edges of a graph
type EdgeKind uint8

const (
	// Normal edges are taken unconditionally
	Normal EdgeKind = iota
	// True edges are taken when the condition of the block evaluates to true
	True
	// False edges are taken when the condition of the block evaluates to false
	False
	// Exceptional edges are taken when the block is exited abnormally (e.g. a panic)
	Exceptional
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case True:
		return "true"
	case False:
		return "false"
	case Exceptional:
		return "exceptional"
	}
	return fmt.Sprintf("EdgeKind(%d)", uint8(k))
}

// Edge is an edge leaving a block
type Edge struct {
	Kind EdgeKind
	To   int
}

// A Block is a maximal sequence of nodes executed in order.
type Block struct {
	// Index of the block in the Blocks of its graph
	Index int

	// Comment describes the origin of the block, e.g. "for.body". Only used for printing.
	Comment string

	// Nodes of the block, in execution order
	Nodes []node.Node

	// Succs are the edges leaving the block
	Succs []Edge

	// Preds are the indexes of the predecessors of the block. Each predecessor appears once.
	Preds []int
}

// IsConditional returns true when the block ends with a condition, i.e. it has true and false successors.
func (b *Block) IsConditional() bool {
	for _, e := range b.Succs {
		if e.Kind == True || e.Kind == False {
			return true
		}
	}
	return false
}

// Condition returns the last node of a conditional block, which is the condition, or nil.
func (b *Block) Condition() node.Node {
	if !b.IsConditional() || len(b.Nodes) == 0 {
		return nil
	}
	return b.Nodes[len(b.Nodes)-1]
}

// Graph is the control-flow graph of a procedure
type Graph struct {
	// Name of the procedure
	Name string

	// Receiver is the name of the receiver of a method, or "" for functions
	Receiver string

	// Params are the names of the parameters of the procedure
	Params []string

	// Blocks of the graph; Blocks[i].Index == i
	Blocks []*Block

	// Entry is the index of the entry block
	Entry int

	// Fset is the file set used to compute positions of the syntax of the nodes. It may be nil.
	Fset *token.FileSet
}

// NewGraph returns an empty graph for the procedure name
func NewGraph(name string, params ...string) *Graph {
	return &Graph{Name: name, Params: params}
}

// NewBlock adds a new block containing nodes to the graph and returns it
func (g *Graph) NewBlock(comment string, nodes ...node.Node) *Block {
	b := &Block{Index: len(g.Blocks), Comment: comment, Nodes: nodes}
	g.Blocks = append(g.Blocks, b)
	return b
}

// AddEdge adds an edge of kind k from block from to block to, and updates the predecessors of to.
func (g *Graph) AddEdge(from, to *Block, k EdgeKind) {
	from.Succs = append(from.Succs, Edge{Kind: k, To: to.Index})
	for _, p := range to.Preds {
		if p == from.Index {
			return
		}
	}
	to.Preds = append(to.Preds, from.Index)
}

// Order returns the number of blocks. Graph implements graphutil.Indexed.
func (g *Graph) Order() int {
	return len(g.Blocks)
}

// Successors returns the indexes of the successors of the block v.
func (g *Graph) Successors(v int) []int {
	succs := make([]int, len(g.Blocks[v].Succs))
	for i, e := range g.Blocks[v].Succs {
		succs[i] = e.To
	}
	return succs
}

// ReversePostorder returns the blocks reachable from the entry in reverse postorder
func (g *Graph) ReversePostorder() []int {
	return graphutil.ReversePostorder(g, g.Entry)
}

// LoopHeaders returns the indexes of the blocks that are entries of loops
func (g *Graph) LoopHeaders() []int {
	return graphutil.LoopHeaders(g, g.Entry)
}

// Position returns the position of the syntax of n in the graph's file set, or an invalid position.
func (g *Graph) Position(n node.Node) token.Position {
	pos := node.Pos(n)
	if g.Fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	return g.Fset.Position(pos)
}

// ErrMalformedGraph is returned by Validate when the structure of a graph is invalid
var ErrMalformedGraph = errors.New("malformed graph")

// Validate checks the structural invariants of the graph: the entry and the edges refer to existing blocks,
// block indexes are consistent, and conditional blocks have exactly one true edge, one false edge, no other
// normal edge, and a condition.
func (g *Graph) Validate() error {
	if len(g.Blocks) == 0 {
		return fmt.Errorf("%w: %s has no blocks", ErrMalformedGraph, g.Name)
	}
	if g.Entry < 0 || g.Entry >= len(g.Blocks) {
		return fmt.Errorf("%w: %s has entry %d out of range", ErrMalformedGraph, g.Name, g.Entry)
	}
	for i, b := range g.Blocks {
		if b == nil || b.Index != i {
			return fmt.Errorf("%w: %s has inconsistent block index at %d", ErrMalformedGraph, g.Name, i)
		}
		trueEdges, falseEdges, normalEdges := 0, 0, 0
		for _, e := range b.Succs {
			if e.To < 0 || e.To >= len(g.Blocks) {
				return fmt.Errorf("%w: %s block %d has edge to %d", ErrMalformedGraph, g.Name, i, e.To)
			}
			switch e.Kind {
			case True:
				trueEdges++
			case False:
				falseEdges++
			case Normal:
				normalEdges++
			}
		}
		if trueEdges+falseEdges == 0 {
			continue
		}
		if trueEdges != 1 || falseEdges != 1 || normalEdges != 0 {
			return fmt.Errorf("%w: %s block %d has %d true, %d false and %d normal edges",
				ErrMalformedGraph, g.Name, i, trueEdges, falseEdges, normalEdges)
		}
		if len(b.Nodes) == 0 {
			return fmt.Errorf("%w: %s block %d is conditional but has no condition", ErrMalformedGraph, g.Name, i)
		}
	}
	return nil
}

// NodeLocation is the location of a node in a graph
type NodeLocation struct {
	Block int
	Index int
}

// Locations maps every node of the blocks of g to its location. Operands that are not elements of a block
// are not included.
func (g *Graph) Locations() map[node.Node]NodeLocation {
	locs := make(map[node.Node]NodeLocation)
	for _, b := range g.Blocks {
		for i, n := range b.Nodes {
			locs[n] = NodeLocation{Block: b.Index, Index: i}
		}
	}
	return locs
}
