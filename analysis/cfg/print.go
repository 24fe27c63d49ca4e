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
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the graph to w
func Fprint(w io.Writer, g *Graph) error {
	_, err := io.WriteString(w, g.String())
	return err
}

// String returns a textual representation of the graph. Each block is printed with its nodes and successors:
//
//	func f(q):
//	.0: entry
//		q.isEmpty()
//		-> true .1, false .2
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString("func ")
	if g.Receiver != "" {
		fmt.Fprintf(&b, "(%s) ", g.Receiver)
	}
	fmt.Fprintf(&b, "%s(%s):\n", g.Name, strings.Join(g.Params, ", "))
	for _, block := range g.Blocks {
		fmt.Fprintf(&b, ".%d:", block.Index)
		if block.Comment != "" {
			fmt.Fprintf(&b, " %s", block.Comment)
		}
		if block.Index == g.Entry {
			b.WriteString(" (entry)")
		}
		b.WriteByte('\n')
		for _, n := range block.Nodes {
			fmt.Fprintf(&b, "\t%s\n", n)
		}
		if len(block.Succs) > 0 {
			b.WriteString("\t-> ")
			for i, e := range block.Succs {
				if i > 0 {
					b.WriteString(", ")
				}
				if e.Kind != Normal {
					fmt.Fprintf(&b, "%s ", e.Kind)
				}
				fmt.Fprintf(&b, ".%d", e.To)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
