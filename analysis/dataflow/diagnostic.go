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

package dataflow

import (
	"fmt"
	"go/token"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/node"
	"golang.org/x/exp/slices"
)

// DiagnosticKind is the kind of a diagnostic reported by the engine
type DiagnosticKind uint8

const (
	// MalformedContract diagnostics report contract targets that could not be resolved at a call site
	MalformedContract DiagnosticKind = iota
)

func (k DiagnosticKind) String() string {
	switch k {
	case MalformedContract:
		return "malformed-contract"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", uint8(k))
}

// A Diagnostic reports a problem found while analyzing a procedure. The refinement of the call site has been
// skipped.
type Diagnostic struct {
	Kind DiagnosticKind

	// Procedure is the name of the procedure analyzed
	Procedure string

	// Pos is the position of the call site, invalid for synthesized calls or graphs without file set
	Pos token.Position

	// Call is the call site
	Call *node.MethodInvocation

	// Declaration is the name of the declaration of the callee
	Declaration string

	// Result is the result value of the contract
	Result bool

	// Target is the text of the target that failed to resolve. It is empty when the whole contract failed, for
	// instance because of an unknown qualifier.
	Target string

	// Reason describes the failure
	Reason string
}

func (d Diagnostic) String() string {
	loc := d.Procedure
	if d.Pos.IsValid() {
		loc = d.Pos.String()
	}
	return fmt.Sprintf("%s: %s: call %s, contract of %s for result %t, target %q: %s",
		loc, d.Kind, d.Call, d.Declaration, d.Result, d.Target, d.Reason)
}

type diagnosticKey struct {
	call   *node.MethodInvocation
	result bool
	target string
}

// sortDiagnostics orders the diagnostics by the location of their call site in g, block by block
func sortDiagnostics(g *cfg.Graph, diagnostics []Diagnostic) {
	if len(diagnostics) < 2 {
		return
	}
	locs := g.Locations()
	slices.SortStableFunc(diagnostics, func(a, b Diagnostic) bool {
		la, lb := locs[a.Call], locs[b.Call]
		if la.Block != lb.Block {
			return la.Block < lb.Block
		}
		return la.Index < lb.Index
	})
}
