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
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/node"
	"github.com/awslabs/qualflow/internal/funcutil"
)

// invalidate removes from the result of call the facts about the state reachable from its receiver and its
// arguments, unless the resolver declares the callee free of side effects. The call may have modified that
// state: a fact refined before the call, by a contract or a nil check, cannot be trusted after it.
// Locals and constants are not affected.
func (s *runState) invalidate(call *node.MethodInvocation, res TransferResult) TransferResult {
	if s.engine.Resolver != nil && s.engine.Resolver.IsPure(call) {
		return res
	}
	roots := callRoots(call)
	if len(roots) == 0 {
		return res
	}
	stale := func(e flowexpr.Expr) bool {
		return funcutil.Exists(roots, func(root flowexpr.Expr) bool { return flowexpr.ReadsThrough(e, root) })
	}
	if !res.IsConditional() {
		return RegularResult(res.Value, without(res.RegularStore(), stale))
	}
	return ConditionalResult(res.Value, without(res.ThenStore(), stale), without(res.ElseStore(), stale))
}

// callRoots returns the flow expressions whose reachable state the callee of call can modify. The operand of an
// address-of argument is a root.
func callRoots(call *node.MethodInvocation) []flowexpr.Expr {
	var roots []flowexpr.Expr
	for _, op := range call.Operands() {
		if addr, ok := op.(*node.AddressOf); ok {
			op = addr.Operand()
		}
		if e, ok := flowexpr.FromNode(op); ok && !flowexpr.IsConstant(e) {
			roots = append(roots, e)
		}
	}
	return roots
}

// without returns s without the facts satisfying stale. s is returned unchanged when no fact is stale.
func without(s *Store, stale func(flowexpr.Expr) bool) *Store {
	for _, f := range s.facts {
		if stale(f.Expr) {
			s = s.Clone()
			s.RemoveIf(stale)
			return s
		}
	}
	return s
}
