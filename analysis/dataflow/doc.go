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

/*
The dataflow package implements the flow-sensitive propagation of facts over the control-flow graph of a procedure.
Facts map flow expressions (see package flowexpr) to values of the lattice of an [Analysis]; the engine computes, for
every node of the graph, the facts that hold before and after the node.

An analysis is run on a graph by an [Engine], which is built from a configuration, a logger, the analysis and a
resolver for the contracts of the callees:

	cache, err := contract.NewCache(cfg)
	engine := dataflow.NewEngine(cfg, logger, nullness.Analysis{}, cache)
	result, err := engine.Run(ctx, graph)

At every call whose callee has conditional postconditions, the engine refines the facts flowing to the true
successors with the postcondition for the result true, and the facts flowing to the false successors with the
postcondition for the result false. Postconditions that cannot be resolved at a call site are reported in the
Diagnostics of the [Result]; the rest of the procedure is analyzed normally.

To analyze several procedures in parallel, use [Engine.RunAll].
*/
package dataflow
