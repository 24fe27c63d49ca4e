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

// Package analysistest loads annotated Go test programs and checks the facts computed by an analysis against the
// expectations written in their comments.
//
// An expectation is a comment of the form "@Q(e1, e2)" where Q is a qualifier of the analysis: each expression
// must be proven to have a value at least as specific as Q before the first node of the line. The comment
// "@Unproven(e1, e2)" expects that nothing is known about the expressions.
package analysistest

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/contract"
	"github.com/awslabs/qualflow/analysis/dataflow"
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/lower"
	"github.com/awslabs/qualflow/analysis/node"
	"github.com/awslabs/qualflow/internal/funcutil"
)

// Unproven is the name of the expectations of expressions without facts
const Unproven = "Unproven"

// LoadTest lowers the functions of the file main.go in the directory dir, and loads the config.yaml of dir when
// there is one. It also returns the expectations written in the comments of main.go.
func LoadTest(t *testing.T, dir string) ([]*cfg.Graph, *config.Config, []Expectation) {
	t.Helper()
	fset := token.NewFileSet()
	filename := filepath.Join(dir, "main.go")
	src, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("error reading %s: %v", filename, err)
	}
	graphs, err := lower.Source(fset, filename, src)
	if err != nil {
		t.Fatalf("error lowering %s: %v", filename, err)
	}
	conf := config.NewDefault()
	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		conf, err = config.Load(configFile)
		if err != nil {
			t.Fatalf("error loading config %s: %v", configFile, err)
		}
	}
	// comments are parsed separately; expectations only use file names and lines
	commentSet := token.NewFileSet()
	file, err := parser.ParseFile(commentSet, filename, src, parser.ParseComments)
	if err != nil {
		t.Fatalf("error parsing %s: %v", filename, err)
	}
	return graphs, conf, GetExpectations(commentSet, file)
}

// LPos is a position without column
type LPos struct {
	Filename string
	Line     int
}

func (p LPos) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// RemoveColumn returns the line position of pos
func RemoveColumn(pos token.Position) LPos {
	return LPos{Line: pos.Line, Filename: pos.Filename}
}

// Expectation is a set of facts expected, or expected to be unknown, before the first node of a line
type Expectation struct {
	Pos       LPos
	Qualifier string
	Exprs     []string
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s: @%s(%s)", e.Pos, e.Qualifier, strings.Join(e.Exprs, ", "))
}

// ExpectationRegex matches annotations of the form "@Qualifier(e1, e2)". Expressions can contain calls without
// arguments.
var ExpectationRegex = regexp.MustCompile(`@(\w+)\(((?:[^()]|\(\))*)\)`)

// GetExpectations returns the expectations written in the comments of file
func GetExpectations(fset *token.FileSet, file *ast.File) []Expectation {
	if file == nil {
		return nil
	}
	var expectations []Expectation
	for _, group := range file.Comments {
		for _, c := range group.List {
			pos := RemoveColumn(fset.Position(c.Pos()))
			for _, m := range ExpectationRegex.FindAllStringSubmatch(c.Text, -1) {
				exprs := funcutil.Map(strings.Split(m[2], ","), strings.TrimSpace)
				expectations = append(expectations, Expectation{
					Pos:       pos,
					Qualifier: m[1],
					Exprs:     funcutil.Filter(exprs, func(s string) bool { return s != "" }),
				})
			}
		}
	}
	return expectations
}

// Run analyzes every graph with analysis, using the contracts of conf, and fails the test if some analysis fails.
func Run(t *testing.T, conf *config.Config, analysis dataflow.Analysis, graphs []*cfg.Graph) []*dataflow.Result {
	t.Helper()
	cache, err := contract.NewCache(conf)
	if err != nil {
		t.Fatalf("invalid contracts: %v", err)
	}
	engine := dataflow.NewEngine(conf, nil, analysis, cache)
	var results []*dataflow.Result
	for _, outcome := range engine.RunAll(context.Background(), graphs) {
		if outcome.Err != nil {
			t.Errorf("analysis of %s failed: %v", outcome.Graph.Name, outcome.Err)
			continue
		}
		for _, d := range outcome.Result.Diagnostics {
			t.Errorf("unexpected diagnostic: %s", d)
		}
		results = append(results, outcome.Result)
	}
	return results
}

// CheckExpectations checks every expectation against the facts holding before the first reached node of its
// line. Qualifiers are mapped to values with analysis.ValueFor.
func CheckExpectations(t *testing.T, analysis dataflow.Analysis, results []*dataflow.Result, expectations []Expectation) {
	t.Helper()
	for _, exp := range expectations {
		res, n := firstNodeOfLine(results, exp.Pos)
		if n == nil {
			t.Errorf("%s: no reachable node on the line", exp)
			continue
		}
		facts := map[string]dataflow.Value{}
		for _, f := range res.FactsBefore(n) {
			facts[flowexpr.Key(f.Expr)] = f.Value
		}
		if exp.Qualifier == Unproven {
			for _, e := range exp.Exprs {
				if v, ok := facts[e]; ok {
					t.Errorf("%s: %s should be unknown before %s, got %s", exp, e, n, v)
				}
			}
			continue
		}
		want, ok := analysis.ValueFor(exp.Qualifier)
		if !ok {
			t.Errorf("%s: unknown qualifier for %s analysis", exp, analysis.Name())
			continue
		}
		for _, e := range exp.Exprs {
			if v, ok := facts[e]; !ok || !dataflow.IsBelow(v, want) {
				t.Errorf("%s: %s should be %s before %s, facts: %v", exp, e, want, n, res.FactsBefore(n))
			}
		}
	}
}

// firstNodeOfLine returns the first node on the line of pos that has been reached by the analysis, with its result
func firstNodeOfLine(results []*dataflow.Result, pos LPos) (*dataflow.Result, node.Node) {
	for _, res := range results {
		g := res.Graph
		for _, b := range g.Blocks {
			for _, n := range b.Nodes {
				if n.Tree() != nil && res.Reached(n) && RemoveColumn(g.Position(n)) == pos {
					return res, n
				}
			}
		}
	}
	return nil, nil
}
