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

package lower

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"

	"github.com/awslabs/qualflow/analysis/cfg"
	"golang.org/x/tools/go/packages"
)

// PkgLoadMode is the mode used to load the packages whose functions are lowered
const PkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// LoadPackages loads, parses and type checks the packages matching the patterns, with the build tags provided.
// To understand how to specify the patterns, look at the documentation of packages.Load.
func LoadPackages(patterns []string, tests bool, buildTags []string) ([]*packages.Package, error) {
	config := &packages.Config{
		Mode:  PkgLoadMode,
		Tests: tests,
		Fset:  token.NewFileSet(),
	}
	if len(buildTags) > 0 {
		config.BuildFlags = []string{"-tags=" + strings.Join(buildTags, ",")}
	}
	pkgs, err := packages.Load(config, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages")
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("errors found, exiting")
	}
	return pkgs, nil
}

// Packages returns the graphs of the functions of the packages. Files appearing in several packages, as happens
// when test variants are loaded, are lowered once.
func Packages(pkgs []*packages.Package) ([]*cfg.Graph, error) {
	var graphs []*cfg.Graph
	seen := map[string]bool{}
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			name := pkg.Fset.File(file.Pos()).Name()
			if seen[name] {
				continue
			}
			seen[name] = true
			fileGraphs, err := File(pkg.Fset, file, pkg.TypesInfo)
			if err != nil {
				return nil, fmt.Errorf("in package %s: %w", pkg.PkgPath, err)
			}
			graphs = append(graphs, fileGraphs...)
		}
	}
	return graphs, nil
}

// NewInfo returns a types.Info recording everything the lowering uses
func NewInfo() *types.Info {
	return &types.Info{
		Types:      map[ast.Expr]types.TypeAndValue{},
		Defs:       map[*ast.Ident]types.Object{},
		Uses:       map[*ast.Ident]types.Object{},
		Selections: map[*ast.SelectorExpr]*types.Selection{},
	}
}

// Source parses and type checks the single file src and returns the graphs of its functions. The src argument
// is interpreted as in parser.ParseFile. Type errors do not prevent the lowering: the information computed
// before the errors is used.
func Source(fset *token.FileSet, filename string, src any) ([]*cfg.Graph, error) {
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", filename, err)
	}
	info := NewInfo()
	conf := types.Config{
		Importer: importer.Default(),
		Error:    func(error) {},
	}
	// errors are reported through conf.Error
	_, _ = conf.Check(file.Name.Name, fset, []*ast.File{file}, info)
	return File(fset, file, info)
}
