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

// Package contracts implements the contracts sub-command, which lists the conditional postconditions declared
// in a config file and reports the declarations that cannot be used by the analysis.
package contracts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/contract"
	"github.com/awslabs/qualflow/analysis/dataflow"
	"github.com/awslabs/qualflow/analysis/nullness"
	"github.com/awslabs/qualflow/cmd/qualflow/tools"
	"github.com/awslabs/qualflow/internal/formatutil"
	"github.com/awslabs/qualflow/internal/funcutil"
)

// Usage of the contracts sub-command
const Usage = `List and check the contracts declared in a config file.
Usage:
  qualflow contracts -config config.yaml
`

// Run runs the contracts tool with flags.
func Run(flags tools.CommonFlags) error {
	if flags.ConfigPath == "" {
		return fmt.Errorf("no config file specified")
	}
	conf, err := tools.LoadConfig(flags.ConfigPath, flags.Verbose)
	if err != nil {
		return err
	}
	problems, err := Print(os.Stdout, conf, nullness.Analysis{})
	if err != nil {
		return err
	}
	if problems > 0 {
		return fmt.Errorf("%d problems found in the contracts of %s", problems, flags.ConfigPath)
	}
	return nil
}

// Print writes the declarations of conf to w with their contracts, and a warning for each problem: unknown
// qualifiers for the analysis, targets that do not parse and targets that are not members of the receiver type.
// It returns the number of problems found.
func Print(w io.Writer, conf *config.Config, analysis dataflow.Analysis) (int, error) {
	cache, err := contract.NewCache(conf)
	if err != nil {
		return 0, fmt.Errorf("invalid contracts: %w", err)
	}
	problems := 0
	qualifiers := map[string]bool{}
	for _, name := range cache.Names() {
		decl := cache.Declaration(name)
		header := formatutil.Bold(name)
		if decl.ReceiverType != nil {
			header += formatutil.Faint(" (receiver " + decl.ReceiverType.Name + ")")
		}
		fmt.Fprintf(w, "%s\n", header)
		declared := map[string]bool{}
		for _, c := range decl.Contracts() {
			declared[c.Qualifier] = true
			fmt.Fprintf(w, "  %s\n", c)
			if _, ok := analysis.ValueFor(c.Qualifier); !ok {
				problems++
				fmt.Fprintf(w, "    %s unknown qualifier %s for %s analysis\n",
					formatutil.Yellow("warning:"), c.Qualifier, analysis.Name())
			}
			for _, err := range c.Check() {
				problems++
				fmt.Fprintf(w, "    %s %v\n", formatutil.Yellow("warning:"), err)
			}
		}
		funcutil.Union(qualifiers, declared)
	}
	if len(qualifiers) > 0 {
		fmt.Fprintf(w, "qualifiers: %s\n", strings.Join(funcutil.SetToOrderedSlice(qualifiers), ", "))
	}
	return problems, nil
}
