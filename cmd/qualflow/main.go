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

package main

import (
	"fmt"
	"os"

	"github.com/awslabs/qualflow/cmd/qualflow/contracts"
	"github.com/awslabs/qualflow/cmd/qualflow/facts"
	"github.com/awslabs/qualflow/cmd/qualflow/render"
	"github.com/awslabs/qualflow/cmd/qualflow/tools"
)

// Version of the tool
const Version = "v0.1.0"

const usage = `qualflow: flow-sensitive qualifier facts for Go functions
Usage:
  qualflow [tool] [options] <package path(s)>
Tools:
  - facts: runs the nullness analysis with the contracts of the config file and prints the proven facts
  - render: prints the control-flow graphs of the functions, as text or in the graphviz format
  - contracts: lists and checks the contracts declared in the config file
Examples:
  Print the facts of the functions of a package: qualflow facts -config config.yaml ./queue
  Check the contracts of a config file: qualflow contracts -config config.yaml`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}

	// hardcode help flag
	if snd := os.Args[1]; snd == "-help" || snd == "--help" {
		fmt.Println(usage)
		return
	}

	// hardcode version flag
	if snd := os.Args[1]; snd == "-version" || snd == "--version" {
		fmt.Println(Version)
		return
	}

	args := os.Args[2:]
	switch cmd := os.Args[1]; cmd {
	case "facts":
		flags, err := facts.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := facts.Run(flags); err != nil {
			errExit(err)
		}
	case "render":
		flags, err := render.NewFlags(args)
		if err != nil {
			errExit(err)
		}
		if err := render.Run(flags); err != nil {
			errExit(err)
		}
	case "contracts":
		flags, err := tools.NewCommonFlags("contracts", args, contracts.Usage)
		if err != nil {
			errExit(err)
		}
		if err := contracts.Run(flags); err != nil {
			errExit(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unexpected command: %v\n", cmd)
		fmt.Fprintf(os.Stderr, "usage:\n%s\n", usage)
		os.Exit(2)
	}
}

func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	hint := tools.HintForErrorMessage(err.Error())
	if hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	os.Exit(2)
}
