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

package tools

import (
	"strings"
	"testing"

	"github.com/awslabs/qualflow/analysis/cfg"
	"github.com/awslabs/qualflow/analysis/config"
)

func validateHint(t *testing.T, errorMsg string, containedHint string) {
	hint := HintForErrorMessage(errorMsg)
	if !strings.Contains(hint, containedHint) {
		t.Fatalf("incorrect hint for %q: %q", errorMsg, hint)
	}
}

func TestHintForFlagAfterFiles(t *testing.T) {
	errorMsg := "error: could not load program:\n -: named files must be .go files: -v"
	validateHint(t, errorMsg, "all command line flags should be before the path")
}

func TestHintForFailedLoadProgram(t *testing.T) {
	errorMsg := "error: could not load program:\n errors found, exiting\n"
	validateHint(t, errorMsg, "right arguments to load a Go program")
}

func TestHintForDuplicateContracts(t *testing.T) {
	validateHint(t, "contracts of Queue.isEmpty declared twice", "declared once")
	validateHint(t, "duplicate contract: Queue.isEmpty has two postconditions for result false", "declared once")
}

func TestHintForNonConvergence(t *testing.T) {
	validateHint(t, "analysis did not converge: loop after 10 block visits", "max-iterations")
	if hint := HintForErrorMessage("something else"); hint != "" {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestFilterGraphs(t *testing.T) {
	graphs := []*cfg.Graph{cfg.NewGraph("Queue.isEmpty"), cfg.NewGraph("Queue.peek"), cfg.NewGraph("main")}
	all, err := FilterGraphs(graphs, "")
	if err != nil || len(all) != 3 {
		t.Errorf("empty filter should keep every graph, got %d, %v", len(all), err)
	}
	queue, err := FilterGraphs(graphs, "^Queue\\.")
	if err != nil || len(queue) != 2 {
		t.Errorf("expected the two methods of Queue, got %d, %v", len(queue), err)
	}
	if _, err := FilterGraphs(graphs, "("); err == nil {
		t.Errorf("invalid filters should be rejected")
	}
}

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig("", true)
	if err != nil {
		t.Fatal(err)
	}
	if conf.LogLevel != int(config.DebugLevel) {
		t.Errorf("verbose flag should raise the log level to debug, got %d", conf.LogLevel)
	}
	if _, err := LoadConfig("does-not-exist.yaml", false); err == nil {
		t.Errorf("missing config files should be reported")
	}
}

func TestCommonFlags(t *testing.T) {
	flags, err := NewCommonFlags("facts", []string{"-func", "peek", "-verbose", "./..."}, "usage")
	if err != nil {
		t.Fatal(err)
	}
	if flags.Func != "peek" || !flags.Verbose || flags.ConfigPath != "" {
		t.Errorf("unexpected flags %+v", flags)
	}
	if args := flags.FlagSet.Args(); len(args) != 1 || args[0] != "./..." {
		t.Errorf("unexpected arguments %v", args)
	}
}
