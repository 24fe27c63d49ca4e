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

package contracts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/nullness"
)

func TestPrint(t *testing.T) {
	conf := config.NewDefault()
	conf.Types = []config.TypeSpec{{Name: "Queue", Fields: []string{"head"}, Methods: []string{"peek"}}}
	conf.Contracts = []config.DeclarationSpec{
		{
			Name:     "Queue.isEmpty",
			Receiver: "Queue",
			Postconditions: []config.PostconditionSpec{
				{Result: false, Qualifier: "NonNull", Expressions: []string{"peek()", "head"}},
			},
		},
		{
			Name: "Map.containsKey",
			Postconditions: []config.PostconditionSpec{
				{Result: true, Qualifier: "KeyFor", Expressions: []string{"#0", "x.y"}},
			},
		},
	}
	var buf bytes.Buffer
	problems, err := Print(&buf, conf, nullness.Analysis{})
	if err != nil {
		t.Fatal(err)
	}
	if problems != 2 {
		t.Errorf("expected 2 problems, got %d:\n%s", problems, buf.String())
	}
	out := buf.String()
	for _, want := range []string{
		"Map.containsKey\n",
		"Queue.isEmpty (receiver Queue)\n",
		"ensures NonNull if false: [peek() head]",
		"unknown qualifier KeyFor for nullness analysis",
		"invalid target \"x.y\"",
		"qualifiers: KeyFor, NonNull\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Map.containsKey") > strings.Index(out, "Queue.isEmpty") {
		t.Errorf("declarations should be sorted by name")
	}
}

func TestPrintDuplicates(t *testing.T) {
	conf := config.NewDefault()
	spec := config.DeclarationSpec{Name: "isEmpty"}
	conf.Contracts = []config.DeclarationSpec{spec, spec}
	if _, err := Print(&bytes.Buffer{}, conf, nullness.Analysis{}); err == nil {
		t.Errorf("duplicate declarations should be rejected")
	}
}
