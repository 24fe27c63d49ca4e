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

package config

import (
	"bytes"
	"embed"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

//go:embed testdata
var testfsys embed.FS

func loadFromTestDir(t *testing.T, filename string) (*Config, error) {
	filename = filepath.Join("testdata", filename)
	b, err := testfsys.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file %v: %v", filename, err)
	}
	return LoadFromBytes(filename, b)
}

func TestLoadQueueConfig(t *testing.T) {
	cfg, err := loadFromTestDir(t, "config-queue.yaml")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.LogLevel != int(DebugLevel) || cfg.MaxIterations != 500 || cfg.NumRoutines != 2 {
		t.Errorf("unexpected options %+v", cfg.Options)
	}
	if !cfg.Verbose() {
		t.Errorf("debug level config should be verbose")
	}
	expectedTypes := []TypeSpec{{Name: "Queue", Fields: []string{"head"}, Methods: []string{"peek", "size"}}}
	if !reflect.DeepEqual(cfg.Types, expectedTypes) {
		t.Errorf("unexpected types %+v", cfg.Types)
	}
	if len(cfg.Contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(cfg.Contracts))
	}
	isEmpty := cfg.Contracts[0]
	expected := DeclarationSpec{
		Name:     "Queue.isEmpty",
		Receiver: "Queue",
		Postconditions: []PostconditionSpec{
			{Result: false, Qualifier: "NonNull", Expressions: []string{"peek()"}},
		},
	}
	if !reflect.DeepEqual(isEmpty, expected) {
		t.Errorf("unexpected declaration %+v", isEmpty)
	}
	// qualifier defaults to NonNull
	if q := cfg.Contracts[1].Postconditions[0].Qualifier; q != DefaultQualifier {
		t.Errorf("expected default qualifier, got %q", q)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadFromTestDir(t, "config-defaults.yaml")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.StrictContracts {
		t.Errorf("strict-contracts should be set")
	}
	if cfg.LogLevel != int(InfoLevel) {
		t.Errorf("default log level should be info, got %d", cfg.LogLevel)
	}
	if cfg.MaxIterations != DefaultMaxIterations || cfg.NumRoutines != DefaultNumRoutines {
		t.Errorf("unexpected defaults %+v", cfg.Options)
	}
	if cfg.ExceedsMaxIterations(DefaultMaxIterations) || !cfg.ExceedsMaxIterations(DefaultMaxIterations+1) {
		t.Errorf("ExceedsMaxIterations is not consistent with MaxIterations")
	}
}

func TestLoadContractFiles(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config-files.yaml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Contracts) != 1 || cfg.Contracts[0].Name != "Map.containsKey" {
		t.Fatalf("contracts of declaration file not loaded: %+v", cfg.Contracts)
	}
	if cfg.Contracts[0].Postconditions[0].Qualifier != DefaultQualifier {
		t.Errorf("qualifier defaults should apply to declaration files")
	}
	if len(cfg.Types) != 1 || cfg.Types[0].Name != "Map" {
		t.Errorf("types of declaration file not loaded: %+v", cfg.Types)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := loadFromTestDir(t, "config-noname.yaml"); err == nil {
		t.Errorf("expected error for contract without name")
	}
	if _, err := LoadFromBytes("bad.yaml", []byte("contracts: [")); err == nil {
		t.Errorf("expected error for malformed yaml")
	}
	if _, err := Load(filepath.Join("testdata", "does-not-exist.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLogGroupLevels(t *testing.T) {
	cfg := NewDefault()
	cfg.LogLevel = int(WarnLevel)
	l := NewLogGroup(cfg)
	var buf bytes.Buffer
	l.SetAllOutput(&buf)
	l.SetAllFlags(0)
	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	l.Errorf("shown %d", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message printed at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") || !strings.Contains(out, "[ERROR] shown 3") {
		t.Errorf("missing messages: %q", out)
	}

	cfg.SilenceWarn = true
	l = NewLogGroup(cfg)
	buf.Reset()
	l.SetAllOutput(&buf)
	l.Warnf("silenced")
	if buf.Len() != 0 {
		t.Errorf("warnings should be silenced: %q", buf.String())
	}
}
