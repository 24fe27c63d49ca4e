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
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Config contains the options of the analysis and the declaration table of conditional postconditions.
// To add elements to a config file, add fields to this struct.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options `yaml:",inline"`

	sourceFile string

	// Types lists the receiver types whose members are known. Contracts whose receiver is a declared type have their
	// field and method targets checked against the members of the type.
	Types []TypeSpec `yaml:"types"`

	// Contracts lists the declarations carrying conditional postconditions
	Contracts []DeclarationSpec `yaml:"contracts"`
}

// Options contains the options of the engine.
type Options struct {
	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// MaxIterations is the maximum number of block visits performed on a single procedure. If the fixed point
	// has not been reached after MaxIterations visits, the analysis of the procedure fails.
	// If MaxIterations <= 0, the default DefaultMaxIterations is used.
	MaxIterations int `yaml:"max-iterations"`

	// NumRoutines is the number of procedures analyzed in parallel.
	NumRoutines int `yaml:"num-routines"`

	// StrictContracts makes malformed contracts fail the analysis of the procedure where they are used, instead of
	// only being reported as diagnostics.
	StrictContracts bool `yaml:"strict-contracts"`

	// ContractFiles lists additional yaml files containing types and contracts. Paths are relative to the config file.
	ContractFiles []string `yaml:"contract-files"`

	// SilenceWarn suppresses warnings
	SilenceWarn bool `yaml:"silence-warn"`
}

// TypeSpec declares the members of a receiver type that can appear in postcondition expressions.
type TypeSpec struct {
	// Name is the name of the type
	Name string `yaml:"name"`

	// Fields lists the field names of the type
	Fields []string `yaml:"fields"`

	// Methods lists the names of the side-effect free methods of the type
	Methods []string `yaml:"methods"`
}

// DeclarationSpec declares the conditional postconditions of a boolean operation.
type DeclarationSpec struct {
	// Name identifies the operation. Call sites are matched against it either by their full target name
	// (e.g. "Queue.isEmpty") or by their method name (e.g. "isEmpty").
	Name string `yaml:"name"`

	// Receiver is the optional name of the receiver type of the operation.
	Receiver string `yaml:"receiver"`

	// Postconditions lists the conditional postconditions. There is at most one postcondition per result value.
	Postconditions []PostconditionSpec `yaml:"postconditions"`
}

// PostconditionSpec is the raw form of a conditional postcondition: when the operation returns Result, every
// expression in Expressions has the qualifier Qualifier.
type PostconditionSpec struct {
	Result      bool     `yaml:"result"`
	Qualifier   string   `yaml:"qualifier"`
	Expressions []string `yaml:"expressions"`
}

// declarationFile is the layout of the files listed in Options.ContractFiles
type declarationFile struct {
	Types     []TypeSpec        `yaml:"types"`
	Contracts []DeclarationSpec `yaml:"contracts"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile: "",
		Types:      nil,
		Contracts:  nil,
		Options: Options{
			LogLevel:        int(InfoLevel),
			MaxIterations:   DefaultMaxIterations,
			NumRoutines:     DefaultNumRoutines,
			StrictContracts: false,
			ContractFiles:   nil,
			SilenceWarn:     false,
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return LoadFromBytes(filename, b)
}

// LoadFromBytes parses the configuration contained in b. The filename is used to resolve the relative paths
// of the contract files.
func LoadFromBytes(filename string, b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}
	cfg.sourceFile = filename

	for _, contractFile := range cfg.ContractFiles {
		if err := cfg.loadDeclarationFile(cfg.RelPath(contractFile)); err != nil {
			return nil, err
		}
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	if cfg.NumRoutines <= 0 {
		cfg.NumRoutines = DefaultNumRoutines
	}

	for i, decl := range cfg.Contracts {
		if decl.Name == "" {
			return nil, fmt.Errorf("contract %d in %s has no name", i, filename)
		}
		for j := range decl.Postconditions {
			if decl.Postconditions[j].Qualifier == "" {
				cfg.Contracts[i].Postconditions[j].Qualifier = DefaultQualifier
			}
		}
	}

	for i, typ := range cfg.Types {
		if typ.Name == "" {
			return nil, fmt.Errorf("type %d in %s has no name", i, filename)
		}
	}

	return cfg, nil
}

func (c *Config) loadDeclarationFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("could not read contract file: %w", err)
	}
	var df declarationFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return fmt.Errorf("could not unmarshal contract file %s: %w", filename, err)
	}
	c.Types = append(c.Types, df.Types...)
	c.Contracts = append(c.Contracts, df.Contracts...)
	return nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	if path.IsAbs(filename) {
		return filename
	}
	return path.Join(path.Dir(c.sourceFile), filename)
}

// SourceFile returns the name of the file the config has been loaded from, if any.
func (c Config) SourceFile() string {
	return c.sourceFile
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}

// ExceedsMaxIterations returns true if the number of block visits n exceeds the maximum number of iterations.
func (c Config) ExceedsMaxIterations(n int) bool {
	if c.MaxIterations <= 0 {
		return false
	}
	return n > c.MaxIterations
}
