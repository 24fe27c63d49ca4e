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

// Package contract implements conditional postconditions: declarations stating that when a boolean operation
// returns a given value, some expressions have a qualifier.
//
// Targets of postconditions are written in a small language:
//   - name is the field name of the receiver of the call,
//   - name() is a call to the side-effect free method name of the receiver, without arguments,
//   - #N is the N-th argument of the call, starting at 0.
//
// Targets are parsed once, when their declaration is first looked up, and resolved at every call site against
// the receiver and arguments of that call.
package contract

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// TargetKind is the kind of a postcondition target
type TargetKind uint8

const (
	// InvalidTarget is the kind of targets that could not be parsed
	InvalidTarget TargetKind = iota
	// FieldTarget is the kind of targets of the form name
	FieldTarget
	// CallTarget is the kind of targets of the form name()
	CallTarget
	// ParamTarget is the kind of targets of the form #N
	ParamTarget
)

func (k TargetKind) String() string {
	switch k {
	case FieldTarget:
		return "field"
	case CallTarget:
		return "call"
	case ParamTarget:
		return "param"
	}
	return "invalid"
}

// ErrInvalidTarget is the error of targets that do not follow the grammar of targets
var ErrInvalidTarget = errors.New("invalid target")

// Target is a parsed postcondition target
type Target struct {
	Kind TargetKind

	// Name is the name of the field or method of FieldTarget and CallTarget targets
	Name string

	// Index is the index of the argument of ParamTarget targets
	Index int

	// Text is the text the target has been parsed from
	Text string

	err error
}

// Err returns the parse error of an InvalidTarget target
func (t Target) Err() error {
	return t.err
}

func (t Target) String() string {
	switch t.Kind {
	case FieldTarget:
		return t.Name
	case CallTarget:
		return t.Name + "()"
	case ParamTarget:
		return "#" + strconv.Itoa(t.Index)
	}
	return t.Text
}

// ParseTarget parses a target. Leading and trailing spaces are ignored.
func ParseTarget(text string) (Target, error) {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, "#"):
		digits := s[1:]
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return invalid(text, "parameter index must be a non-negative integer")
		}
		idx, err := strconv.Atoi(digits)
		if err != nil {
			return invalid(text, err.Error())
		}
		return Target{Kind: ParamTarget, Index: idx, Text: text}, nil
	case strings.HasSuffix(s, "()"):
		name := strings.TrimSpace(strings.TrimSuffix(s, "()"))
		if !token.IsIdentifier(name) {
			return invalid(text, "method name must be an identifier")
		}
		return Target{Kind: CallTarget, Name: name, Text: text}, nil
	case token.IsIdentifier(s):
		return Target{Kind: FieldTarget, Name: s, Text: text}, nil
	}
	return invalid(text, "expected name, name() or #N")
}

func invalid(text string, reason string) (Target, error) {
	err := fmt.Errorf("%w %q: %s", ErrInvalidTarget, text, reason)
	return Target{Kind: InvalidTarget, Text: text, err: err}, err
}
