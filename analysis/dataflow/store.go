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

package dataflow

import (
	"strings"

	"github.com/awslabs/qualflow/analysis/flowexpr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Value is an element of the lattice of an analysis. Values are immutable.
type Value interface {
	// LeastUpperBound returns the join of the receiver and other, the most specific value that is less specific
	// than both
	LeastUpperBound(other Value) Value

	// MostSpecific returns the meet of the receiver and other
	MostSpecific(other Value) Value

	// Equal returns true when the receiver and other are the same element
	Equal(other Value) bool

	String() string
}

// IsBelow returns true when a is at least as specific as b
func IsBelow(a, b Value) bool {
	return a.LeastUpperBound(b).Equal(b)
}

// Fact is a flow expression with its value
type Fact struct {
	Expr  flowexpr.Expr
	Value Value
}

func (f Fact) String() string {
	return flowexpr.Key(f.Expr) + ": " + f.Value.String()
}

// A Store maps flow expressions to values. An expression absent from the store has no known value, which is
// the top of the lattice. Stores that have been given to the engine or returned by it must not be modified; use
// Clone first.
type Store struct {
	facts map[string]Fact
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{facts: make(map[string]Fact)}
}

// Len returns the number of facts in the store
func (s *Store) Len() int {
	return len(s.facts)
}

// Get returns the value of e in the store
func (s *Store) Get(e flowexpr.Expr) (Value, bool) {
	f, ok := s.facts[flowexpr.Key(e)]
	if !ok {
		return nil, false
	}
	return f.Value, true
}

// Set sets the value of e, replacing any previous value
func (s *Store) Set(e flowexpr.Expr, v Value) {
	s.facts[flowexpr.Key(e)] = Fact{Expr: e, Value: v}
}

// Refine sets the value of e to the meet of its current value and v
func (s *Store) Refine(e flowexpr.Expr, v Value) {
	key := flowexpr.Key(e)
	if f, ok := s.facts[key]; ok {
		v = f.Value.MostSpecific(v)
	}
	s.facts[key] = Fact{Expr: e, Value: v}
}

// Remove removes the fact about e, if any
func (s *Store) Remove(e flowexpr.Expr) {
	delete(s.facts, flowexpr.Key(e))
}

// RemoveIf removes the facts whose expression satisfies pred, and returns the number of facts removed
func (s *Store) RemoveIf(pred func(flowexpr.Expr) bool) int {
	n := 0
	for key, f := range s.facts {
		if pred(f.Expr) {
			delete(s.facts, key)
			n++
		}
	}
	return n
}

// Clone returns a copy of the store
func (s *Store) Clone() *Store {
	return &Store{facts: maps.Clone(s.facts)}
}

// Join returns the least upper bound of s and other: the facts about expressions present in both stores,
// joined. Neither s nor other is modified.
func (s *Store) Join(other *Store) *Store {
	res := NewStore()
	for key, f := range s.facts {
		if g, ok := other.facts[key]; ok {
			res.facts[key] = Fact{Expr: f.Expr, Value: f.Value.LeastUpperBound(g.Value)}
		}
	}
	return res
}

// Equal returns true when s and other contain the same facts
func (s *Store) Equal(other *Store) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.facts) != len(other.facts) {
		return false
	}
	for key, f := range s.facts {
		g, ok := other.facts[key]
		if !ok || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}

// Facts returns the facts of the store, sorted by expression
func (s *Store) Facts() []Fact {
	keys := maps.Keys(s.facts)
	slices.Sort(keys)
	facts := make([]Fact, len(keys))
	for i, key := range keys {
		facts[i] = s.facts[key]
	}
	return facts
}

func (s *Store) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range s.Facts() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	b.WriteByte('}')
	return b.String()
}
