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

package contract

import (
	"fmt"
	"strings"
	"sync"

	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/node"
	"github.com/awslabs/qualflow/internal/funcutil"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Resolver supplies the declaration of the callee of a call, with its contracts.
type Resolver interface {
	// Lookup returns the declaration of the callee of call, or nil if the callee has no contract.
	Lookup(call *node.MethodInvocation) *Declaration

	// IsPure returns true when the callee of call is declared free of side effects. The facts about the state
	// reachable from the receiver and the arguments of other calls do not survive the call.
	IsPure(call *node.MethodInvocation) bool
}

// Cache is a Resolver built from the declarations of a configuration. Declarations are parsed the first time
// they are looked up. A cache is meant to be used for one analysis run and can be shared by the goroutines
// analyzing different procedures.
type Cache struct {
	types map[string]config.TypeSpec
	specs map[string]config.DeclarationSpec

	// byMethod maps method names to the names of the declarations of methods with that name
	byMethod map[string][]string

	mu     sync.Mutex
	decls  map[string]*Declaration
	parsed int
}

// NewCache returns a cache for the types and contracts declared in cfg. It fails when a name is declared twice
// or a declaration has two postconditions for the same result.
func NewCache(cfg *config.Config) (*Cache, error) {
	c := &Cache{
		types:    make(map[string]config.TypeSpec, len(cfg.Types)),
		specs:    make(map[string]config.DeclarationSpec, len(cfg.Contracts)),
		byMethod: make(map[string][]string),
		decls:    make(map[string]*Declaration),
	}
	for _, typ := range cfg.Types {
		if _, ok := c.types[typ.Name]; ok {
			return nil, fmt.Errorf("type %s declared twice", typ.Name)
		}
		c.types[typ.Name] = typ
	}
	for _, spec := range cfg.Contracts {
		if _, ok := c.specs[spec.Name]; ok {
			return nil, fmt.Errorf("contracts of %s declared twice", spec.Name)
		}
		seen := map[bool]bool{}
		for _, post := range spec.Postconditions {
			if seen[post.Result] {
				return nil, fmt.Errorf("%w: %s has two postconditions for result %t",
					ErrDuplicateContract, spec.Name, post.Result)
			}
			seen[post.Result] = true
		}
		c.specs[spec.Name] = spec
		method := methodName(spec.Name)
		c.byMethod[method] = append(c.byMethod[method], spec.Name)
	}
	return c, nil
}

// Names returns the names of the declarations in the cache, sorted
func (c *Cache) Names() []string {
	names := maps.Keys(c.specs)
	slices.Sort(names)
	return names
}

// Declaration returns the declaration named name, parsing it if needed. It returns nil when no such declaration
// exists.
func (c *Cache) Declaration(name string) *Declaration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.decls[name]; ok {
		return d
	}
	spec, ok := c.specs[name]
	if !ok {
		return nil
	}
	d := c.parse(spec)
	c.decls[name] = d
	return d
}

// Lookup returns the declaration of the callee of call.
//
// When the target of the call is known, the declaration with that name is returned, or else a declaration whose
// name is the unqualified method name. When the target is unknown, the call is matched by method name, provided
// only one declaration has that method name.
func (c *Cache) Lookup(call *node.MethodInvocation) *Declaration {
	if call.Target() != "" {
		if _, ok := c.specs[call.Target()]; ok {
			return c.Declaration(call.Target())
		}
		if _, ok := c.specs[call.Method()]; ok {
			return c.Declaration(call.Method())
		}
		return nil
	}
	if _, ok := c.specs[call.Method()]; ok {
		return c.Declaration(call.Method())
	}
	if names := c.byMethod[call.Method()]; len(names) == 1 {
		return c.Declaration(names[0])
	}
	return nil
}

// IsPure returns true when call is a method call and its method is listed in the methods of the type of its
// receiver. When the target of the call is unknown, the method may be listed by any declared type.
func (c *Cache) IsPure(call *node.MethodInvocation) bool {
	if call.Receiver() == nil {
		return false
	}
	if call.Target() != "" {
		typ, ok := c.types[receiverName(call.Target())]
		return ok && funcutil.Contains(typ.Methods, call.Method())
	}
	for _, typ := range c.types {
		if funcutil.Contains(typ.Methods, call.Method()) {
			return true
		}
	}
	return false
}

func (c *Cache) parse(spec config.DeclarationSpec) *Declaration {
	c.parsed++
	var recvType *config.TypeSpec
	if typ, ok := c.types[spec.Receiver]; ok {
		recvType = &typ
	}
	var contracts []*Contract
	for _, post := range spec.Postconditions {
		contracts = append(contracts, NewContract(post.Result, post.Qualifier, post.Expressions...))
	}
	// duplicates have been rejected when the cache was built
	d, _ := NewDeclaration(spec.Name, recvType, contracts...)
	return d
}

// receiverName returns "T" for the name "T.m", and "" for an unqualified name
func receiverName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return ""
}

func methodName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// MapResolver is a Resolver backed by a map from declaration names to parsed declarations. Calls are matched by
// target, then by method name.
type MapResolver map[string]*Declaration

// Lookup returns the declaration of the callee of call
func (m MapResolver) Lookup(call *node.MethodInvocation) *Declaration {
	if d, ok := m[call.Target()]; ok && call.Target() != "" {
		return d
	}
	return m[call.Method()]
}

// IsPure returns true when the callee of call has a declaration whose receiver type lists the method
func (m MapResolver) IsPure(call *node.MethodInvocation) bool {
	d := m.Lookup(call)
	return d != nil && call.Receiver() != nil && d.ReceiverType != nil &&
		funcutil.Contains(d.ReceiverType.Methods, call.Method())
}
