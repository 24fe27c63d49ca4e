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
	"errors"
	"fmt"

	"github.com/awslabs/qualflow/analysis/config"
	"github.com/awslabs/qualflow/analysis/flowexpr"
	"github.com/awslabs/qualflow/analysis/node"
	"golang.org/x/exp/slices"
)

// Contract is a conditional postcondition: when the operation returns Result, the Targets have the qualifier
// Qualifier.
type Contract struct {
	Result    bool
	Qualifier string
	Targets   []Target

	decl *Declaration
}

// NewContract returns a contract whose targets are parsed from texts. Targets that cannot be parsed are kept as
// invalid targets; they fail to resolve at every call site.
func NewContract(result bool, qualifier string, texts ...string) *Contract {
	c := &Contract{Result: result, Qualifier: qualifier}
	for _, text := range texts {
		t, _ := ParseTarget(text)
		c.Targets = append(c.Targets, t)
	}
	return c
}

// Declaration returns the declaration the contract belongs to, or nil if it has not been added to one.
func (c *Contract) Declaration() *Declaration {
	return c.decl
}

func (c *Contract) String() string {
	return fmt.Sprintf("ensures %s if %t: %v", c.Qualifier, c.Result, c.Targets)
}

// A Declaration is a boolean operation with its contracts. There is at most one contract per result value.
type Declaration struct {
	// Name of the declaration, e.g. "Queue.isEmpty"
	Name string

	// ReceiverType is the type of the receiver, when it is declared. Field and method targets must be members
	// of the receiver type.
	ReceiverType *config.TypeSpec

	contracts [2]*Contract
}

// ErrDuplicateContract is returned when a declaration has two contracts for the same result
var ErrDuplicateContract = errors.New("duplicate contract")

// ErrBoundContract is returned when a contract already belongs to another declaration
var ErrBoundContract = errors.New("contract already declared")

// NewDeclaration returns a declaration with the contracts provided. It fails if two contracts have the same
// result, or if a contract already belongs to a declaration. The contracts are left unchanged on failure.
func NewDeclaration(name string, receiverType *config.TypeSpec, contracts ...*Contract) (*Declaration, error) {
	d := &Declaration{Name: name, ReceiverType: receiverType}
	for _, c := range contracts {
		i := resultIndex(c.Result)
		if d.contracts[i] != nil {
			return nil, fmt.Errorf("%w: %s has two contracts for result %t", ErrDuplicateContract, name, c.Result)
		}
		d.contracts[i] = c
	}
	for _, c := range contracts {
		if c.decl != nil {
			return nil, fmt.Errorf("%w: %s is a contract of %s", ErrBoundContract, c, c.decl.Name)
		}
	}
	for _, c := range contracts {
		c.decl = d
	}
	return d, nil
}

// ContractFor returns the contract of the declaration for the result value, or nil
func (d *Declaration) ContractFor(result bool) *Contract {
	return d.contracts[resultIndex(result)]
}

// Contracts returns the contracts of the declaration, the contract for true first.
func (d *Declaration) Contracts() []*Contract {
	var res []*Contract
	for _, result := range []bool{true, false} {
		if c := d.ContractFor(result); c != nil {
			res = append(res, c)
		}
	}
	return res
}

func resultIndex(result bool) int {
	if result {
		return 1
	}
	return 0
}

// A ResolutionError is a target that could not be resolved at a call site. It indicates an error in the
// declaration of the contract.
type ResolutionError struct {
	Declaration string
	Result      bool
	Target      string
	Reason      string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("contract of %s for result %t: target %q: %s", e.Declaration, e.Result, e.Target, e.Reason)
}

// Resolve substitutes the receiver and arguments of call in the targets of the contract and returns the
// resulting flow expressions.
//
// Targets whose receiver or argument is not a trackable expression (e.g. an arithmetic operation) are skipped.
// Targets that cannot be resolved are returned as resolution errors; the contract should then not be applied at
// that call site.
func (c *Contract) Resolve(call *node.MethodInvocation) ([]flowexpr.Expr, []*ResolutionError) {
	var exprs []flowexpr.Expr
	var errs []*ResolutionError
	fail := func(t Target, format string, args ...any) {
		errs = append(errs, &ResolutionError{
			Declaration: c.declName(call),
			Result:      c.Result,
			Target:      t.Text,
			Reason:      fmt.Sprintf(format, args...),
		})
	}

	for _, t := range c.Targets {
		switch t.Kind {
		case FieldTarget, CallTarget:
			if call.Receiver() == nil {
				fail(t, "call %s has no receiver", call)
				continue
			}
			if reason := c.checkMember(t); reason != "" {
				fail(t, "%s", reason)
				continue
			}
			recv, ok := flowexpr.FromNode(call.Receiver())
			if !ok {
				continue
			}
			if t.Kind == FieldTarget {
				exprs = append(exprs, flowexpr.FieldAccess{Receiver: recv, Field: t.Name})
			} else {
				exprs = append(exprs, flowexpr.MethodCall{Receiver: recv, Method: t.Name})
			}
		case ParamTarget:
			if t.Index >= len(call.Args()) {
				fail(t, "parameter index %d out of range, call %s has %d arguments", t.Index, call, len(call.Args()))
				continue
			}
			if e, ok := flowexpr.FromNode(call.Args()[t.Index]); ok {
				exprs = append(exprs, e)
			}
		default:
			reason := "invalid target"
			if t.err != nil {
				reason = t.err.Error()
			}
			fail(t, "%s", reason)
		}
	}
	return exprs, errs
}

// Check returns the errors of the targets of c that are independent of the call sites: targets that do not
// parse, and fields or methods that are not members of the declared receiver type.
func (c *Contract) Check() []error {
	var errs []error
	for _, t := range c.Targets {
		if t.Kind == InvalidTarget {
			errs = append(errs, t.Err())
			continue
		}
		if reason := c.checkMember(t); reason != "" {
			errs = append(errs, fmt.Errorf("target %q: %s", t.Text, reason))
		}
	}
	return errs
}

// checkMember returns a non-empty reason when the field or method of t is not a member of the receiver type
func (c *Contract) checkMember(t Target) string {
	if c.decl == nil || c.decl.ReceiverType == nil {
		return ""
	}
	typ := c.decl.ReceiverType
	switch t.Kind {
	case FieldTarget:
		if !slices.Contains(typ.Fields, t.Name) {
			return fmt.Sprintf("%s has no field %s", typ.Name, t.Name)
		}
	case CallTarget:
		if !slices.Contains(typ.Methods, t.Name) {
			return fmt.Sprintf("%s has no method %s", typ.Name, t.Name)
		}
	}
	return ""
}

func (c *Contract) declName(call *node.MethodInvocation) string {
	if c.decl != nil {
		return c.decl.Name
	}
	return call.Method()
}
