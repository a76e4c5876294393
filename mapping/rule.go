/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"reflect"

	"github.com/suparena/automapper/descriptor"
)

// RuleKind tags the variant of a Rule.
type RuleKind int

const (
	RuleCopy RuleKind = iota + 1
	RuleComputed
	RuleDelegate
	RuleIgnore
	ruleUnresolved
)

// String returns a human-readable name for the rule kind.
func (k RuleKind) String() string {
	switch k {
	case RuleCopy:
		return "copy"
	case RuleComputed:
		return "computed"
	case RuleDelegate:
		return "delegate"
	case RuleIgnore:
		return "ignore"
	case ruleUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Rule describes how one target member's value is produced.
// The set of implementations is closed.
type Rule interface {
	Kind() RuleKind
	String() string
	isRule()
}

// CopyMember copies a source member, converting scalars when a conversion applies.
type CopyMember struct {
	SourceMember string
}

func (CopyMember) Kind() RuleKind { return RuleCopy }
func (CopyMember) isRule()        {}

func (r CopyMember) String() string { return "copy(" + r.SourceMember + ")" }

// ComputeFunc receives the whole source instance, dereferenced, and returns
// the member value. It must not depend on anything but its argument.
type ComputeFunc func(src any) (any, error)

// Computed produces a value from the whole source instance.
type Computed struct {
	Compute ComputeFunc
	// Name is informational; profiles loaded from files record the function name here.
	Name string
}

func (Computed) Kind() RuleKind { return RuleComputed }
func (Computed) isRule()        {}

func (r Computed) String() string {
	if r.Name != "" {
		return "computed(" + r.Name + ")"
	}
	return "computed"
}

// Delegate maps a nested member, or each element of a collection member,
// through the registered definition for (NestedSource, NestedTarget).
type Delegate struct {
	// SourceMember defaults to the target member name when empty.
	SourceMember string
	NestedSource descriptor.TypeKey
	NestedTarget descriptor.TypeKey
}

func (Delegate) Kind() RuleKind { return RuleDelegate }
func (Delegate) isRule()        {}

func (r Delegate) String() string {
	return fmt.Sprintf("delegate(%s: %s -> %s)", r.SourceMember, r.NestedSource, r.NestedTarget)
}

// IgnoreMember leaves the target member at its zero value without flagging it.
type IgnoreMember struct{}

func (IgnoreMember) Kind() RuleKind { return RuleIgnore }
func (IgnoreMember) isRule()        {}
func (IgnoreMember) String() string { return "ignore" }

// Unresolved marks a member that reverse derivation could not invert.
// The executor applies its unresolved-member policy to it.
type Unresolved struct {
	Reason string
}

func (Unresolved) Kind() RuleKind { return ruleUnresolved }
func (Unresolved) isRule()        {}

func (r Unresolved) String() string { return "unresolved(" + r.Reason + ")" }

// IsUnresolved reports whether r is an Unresolved marker.
func IsUnresolved(r Rule) bool {
	return r != nil && r.Kind() == ruleUnresolved
}

// Copy returns a CopyMember rule reading sourceMember.
func Copy(sourceMember string) Rule {
	return CopyMember{SourceMember: sourceMember}
}

// Compute returns a Computed rule around an untyped function.
func Compute(fn ComputeFunc) Rule {
	return Computed{Compute: fn}
}

// ComputeFrom returns a Computed rule around a typed function of the source.
func ComputeFrom[S, V any](fn func(S) V) Rule {
	return ComputeErr(func(s S) (V, error) { return fn(s), nil })
}

// ComputeErr is ComputeFrom for functions that can fail.
func ComputeErr[S, V any](fn func(S) (V, error)) Rule {
	want := reflect.TypeOf((*S)(nil)).Elem()
	return Computed{Compute: func(src any) (any, error) {
		s, ok := src.(S)
		if !ok {
			return nil, fmt.Errorf("computed rule expects source %s, got %T", want, src)
		}
		return fn(s)
	}}
}

// Named attaches a descriptive name to a Computed rule; other rules are returned as-is.
func Named(name string, r Rule) Rule {
	if c, ok := r.(Computed); ok {
		c.Name = name
		return c
	}
	return r
}

// DelegateTo returns a Delegate rule reading sourceMember and mapping it with
// the definition registered for (nestedSource, nestedTarget).
func DelegateTo(sourceMember string, nestedSource, nestedTarget descriptor.TypeKey) Rule {
	return Delegate{SourceMember: sourceMember, NestedSource: nestedSource, NestedTarget: nestedTarget}
}

// DelegateAs is DelegateTo with the nested pair given as type parameters.
func DelegateAs[NS, NT any](sourceMember string) Rule {
	return DelegateTo(sourceMember, descriptor.KeyOf[NS](), descriptor.KeyOf[NT]())
}

// Ignore returns the rule that leaves a member untouched.
func Ignore() Rule {
	return IgnoreMember{}
}
