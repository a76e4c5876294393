/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/mapping"
)

// StepKind says how a Step produces its target member.
type StepKind int

const (
	StepCopy StepKind = iota + 1
	StepCompute
	StepDelegate
	StepFlatten
	StepCount
	StepIgnore
	StepUnresolved
)

func (k StepKind) String() string {
	switch k {
	case StepCopy:
		return "copy"
	case StepCompute:
		return "compute"
	case StepDelegate:
		return "delegate"
	case StepFlatten:
		return "flatten"
	case StepCount:
		return "count"
	case StepIgnore:
		return "ignore"
	case StepUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Step resolves one target member.
type Step struct {
	Member   string
	Kind     StepKind
	From     string // source member path, rule name, or reason
	Inferred bool   // chosen by convention, not by an explicit rule

	target     descriptor.MemberDescriptor
	path       []descriptor.MemberDescriptor
	compute    mapping.ComputeFunc
	nested     descriptor.TypeKey
	collection bool
}

// Plan is the compiled, type-level form of a mapping definition: one step
// per target member in declaration order. Plans hold no instance data.
type Plan struct {
	Pair  mapping.Pair
	Steps []Step
}

// String renders the plan one member per line.
func (p *Plan) String() string {
	var sb strings.Builder
	sb.WriteString(p.Pair.String())
	sb.WriteByte('\n')
	for _, s := range p.Steps {
		fmt.Fprintf(&sb, "  %-20s <- %s", s.Member, s.Kind)
		if s.From != "" {
			fmt.Fprintf(&sb, "(%s)", s.From)
		}
		if s.Kind == StepDelegate {
			fmt.Fprintf(&sb, " as %s", s.nested)
			if s.collection {
				sb.WriteString(" per element")
			}
		}
		if s.Inferred {
			sb.WriteString(" [convention]")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Unresolved lists the members the plan leaves at their zero value
// without an explicit Ignore.
func (p *Plan) Unresolved() []string {
	var out []string
	for _, s := range p.Steps {
		if s.Kind == StepUnresolved {
			out = append(out, s.Member)
		}
	}
	return out
}

func (e *Executor) compile(def *mapping.Definition) (*Plan, error) {
	pair := def.Pair()
	srcDesc, err := e.describer.DescribeKey(pair.Source)
	if err != nil {
		return nil, err
	}
	dstDesc, err := e.describer.DescribeKey(pair.Target)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Pair: pair, Steps: make([]Step, 0, len(dstDesc.Members))}
	for _, m := range dstDesc.Members {
		var step Step
		if rule, ok := def.Rule(m.Name); ok {
			step, err = e.explicitStep(pair, srcDesc, m, rule)
			if err != nil {
				return nil, err
			}
		} else {
			step = e.conventionStep(srcDesc, m)
		}
		step.Member = m.Name
		step.target = m

		if step.Kind == StepUnresolved && e.strict {
			return nil, errors.NewUnresolvedMemberError(pair.Source.String(), pair.Target.String(), m.Name)
		}
		plan.Steps = append(plan.Steps, step)
	}
	return plan, nil
}

func (e *Executor) explicitStep(pair mapping.Pair, src *descriptor.TypeDescriptor, m descriptor.MemberDescriptor, rule mapping.Rule) (Step, error) {
	switch r := rule.(type) {
	case mapping.CopyMember:
		sm, ok := src.Member(r.SourceMember)
		if !ok {
			return Step{}, missing(pair, m.Name, r.SourceMember)
		}
		if !e.converters.Compatible(sm.Type, m.Type) {
			return Step{}, mismatch(pair, m, sm.Type.String())
		}
		return Step{Kind: StepCopy, From: sm.Name, path: []descriptor.MemberDescriptor{sm}}, nil

	case mapping.Computed:
		return Step{Kind: StepCompute, From: r.Name, compute: r.Compute}, nil

	case mapping.Delegate:
		sm, ok := src.Member(r.SourceMember)
		if !ok {
			return Step{}, missing(pair, m.Name, r.SourceMember)
		}
		if sm.IsCollection != m.IsCollection || nestedKey(m) != r.NestedTarget {
			return Step{}, mismatch(pair, m, r.NestedTarget.String())
		}
		// interface members are resolved by the runtime type of their value
		if src := nestedKey(sm); !isInterface(src) && src != r.NestedSource {
			return Step{}, mismatch(pair, m, r.NestedSource.String())
		}
		return Step{
			Kind:       StepDelegate,
			From:       sm.Name,
			path:       []descriptor.MemberDescriptor{sm},
			nested:     r.NestedTarget,
			collection: m.IsCollection,
		}, nil

	case mapping.IgnoreMember:
		return Step{Kind: StepIgnore}, nil

	case mapping.Unresolved:
		return Step{Kind: StepUnresolved, From: r.Reason}, nil
	}
	return Step{}, errors.NewInvalidRuleError(pair.Source.String(), pair.Target.String(), m.Name, "unknown rule "+rule.String())
}

// conventionStep resolves a member that has no explicit rule: same-name copy,
// then same-name delegation through a registered pair, then flattening.
func (e *Executor) conventionStep(src *descriptor.TypeDescriptor, m descriptor.MemberDescriptor) Step {
	if sm, ok := src.Member(m.Name); ok {
		if e.converters.Compatible(sm.Type, m.Type) {
			return Step{Kind: StepCopy, From: sm.Name, Inferred: true, path: []descriptor.MemberDescriptor{sm}}
		}
		if sm.IsCollection == m.IsCollection && isStruct(nestedKey(sm)) && isStruct(nestedKey(m)) {
			if _, err := e.resolver.Resolve(nestedKey(sm), nestedKey(m)); err == nil {
				return Step{
					Kind:       StepDelegate,
					From:       sm.Name,
					Inferred:   true,
					path:       []descriptor.MemberDescriptor{sm},
					nested:     nestedKey(m),
					collection: m.IsCollection,
				}
			}
		}
	}

	if e.flatten {
		if step, ok := e.countStep(src, m); ok {
			return step
		}
		if path, ok := e.flattenPath(src, m.Name, m.Type); ok {
			names := make([]string, len(path))
			for i, p := range path {
				names[i] = p.Name
			}
			return Step{Kind: StepFlatten, From: strings.Join(names, "."), Inferred: true, path: path}
		}
	}

	return Step{Kind: StepUnresolved, From: "no source member " + m.Name}
}

// countStep maps OrderCount or OrdersCount to len(Orders).
func (e *Executor) countStep(src *descriptor.TypeDescriptor, m descriptor.MemberDescriptor) (Step, bool) {
	base, ok := strings.CutSuffix(m.Name, "Count")
	if !ok || base == "" || !isInteger(m.Type.Kind()) {
		return Step{}, false
	}
	for _, name := range []string{base, base + "s", base + "es"} {
		sm, ok := src.Member(name)
		if !ok {
			continue
		}
		switch deref(sm.Type).Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return Step{Kind: StepCount, From: "len(" + sm.Name + ")", Inferred: true, path: []descriptor.MemberDescriptor{sm}}, true
		}
	}
	return Step{}, false
}

// flattenPath splits a target name such as AddressStreet into the source
// path Address.Street. Every hop except the last must be a struct.
func (e *Executor) flattenPath(src *descriptor.TypeDescriptor, name string, dst reflect.Type) ([]descriptor.MemberDescriptor, bool) {
	for _, sm := range src.Members {
		rest, ok := strings.CutPrefix(name, sm.Name)
		if !ok || rest == "" {
			continue
		}
		t := deref(sm.Type)
		if t.Kind() != reflect.Struct {
			continue
		}
		nd, err := e.describer.Describe(t)
		if err != nil {
			continue
		}
		if leaf, ok := nd.Member(rest); ok && e.converters.Compatible(leaf.Type, dst) {
			return []descriptor.MemberDescriptor{sm, leaf}, true
		}
		if tail, ok := e.flattenPath(nd, rest, dst); ok {
			return append([]descriptor.MemberDescriptor{sm}, tail...), true
		}
	}
	return nil, false
}

func nestedKey(m descriptor.MemberDescriptor) descriptor.TypeKey {
	if m.IsCollection {
		return m.ElemKey
	}
	return m.Key
}

func isInterface(k descriptor.TypeKey) bool {
	return !k.IsZero() && k.Type().Kind() == reflect.Interface
}

func isStruct(k descriptor.TypeKey) bool {
	return !k.IsZero() && k.Type().Kind() == reflect.Struct
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func missing(pair mapping.Pair, member, sourceMember string) error {
	return &errors.SourceMemberMissingError{
		Source:       pair.Source.String(),
		Target:       pair.Target.String(),
		Member:       member,
		SourceMember: sourceMember,
	}
}

func mismatch(pair mapping.Pair, m descriptor.MemberDescriptor, valueType string) error {
	return &errors.TypeMismatchError{
		Source:     pair.Source.String(),
		Target:     pair.Target.String(),
		Member:     m.Name,
		ValueType:  valueType,
		MemberType: m.Type.String(),
	}
}
