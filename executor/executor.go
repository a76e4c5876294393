/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package executor

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/automapper/convert"
	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/mapping"
)

// DefaultMaxDepth bounds nested delegation unless WithMaxDepth overrides it.
const DefaultMaxDepth = 64

// Resolver looks up mapping definitions. *registry.Registry implements it.
type Resolver interface {
	Resolve(source, target descriptor.TypeKey) (*mapping.Definition, error)
	Sealed() bool
}

// Executor maps source instances onto fresh target instances.
// It is safe for concurrent use.
type Executor struct {
	resolver   Resolver
	describer  *descriptor.Cache
	converters *convert.Registry
	strict     bool
	flatten    bool
	maxDepth   int

	plans sync.Map // mapping.Pair -> *Plan, filled once the resolver is sealed
}

// Option configures an Executor.
type Option func(*Executor)

// WithStrict makes members without a rule or same-name source fail the
// mapping with an UnresolvedMemberError. The default leaves them zero.
func WithStrict(strict bool) Option {
	return func(e *Executor) {
		e.strict = strict
	}
}

// WithConverters replaces the scalar conversion registry.
func WithConverters(r *convert.Registry) Option {
	return func(e *Executor) {
		if r != nil {
			e.converters = r
		}
	}
}

// WithDescriber replaces the descriptor cache.
func WithDescriber(c *descriptor.Cache) Option {
	return func(e *Executor) {
		if c != nil {
			e.describer = c
		}
	}
}

// WithMaxDepth bounds nested delegation. Zero disables the guard.
func WithMaxDepth(depth int) Option {
	return func(e *Executor) {
		if depth >= 0 {
			e.maxDepth = depth
		}
	}
}

// WithFlattening enables the flattening conventions: AddressStreet reads
// Address.Street and OrderCount reads len(Orders).
func WithFlattening(enabled bool) Option {
	return func(e *Executor) {
		e.flatten = enabled
	}
}

// New creates an executor over the given resolver.
func New(resolver Resolver, opts ...Option) *Executor {
	e := &Executor{
		resolver:   resolver,
		describer:  descriptor.Default(),
		converters: convert.Defaults(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Map produces a new instance of target from src. src may be a struct or a
// pointer to one; the result is always a struct value of the target type.
// On error the result is nil.
func (e *Executor) Map(src any, target descriptor.TypeKey) (any, error) {
	v, ok := indirect(reflect.ValueOf(src))
	if !ok {
		return nil, fmt.Errorf("map to %s: %w", target, errors.ErrNilSource)
	}

	out, err := e.mapValue(v, target, 0)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// Plan returns the compiled plan for (source, target).
func (e *Executor) Plan(source, target descriptor.TypeKey) (*Plan, error) {
	return e.plan(source, target)
}

func (e *Executor) plan(source, target descriptor.TypeKey) (*Plan, error) {
	pair := mapping.Pair{Source: source, Target: target}
	if cached, ok := e.plans.Load(pair); ok {
		return cached.(*Plan), nil
	}

	def, err := e.resolver.Resolve(source, target)
	if err != nil {
		return nil, err
	}
	p, err := e.compile(def)
	if err != nil {
		return nil, err
	}

	// inferred delegation depends on what is registered, so only a sealed
	// registry yields plans that stay valid
	if e.resolver.Sealed() {
		actual, _ := e.plans.LoadOrStore(pair, p)
		p = actual.(*Plan)
	}
	return p, nil
}

func (e *Executor) mapValue(v reflect.Value, target descriptor.TypeKey, depth int) (reflect.Value, error) {
	source := descriptor.KeyFor(v.Type())
	if e.maxDepth > 0 && depth > e.maxDepth {
		return reflect.Value{}, &errors.MaxDepthExceededError{
			Source: source.String(),
			Target: target.String(),
			Depth:  e.maxDepth,
		}
	}

	p, err := e.plan(source, target)
	if err != nil {
		return reflect.Value{}, err
	}
	return e.run(p, v, depth)
}

func (e *Executor) run(p *Plan, v reflect.Value, depth int) (reflect.Value, error) {
	out := reflect.New(p.Pair.Target.Type()).Elem()

	for i := range p.Steps {
		s := &p.Steps[i]
		dst := out.FieldByIndex(s.target.Index)

		switch s.Kind {
		case StepCopy:
			if err := e.assign(p, s, v.FieldByIndex(s.path[0].Index), dst); err != nil {
				return reflect.Value{}, err
			}

		case StepCompute:
			val, err := s.compute(v.Interface())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("mapping %s member %q: %w", p.Pair, s.Member, err)
			}
			if err := e.assign(p, s, reflect.ValueOf(val), dst); err != nil {
				return reflect.Value{}, err
			}

		case StepDelegate:
			if err := e.delegate(p, s, v.FieldByIndex(s.path[0].Index), dst, depth); err != nil {
				return reflect.Value{}, err
			}

		case StepFlatten:
			sv, ok := walk(v, s.path)
			if !ok {
				continue
			}
			if err := e.assign(p, s, sv, dst); err != nil {
				return reflect.Value{}, err
			}

		case StepCount:
			sv, ok := indirect(v.FieldByIndex(s.path[0].Index))
			if !ok {
				continue
			}
			n := reflect.ValueOf(sv.Len())
			dst.Set(n.Convert(dst.Type()))

		case StepIgnore, StepUnresolved:
			// zero value
		}
	}

	return out, nil
}

func (e *Executor) assign(p *Plan, s *Step, sv, dst reflect.Value) error {
	val, ok, err := e.converters.Value(sv, dst.Type())
	if err != nil {
		return fmt.Errorf("mapping %s member %q: %w", p.Pair, s.Member, err)
	}
	if !ok {
		valueType := "nil"
		if sv.IsValid() {
			valueType = sv.Type().String()
		}
		return mismatch(p.Pair, s.target, valueType)
	}
	dst.Set(detach(val))
	return nil
}

// delegate maps a nested value, or each element of a collection, through the
// definition for its runtime type and the step's nested target.
func (e *Executor) delegate(p *Plan, s *Step, sv, dst reflect.Value, depth int) error {
	if !s.collection {
		nested, ok := indirect(sv)
		if !ok {
			return nil
		}
		out, err := e.mapValue(nested, s.nested, depth+1)
		if err != nil {
			return err
		}
		place(out, dst)
		return nil
	}

	if sv.Kind() == reflect.Ptr {
		if sv.IsNil() {
			return nil
		}
		sv = sv.Elem()
	}
	if sv.Kind() == reflect.Slice && sv.IsNil() {
		return nil
	}

	n := sv.Len()
	coll := dst
	switch dst.Kind() {
	case reflect.Slice:
		coll = reflect.MakeSlice(dst.Type(), n, n)
	case reflect.Array:
		if dst.Len() != n {
			return mismatch(p.Pair, s.target, fmt.Sprintf("%s of %d elements", sv.Type(), n))
		}
	}

	for i := 0; i < n; i++ {
		elem, ok := indirect(sv.Index(i))
		if !ok {
			continue
		}
		out, err := e.mapValue(elem, s.nested, depth+1)
		if err != nil {
			return fmt.Errorf("member %q element %d: %w", s.Member, i, err)
		}
		place(out, coll.Index(i))
	}

	if dst.Kind() == reflect.Slice {
		dst.Set(coll)
	}
	return nil
}

// indirect strips pointers and interfaces. It reports false for nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// walk follows a flattened member path. It reports false when a struct on
// the path is behind a nil pointer.
func walk(v reflect.Value, path []descriptor.MemberDescriptor) (reflect.Value, bool) {
	for i, m := range path {
		v = v.FieldByIndex(m.Index)
		if i == len(path)-1 {
			break
		}
		var ok bool
		if v, ok = indirect(v); !ok {
			return reflect.Value{}, false
		}
	}
	return v, true
}

// place stores a mapped struct into dst, allocating pointer levels as needed.
func place(val, dst reflect.Value) {
	if dst.Kind() == reflect.Ptr {
		p := reflect.New(dst.Type().Elem())
		place(val, p.Elem())
		dst.Set(p)
		return
	}
	dst.Set(val)
}

// detach copies slices and maps so the target never shares backing storage
// with the source.
func detach(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out
	}
	return v
}
