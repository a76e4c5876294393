/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package convert

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
)

// Compatibility represents how a source type can reach a target type.
type Compatibility int

const (
	// Incompatible means no built-in or registered path exists.
	Incompatible Compatibility = iota
	// NeedsConversion means a registered conversion function is required.
	NeedsConversion
	// Convertible means a reflect conversion between kindred types applies.
	Convertible
	// Assignable means the value can be assigned directly.
	Assignable
	// Identical means the types are the same.
	Identical
)

// String returns a human-readable name for the compatibility level.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case Assignable:
		return "assignable"
	case Convertible:
		return "convertible"
	case NeedsConversion:
		return "needs_conversion"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// Score classifies src against dst without consulting registered conversions.
// Convertible is limited to kindred kinds (numeric to numeric, string-like to
// string-like, identical underlying types) so that int never silently becomes
// a rune string.
func Score(src, dst reflect.Type) Compatibility {
	switch {
	case src == dst:
		return Identical
	case src.AssignableTo(dst):
		return Assignable
	case kindred(src, dst) && src.ConvertibleTo(dst):
		return Convertible
	default:
		return Incompatible
	}
}

func kindred(src, dst reflect.Type) bool {
	switch {
	case isNumeric(src.Kind()) && isNumeric(dst.Kind()):
		return true
	case src.Kind() == reflect.String && dst.Kind() == reflect.String:
		return true
	case src.Kind() == reflect.Bool && dst.Kind() == reflect.Bool:
		return true
	case src.Kind() == dst.Kind() && src.Kind() != reflect.Interface:
		return sameUnderlying(src, dst)
	default:
		return false
	}
}

// sameUnderlying approximates go/types' Identical(underlying) for reflect types.
// Structs and pointers to structs are excluded: they go through a mapping
// definition, so the target never aliases the source.
func sameUnderlying(a, b reflect.Type) bool {
	base := a
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if base.Kind() == reflect.Struct {
		return false
	}
	return a.ConvertibleTo(b) && b.ConvertibleTo(a)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Func converts a value of one scalar type into another.
type Func func(reflect.Value) (reflect.Value, error)

type pair struct {
	src, dst reflect.Type
}

// Registry holds scalar conversions keyed by (source, target) type.
// Registration is expected during configuration; lookups are safe to run
// concurrently with each other.
type Registry struct {
	mu    sync.RWMutex
	funcs map[pair]Func
}

// NewRegistry creates an empty conversion registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[pair]Func),
	}
}

// Defaults returns a registry preloaded with the conversions used for
// transfer representations: time.Time to and from strfmt.DateTime and
// strfmt.Date, and time.Time to an RFC 3339 string.
func Defaults() *Registry {
	r := NewRegistry()
	Register(r, func(t time.Time) (strfmt.DateTime, error) { return strfmt.DateTime(t), nil })
	Register(r, func(d strfmt.DateTime) (time.Time, error) { return time.Time(d), nil })
	Register(r, func(t time.Time) (strfmt.Date, error) { return strfmt.Date(t), nil })
	Register(r, func(d strfmt.Date) (time.Time, error) { return time.Time(d), nil })
	Register(r, func(t time.Time) (string, error) { return strfmt.DateTime(t).String(), nil })
	Register(r, func(s string) (strfmt.DateTime, error) { return strfmt.ParseDateTime(s) })
	return r
}

// Register adds a typed conversion from S to T. A later registration for the
// same pair replaces the earlier one.
func Register[S, T any](r *Registry, fn func(S) (T, error)) {
	src := reflect.TypeOf((*S)(nil)).Elem()
	dst := reflect.TypeOf((*T)(nil)).Elem()

	r.Add(src, dst, func(v reflect.Value) (reflect.Value, error) {
		out, err := fn(v.Interface().(S))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&out).Elem(), nil
	})
}

// Add registers an untyped conversion.
func (r *Registry) Add(src, dst reflect.Type, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[pair{src, dst}] = fn
}

// Lookup returns the conversion registered for src to dst.
func (r *Registry) Lookup(src, dst reflect.Type) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[pair{src, dst}]
	return fn, ok
}

// Pairs lists the registered conversions as "src -> dst", sorted.
func (r *Registry) Pairs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.funcs))
	for p := range r.funcs {
		out = append(out, p.src.String()+" -> "+p.dst.String())
	}
	sort.Strings(out)
	return out
}

// Classify scores src against dst, falling back to registered conversions.
func (r *Registry) Classify(src, dst reflect.Type) Compatibility {
	if c := Score(src, dst); c != Incompatible {
		return c
	}
	if _, ok := r.Lookup(src, dst); ok {
		return NeedsConversion
	}
	return Incompatible
}

// Compatible reports whether Value can produce a dst from a src, bridging
// pointer levels the same way Value does.
func (r *Registry) Compatible(src, dst reflect.Type) bool {
	if r.Classify(src, dst) != Incompatible {
		return true
	}
	if src.Kind() == reflect.Ptr && dst.Kind() != reflect.Ptr {
		return r.Compatible(src.Elem(), dst)
	}
	if dst.Kind() == reflect.Ptr {
		if src.Kind() == reflect.Ptr {
			src = src.Elem()
		}
		return r.Compatible(src, dst.Elem())
	}
	return false
}

// Value converts v into a value of type dst. Pointer levels are bridged on
// both sides: a nil source pointer yields dst's zero value, and a non-pointer
// source is addressed into a fresh pointer when dst is a pointer.
func (r *Registry) Value(v reflect.Value, dst reflect.Type) (reflect.Value, bool, error) {
	if !v.IsValid() {
		return reflect.Zero(dst), true, nil
	}

	if out, ok, err := r.direct(v, dst); ok || err != nil {
		return out, ok, err
	}

	// *S -> T
	if v.Kind() == reflect.Ptr && dst.Kind() != reflect.Ptr {
		if v.IsNil() {
			if r.Classify(v.Type().Elem(), dst) == Incompatible {
				return reflect.Value{}, false, nil
			}
			return reflect.Zero(dst), true, nil
		}
		return r.Value(v.Elem(), dst)
	}

	// S -> *T
	if dst.Kind() == reflect.Ptr {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Zero(dst), r.Classify(v.Type().Elem(), dst.Elem()) != Incompatible, nil
			}
			v = v.Elem()
		}
		inner, ok, err := r.Value(v, dst.Elem())
		if !ok || err != nil {
			return reflect.Value{}, ok, err
		}
		ptr := reflect.New(dst.Elem())
		ptr.Elem().Set(inner)
		return ptr, true, nil
	}

	return reflect.Value{}, false, nil
}

func (r *Registry) direct(v reflect.Value, dst reflect.Type) (reflect.Value, bool, error) {
	switch Score(v.Type(), dst) {
	case Identical, Assignable:
		out := reflect.New(dst).Elem()
		out.Set(v)
		return out, true, nil
	case Convertible:
		return v.Convert(dst), true, nil
	}

	if fn, ok := r.Lookup(v.Type(), dst); ok {
		out, err := fn(v)
		if err != nil {
			return reflect.Value{}, false, fmt.Errorf("convert %s to %s: %w", v.Type(), dst, err)
		}
		return out, true, nil
	}

	return reflect.Value{}, false, nil
}
