/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package automapper

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/suparena/automapper/convert"
	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/executor"
	"github.com/suparena/automapper/mapping"
	"github.com/suparena/automapper/registry"
)

// Mapper bundles a registry, its executor and the shared descriptor and
// conversion tables. Configure it, Seal it, then share it.
type Mapper struct {
	registry   *registry.Registry
	executor   *executor.Executor
	describer  *descriptor.Cache
	converters *convert.Registry
	logger     *slog.Logger
}

type options struct {
	logger     *slog.Logger
	describer  *descriptor.Cache
	converters *convert.Registry
	strict     bool
	flatten    bool
	maxDepth   int
}

// Option configures a Mapper.
type Option func(*options)

// WithLogger sets the logger for configuration events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStrict makes unresolved target members an error.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithFlattening enables the AddressStreet / OrderCount conventions.
func WithFlattening(enabled bool) Option {
	return func(o *options) { o.flatten = enabled }
}

// WithMaxDepth bounds nested delegation; zero disables the guard.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithConverters replaces the default scalar conversions.
func WithConverters(r *convert.Registry) Option {
	return func(o *options) { o.converters = r }
}

// WithDescriber replaces the process-wide descriptor cache.
func WithDescriber(c *descriptor.Cache) Option {
	return func(o *options) { o.describer = c }
}

// New creates an unsealed Mapper.
func New(opts ...Option) *Mapper {
	o := options{
		maxDepth: executor.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.describer == nil {
		o.describer = descriptor.Default()
	}
	if o.converters == nil {
		o.converters = convert.Defaults()
	}

	reg := registry.New(registry.WithLogger(o.logger))
	return &Mapper{
		registry: reg,
		executor: executor.New(reg,
			executor.WithStrict(o.strict),
			executor.WithFlattening(o.flatten),
			executor.WithMaxDepth(o.maxDepth),
			executor.WithConverters(o.converters),
			executor.WithDescriber(o.describer),
		),
		describer:  o.describer,
		converters: o.converters,
		logger:     o.logger,
	}
}

// Register adds definitions in order and stops at the first failure.
func (m *Mapper) Register(defs ...*mapping.Definition) error {
	for _, def := range defs {
		if err := m.registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// AddProfiles runs each profile against a fresh Config and registers what it
// declared. Profiles are applied in order; the first failing one stops the call.
func (m *Mapper) AddProfiles(profiles ...Profile) error {
	for _, p := range profiles {
		cfg := &Config{describer: m.describer, converters: m.converters}
		if err := p.Configure(cfg); err != nil {
			return fmt.Errorf("profile %s: %w", profileName(p), err)
		}

		defs, err := cfg.build()
		if err != nil {
			return fmt.Errorf("profile %s: %w", profileName(p), err)
		}
		if err := m.Register(defs...); err != nil {
			return fmt.Errorf("profile %s: %w", profileName(p), err)
		}
		m.logger.Debug("profile applied", "profile", profileName(p), "definitions", len(defs))
	}
	return nil
}

// Seal ends configuration. Mapping before Seal works but recompiles plans
// on every call.
func (m *Mapper) Seal() {
	m.registry.Seal()
}

// Sealed reports whether configuration has ended.
func (m *Mapper) Sealed() bool {
	return m.registry.Sealed()
}

// Registry exposes the underlying registry.
func (m *Mapper) Registry() *registry.Registry {
	return m.registry
}

// Converters exposes the scalar conversion table.
func (m *Mapper) Converters() *convert.Registry {
	return m.converters
}

// Map maps src onto a new instance of target.
func (m *Mapper) Map(src any, target descriptor.TypeKey) (any, error) {
	return m.executor.Map(src, target)
}

// Plan returns the compiled plan for a registered pair.
func (m *Mapper) Plan(source, target descriptor.TypeKey) (*executor.Plan, error) {
	return m.executor.Plan(source, target)
}

// Plans compiles every registered pair, sorted by pair.
func (m *Mapper) Plans() ([]*executor.Plan, error) {
	pairs := m.registry.Pairs()
	plans := make([]*executor.Plan, 0, len(pairs))
	for _, p := range pairs {
		plan, err := m.executor.Plan(p.Source, p.Target)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Map maps src onto a new T. T may be a struct or a pointer to one.
func Map[T any](m *Mapper, src any) (T, error) {
	var zero T
	out, err := m.Map(src, descriptor.KeyOf[T]())
	if err != nil {
		return zero, err
	}
	return as[T](out), nil
}

// MapSlice maps each element of src in order. A nil slice maps to nil.
func MapSlice[T, S any](m *Mapper, src []S) ([]T, error) {
	if src == nil {
		return nil, nil
	}
	key := descriptor.KeyOf[T]()
	out := make([]T, len(src))
	for i := range src {
		v, err := m.Map(src[i], key)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = as[T](v)
	}
	return out, nil
}

func as[T any](v any) T {
	if t, ok := v.(T); ok {
		return t
	}
	// T is a pointer to the mapped struct
	ptr := reflect.New(reflect.TypeOf(v))
	ptr.Elem().Set(reflect.ValueOf(v))
	return ptr.Interface().(T)
}
