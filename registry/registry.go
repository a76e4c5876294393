/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/mapping"
)

// Registry maps ordered type pairs to their mapping definitions.
//
// It has two phases. While open, Register adds definitions under a mutex.
// Seal ends the configuration phase; afterwards the table never changes and
// Resolve reads it without locking.
type Registry struct {
	mu     sync.Mutex
	defs   map[mapping.Pair]*mapping.Definition
	sealed atomic.Bool
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an open, empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		defs:   make(map[mapping.Pair]*mapping.Definition),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds def and, if it requests one, its derived reverse. Both are
// checked before either is stored, so a failed call leaves the registry unchanged.
func (r *Registry) Register(def *mapping.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := def.Pair()
	if r.sealed.Load() {
		return errors.NewRegistrySealedError(pair.Source.String(), pair.Target.String())
	}

	batch := []*mapping.Definition{def}
	if def.ReverseRequested() {
		batch = append(batch, def.Reverse())
	}

	for _, d := range batch {
		if _, exists := r.defs[d.Pair()]; exists {
			return errors.NewDuplicateMappingError(d.Source().String(), d.Target().String())
		}
	}
	if len(batch) == 2 && batch[0].Pair() == batch[1].Pair() {
		// S -> S with DeriveReverse would collide with itself
		return errors.NewDuplicateMappingError(pair.Source.String(), pair.Target.String())
	}

	for _, d := range batch {
		r.defs[d.Pair()] = d
		r.logger.Debug("mapping registered",
			"source", d.Source().String(),
			"target", d.Target().String(),
			"rules", len(d.Members()),
			"derived", d != def,
		)
	}
	return nil
}

// Seal ends the configuration phase. Sealing twice is harmless.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return
	}
	r.sealed.Store(true)
	r.logger.Info("mapping registry sealed", "definitions", len(r.defs))
}

// Sealed reports whether the configuration phase has ended.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Resolve returns the definition registered for exactly (source, target).
func (r *Registry) Resolve(source, target descriptor.TypeKey) (*mapping.Definition, error) {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	def, ok := r.defs[mapping.Pair{Source: source, Target: target}]
	if !ok {
		return nil, errors.NewMappingNotFoundError(source.String(), target.String())
	}
	return def, nil
}

// Has reports whether a definition exists for (source, target).
func (r *Registry) Has(source, target descriptor.TypeKey) bool {
	_, err := r.Resolve(source, target)
	return err == nil
}

// Len returns the number of registered definitions, derived ones included.
func (r *Registry) Len() int {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	return len(r.defs)
}

// Pairs returns all registered pairs sorted by their string form.
func (r *Registry) Pairs() []mapping.Pair {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	pairs := make([]mapping.Pair, 0, len(r.defs))
	for p := range r.defs {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].String() < pairs[j].String()
	})
	return pairs
}
