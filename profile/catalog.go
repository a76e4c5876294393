/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/mapping"
)

// Catalog resolves the names used in profile files to Go types and compute
// functions. Populate it during initialization.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
	funcs map[string]mapping.ComputeFunc
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		types: make(map[string]reflect.Type),
		funcs: make(map[string]mapping.ComputeFunc),
	}
}

// RegisterType registers T under name.
// It panics if the name is taken, to prevent accidental overrides.
func RegisterType[T any](c *Catalog, name string) {
	c.AddType(name, reflect.TypeOf((*T)(nil)).Elem())
}

// RegisterFunc registers a typed compute function under name.
// It panics if the name is taken.
func RegisterFunc[S, V any](c *Catalog, name string, fn func(S) V) {
	rule := mapping.ComputeFrom(fn).(mapping.Computed)
	c.AddFunc(name, rule.Compute)
}

// AddType registers t under name.
func (c *Catalog) AddType(name string, t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.types[name]; exists {
		panic(fmt.Sprintf("profile catalog: type %q already registered", name))
	}
	c.types[name] = t
}

// AddFunc registers an untyped compute function under name.
func (c *Catalog) AddFunc(name string, fn mapping.ComputeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.funcs[name]; exists {
		panic(fmt.Sprintf("profile catalog: function %q already registered", name))
	}
	c.funcs[name] = fn
}

// Type returns the type registered under name.
func (c *Catalog) Type(name string) (reflect.Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.types[name]
	if !ok {
		return nil, errors.NewNotFoundError("type", name)
	}
	return t, nil
}

// Func returns the compute function registered under name.
func (c *Catalog) Func(name string) (mapping.ComputeFunc, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn, ok := c.funcs[name]
	if !ok {
		return nil, errors.NewNotFoundError("function", name)
	}
	return fn, nil
}

// TypeNames lists the registered type names, sorted.
func (c *Catalog) TypeNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for n := range c.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
