/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package automapper

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/suparena/automapper/convert"
	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/mapping"
)

// Profile groups related mapping configuration.
type Profile interface {
	Configure(cfg *Config) error
}

// ProfileFunc adapts a function to Profile.
type ProfileFunc func(cfg *Config) error

// Configure calls f.
func (f ProfileFunc) Configure(cfg *Config) error {
	return f(cfg)
}

// Config collects the definitions declared by one profile. Builders handed
// out by CreateMap are built when the profile returns.
type Config struct {
	describer  *descriptor.Cache
	converters *convert.Registry
	builders   []*mapping.Builder
	defs       []*mapping.Definition
}

// CreateMap starts a definition for (source, target) and returns its builder.
func (c *Config) CreateMap(source, target reflect.Type) *mapping.Builder {
	b := mapping.NewBuilder(source, target).WithCache(c.describer)
	c.builders = append(c.builders, b)
	return b
}

// Add registers an already built definition with the profile.
func (c *Config) Add(defs ...*mapping.Definition) {
	c.defs = append(c.defs, defs...)
}

// Converters returns the scalar conversion table shared by the mapper.
func (c *Config) Converters() *convert.Registry {
	return c.converters
}

// Describer returns the descriptor cache shared by the mapper.
func (c *Config) Describer() *descriptor.Cache {
	return c.describer
}

func (c *Config) build() ([]*mapping.Definition, error) {
	defs := append([]*mapping.Definition(nil), c.defs...)
	var errs []error
	for _, b := range c.builders {
		def, err := b.Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, def)
	}
	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}
	return defs, nil
}

// CreateMap starts a definition for (S, T) on cfg.
func CreateMap[S, T any](cfg *Config) *mapping.Builder {
	return cfg.CreateMap(reflect.TypeOf((*S)(nil)).Elem(), reflect.TypeOf((*T)(nil)).Elem())
}

func profileName(p Profile) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
