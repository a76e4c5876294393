/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/mapping"
)

// SchemaVersion is the profile file version this package reads.
const SchemaVersion = "1"

// File is the root of a YAML profile file.
type File struct {
	// Name identifies the profile in errors and logs; defaults to the file name.
	Name string `yaml:"name,omitempty"`

	Version string `yaml:"version,omitempty"`

	Mappings []TypeMapping `yaml:"mappings"`
}

// TypeMapping declares the rules for one ordered type pair.
type TypeMapping struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	// Reverse also registers target -> source, inverting the copy rules.
	Reverse bool `yaml:"reverse,omitempty"`

	// OneToOne maps source member names to target member names.
	OneToOne map[string]string `yaml:"121,omitempty"`

	Fields []FieldSpec `yaml:"fields,omitempty"`

	// Ignore lists target members to leave at their zero value.
	Ignore []string `yaml:"ignore,omitempty"`

	// ReverseFields and ReverseIgnore configure the derived reverse mapping.
	// Either implies Reverse.
	ReverseFields []FieldSpec `yaml:"reverse_fields,omitempty"`
	ReverseIgnore []string    `yaml:"reverse_ignore,omitempty"`
}

// FieldSpec is one explicit member rule. Exactly one of Source, Compute and
// Delegate selects the rule kind; with Delegate, Source names the source
// member and defaults to Target.
type FieldSpec struct {
	Target   string        `yaml:"target"`
	Source   string        `yaml:"source,omitempty"`
	Compute  string        `yaml:"compute,omitempty"`
	Delegate *DelegateSpec `yaml:"delegate,omitempty"`
}

// DelegateSpec names the nested type pair of a delegate rule.
type DelegateSpec struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// LoadFile loads and parses a YAML profile file from the given path.
func LoadFile(p string) (*File, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", p, err)
	}
	return parseNamed(data, path.Base(p))
}

// LoadFS loads a profile file from fsys, typically an embed.FS.
func LoadFS(fsys fs.FS, name string) (*File, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", name, err)
	}
	return parseNamed(data, path.Base(name))
}

// Parse parses and validates YAML profile data.
func Parse(data []byte) (*File, error) {
	return parseNamed(data, "")
}

func parseNamed(data []byte, name string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = SchemaVersion
	}
	if f.Name == "" {
		f.Name = name
	}
	if f.Name == "" {
		f.Name = "yaml"
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file's structure. Type and function names are checked
// later, against a Catalog.
func (f *File) Validate() error {
	if f.Version != SchemaVersion {
		return errors.NewValidationError("version", fmt.Sprintf("unsupported version %q", f.Version))
	}

	var errs []error
	for i, tm := range f.Mappings {
		at := fmt.Sprintf("mappings[%d]", i)
		if tm.Source == "" {
			errs = append(errs, errors.NewValidationError(at+".source", "is required"))
		}
		if tm.Target == "" {
			errs = append(errs, errors.NewValidationError(at+".target", "is required"))
		}
		errs = append(errs, validateFields(at+".fields", tm.Fields)...)
		errs = append(errs, validateFields(at+".reverse_fields", tm.ReverseFields)...)
	}
	return stderrors.Join(errs...)
}

func validateFields(at string, fields []FieldSpec) []error {
	var errs []error
	for j, spec := range fields {
		field := fmt.Sprintf("%s[%d]", at, j)
		if spec.Target == "" {
			errs = append(errs, errors.NewValidationError(field+".target", "is required"))
		}

		kinds := 0
		if spec.Compute != "" {
			kinds++
		}
		if spec.Delegate != nil {
			kinds++
			if spec.Delegate.Source == "" || spec.Delegate.Target == "" {
				errs = append(errs, errors.NewValidationError(field+".delegate", "needs source and target types"))
			}
		} else if spec.Source != "" {
			kinds++
		}
		if kinds != 1 {
			errs = append(errs, errors.NewValidationError(field, "set exactly one of source, compute or delegate"))
		}
	}
	return errs
}

// Profile binds a parsed file to a catalog so it can be added to a Mapper.
func (f *File) Profile(c *Catalog) automapper.Profile {
	return &fileProfile{file: f, catalog: c}
}

type fileProfile struct {
	file    *File
	catalog *Catalog
}

func (p *fileProfile) Name() string {
	return p.file.Name
}

func (p *fileProfile) Configure(cfg *automapper.Config) error {
	var errs []error
	for i, tm := range p.file.Mappings {
		if err := p.configure(cfg, tm); err != nil {
			errs = append(errs, fmt.Errorf("mappings[%d] %s -> %s: %w", i, tm.Source, tm.Target, err))
		}
	}
	return stderrors.Join(errs...)
}

func (p *fileProfile) configure(cfg *automapper.Config, tm TypeMapping) error {
	src, err := p.catalog.Type(tm.Source)
	if err != nil {
		return err
	}
	dst, err := p.catalog.Type(tm.Target)
	if err != nil {
		return err
	}

	b := cfg.CreateMap(src, dst)

	sources := make([]string, 0, len(tm.OneToOne))
	for s := range tm.OneToOne {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		b.ForMember(tm.OneToOne[s], mapping.Copy(s))
	}

	for _, spec := range tm.Fields {
		rule, err := p.rule(spec)
		if err != nil {
			return err
		}
		b.ForMember(spec.Target, rule)
	}
	for _, name := range tm.Ignore {
		b.ForMember(name, mapping.Ignore())
	}

	if tm.Reverse {
		b.DeriveReverse()
	}
	for _, spec := range tm.ReverseFields {
		rule, err := p.rule(spec)
		if err != nil {
			return err
		}
		b.ForReverseMember(spec.Target, rule)
	}
	for _, name := range tm.ReverseIgnore {
		b.ForReverseMember(name, mapping.Ignore())
	}
	return nil
}

func (p *fileProfile) rule(spec FieldSpec) (mapping.Rule, error) {
	switch {
	case spec.Compute != "":
		fn, err := p.catalog.Func(spec.Compute)
		if err != nil {
			return nil, err
		}
		return mapping.Named(spec.Compute, mapping.Compute(fn)), nil

	case spec.Delegate != nil:
		ns, err := p.catalog.Type(spec.Delegate.Source)
		if err != nil {
			return nil, err
		}
		nt, err := p.catalog.Type(spec.Delegate.Target)
		if err != nil {
			return nil, err
		}
		return mapping.DelegateTo(spec.Source, descriptor.KeyFor(ns), descriptor.KeyFor(nt)), nil

	default:
		return mapping.Copy(spec.Source), nil
	}
}
