/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	stderrors "errors"
	"reflect"

	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/errors"
)

// Builder accumulates rules for one ordered type pair.
//
//	def, err := mapping.For[Person, PersonView]().
//	    ForMember("FullName", mapping.ComputeFrom(func(p Person) string {
//	        return p.FirstName + " " + p.LastName
//	    })).
//	    Build()
//
// Builder methods record misuse and Build reports it; a Builder is not safe
// for concurrent use.
type Builder struct {
	pair         Pair
	cache        *descriptor.Cache
	rules        map[string]Rule
	reverse      bool
	reverseRules map[string]Rule
	errs         []error
}

// NewBuilder starts a definition mapping source to target.
func NewBuilder(source, target reflect.Type) *Builder {
	return NewBuilderForKeys(descriptor.KeyFor(source), descriptor.KeyFor(target))
}

// NewBuilderForKeys is NewBuilder for existing type keys.
func NewBuilderForKeys(source, target descriptor.TypeKey) *Builder {
	return &Builder{
		pair:         Pair{Source: source, Target: target},
		cache:        descriptor.Default(),
		rules:        make(map[string]Rule),
		reverseRules: make(map[string]Rule),
	}
}

// For starts a definition mapping S to T.
func For[S, T any]() *Builder {
	return NewBuilderForKeys(descriptor.KeyOf[S](), descriptor.KeyOf[T]())
}

// WithCache sets the descriptor cache used for validation.
func (b *Builder) WithCache(c *descriptor.Cache) *Builder {
	if c != nil {
		b.cache = c
	}
	return b
}

// Pair returns the type pair under construction.
func (b *Builder) Pair() Pair {
	return b.pair
}

// ForMember sets the rule for a target member. Each member accepts one rule.
func (b *Builder) ForMember(target string, r Rule) *Builder {
	b.put(b.rules, b.pair, target, r)
	return b
}

// DeriveReverse asks the registry to also register the target -> source
// definition derived from this one.
func (b *Builder) DeriveReverse() *Builder {
	b.reverse = true
	return b
}

// ReverseMap is an alias for DeriveReverse.
func (b *Builder) ReverseMap() *Builder {
	return b.DeriveReverse()
}

// ForReverseMember supplies the rule for a member of the source type when it
// is the target of the derived reverse mapping. It implies DeriveReverse.
func (b *Builder) ForReverseMember(target string, r Rule) *Builder {
	b.reverse = true
	b.put(b.reverseRules, b.pair.Reverse(), target, r)
	return b
}

func (b *Builder) put(rules map[string]Rule, pair Pair, target string, r Rule) {
	fail := func(msg string) {
		b.errs = append(b.errs, errors.NewInvalidRuleError(pair.Source.String(), pair.Target.String(), target, msg))
	}

	if target == "" {
		fail("target member name is empty")
		return
	}
	if _, exists := rules[target]; exists {
		fail("rule already defined")
		return
	}

	switch rule := r.(type) {
	case nil:
		fail("rule is nil")
		return
	case CopyMember:
		if rule.SourceMember == "" {
			fail("copy rule has no source member")
			return
		}
	case Computed:
		if rule.Compute == nil {
			fail("computed rule has no function")
			return
		}
	case Delegate:
		if rule.NestedSource.IsZero() || rule.NestedTarget.IsZero() {
			fail("delegate rule has no nested type pair")
			return
		}
		if rule.SourceMember == "" {
			rule.SourceMember = target
		}
		r = rule
	}

	rules[target] = r
}

// Build validates the accumulated rules and returns the immutable definition.
func (b *Builder) Build() (*Definition, error) {
	srcDesc, err := b.cache.DescribeKey(b.pair.Source)
	if err != nil {
		return nil, err
	}
	dstDesc, err := b.cache.DescribeKey(b.pair.Target)
	if err != nil {
		return nil, err
	}

	errs := append([]error(nil), b.errs...)
	errs = append(errs, checkMembers(b.pair, dstDesc, b.rules)...)
	errs = append(errs, checkMembers(b.pair.Reverse(), srcDesc, b.reverseRules)...)
	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}

	def := &Definition{
		pair:         b.pair,
		rules:        make(map[string]Rule, len(b.rules)),
		reverse:      b.reverse,
		reverseRules: make(map[string]Rule, len(b.reverseRules)),

		sourceMembers: srcDesc.Names(),
	}
	for k, v := range b.rules {
		def.rules[k] = v
	}
	for k, v := range b.reverseRules {
		def.reverseRules[k] = v
	}
	return def, nil
}

// MustBuild is Build for static configuration; it panics on error.
func (b *Builder) MustBuild() *Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

func checkMembers(pair Pair, target *descriptor.TypeDescriptor, rules map[string]Rule) []error {
	var errs []error
	for _, name := range sortedKeys(rules) {
		if _, ok := target.Member(name); !ok {
			errs = append(errs, errors.NewInvalidRuleError(
				pair.Source.String(), pair.Target.String(), name, "target has no such member"))
		}
	}
	return errs
}
