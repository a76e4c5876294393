/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"sort"

	"github.com/suparena/automapper/descriptor"
)

// Pair is an ordered (source, target) type combination.
type Pair struct {
	Source descriptor.TypeKey
	Target descriptor.TypeKey
}

// String renders the pair as "source -> target".
func (p Pair) String() string {
	return p.Source.String() + " -> " + p.Target.String()
}

// Reverse swaps source and target.
func (p Pair) Reverse() Pair {
	return Pair{Source: p.Target, Target: p.Source}
}

// Definition is the immutable rule set for one ordered type pair.
// Build one with a Builder.
type Definition struct {
	pair         Pair
	rules        map[string]Rule
	reverse      bool
	reverseRules map[string]Rule

	// sourceMembers are the source type's member names, the targets of a reverse.
	sourceMembers []string
}

// Pair returns the ordered type pair the definition maps.
func (d *Definition) Pair() Pair {
	return d.pair
}

// Source returns the source type key.
func (d *Definition) Source() descriptor.TypeKey {
	return d.pair.Source
}

// Target returns the target type key.
func (d *Definition) Target() descriptor.TypeKey {
	return d.pair.Target
}

// Rule returns the explicit rule for a target member.
func (d *Definition) Rule(member string) (Rule, bool) {
	r, ok := d.rules[member]
	return r, ok
}

// Members returns the names of target members that carry explicit rules, sorted.
func (d *Definition) Members() []string {
	return sortedKeys(d.rules)
}

// Rules returns a copy of the explicit rules keyed by target member.
func (d *Definition) Rules() map[string]Rule {
	out := make(map[string]Rule, len(d.rules))
	for k, v := range d.rules {
		out[k] = v
	}
	return out
}

// ReverseRequested reports whether the registry should also derive target -> source.
func (d *Definition) ReverseRequested() bool {
	return d.reverse
}

// Reverse derives the target -> source definition.
//
// User-supplied reverse rules are taken first. Every CopyMember is then
// inverted onto the member it reads. A Delegate reading member Y leaves Y
// marked Unresolved unless a reverse rule for Y was supplied, and a Computed
// rule on member X does the same for a source member named X, so the reverse
// never copies a computed value back by name.
// The result never requests a further reverse.
func (d *Definition) Reverse() *Definition {
	rev := &Definition{
		pair:  d.pair.Reverse(),
		rules: make(map[string]Rule, len(d.rules)+len(d.reverseRules)),
	}

	for member, r := range d.reverseRules {
		rev.rules[member] = r
	}

	unresolved := func(member, reason string) {
		if _, taken := rev.rules[member]; !taken {
			rev.rules[member] = Unresolved{Reason: reason}
		}
	}

	// copies first, so an inverted copy wins over an unresolved marker
	members := sortedKeys(d.rules)
	for _, member := range members {
		if r, ok := d.rules[member].(CopyMember); ok {
			if _, taken := rev.rules[r.SourceMember]; !taken {
				rev.rules[r.SourceMember] = CopyMember{SourceMember: member}
			}
		}
	}

	for _, member := range members {
		switch r := d.rules[member].(type) {
		case Delegate:
			unresolved(r.SourceMember, "delegate to "+member+" is not reversible")
		case Computed:
			if d.hasSourceMember(member) {
				unresolved(member, "computed "+member+" is not reversible")
			}
		}
	}

	return rev
}

func (d *Definition) hasSourceMember(name string) bool {
	for _, m := range d.sourceMembers {
		if m == name {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]Rule) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
