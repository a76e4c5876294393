// Package mapping defines member-level mapping rules and the immutable
// definitions that group them per ordered type pair.
//
// # Rules
//
//   - CopyMember: copy a named source member, converting scalars if needed
//   - Computed: derive the value from the whole source instance
//   - Delegate: map a nested member, or each element of a collection, through
//     another registered definition
//   - IgnoreMember: leave the member at its zero value
//
// Target members without a rule fall back to the same-name convention at
// mapping time.
//
// # Reverse derivation
//
// DeriveReverse asks the registry to also register target -> source. Only
// CopyMember rules are inverted. Computed and Delegate rules need explicit
// counterparts supplied with ForReverseMember. Without one, a Delegate leaves
// its source member Unresolved in the reverse definition, and so does a
// Computed rule whose target member name also exists on the source.
package mapping
