/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package descriptor

import (
	"reflect"
	"sync"

	"github.com/suparena/automapper/errors"
)

// TypeKey identifies a type for registry lookups. Pointer indirections are
// stripped, so *Person and Person share a key.
type TypeKey struct {
	t reflect.Type
}

// KeyOf returns the TypeKey for T.
func KeyOf[T any]() TypeKey {
	return KeyFor(reflect.TypeOf((*T)(nil)).Elem())
}

// KeyFor returns the TypeKey for t.
func KeyFor(t reflect.Type) TypeKey {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return TypeKey{t: t}
}

// KeyOfValue returns the TypeKey of v's dynamic type.
func KeyOfValue(v any) TypeKey {
	return KeyFor(reflect.TypeOf(v))
}

// Type returns the underlying reflect.Type.
func (k TypeKey) Type() reflect.Type {
	return k.t
}

// IsZero reports whether the key identifies no type.
func (k TypeKey) IsZero() bool {
	return k.t == nil
}

// String returns "pkgpath.Name" for named types and the type literal otherwise.
func (k TypeKey) String() string {
	if k.t == nil {
		return "<nil>"
	}
	if k.t.Name() != "" && k.t.PkgPath() != "" {
		return k.t.PkgPath() + "." + k.t.Name()
	}
	return k.t.String()
}

// MemberDescriptor describes one settable member of a struct type.
type MemberDescriptor struct {
	Name         string       // Go field name
	Type         reflect.Type // Declared field type
	Key          TypeKey      // Key of the field type
	IsCollection bool         // Slice or array
	ElemKey      TypeKey      // Element key; zero unless IsCollection
	Pointer      bool         // Declared as a pointer
	Index        []int        // Index sequence for FieldByIndex
}

// TypeDescriptor is the ordered member list of a struct type.
type TypeDescriptor struct {
	Key     TypeKey
	Members []MemberDescriptor
	byName  map[string]int
}

// Member returns the member with the given name.
func (d *TypeDescriptor) Member(name string) (MemberDescriptor, bool) {
	i, ok := d.byName[name]
	if !ok {
		return MemberDescriptor{}, false
	}
	return d.Members[i], true
}

// Names returns the member names in declaration order.
func (d *TypeDescriptor) Names() []string {
	names := make([]string, len(d.Members))
	for i, m := range d.Members {
		names[i] = m.Name
	}
	return names
}

// Cache describes types once and serves later calls from memory.
// It is safe for concurrent use.
type Cache struct {
	entries sync.Map // reflect.Type -> *TypeDescriptor
}

// NewCache creates an empty descriptor cache.
func NewCache() *Cache {
	return &Cache{}
}

var defaultCache = NewCache()

// Default returns the process-wide cache used when no cache is injected.
func Default() *Cache {
	return defaultCache
}

// Describe returns the descriptor for t, computing it on first use.
func (c *Cache) Describe(t reflect.Type) (*TypeDescriptor, error) {
	key := KeyFor(t)
	if key.IsZero() {
		return nil, errors.NewUnsupportedTypeError("<nil>", "type is nil")
	}

	if cached, ok := c.entries.Load(key.t); ok {
		return cached.(*TypeDescriptor), nil
	}

	desc, err := describe(key)
	if err != nil {
		return nil, err
	}

	actual, _ := c.entries.LoadOrStore(key.t, desc)
	return actual.(*TypeDescriptor), nil
}

// DescribeKey is Describe for an existing key.
func (c *Cache) DescribeKey(key TypeKey) (*TypeDescriptor, error) {
	return c.Describe(key.t)
}

func describe(key TypeKey) (*TypeDescriptor, error) {
	t := key.t
	if t.Kind() != reflect.Struct {
		return nil, errors.NewUnsupportedTypeError(key.String(), "kind "+t.Kind().String()+" has no members")
	}

	desc := &TypeDescriptor{
		Key:    key,
		byName: make(map[string]int),
	}

	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if len(f.Index) > 1 && !promotedThroughValues(t, f.Index) {
			continue
		}
		if _, dup := desc.byName[f.Name]; dup {
			continue
		}

		m := MemberDescriptor{
			Name:    f.Name,
			Type:    f.Type,
			Key:     KeyFor(f.Type),
			Pointer: f.Type.Kind() == reflect.Ptr,
			Index:   f.Index,
		}
		if elem, ok := collectionElem(f.Type); ok {
			m.IsCollection = true
			m.ElemKey = KeyFor(elem)
		}

		desc.byName[f.Name] = len(desc.Members)
		desc.Members = append(desc.Members, m)
	}

	return desc, nil
}

// promotedThroughValues reports whether every embedded hop on the path is a
// struct value. Fields promoted through embedded pointers are skipped, since
// reading them may hit nil and writing them would require allocation.
func promotedThroughValues(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Struct {
			return false
		}
		t = f.Type
	}
	return true
}

func collectionElem(t reflect.Type) (reflect.Type, bool) {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte is a scalar payload, not a collection of members
			return nil, false
		}
		return t.Elem(), true
	default:
		return nil, false
	}
}
