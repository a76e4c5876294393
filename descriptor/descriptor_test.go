/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package descriptor

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/automapper/errors"
)

type audit struct {
	CreatedAt time.Time
	UpdatedBy string
}

type linked struct {
	Next string
}

type order struct {
	ID    int
	Total float64
}

type customer struct {
	ID       int
	Name     string
	internal string
	audit
	*linked
	Orders  []order
	Tags    [2]string
	Avatar  []byte
	Manager *customer
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, KeyOf[customer](), KeyFor(reflect.TypeOf(&customer{})))
	assert.Equal(t, KeyOf[customer](), KeyOfValue(customer{}))
	assert.NotEqual(t, KeyOf[customer](), KeyOf[order]())
	assert.Equal(t, "github.com/suparena/automapper/descriptor.customer", KeyOf[customer]().String())
	assert.Equal(t, "[]descriptor.order", KeyOf[[]order]().String())
	assert.True(t, TypeKey{}.IsZero())
}

func TestDescribe_Members(t *testing.T) {
	cache := NewCache()

	desc, err := cache.Describe(reflect.TypeOf(customer{}))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"ID", "Name", "CreatedAt", "UpdatedBy", "Orders", "Tags", "Avatar", "Manager"},
		desc.Names())

	orders, ok := desc.Member("Orders")
	require.True(t, ok)
	assert.True(t, orders.IsCollection)
	assert.Equal(t, KeyOf[order](), orders.ElemKey)

	tags, _ := desc.Member("Tags")
	assert.True(t, tags.IsCollection)

	avatar, _ := desc.Member("Avatar")
	assert.False(t, avatar.IsCollection, "[]byte is a scalar")

	manager, _ := desc.Member("Manager")
	assert.True(t, manager.Pointer)
	assert.Equal(t, KeyOf[customer](), manager.Key)

	created, _ := desc.Member("CreatedAt")
	assert.Equal(t, []int{3, 0}, created.Index)

	_, ok = desc.Member("Next")
	assert.False(t, ok, "fields promoted through pointer embeds are skipped")
	_, ok = desc.Member("internal")
	assert.False(t, ok)
}

func TestDescribe_Cached(t *testing.T) {
	cache := NewCache()

	first, err := cache.Describe(reflect.TypeOf(customer{}))
	require.NoError(t, err)
	second, err := cache.Describe(reflect.TypeOf(&customer{}))
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestDescribe_Concurrent(t *testing.T) {
	cache := NewCache()

	var wg sync.WaitGroup
	results := make([]*TypeDescriptor, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := cache.Describe(reflect.TypeOf(order{}))
			if err == nil {
				results[i] = d
			}
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		assert.Same(t, results[0], d)
	}
}

func TestDescribe_Unsupported(t *testing.T) {
	cache := NewCache()

	for _, typ := range []reflect.Type{
		reflect.TypeOf(0),
		reflect.TypeOf(map[string]int{}),
		reflect.TypeOf(func() {}),
		reflect.TypeOf([]order{}),
		nil,
	} {
		_, err := cache.Describe(typ)
		assert.True(t, errors.IsUnsupportedType(err), "type %v", typ)
	}
}
