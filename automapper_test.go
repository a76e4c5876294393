/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package automapper_test

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/convert"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/mapping"
)

type Address struct {
	Street string
	City   string
}

type AddressDto struct {
	Street string
	City   string
}

type User struct {
	ID        int
	FirstName string
	LastName  string
	CreatedAt time.Time
	Address   Address
}

type UserDto struct {
	ID        int
	FullName  string
	CreatedAt strfmt.DateTime
	Address   *AddressDto
}

type Cents int64

type Price struct {
	Amount string
}

type PriceDto struct {
	Amount Cents
}

var userProfile = automapper.ProfileFunc(func(cfg *automapper.Config) error {
	automapper.CreateMap[User, UserDto](cfg).
		ForMember("FullName", mapping.ComputeFrom(func(u User) string { return u.FirstName + " " + u.LastName }))
	automapper.CreateMap[Address, AddressDto](cfg).ReverseMap()
	return nil
})

func newMapper(t *testing.T, opts ...automapper.Option) *automapper.Mapper {
	t.Helper()
	m := automapper.New(opts...)
	require.NoError(t, m.AddProfiles(userProfile))
	m.Seal()
	return m
}

func TestMapper_Map(t *testing.T) {
	m := newMapper(t, automapper.WithStrict(true))

	created := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	dto, err := automapper.Map[UserDto](m, User{
		ID:        7,
		FirstName: "John",
		LastName:  "Doe",
		CreatedAt: created,
		Address:   Address{Street: "123 Main St", City: "Anytown"},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, dto.ID)
	assert.Equal(t, "John Doe", dto.FullName)
	assert.Equal(t, strfmt.DateTime(created), dto.CreatedAt)
	require.NotNil(t, dto.Address)
	assert.Equal(t, "Anytown", dto.Address.City)

	back, err := automapper.Map[*Address](m, dto.Address)
	require.NoError(t, err)
	assert.Equal(t, &Address{Street: "123 Main St", City: "Anytown"}, back)
}

func TestMapper_MapErrors(t *testing.T) {
	m := newMapper(t)

	_, err := automapper.Map[UserDto](m, Price{})
	assert.True(t, errors.IsMappingNotFound(err))

	_, err = automapper.Map[UserDto](m, nil)
	assert.ErrorIs(t, err, errors.ErrNilSource)
}

func TestMapSlice(t *testing.T) {
	m := newMapper(t)

	users := make([]User, 10)
	for i := range users {
		users[i] = User{ID: i, FirstName: fmt.Sprintf("u%d", i)}
	}

	dtos, err := automapper.MapSlice[UserDto](m, users)
	require.NoError(t, err)
	require.Len(t, dtos, len(users))
	for i, d := range dtos {
		assert.Equal(t, i, d.ID)
	}
}

func TestMapSlice_Nil(t *testing.T) {
	m := newMapper(t)

	dtos, err := automapper.MapSlice[UserDto](m, []User(nil))
	require.NoError(t, err)
	assert.Nil(t, dtos)

	_, err = automapper.MapSlice[UserDto](m, []Price{{}})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "element 0:"))
}

func TestMapper_AddProfilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile automapper.Profile
		check   func(error) bool
	}{
		{
			name: "invalid rule",
			profile: automapper.ProfileFunc(func(cfg *automapper.Config) error {
				automapper.CreateMap[User, UserDto](cfg).ForMember("Nickname", mapping.Copy("FirstName"))
				return nil
			}),
			check: func(err error) bool { return errors.IsConfigurationError(err) },
		},
		{
			name: "duplicate pair",
			profile: automapper.ProfileFunc(func(cfg *automapper.Config) error {
				automapper.CreateMap[Address, AddressDto](cfg)
				return nil
			}),
			check: errors.IsDuplicateMapping,
		},
		{
			name: "profile failure",
			profile: automapper.ProfileFunc(func(cfg *automapper.Config) error {
				return fmt.Errorf("boom")
			}),
			check: func(err error) bool { return strings.Contains(err.Error(), "boom") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := automapper.New()
			require.NoError(t, m.AddProfiles(userProfile))

			err := m.AddProfiles(tt.profile)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestMapper_Sealed(t *testing.T) {
	m := newMapper(t)
	assert.True(t, m.Sealed())

	err := m.AddProfiles(automapper.ProfileFunc(func(cfg *automapper.Config) error {
		automapper.CreateMap[Price, PriceDto](cfg)
		return nil
	}))
	assert.True(t, errors.IsRegistrySealed(err))
}

func TestMapper_ProfileConverters(t *testing.T) {
	m := automapper.New(automapper.WithConverters(convert.NewRegistry()), automapper.WithStrict(true))
	err := m.AddProfiles(automapper.ProfileFunc(func(cfg *automapper.Config) error {
		convert.Register(cfg.Converters(), func(s string) (Cents, error) {
			var whole, frac int64
			if _, err := fmt.Sscanf(s, "%d.%02d", &whole, &frac); err != nil {
				return 0, err
			}
			return Cents(whole*100 + frac), nil
		})
		automapper.CreateMap[Price, PriceDto](cfg)
		return nil
	}))
	require.NoError(t, err)
	m.Seal()

	dto, err := automapper.Map[PriceDto](m, Price{Amount: "12.34"})
	require.NoError(t, err)
	assert.Equal(t, Cents(1234), dto.Amount)

	_, err = automapper.Map[PriceDto](m, Price{Amount: "n/a"})
	assert.Error(t, err)
}

func TestMapper_Plans(t *testing.T) {
	m := newMapper(t)

	plans, err := m.Plans()
	require.NoError(t, err)
	require.Len(t, plans, m.Registry().Len())
	for i := 1; i < len(plans); i++ {
		assert.Less(t, plans[i-1].Pair.String(), plans[i].Pair.String())
	}
}

func TestMapper_ThreadSafety(t *testing.T) {
	m := newMapper(t)

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				dto, err := automapper.Map[UserDto](m, &User{ID: id, FirstName: "a", LastName: "b"})
				if err != nil {
					t.Error(err)
					return
				}
				if dto.ID != id || dto.FullName != "a b" {
					t.Errorf("goroutine %d: got %+v", id, dto)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestGetVersionInfo(t *testing.T) {
	info := automapper.GetVersionInfo()
	assert.Equal(t, automapper.Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), automapper.Version)
}
