/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package demo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/descriptor"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/internal/config"
	"github.com/suparena/automapper/internal/logging"
)

var fixedNow = time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)

func newTestMapper(t *testing.T, opts ...automapper.Option) *automapper.Mapper {
	t.Helper()
	m, err := NewMapper(nil, opts...)
	require.NoError(t, err)
	return m
}

func newTestService(t *testing.T, opts ...ServiceOption) (*UserService, *automapper.Mapper) {
	t.Helper()
	m := newTestMapper(t, automapper.WithStrict(true))
	opts = append([]ServiceOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "u-1" }),
	}, opts...)
	return NewUserService(m, NewMemoryStore(), opts...), m
}

func TestMapperRegistersDemoPairs(t *testing.T) {
	m := newTestMapper(t, automapper.WithStrict(true))

	assert.True(t, m.Sealed())
	for _, pair := range [][2]descriptor.TypeKey{
		{descriptor.KeyOf[User](), descriptor.KeyOf[UserDto]()},
		{descriptor.KeyOf[CreateUserDto](), descriptor.KeyOf[User]()},
		{descriptor.KeyOf[Address](), descriptor.KeyOf[AddressDto]()},
		{descriptor.KeyOf[AddressDto](), descriptor.KeyOf[Address]()},
	} {
		assert.True(t, m.Registry().Has(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	plans, err := m.Plans()
	require.NoError(t, err)
	assert.Len(t, plans, 4)
}

func TestUserToUserDto(t *testing.T) {
	m := newTestMapper(t)

	user := User{
		Id:        "42",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		CreatedAt: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		Address:   &Address{Street: "123 Main St", City: "Anytown"},
		Orders:    []Order{{Id: "o1", Total: 10}, {Id: "o2", Total: 5}},
	}

	got, err := automapper.Map[UserDto](m, user)
	require.NoError(t, err)

	want := UserDto{
		Id:          "42",
		FullName:    "John Doe",
		Email:       "john@example.com",
		AddressLine: "123 Main St, Anytown",
		OrderCount:  2,
		MemberSince: "May 2023",
		CreatedAt:   strfmt.DateTime(user.CreatedAt),
	}
	assert.Equal(t, want, got)
}

func TestUserWithoutAddress(t *testing.T) {
	m := newTestMapper(t)

	got, err := automapper.Map[UserDto](m, User{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Empty(t, got.AddressLine)
	assert.Zero(t, got.OrderCount)
}

func TestCreateUserDtoToUser(t *testing.T) {
	m := automapper.New(automapper.WithStrict(true))
	profiles, err := Profiles(NewCatalog(), func() time.Time { return fixedNow })
	require.NoError(t, err)
	require.NoError(t, m.AddProfiles(profiles...))
	m.Seal()

	req := CreateUserDto{
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     "jane@example.com",
		Address:   &AddressDto{Street: "1 Elm St", City: "Springfield"},
	}
	got, err := automapper.Map[User](m, req)
	require.NoError(t, err)

	assert.Empty(t, got.Id)
	assert.Nil(t, got.Orders)
	assert.Equal(t, fixedNow, got.CreatedAt)
	require.NotNil(t, got.Address)
	assert.Equal(t, Address{Street: "1 Elm St", City: "Springfield"}, *got.Address)

	// the nested address is a new value
	req.Address.Street = "changed"
	assert.Equal(t, "1 Elm St", got.Address.Street)
}

func TestAddressReverseRoundTrip(t *testing.T) {
	m := newTestMapper(t)

	addr := Address{Street: "123 Main St", City: "Anytown"}
	dto, err := automapper.Map[AddressDto](m, addr)
	require.NoError(t, err)

	back, err := automapper.Map[Address](m, dto)
	require.NoError(t, err)
	assert.Equal(t, addr, back)
}

func TestExtraProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: summaries
version: "1"
mappings:
  - source: User
    target: Order
    121:
      Id: Id
    ignore:
      - Total
`), 0o600))

	m, err := NewMapper([]string{path}, automapper.WithStrict(true))
	require.NoError(t, err)

	got, err := automapper.Map[Order](m, User{Id: "7"})
	require.NoError(t, err)
	assert.Equal(t, Order{Id: "7"}, got)

	_, err = NewMapper([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestUserServiceGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("simulated", func(t *testing.T) {
		svc, _ := newTestService(t)

		got, err := svc.GetUser(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "1", got.Id)
		assert.Equal(t, "John Doe", got.FullName)
		assert.Equal(t, "john@example.com", got.Email)
		assert.Equal(t, "123 Main St, Anytown", got.AddressLine)
		assert.Equal(t, "May 2023", got.MemberSince)
	})

	t.Run("stored", func(t *testing.T) {
		store := NewMemoryStore()
		m := newTestMapper(t)
		svc := NewUserService(m, store, WithSimulatedUsers(false))

		require.NoError(t, store.Put(ctx, User{Id: "9", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}))

		got, err := svc.GetUser(ctx, "9")
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", got.FullName)
		assert.Empty(t, got.AddressLine)
	})

	t.Run("not found without simulation", func(t *testing.T) {
		svc, _ := newTestService(t, WithSimulatedUsers(false))

		_, err := svc.GetUser(ctx, "missing")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("empty id", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetUser(ctx, " ")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestUserServiceCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("maps and stores", func(t *testing.T) {
		store := NewMemoryStore()
		m := newTestMapper(t, automapper.WithStrict(true))
		svc := NewUserService(m, store, WithIDGenerator(func() string { return "u-1" }))

		user, err := svc.CreateUser(ctx, CreateUserDto{
			FirstName: "Jane",
			LastName:  "Roe",
			Email:     "jane@example.com",
			Address:   &AddressDto{Street: "1 Elm St", City: "Springfield"},
		})
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.Id)
		assert.Equal(t, time.UTC, user.CreatedAt.Location())
		assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Minute)

		stored, err := store.GetOne(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, user, *stored)

		list, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "1 Elm St, Springfield", list[0].AddressLine)
	})

	t.Run("default ids are unique", func(t *testing.T) {
		svc := NewUserService(newTestMapper(t), NewMemoryStore())
		req := CreateUserDto{FirstName: "A", LastName: "B", Email: "a@example.com"}

		first, err := svc.CreateUser(ctx, req)
		require.NoError(t, err)
		second, err := svc.CreateUser(ctx, req)
		require.NoError(t, err)
		assert.NotEqual(t, first.Id, second.Id)
	})

	t.Run("store failure", func(t *testing.T) {
		store := NewMemoryStore().WithPutError(errors.ErrInvalidInput)
		svc := NewUserService(newTestMapper(t), store)

		_, err := svc.CreateUser(ctx, CreateUserDto{FirstName: "A", LastName: "B", Email: "a@example.com"})
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestValidateCreateUser(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateUserDto
		field string
	}{
		{"missing first name", CreateUserDto{LastName: "B", Email: "a@example.com"}, "firstName"},
		{"missing last name", CreateUserDto{FirstName: "A", Email: "a@example.com"}, "lastName"},
		{"bad email", CreateUserDto{FirstName: "A", LastName: "B", Email: "not-an-email"}, "email"},
		{"empty email", CreateUserDto{FirstName: "A", LastName: "B"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateUser(tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.NoError(t, ValidateCreateUser(CreateUserDto{FirstName: "A", LastName: "B", Email: "a@example.com"}))
}

func TestNewStoreDefaultsToMemory(t *testing.T) {
	store, err := NewStore(context.Background(), config.Config{Store: config.StoreMemory}, logging.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NewMemoryStore(), store)
}
