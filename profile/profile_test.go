/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package profile_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/profile"
)

type Address struct {
	Street string
	City   string
}

type AddressView struct {
	Street string
	City   string
}

type Person struct {
	FirstName string
	LastName  string
	Address   *Address
	Notes     string
}

type PersonView struct {
	FullName string
	Home     *AddressView
	Notes    string
}

func catalog() *profile.Catalog {
	c := profile.NewCatalog()
	profile.RegisterType[Address](c, "Address")
	profile.RegisterType[AddressView](c, "AddressView")
	profile.RegisterType[Person](c, "Person")
	profile.RegisterType[PersonView](c, "PersonView")
	profile.RegisterFunc(c, "fullName", func(p Person) string { return p.FirstName + " " + p.LastName })
	return c
}

func TestLoadFile(t *testing.T) {
	f, err := profile.LoadFile("testdata/people.yaml")
	require.NoError(t, err)

	assert.Equal(t, "people", f.Name)
	assert.Equal(t, profile.SchemaVersion, f.Version)
	require.Len(t, f.Mappings, 2)
	assert.Equal(t, map[string]string{"Street": "Street", "City": "City"}, f.Mappings[0].OneToOne)
	assert.Equal(t, "AddressView", f.Mappings[1].Fields[1].Delegate.Target)
}

func TestProfile_Map(t *testing.T) {
	f, err := profile.LoadFile("testdata/people.yaml")
	require.NoError(t, err)

	m := automapper.New(automapper.WithStrict(true))
	require.NoError(t, m.AddProfiles(f.Profile(catalog())))
	m.Seal()
	assert.Equal(t, 4, m.Registry().Len())

	view, err := automapper.Map[PersonView](m, Person{
		FirstName: "John",
		LastName:  "Doe",
		Address:   &Address{Street: "123 Main St", City: "Anytown"},
		Notes:     "vip",
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", view.FullName)
	require.NotNil(t, view.Home)
	assert.Equal(t, "Anytown", view.Home.City)
	assert.Empty(t, view.Notes, "ignored members stay zero")

	back, err := automapper.Map[Person](m, view)
	require.NoError(t, err)
	assert.Equal(t, &Address{Street: "123 Main St", City: "Anytown"}, back.Address)
	assert.Empty(t, back.FirstName)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles/address.yaml": {Data: []byte(`
mappings:
  - source: Address
    target: AddressView
`)},
	}

	f, err := profile.LoadFS(fsys, "profiles/address.yaml")
	require.NoError(t, err)
	assert.Equal(t, "address.yaml", f.Name)

	m := automapper.New()
	require.NoError(t, m.AddProfiles(f.Profile(catalog())))
	assert.Equal(t, 1, m.Registry().Len())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad version", `version: "9"`},
		{"missing source", "mappings:\n  - target: AddressView\n"},
		{"two rule kinds", "mappings:\n  - source: A\n    target: B\n    fields:\n      - target: X\n        source: Y\n        compute: z\n"},
		{"no rule kind", "mappings:\n  - source: A\n    target: B\n    fields:\n      - target: X\n"},
		{"half delegate", "mappings:\n  - source: A\n    target: B\n    fields:\n      - target: X\n        delegate: {source: A}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := profile.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), err.Error())
		})
	}

	_, err := profile.Parse([]byte("mappings: [oops"))
	assert.Error(t, err)
}

func TestProfile_UnknownNames(t *testing.T) {
	f, err := profile.Parse([]byte(`
mappings:
  - source: Person
    target: Nobody
  - source: Person
    target: PersonView
    fields:
      - target: FullName
        compute: missingFunc
`))
	require.NoError(t, err)

	err = automapper.New().AddProfiles(f.Profile(catalog()))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Nobody")
	assert.Contains(t, err.Error(), "missingFunc")
}

func TestCatalog_DuplicatePanics(t *testing.T) {
	c := catalog()
	assert.Panics(t, func() { profile.RegisterType[Address](c, "Address") })
	assert.Panics(t, func() {
		profile.RegisterFunc(c, "fullName", func(p Person) string { return "" })
	})
	assert.Equal(t, []string{"Address", "AddressView", "Person", "PersonView"}, c.TypeNames())
}
