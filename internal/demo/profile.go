/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package demo

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/mapping"
	"github.com/suparena/automapper/profile"
)

// MemberSinceLayout renders CreatedAt as e.g. "May 2023".
const MemberSinceLayout = "January 2006"

//go:embed profiles/*.yaml
var profileFS embed.FS

// UserProfile declares the user mappings.
type UserProfile struct {
	// Now supplies CreatedAt for new users; it defaults to time.Now.
	Now func() time.Time
}

// Name identifies the profile in errors.
func (p UserProfile) Name() string {
	return "users"
}

// Configure registers User -> UserDto and CreateUserDto -> User.
func (p UserProfile) Configure(cfg *automapper.Config) error {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	automapper.CreateMap[User, UserDto](cfg).
		ForMember("FullName", mapping.Named("fullName", mapping.ComputeFrom(FullName))).
		ForMember("AddressLine", mapping.Named("addressLine", mapping.ComputeFrom(AddressLine))).
		ForMember("MemberSince", mapping.Named("memberSince", mapping.ComputeFrom(MemberSince))).
		ForMember("OrderCount", mapping.Named("orderCount", mapping.ComputeFrom(OrderCount)))

	automapper.CreateMap[CreateUserDto, User](cfg).
		ForMember("CreatedAt", mapping.Named("utcNow", mapping.ComputeFrom(func(CreateUserDto) time.Time {
			return now().UTC()
		}))).
		ForMember("Id", mapping.Ignore()).
		ForMember("Orders", mapping.Ignore())

	return nil
}

// FullName joins first and last name.
func FullName(u User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AddressLine renders "Street, City", or "" without an address.
func AddressLine(u User) string {
	if u.Address == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s", u.Address.Street, u.Address.City)
}

// MemberSince renders CreatedAt as month and year.
func MemberSince(u User) string {
	return u.CreatedAt.Format(MemberSinceLayout)
}

// OrderCount counts the user's orders.
func OrderCount(u User) int {
	return len(u.Orders)
}

// NewCatalog returns a catalog naming the demo types and compute functions,
// for use by YAML profiles.
func NewCatalog() *profile.Catalog {
	c := profile.NewCatalog()
	profile.RegisterType[User](c, "User")
	profile.RegisterType[UserDto](c, "UserDto")
	profile.RegisterType[CreateUserDto](c, "CreateUserDto")
	profile.RegisterType[Address](c, "Address")
	profile.RegisterType[AddressDto](c, "AddressDto")
	profile.RegisterType[Order](c, "Order")

	profile.RegisterFunc(c, "fullName", FullName)
	profile.RegisterFunc(c, "addressLine", AddressLine)
	profile.RegisterFunc(c, "memberSince", MemberSince)
	profile.RegisterFunc(c, "orderCount", OrderCount)
	return c
}

// Profiles returns the built-in profiles: UserProfile and the embedded YAML
// files, followed by any extra profile files.
func Profiles(catalog *profile.Catalog, now func() time.Time, files ...string) ([]automapper.Profile, error) {
	profiles := []automapper.Profile{UserProfile{Now: now}}

	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded profiles: %w", err)
	}
	for _, e := range entries {
		f, err := profile.LoadFS(profileFS, "profiles/"+e.Name())
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, f.Profile(catalog))
	}

	for _, path := range files {
		if path == "" {
			continue
		}
		f, err := profile.LoadFile(path)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, f.Profile(catalog))
	}
	return profiles, nil
}

// NewMapper builds and seals a mapper with the demo profiles.
func NewMapper(files []string, opts ...automapper.Option) (*automapper.Mapper, error) {
	profiles, err := Profiles(NewCatalog(), nil, files...)
	if err != nil {
		return nil, err
	}

	m := automapper.New(opts...)
	if err := m.AddProfiles(profiles...); err != nil {
		return nil, err
	}
	m.Seal()
	return m, nil
}
