/*
Package automapper provides declarative object-to-object mapping for Go
applications: register how one struct type becomes another once, at startup,
and map instances without hand-written copy code.

The library follows a configure → seal → map workflow:
  - Configure: declare per-pair rules in profiles, in code or YAML files
  - Seal: freeze the registry; no definitions are added afterwards
  - Map: convert instances concurrently from any number of goroutines

Key Features:
  - Same-name convention with scalar conversions (time.Time ↔ strfmt.DateTime)
  - Computed members from the whole source instance
  - Nested and collection delegation through other registered pairs
  - Reverse derivation for copy rules (ReverseMap)
  - Optional flattening (AddressStreet ← Address.Street, OrderCount ← len(Orders))
  - Strict mode that reports members nothing maps to
  - Semantic error types for configuration and mapping failures

Basic Usage:

	m := automapper.New(automapper.WithStrict(true))

	err := m.AddProfiles(automapper.ProfileFunc(func(cfg *automapper.Config) error {
	    automapper.CreateMap[User, UserDto](cfg).
	        ForMember("FullName", mapping.ComputeFrom(func(u User) string {
	            return u.FirstName + " " + u.LastName
	        }))
	    automapper.CreateMap[Address, AddressDto](cfg).ReverseMap()
	    return nil
	}))
	m.Seal()

	dto, err := automapper.Map[UserDto](m, user)

Profiles can also be loaded from YAML with the profile package, and the
registry, executor and rule types are usable on their own.
*/
package automapper
