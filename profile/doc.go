/*
Package profile loads mapping profiles from YAML files.

A profile file lists type pairs by name. Names are resolved against a Catalog
that the application fills at startup, so files never reference Go package
paths:

	name: people
	version: "1"
	mappings:
	  - source: Address
	    target: AddressView
	    reverse: true
	    121:                  # source member: target member
	      Street: Street
	  - source: Person
	    target: PersonView
	    fields:
	      - target: FullName
	        compute: fullName  # catalog function
	      - target: Home
	        source: Address
	        delegate: {source: Address, target: AddressView}
	    ignore: [Notes]

Rules are applied in file order: 121 entries, then fields, then ignore.
reverse_fields and reverse_ignore configure the derived reverse mapping.

	catalog := profile.NewCatalog()
	profile.RegisterType[Person](catalog, "Person")
	profile.RegisterFunc(catalog, "fullName", func(p Person) string { ... })

	f, err := profile.LoadFile("people.yaml")
	err = mapper.AddProfiles(f.Profile(catalog))
*/
package profile
