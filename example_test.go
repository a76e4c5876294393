/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package automapper_test

import (
	"fmt"
	"time"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/mapping"
)

type Person struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	CreatedAt time.Time
}

type PersonView struct {
	FullName    string
	AddressLine string
	MemberSince string
}

func Example() {
	m := automapper.New()
	err := m.AddProfiles(automapper.ProfileFunc(func(cfg *automapper.Config) error {
		automapper.CreateMap[Person, PersonView](cfg).
			ForMember("FullName", mapping.ComputeFrom(func(p Person) string { return p.FirstName + " " + p.LastName })).
			ForMember("AddressLine", mapping.ComputeFrom(func(p Person) string { return p.Street + ", " + p.City })).
			ForMember("MemberSince", mapping.ComputeFrom(func(p Person) string { return p.CreatedAt.Format("January 2006") }))
		return nil
	}))
	if err != nil {
		fmt.Println(err)
		return
	}
	m.Seal()

	view, err := automapper.Map[PersonView](m, Person{
		FirstName: "John",
		LastName:  "Doe",
		Street:    "123 Main St",
		City:      "Anytown",
		CreatedAt: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(view.FullName)
	fmt.Println(view.AddressLine)
	fmt.Println(view.MemberSince)
	// Output:
	// John Doe
	// 123 Main St, Anytown
	// May 2023
}
