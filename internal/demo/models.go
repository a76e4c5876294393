/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package demo

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// User is the stored user record.
type User struct {
	Id        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Address   *Address  `json:"address,omitempty"`
	Orders    []Order   `json:"orders,omitempty"`
}

// Address is a postal address.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// Order is a placed order.
type Order struct {
	Id    string  `json:"id"`
	Total float64 `json:"total"`
}

// UserDto is the read model returned by the API.
type UserDto struct {
	Id          string          `json:"id"`
	FullName    string          `json:"fullName"`
	Email       string          `json:"email"`
	AddressLine string          `json:"addressLine"`
	OrderCount  int             `json:"orderCount"`
	MemberSince string          `json:"memberSince"`
	CreatedAt   strfmt.DateTime `json:"createdAt"`
}

// CreateUserDto is the request body for creating a user.
type CreateUserDto struct {
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Address   *AddressDto `json:"address,omitempty"`
}

// AddressDto is the transfer form of Address.
type AddressDto struct {
	Street string `json:"street"`
	City   string `json:"city"`
}
