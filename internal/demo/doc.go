/*
Package demo is a small user service built on the mapper: it maps stored
User records to UserDto responses and CreateUserDto requests to new Users.

The User to UserDto and CreateUserDto to User pairs are declared in Go by
UserProfile. The Address and AddressDto pair, in both directions, comes from
an embedded YAML profile resolved through a profile.Catalog, so the same
catalog also serves profile files supplied at runtime.
*/
package demo
