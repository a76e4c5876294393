/*
Package httpapi exposes the demo user service over HTTP.

Routes:

	GET  /api/users/{id}            UserDto
	GET  /api/users                 []UserDto
	POST /api/users                 User, from a CreateUserDto body
	GET  /healthz
	GET  /metrics                   Prometheus exposition
	GET  /swagger/v1/swagger.json   OpenAPI document

Validation errors answer 400, unknown users 404, and mapping configuration
errors 500. Request bodies over 1 MiB answer 413.
*/
package httpapi
