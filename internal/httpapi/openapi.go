/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package httpapi

import (
	"net/http"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/automapper/internal/demo"
)

var dateTimeType = reflect.TypeOf(strfmt.DateTime{})

// dateTimeAsString documents strfmt.DateTime the way it is serialized.
func dateTimeAsString(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
	if t == dateTimeType {
		*schema = *openapi3.NewDateTimeSchema()
	}
	return nil
}

// NewOpenAPI describes the demo API. Schemas are generated from the demo types.
func NewOpenAPI(version string) (*openapi3.T, error) {
	gen := func(v any) (*openapi3.SchemaRef, error) {
		return openapi3gen.NewSchemaRefForValue(v, nil, openapi3gen.SchemaCustomizer(dateTimeAsString))
	}

	userDto, err := gen(&demo.UserDto{})
	if err != nil {
		return nil, err
	}
	user, err := gen(&demo.User{})
	if err != nil {
		return nil, err
	}
	createUser, err := gen(&demo.CreateUserDto{})
	if err != nil {
		return nil, err
	}
	problem, err := gen(&errorResponse{})
	if err != nil {
		return nil, err
	}

	list := openapi3.NewArraySchema()
	list.Items = userDto

	respond := func(desc string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(desc).WithJSONSchemaRef(schema)}
	}

	users := &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listUsers",
			Summary:     "List stored users",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, respond("Users", list.NewRef())),
			),
		},
		Post: &openapi3.Operation{
			OperationID: "createUser",
			Summary:     "Create a user",
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(createUser),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusCreated, respond("Created user", user)),
				openapi3.WithStatus(http.StatusBadRequest, respond("Invalid request", problem)),
			),
		},
	}

	userByID := &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "getUser",
			Summary:     "Get a user",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())},
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, respond("User", userDto)),
				openapi3.WithStatus(http.StatusNotFound, respond("Unknown user", problem)),
			),
		},
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Demo API",
			Version: version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/api/users", users),
			openapi3.WithPath("/api/users/{id}", userByID),
		),
	}, nil
}
