/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/automapper/errors"
)

// KeyTemplate maps key attribute names to macro templates, e.g.
//
//	ddb.KeyTemplate{"PK": "USER#{Id}", "SK": "USER#{Id}"}
//
// Macros name attributes of the marshaled entity. PK and SK are required.
type KeyTemplate map[string]string

// Validate checks that the template defines non-empty PK and SK entries.
func (k KeyTemplate) Validate() error {
	for _, attr := range []string{"PK", "SK"} {
		if k[attr] == "" {
			return errors.NewValidationError("keys."+attr, "key template is required")
		}
	}
	return nil
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills the template from the entity's marshaled attributes.
func expandMacros(keys KeyTemplate, entity any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key input: %w", err)
	}

	res := make(map[string]string, len(keys))
	for field, template := range keys {
		res[field] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// sets, binaries and NULL do not form key material
				return ""
			}
		})
	}
	return res, nil
}

// expandStringKey substitutes key for every macro in the template.
func expandStringKey(keys KeyTemplate, key string) map[string]string {
	expanded := make(map[string]string, len(keys))
	for field, template := range keys {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds the primary key from an expanded template.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, sk := expanded["PK"], expanded["SK"]
	if pk == "" || sk == "" {
		return nil, errors.NewValidationError("key", "expanded key template is missing PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}
