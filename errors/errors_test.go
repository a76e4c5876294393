/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMappingNotFoundError(t *testing.T) {
	err := NewMappingNotFoundError("model.Person", "dto.PersonView")

	expected := "no mapping registered for model.Person -> dto.PersonView"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrMappingNotFound) {
		t.Error("MappingNotFoundError should match ErrMappingNotFound")
	}

	if !IsMappingNotFound(err) {
		t.Error("IsMappingNotFound should return true for MappingNotFoundError")
	}

	if !IsConfigurationError(err) {
		t.Error("MappingNotFoundError is a configuration error")
	}
}

func TestDuplicateMappingError(t *testing.T) {
	err := NewDuplicateMappingError("model.Address", "dto.AddressView")

	expected := "mapping model.Address -> dto.AddressView already registered"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsDuplicateMapping(err) {
		t.Error("IsDuplicateMapping should return true for DuplicateMappingError")
	}
}

func TestMemberErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
	}{
		{
			name:     "source member missing",
			err:      &SourceMemberMissingError{Source: "S", Target: "T", Member: "Name", SourceMember: "Nom"},
			sentinel: ErrSourceMemberMissing,
			expected: `mapping S -> T: member "Name" reads S.Nom which does not exist`,
		},
		{
			name:     "type mismatch",
			err:      &TypeMismatchError{Source: "S", Target: "T", Member: "Age", ValueType: "string", MemberType: "int"},
			sentinel: ErrTypeMismatch,
			expected: `mapping S -> T: cannot assign string to member "Age" of type int`,
		},
		{
			name:     "unresolved member",
			err:      NewUnresolvedMemberError("S", "T", "Extra"),
			sentinel: ErrUnresolvedMember,
			expected: `mapping S -> T: member "Extra" is unresolved`,
		},
		{
			name:     "invalid rule",
			err:      NewInvalidRuleError("S", "T", "Name", "rule already defined"),
			sentinel: ErrInvalidRule,
			expected: `invalid rule for S -> T member "Name": rule already defined`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}

			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%T should match %v", tt.err, tt.sentinel)
			}

			if !IsConfigurationError(tt.err) {
				t.Errorf("%T should be a configuration error", tt.err)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "email",
			message:  "invalid format",
			expected: `validation failed for field "email": invalid format`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}

			if IsConfigurationError(err) {
				t.Error("ValidationError is not a configuration error")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewNotFoundError("User", "123")
	wrapped := fmt.Errorf("database operation failed: %w", original)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}

	sealed := fmt.Errorf("configure: %w", NewRegistrySealedError("A", "B"))
	if !IsRegistrySealed(sealed) {
		t.Error("IsRegistrySealed should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrUnsupportedType,
		ErrDuplicateMapping,
		ErrRegistrySealed,
		ErrInvalidRule,
		ErrMappingNotFound,
		ErrSourceMemberMissing,
		ErrTypeMismatch,
		ErrUnresolvedMember,
		ErrNilSource,
		ErrMaxDepthExceeded,
		ErrNotFound,
		ErrInvalidInput,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
