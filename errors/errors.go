/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Configuration-time sentinel errors
var (
	// ErrUnsupportedType is returned when a type has no introspectable member list
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDuplicateMapping is returned when a type pair is registered twice
	ErrDuplicateMapping = errors.New("duplicate mapping")

	// ErrRegistrySealed is returned when registering into a sealed registry
	ErrRegistrySealed = errors.New("registry is sealed")

	// ErrInvalidRule is returned when a mapping definition is malformed
	ErrInvalidRule = errors.New("invalid mapping rule")
)

// Mapping-time sentinel errors
var (
	// ErrMappingNotFound is returned when no definition exists for a type pair
	ErrMappingNotFound = errors.New("mapping not found")

	// ErrSourceMemberMissing is returned when a copy rule names an absent source member
	ErrSourceMemberMissing = errors.New("source member missing")

	// ErrTypeMismatch is returned when a value cannot be assigned to a target member
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnresolvedMember is returned in strict mode for target members nothing maps to
	ErrUnresolvedMember = errors.New("unresolved member")

	// ErrNilSource is returned when Map is called with a nil source
	ErrNilSource = errors.New("nil source instance")

	// ErrMaxDepthExceeded is returned when nested delegation recurses past the configured depth
	ErrMaxDepthExceeded = errors.New("maximum mapping depth exceeded")
)

// Store sentinel errors, used by the datastore backends
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// UnsupportedTypeError reports a type whose members cannot be described
type UnsupportedTypeError struct {
	Type   string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("type %s is not supported: %s", e.Type, e.Reason)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// DuplicateMappingError reports a second registration of the same ordered pair
type DuplicateMappingError struct {
	Source string
	Target string
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("mapping %s -> %s already registered", e.Source, e.Target)
}

func (e *DuplicateMappingError) Is(target error) bool {
	return target == ErrDuplicateMapping
}

// RegistrySealedError reports a registration attempted after the registry was sealed
type RegistrySealedError struct {
	Source string
	Target string
}

func (e *RegistrySealedError) Error() string {
	return fmt.Sprintf("cannot register %s -> %s: registry is sealed", e.Source, e.Target)
}

func (e *RegistrySealedError) Is(target error) bool {
	return target == ErrRegistrySealed
}

// InvalidRuleError reports a malformed rule found while building a definition
type InvalidRuleError struct {
	Source  string
	Target  string
	Member  string
	Message string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule for %s -> %s member %q: %s", e.Source, e.Target, e.Member, e.Message)
}

func (e *InvalidRuleError) Is(target error) bool {
	return target == ErrInvalidRule
}

// MappingNotFoundError reports a lookup for an unregistered ordered pair
type MappingNotFoundError struct {
	Source string
	Target string
}

func (e *MappingNotFoundError) Error() string {
	return fmt.Sprintf("no mapping registered for %s -> %s", e.Source, e.Target)
}

func (e *MappingNotFoundError) Is(target error) bool {
	return target == ErrMappingNotFound
}

// SourceMemberMissingError reports a copy rule whose source member does not exist
type SourceMemberMissingError struct {
	Source       string
	Target       string
	Member       string
	SourceMember string
}

func (e *SourceMemberMissingError) Error() string {
	return fmt.Sprintf("mapping %s -> %s: member %q reads %s.%s which does not exist",
		e.Source, e.Target, e.Member, e.Source, e.SourceMember)
}

func (e *SourceMemberMissingError) Is(target error) bool {
	return target == ErrSourceMemberMissing
}

// TypeMismatchError reports a value that is not assignable to its target member
type TypeMismatchError struct {
	Source     string
	Target     string
	Member     string
	ValueType  string
	MemberType string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("mapping %s -> %s: cannot assign %s to member %q of type %s",
		e.Source, e.Target, e.ValueType, e.Member, e.MemberType)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnresolvedMemberError reports a target member with no rule and no same-name source member
type UnresolvedMemberError struct {
	Source string
	Target string
	Member string
}

func (e *UnresolvedMemberError) Error() string {
	return fmt.Sprintf("mapping %s -> %s: member %q is unresolved", e.Source, e.Target, e.Member)
}

func (e *UnresolvedMemberError) Is(target error) bool {
	return target == ErrUnresolvedMember
}

// MaxDepthExceededError reports runaway delegation, usually a configuration cycle
type MaxDepthExceededError struct {
	Source string
	Target string
	Depth  int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("mapping %s -> %s exceeded depth %d (delegation cycle?)", e.Source, e.Target, e.Depth)
}

func (e *MaxDepthExceededError) Is(target error) bool {
	return target == ErrMaxDepthExceeded
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewUnsupportedTypeError creates a new UnsupportedTypeError
func NewUnsupportedTypeError(typeName, reason string) error {
	return &UnsupportedTypeError{Type: typeName, Reason: reason}
}

// NewDuplicateMappingError creates a new DuplicateMappingError
func NewDuplicateMappingError(source, target string) error {
	return &DuplicateMappingError{Source: source, Target: target}
}

// NewRegistrySealedError creates a new RegistrySealedError
func NewRegistrySealedError(source, target string) error {
	return &RegistrySealedError{Source: source, Target: target}
}

// NewInvalidRuleError creates a new InvalidRuleError
func NewInvalidRuleError(source, target, member, message string) error {
	return &InvalidRuleError{Source: source, Target: target, Member: member, Message: message}
}

// NewMappingNotFoundError creates a new MappingNotFoundError
func NewMappingNotFoundError(source, target string) error {
	return &MappingNotFoundError{Source: source, Target: target}
}

// NewUnresolvedMemberError creates a new UnresolvedMemberError
func NewUnresolvedMemberError(source, target, member string) error {
	return &UnresolvedMemberError{Source: source, Target: target, Member: member}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUnsupportedType checks if an error is an unsupported type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsDuplicateMapping checks if an error is a duplicate mapping error
func IsDuplicateMapping(err error) bool {
	return errors.Is(err, ErrDuplicateMapping)
}

// IsRegistrySealed checks if an error is a sealed registry error
func IsRegistrySealed(err error) bool {
	return errors.Is(err, ErrRegistrySealed)
}

// IsMappingNotFound checks if an error is a mapping not found error
func IsMappingNotFound(err error) bool {
	return errors.Is(err, ErrMappingNotFound)
}

// IsUnresolvedMember checks if an error is an unresolved member error
func IsUnresolvedMember(err error) bool {
	return errors.Is(err, ErrUnresolvedMember)
}

// IsConfigurationError reports whether err indicates a mapping configuration bug
// rather than bad input. Callers typically translate these into 500-class responses.
func IsConfigurationError(err error) bool {
	for _, target := range []error{
		ErrUnsupportedType, ErrDuplicateMapping, ErrRegistrySealed, ErrInvalidRule,
		ErrMappingNotFound, ErrSourceMemberMissing, ErrTypeMismatch,
		ErrUnresolvedMember, ErrMaxDepthExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
