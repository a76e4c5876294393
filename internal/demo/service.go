/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/datastore"
	"github.com/suparena/automapper/errors"
)

// UserService reads and creates users through the mapper.
type UserService struct {
	mapper   *automapper.Mapper
	store    datastore.DataStore[User]
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	simulate bool
}

// ServiceOption configures a UserService.
type ServiceOption func(*UserService)

// WithServiceLogger sets the service logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *UserService) { s.logger = l }
}

// WithClock overrides the clock used for simulated records.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *UserService) { s.now = now }
}

// WithIDGenerator overrides the id generator for new users.
func WithIDGenerator(f func() string) ServiceOption {
	return func(s *UserService) { s.newID = f }
}

// WithSimulatedUsers controls whether GetUser fabricates a sample record for
// ids that are not stored. It is on by default.
func WithSimulatedUsers(enabled bool) ServiceOption {
	return func(s *UserService) { s.simulate = enabled }
}

// NewUserService creates a service over a sealed mapper and a user store.
func NewUserService(mapper *automapper.Mapper, store datastore.DataStore[User], opts ...ServiceOption) *UserService {
	s := &UserService{
		mapper:   mapper,
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		simulate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetUser returns the user with the given id as a UserDto.
func (s *UserService) GetUser(ctx context.Context, id string) (UserDto, error) {
	if strings.TrimSpace(id) == "" {
		return UserDto{}, errors.NewValidationError("id", "is required")
	}

	user, err := s.store.GetOne(ctx, id)
	switch {
	case err == nil:
	case errors.IsNotFound(err) && s.simulate:
		user = s.sampleUser(id)
		s.logger.DebugContext(ctx, "serving simulated user", "id", id)
	default:
		return UserDto{}, err
	}

	dto, err := automapper.Map[UserDto](s.mapper, user)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to map user", "id", id, "error", err)
		return UserDto{}, fmt.Errorf("map user %s: %w", id, err)
	}
	return dto, nil
}

// ListUsers returns every stored user as a UserDto.
func (s *UserService) ListUsers(ctx context.Context) ([]UserDto, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos, err := automapper.MapSlice[UserDto](s.mapper, users)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to map users", "error", err)
		return nil, fmt.Errorf("map users: %w", err)
	}
	if dtos == nil {
		dtos = []UserDto{}
	}
	return dtos, nil
}

// CreateUser validates the request, maps it to a User, assigns an id and
// stores it.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserDto) (User, error) {
	if err := ValidateCreateUser(req); err != nil {
		return User{}, err
	}

	user, err := automapper.Map[User](s.mapper, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to map create request", "error", err)
		return User{}, fmt.Errorf("map create request: %w", err)
	}
	user.Id = s.newID()

	if err := s.store.Put(ctx, user); err != nil {
		return User{}, fmt.Errorf("store user %s: %w", user.Id, err)
	}
	s.logger.InfoContext(ctx, "user created", "id", user.Id)
	return user, nil
}

// ValidateCreateUser checks required names and the email format.
func ValidateCreateUser(req CreateUserDto) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return errors.NewValidationError("firstName", "is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return errors.NewValidationError("lastName", "is required")
	}
	if !strfmt.IsEmail(req.Email) {
		return errors.NewValidationError("email", fmt.Sprintf("%q is not a valid email address", req.Email))
	}
	return nil
}

func (s *UserService) sampleUser(id string) *User {
	return &User{
		Id:        id,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		CreatedAt: s.now().AddDate(-1, 0, 0),
		Address:   &Address{Street: "123 Main St", City: "Anytown"},
	}
}
