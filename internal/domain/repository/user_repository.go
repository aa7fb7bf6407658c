// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"faceauth/internal/domain/entity"
)

// ErrUserNotFound is returned when no user is stored under the requested email.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the credential store. Implementations key users by normalized email.
type UserRepository interface {
	// FindByEmail returns ErrUserNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user and fills in ID and timestamps.
	// A duplicate email yields domainerrors.ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
}
