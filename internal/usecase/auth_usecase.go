// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"faceauth/internal/domain/entity"
	"faceauth/internal/domain/service"
)

// Login methods.
const (
	LoginMethodPassword = "password"
	LoginMethodFace     = "face"
)

// --- Input DTOs ---

// RegisterInput is a validated registration form.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	FaceDescriptors []entity.LabeledDescriptors
}

// LoginInput carries a password, a compressed face payload, or both.
type LoginInput struct {
	Email          string
	Password       string
	FaceDescriptor string
}

// CheckInput asks for the descriptors of the face in FaceDescriptor.
type CheckInput struct {
	Email          string
	FaceDescriptor string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the signed token after a successful login.
type LoginOutput struct {
	Token     string
	ExpiresIn time.Duration
	Method    string
	User      *entity.User
}

// CheckOutput holds the labeled descriptors extracted from the probe image.
type CheckOutput struct {
	Descriptors []entity.LabeledDescriptors
}

// AuthUsecase defines the account operations the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Check(ctx context.Context, input *CheckInput) (*CheckOutput, error)

	// Profile returns the stored record for the holder of a validated token.
	Profile(ctx context.Context, claims *service.Claims) (*entity.User, error)
}
