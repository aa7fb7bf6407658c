// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the stored account record. Email is the lookup key and is unique across the store.
type User struct {
	ID              uuid.UUID            `json:"id"`
	FirstName       string               `json:"firstName"`
	LastName        string               `json:"lastName"`
	Email           string               `json:"email"`
	PasswordHash    string               `json:"-"` // bcrypt hash, never rendered
	FaceDescriptors []LabeledDescriptors `json:"faceDescriptors,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// HasFaceDescriptors reports whether the user enrolled at least one usable descriptor.
func (u *User) HasFaceDescriptors() bool {
	for _, labeled := range u.FaceDescriptors {
		if len(labeled.Descriptors) > 0 {
			return true
		}
	}

	return false
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
