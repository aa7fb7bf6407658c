// Package model holds the persistence shapes of domain entities.
package model

import (
	"time"

	"faceauth/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. Face descriptors are stored as a JSONB column.
type UserModel struct {
	ID              uuid.UUID                                       `gorm:"type:uuid;primaryKey"`
	FirstName       string                                          `gorm:"type:varchar(100);not null"`
	LastName        string                                          `gorm:"type:varchar(100);not null"`
	Email           string                                          `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string                                          `gorm:"type:varchar(255);not null"`
	FaceDescriptors datatypes.JSONType[[]entity.LabeledDescriptors] `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the row into a domain User.
func (m *UserModel) ToDomain() *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		FaceDescriptors: m.FaceDescriptors.Data(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// NewUserModel converts a domain User into its row.
func NewUserModel(user *entity.User) *UserModel {
	if user == nil {
		return nil
	}

	return &UserModel{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		FaceDescriptors: datatypes.NewJSONType(user.FaceDescriptors),
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// UserDocument is the shape of a user in the document store.
type UserDocument struct {
	ID              string                      `bson:"_id"`
	FirstName       string                      `bson:"firstName"`
	LastName        string                      `bson:"lastName"`
	Email           string                      `bson:"email"`
	Password        string                      `bson:"password"` // bcrypt hash
	FaceDescriptors []entity.LabeledDescriptors `bson:"faceDescriptors,omitempty"`
	CreatedAt       time.Time                   `bson:"createdAt"`
	UpdatedAt       time.Time                   `bson:"updatedAt"`
}

// ToDomain converts the document into a domain User. A malformed id yields uuid.Nil.
func (d *UserDocument) ToDomain() *entity.User {
	if d == nil {
		return nil
	}

	id, _ := uuid.Parse(d.ID)

	return &entity.User{
		ID:              id,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		PasswordHash:    d.Password,
		FaceDescriptors: d.FaceDescriptors,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// NewUserDocument converts a domain User into its document.
func NewUserDocument(user *entity.User) *UserDocument {
	if user == nil {
		return nil
	}

	return &UserDocument{
		ID:              user.ID.String(),
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Password:        user.PasswordHash,
		FaceDescriptors: user.FaceDescriptors,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
