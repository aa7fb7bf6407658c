package model

import (
	"testing"
	"time"

	"faceauth/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleUser() *entity.User {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	return &entity.User{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		FaceDescriptors: []entity.LabeledDescriptors{
			{Label: "a@x.com", Descriptors: []entity.Descriptor{{0.1, 0.2}}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserModel_Mapping(t *testing.T) {
	user := sampleUser()

	assert.Equal(t, user, NewUserModel(user).ToDomain())
	assert.Nil(t, NewUserModel(nil))
	assert.Nil(t, (*UserModel)(nil).ToDomain())
}

func TestUserDocument_Mapping(t *testing.T) {
	user := sampleUser()

	doc := NewUserDocument(user)
	assert.Equal(t, user.ID.String(), doc.ID)
	assert.Equal(t, user.PasswordHash, doc.Password)
	assert.Equal(t, user, doc.ToDomain())
}

func TestUserDocument_MalformedID(t *testing.T) {
	doc := &UserDocument{ID: "not-a-uuid", Email: "a@x.com"}

	assert.Equal(t, uuid.Nil, doc.ToDomain().ID)
}
