package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_HasFaceDescriptors(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []LabeledDescriptors
		want        bool
	}{
		{name: "none"},
		{name: "label without vectors", descriptors: []LabeledDescriptors{{Label: "a@x.com"}}},
		{
			name: "one vector",
			descriptors: []LabeledDescriptors{
				{Label: "a@x.com"},
				{Label: "a@x.com", Descriptors: []Descriptor{{0.1, 0.2}}},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{FaceDescriptors: tt.descriptors}
			assert.Equal(t, tt.want, user.HasFaceDescriptors())
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM \n"))
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	user := &User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "faceDescriptors")
}
