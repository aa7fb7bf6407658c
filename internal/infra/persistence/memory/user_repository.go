// Package memory is an in-process credential store for development and tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// UserRepository keeps users in a map keyed by normalized email.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserRepository returns an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

// FindByEmail returns a deep copy of the stored user.
func (repo *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[entity.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.FaceDescriptors = cloneDescriptors(user.FaceDescriptors)

	return &user, nil
}

// Create stores a copy of user. The email check and insert happen under one lock.
func (repo *UserRepository) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	email := entity.NormalizeEmail(user.Email)
	if _, exists := repo.users[email]; exists {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.WithStack(err)
		}
		user.ID = id
	}
	user.Email = email
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	stored.FaceDescriptors = cloneDescriptors(user.FaceDescriptors)
	repo.users[email] = stored

	return nil
}

// Count returns the number of stored users.
func (repo *UserRepository) Count() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return len(repo.users)
}

func cloneDescriptors(labeled []entity.LabeledDescriptors) []entity.LabeledDescriptors {
	if labeled == nil {
		return nil
	}

	out := make([]entity.LabeledDescriptors, len(labeled))
	for i, entry := range labeled {
		out[i].Label = entry.Label
		if entry.Descriptors == nil {
			continue
		}
		out[i].Descriptors = make([]entity.Descriptor, len(entry.Descriptors))
		for j, descriptor := range entry.Descriptors {
			out[i].Descriptors[j] = slices.Clone(descriptor)
		}
	}

	return out
}

var _ repository.UserRepository = (*UserRepository)(nil)
