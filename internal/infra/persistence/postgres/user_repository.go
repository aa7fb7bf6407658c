// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/repository"
	"faceauth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByEmail retrieves a single user by their normalized email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	return userM.ToDomain(), nil
}

// Create persists a new user. The unique index on email backs the caller's existence check.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.WithStack(err)
		}
		user.ID = id
	}
	user.Email = entity.NormalizeEmail(user.Email)
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	userM := model.NewUserModel(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if v, ok := constraintViolation(err); ok {
			switch {
			case v.unique():
				return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
			case v.notNull():
				return domainerrors.ErrUserCreationFailed.WrapMessage("missing column " + v.column)
			}
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}
