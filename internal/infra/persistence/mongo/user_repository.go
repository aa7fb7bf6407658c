package mongo

import (
	"context"
	"time"

	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/repository"
	"faceauth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository implements the domain.UserRepository interface on a MongoDB collection.
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(collection *mongo.Collection) repository.UserRepository {
	return &userRepository{collection: collection}
}

// FindByEmail retrieves a single user document by normalized email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc model.UserDocument
	err := repo.collection.FindOne(ctx, bson.M{"email": entity.NormalizeEmail(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	return doc.ToDomain(), nil
}

// Create inserts a new user document. A duplicate email is rejected by the unique index.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.WithStack(err)
		}
		user.ID = id
	}
	user.Email = entity.NormalizeEmail(user.Email)
	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := repo.collection.InsertOne(ctx, model.NewUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}
