package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// Create inserts the user. Unique violations on username or email come back
// as gorm.ErrDuplicatedKey.
func (r *UserRepositoryGORM) Create(ctx context.Context, user *gormModels.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByEmail returns nil, nil when no user has the email.
func (r *UserRepositoryGORM) FindByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepositoryGORM) FindByUsername(ctx context.Context, username string) (*gormModels.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepositoryGORM) FindByID(ctx context.Context, id int64) (*gormModels.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryGORM) findOne(ctx context.Context, query string, arg interface{}) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}
