package postgres

import (
	"context"

	"dog_walking/internal/model"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB    *gorm.DB
	clock clockwork.Clock
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db, clock: clockwork.NewRealClock()}
}

func (r *UserRepository) Add(ctx context.Context, user *model.User) error {
	if user == nil {
		return missing("user")
	}
	stampCreate(ctx, &user.Audit, r.clock.Now().UTC())
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

// GetByUsername ищет по точному совпадению (с учетом регистра).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Scopes(active("users")).
		Where("users.username = ?", username).
		First(&user).Error
	return firstOrNil(err, &user)
}
