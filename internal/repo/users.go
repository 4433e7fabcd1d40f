package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/retrolabs/retrogame-api/internal/models"
)

var ErrUserAlreadyExists = errors.New("user already exists")

type Users struct {
	DB *gorm.DB
}

// FindByEmail resolves an identity against the user store. A missing user is
// not an error: the caller decides whether absence means 401 or 404.
func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Users) Create(ctx context.Context, u *models.User) error {
	var existing models.User
	err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", u.Username, u.Email).
		First(&existing).Error
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(u).Error
}
