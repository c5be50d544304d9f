package store

import (
	"context"
	"errors"

	"restaurant-order-api/models"

	"gorm.io/gorm"
)

type Admins struct {
	db *gorm.DB
}

func NewAdmins(db *gorm.DB) *Admins {
	return &Admins{db: db}
}

func (a *Admins) FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	err := a.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *Admins) Count(ctx context.Context) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(&models.AdminAccount{}).Count(&n).Error
	return n, err
}

func (a *Admins) Create(ctx context.Context, admin *models.AdminAccount) error {
	return a.db.WithContext(ctx).Create(admin).Error
}
