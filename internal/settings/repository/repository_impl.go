package repository

import (
	"context"
	"errors"

	"github.com/mazisel/umzug/internal/settings/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*domain.CompanySettings, error) {
	var s domain.CompanySettings
	err := db.WithContext(ctx).
		Where("id = ?", domain.SettingsID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, settings *domain.CompanySettings) error {
	return db.WithContext(ctx).Create(settings).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, settings *domain.CompanySettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
