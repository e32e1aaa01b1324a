package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*CompanySettings, error)
	Insert(ctx context.Context, db *gorm.DB, settings *CompanySettings) error
	Update(ctx context.Context, db *gorm.DB, settings *CompanySettings) error
}
