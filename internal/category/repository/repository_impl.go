package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/category/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, category *domain.ServiceCategory) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByCategoryID(ctx context.Context, db *gorm.DB, categoryID string) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	err := db.WithContext(ctx).Where("category_id = ?", categoryID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.ServiceCategory, error) {
	query := db.WithContext(ctx).Model(&domain.ServiceCategory{})
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var items []*domain.ServiceCategory
	if err := query.Order("category_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, category *domain.ServiceCategory) error {
	return db.WithContext(ctx).Save(category).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ServiceCategory{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
