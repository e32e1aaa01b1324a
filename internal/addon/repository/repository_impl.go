package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/addon/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, service *domain.AdditionalService) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AdditionalService, error) {
	var a domain.AdditionalService
	err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) FindByServiceID(ctx context.Context, db *gorm.DB, serviceID string) (*domain.AdditionalService, error) {
	var a domain.AdditionalService
	err := db.WithContext(ctx).Where("service_id = ?", serviceID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.AdditionalService, error) {
	query := db.WithContext(ctx).Model(&domain.AdditionalService{})
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var items []*domain.AdditionalService
	if err := query.Order("display_order ASC, service_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, service *domain.AdditionalService) error {
	return db.WithContext(ctx).Save(service).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.AdditionalService{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
