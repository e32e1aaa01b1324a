package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/offer/domain"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, offer *domain.Offer) error {
	return db.WithContext(ctx).Create(offer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Offer, error) {
	var o domain.Offer
	err := db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Offer, error) {
	var o domain.Offer
	err := db.WithContext(ctx).Where("offer_number = ?", number).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Offer, error) {
	page = page.Normalize()

	query := db.WithContext(ctx).Model(&domain.Offer{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var offers []*domain.Offer
	err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, offer *domain.Offer) error {
	return db.WithContext(ctx).Save(offer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Offer{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
