package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/customer/domain"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var c domain.Customer
	err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Customer, error) {
	var c domain.Customer
	err := db.WithContext(ctx).Where("customer_number = ?", number).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Customer, error) {
	page = page.Normalize()

	query := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var items []*domain.Customer
	err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Customer{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
