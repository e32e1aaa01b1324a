package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/invoice/domain"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).Where("invoice_number = ?", number).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	page = page.Normalize()

	query := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	var invoices []*domain.Invoice
	err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Save(invoice).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Invoice{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
