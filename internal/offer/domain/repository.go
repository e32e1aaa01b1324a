package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, offer *Offer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Offer, error)
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*Offer, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Offer, error)
	Update(ctx context.Context, db *gorm.DB, offer *Offer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
