package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
