package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Customer, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
