package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, category *ServiceCategory) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceCategory, error)
	FindByCategoryID(ctx context.Context, db *gorm.DB, categoryID string) (*ServiceCategory, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*ServiceCategory, error)
	Update(ctx context.Context, db *gorm.DB, category *ServiceCategory) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
