package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, service *AdditionalService) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AdditionalService, error)
	FindByServiceID(ctx context.Context, db *gorm.DB, serviceID string) (*AdditionalService, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AdditionalService, error)
	Update(ctx context.Context, db *gorm.DB, service *AdditionalService) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
