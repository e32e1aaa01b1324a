package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindCounter(ctx context.Context, db *gorm.DB, name string) (*Counter, error)
	InsertCounter(ctx context.Context, db *gorm.DB, counter *Counter) error
	// CompareAndSwap advances the counter only if it still holds oldValue.
	// It reports whether the swap won.
	CompareAndSwap(ctx context.Context, db *gorm.DB, name string, oldValue, newValue int64) (bool, error)
	// MaxAssigned returns the highest business number already stored in the
	// domain's table, or "" when the table is empty.
	MaxAssigned(ctx context.Context, db *gorm.DB, d Domain) (string, error)
}
