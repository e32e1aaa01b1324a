package domain

import (
	"context"

	"github.com/mazisel/umzug/pkg/db/pagination"
)

type Service interface {
	// NextNumber reserves and returns the next customer number. The number
	// is consumed even if no customer is created with it afterwards.
	NextNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	// Get resolves ref as the internal id first and falls back to the
	// customer number.
	Get(ctx context.Context, ref string) (*Customer, error)
	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*Customer, error)
	Update(ctx context.Context, ref string, patch Patch) (*Customer, error)
	Delete(ctx context.Context, ref string) error
}
