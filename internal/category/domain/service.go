package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ServiceCategory, error)
	// Get resolves ref as the internal id first and falls back to the
	// category slug.
	Get(ctx context.Context, ref string) (*ServiceCategory, error)
	List(ctx context.Context, filter ListFilter) ([]*ServiceCategory, error)
	Update(ctx context.Context, ref string, patch Patch) (*ServiceCategory, error)
	Delete(ctx context.Context, ref string) error
}
