package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*AdditionalService, error)
	Get(ctx context.Context, ref string) (*AdditionalService, error)
	List(ctx context.Context, filter ListFilter) ([]*AdditionalService, error)
	Update(ctx context.Context, ref string, patch Patch) (*AdditionalService, error)
	Delete(ctx context.Context, ref string) error
}
