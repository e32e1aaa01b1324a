package domain

import (
	"context"

	"github.com/mazisel/umzug/internal/pricing"
	"github.com/mazisel/umzug/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Offer, error)
	Get(ctx context.Context, ref string) (*Offer, error)
	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*Offer, error)
	Update(ctx context.Context, ref string, patch Patch) (*Offer, error)
	Delete(ctx context.Context, ref string) error
	// CalculatePricing recomputes the breakdown from the given input and
	// persists both the breakdown and the add-on selections on the offer.
	CalculatePricing(ctx context.Context, ref string, input PricingInput) (*pricing.Breakdown, error)
}
