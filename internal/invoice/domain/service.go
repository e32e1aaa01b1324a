package domain

import (
	"context"

	"github.com/mazisel/umzug/internal/qrbill"
	"github.com/mazisel/umzug/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	Get(ctx context.Context, ref string) (*Invoice, error)
	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*Invoice, error)
	Update(ctx context.Context, ref string, patch Patch) (*Invoice, error)
	Delete(ctx context.Context, ref string) error
	// GenerateQRBill assembles the payment slip from company settings
	// (creditor side) and the invoice's customer (debtor side), persists it
	// on the invoice and returns it.
	GenerateQRBill(ctx context.Context, ref string) (*qrbill.Data, error)
}
