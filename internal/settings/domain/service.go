package domain

import "context"

type Service interface {
	// Get returns the settings document, creating the default one when the
	// store is empty.
	Get(ctx context.Context) (*CompanySettings, error)
	Update(ctx context.Context, patch Patch) (*CompanySettings, error)
	// TaxConfig never fails: missing or unreadable settings resolve to the
	// fallback rate with tax enabled.
	TaxConfig(ctx context.Context) TaxConfig
}
