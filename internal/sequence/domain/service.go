package domain

import "context"

type Service interface {
	// NextNumber allocates the next business number for the domain,
	// rendered at the domain's fixed width.
	NextNumber(ctx context.Context, d Domain) (string, error)
}
