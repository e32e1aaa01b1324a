package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain describes one independently numbered entity family: which table
// holds the assigned business numbers, the column they live in, the printed
// width and the value numbering starts from.
type Domain struct {
	Name   string
	Table  string
	Column string
	Width  int
	Start  int64
}

var (
	Customer = Domain{Name: "customer", Table: "customers", Column: "customer_number", Width: 5, Start: 10001}
	Offer    = Domain{Name: "offer", Table: "offers", Column: "offer_number", Width: 5, Start: 10001}
	Invoice  = Domain{Name: "invoice", Table: "invoices", Column: "invoice_number", Width: 6, Start: 100001}
)

// Format renders a counter value as the zero-padded business number.
func (d Domain) Format(n int64) string {
	return fmt.Sprintf("%0*d", d.Width, n)
}

// Counter is the per-domain allocation record. LastValue is the most
// recently handed-out number; advancing it is a conditional update so two
// concurrent allocations can never mint the same value.
type Counter struct {
	Name      string    `gorm:"column:name;primaryKey"`
	LastValue int64     `gorm:"column:last_value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Counter) TableName() string {
	return "sequence_counters"
}

// ErrAllocationConflict is returned when the bounded compare-and-swap retry
// loop is exhausted. Callers may retry the whole request.
var ErrAllocationConflict = errors.New("sequence_allocation_conflict")
