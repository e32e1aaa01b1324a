package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/qrbill"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// LineItem is one billed position. The stored total is authoritative: it is
// summed as-is and never rederived from quantity times unit price, so manual
// corrections on a position survive recalculation.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID            snowflake.ID                     `gorm:"column:id;primaryKey" json:"id"`
	InvoiceNumber string                           `gorm:"column:invoice_number;uniqueIndex" json:"invoiceNumber"`
	OfferID       *snowflake.ID                    `gorm:"column:offer_id" json:"offerId,omitempty"`
	CustomerID    *snowflake.ID                    `gorm:"column:customer_id;index" json:"customerId,omitempty"`
	Status        Status                           `gorm:"column:status;index" json:"status"`
	Items         datatypes.JSONSlice[LineItem]    `gorm:"column:items" json:"items"`
	Subtotal      decimal.Decimal                  `gorm:"column:subtotal" json:"subtotal"`
	TaxRate       decimal.Decimal                  `gorm:"column:tax_rate" json:"taxRate"`
	TaxAmount     decimal.Decimal                  `gorm:"column:tax_amount" json:"taxAmount"`
	Total         decimal.Decimal                  `gorm:"column:total" json:"total"`
	Currency      string                           `gorm:"column:currency" json:"currency"`
	DueDate       *time.Time                       `gorm:"column:due_date" json:"dueDate,omitempty"`
	QRBill        datatypes.JSONType[*qrbill.Data] `gorm:"column:qr_bill" json:"qrBill"`
	Notes         *string                          `gorm:"column:notes" json:"notes,omitempty"`
	CreatedBy     *string                          `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt     time.Time                        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time                        `gorm:"column:updated_at" json:"updatedAt"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type CreateRequest struct {
	OfferID    *string          `json:"offerId,omitempty"`
	CustomerID *string          `json:"customerId,omitempty"`
	Items      []LineItem       `json:"items"`
	TaxRate    *decimal.Decimal `json:"taxRate,omitempty"`
	DueDate    *time.Time       `json:"dueDate,omitempty"`
	QRBill     *qrbill.Data     `json:"qrBill,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
	CreatedBy  *string          `json:"-"`
}

// Patch enumerates the mutable invoice fields. Changing Items re-runs the
// totals recalculation with the invoice's persisted tax rate; the computed
// subtotal, tax amount and total are never patchable directly.
type Patch struct {
	Status  *Status      `json:"status,omitempty"`
	Items   *[]LineItem  `json:"items,omitempty"`
	DueDate *time.Time   `json:"dueDate,omitempty"`
	QRBill  *qrbill.Data `json:"qrBill,omitempty"`
	Notes   *string      `json:"notes,omitempty"`
}

func (p Patch) Apply(inv *Invoice, now time.Time) {
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Items != nil {
		inv.Items = datatypes.NewJSONSlice(*p.Items)
		totals := Recalculate(*p.Items, inv.TaxRate)
		inv.Subtotal = totals.Subtotal
		inv.TaxAmount = totals.TaxAmount
		inv.Total = totals.Total
	}
	if p.DueDate != nil {
		inv.DueDate = p.DueDate
	}
	if p.QRBill != nil {
		inv.QRBill = datatypes.NewJSONType(p.QRBill)
	}
	if p.Notes != nil {
		inv.Notes = p.Notes
	}
	inv.UpdatedAt = now
}

type ListFilter struct {
	Status     *Status       `form:"status"`
	CustomerID *snowflake.ID `form:"customer_id"`
}

var (
	ErrNotFound      = errors.New("invoice_not_found")
	ErrInvalidStatus = errors.New("invoice_status_invalid")
)
