package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PriceType string

const (
	PriceFixed  PriceType = "fixed"
	PriceHourly PriceType = "hourly"
)

// AdditionalService is an optional extra selectable on top of a category's
// base price (final cleaning, disposal, packing...).
type AdditionalService struct {
	ID          snowflake.ID                          `gorm:"column:id;primaryKey" json:"id"`
	ServiceID   string                                `gorm:"column:service_id;uniqueIndex" json:"serviceId"`
	CategoryID  string                                `gorm:"column:category_id;index" json:"categoryId"`
	Name        datatypes.JSONType[map[string]string] `gorm:"column:name" json:"name"`
	Description datatypes.JSONType[map[string]string] `gorm:"column:description" json:"description"`
	Price       decimal.Decimal                       `gorm:"column:price;type:numeric" json:"price"`
	PriceType   PriceType                             `gorm:"column:price_type" json:"priceType"`
	HourlyRate  *decimal.Decimal                      `gorm:"column:hourly_rate;type:numeric" json:"hourlyRate,omitempty"`
	Active      bool                                  `gorm:"column:active" json:"active"`
	Order       int                                   `gorm:"column:display_order" json:"order"`
	CreatedAt   time.Time                             `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time                             `gorm:"column:updated_at" json:"updatedAt"`
}

func (AdditionalService) TableName() string {
	return "additional_services"
}

type CreateRequest struct {
	ServiceID   string            `json:"serviceId"`
	CategoryID  string            `json:"categoryId"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	PriceType   PriceType         `json:"priceType"`
	HourlyRate  *decimal.Decimal  `json:"hourlyRate,omitempty"`
	Active      *bool             `json:"active,omitempty"`
	Order       int               `json:"order"`
}

type Patch struct {
	Name        *map[string]string `json:"name,omitempty"`
	Description *map[string]string `json:"description,omitempty"`
	Price       *decimal.Decimal   `json:"price,omitempty"`
	PriceType   *PriceType         `json:"priceType,omitempty"`
	HourlyRate  *decimal.Decimal   `json:"hourlyRate,omitempty"`
	Active      *bool              `json:"active,omitempty"`
	Order       *int               `json:"order,omitempty"`
}

func (p Patch) Apply(a *AdditionalService, now time.Time) {
	if p.Name != nil {
		a.Name = datatypes.NewJSONType(*p.Name)
	}
	if p.Description != nil {
		a.Description = datatypes.NewJSONType(*p.Description)
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.PriceType != nil {
		a.PriceType = *p.PriceType
	}
	if p.HourlyRate != nil {
		a.HourlyRate = p.HourlyRate
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
	if p.Order != nil {
		a.Order = *p.Order
	}
	a.UpdatedAt = now
}

type ListFilter struct {
	CategoryID string `form:"category_id"`
	ActiveOnly bool   `form:"active_only"`
}

var (
	ErrNotFound    = errors.New("additional_service_not_found")
	ErrInvalidID   = errors.New("additional_service_id_required")
	ErrDuplicateID = errors.New("additional_service_id_taken")
)
