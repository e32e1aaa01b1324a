package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PricingModel string

const (
	PricingCustom PricingModel = "custom"
	PricingHourly PricingModel = "hourly"
	PricingFixed  PricingModel = "fixed"
)

// ServiceCategory is one bookable service family (moving, transport,
// cleaning). Name and description are language-keyed maps.
type ServiceCategory struct {
	ID           snowflake.ID                          `gorm:"column:id;primaryKey" json:"id"`
	CategoryID   string                                `gorm:"column:category_id;uniqueIndex" json:"categoryId"`
	Name         datatypes.JSONType[map[string]string] `gorm:"column:name" json:"name"`
	Description  datatypes.JSONType[map[string]string] `gorm:"column:description" json:"description"`
	Icon         string                                `gorm:"column:icon" json:"icon"`
	Active       bool                                  `gorm:"column:active" json:"active"`
	PricingModel PricingModel                          `gorm:"column:pricing_model" json:"pricingModel"`
	BasePrice    decimal.Decimal                       `gorm:"column:base_price;type:numeric" json:"basePrice"`
	HourlyRate   decimal.Decimal                       `gorm:"column:hourly_rate;type:numeric" json:"hourlyRate"`
	FormFields   datatypes.JSONSlice[string]           `gorm:"column:form_fields" json:"formFields"`
	CreatedAt    time.Time                             `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time                             `gorm:"column:updated_at" json:"updatedAt"`
}

func (ServiceCategory) TableName() string {
	return "service_categories"
}

type CreateRequest struct {
	CategoryID   string            `json:"categoryId"`
	Name         map[string]string `json:"name"`
	Description  map[string]string `json:"description"`
	Icon         string            `json:"icon"`
	Active       *bool             `json:"active,omitempty"`
	PricingModel PricingModel      `json:"pricingModel"`
	BasePrice    decimal.Decimal   `json:"basePrice"`
	HourlyRate   decimal.Decimal   `json:"hourlyRate"`
	FormFields   []string          `json:"formFields"`
}

type Patch struct {
	Name         *map[string]string `json:"name,omitempty"`
	Description  *map[string]string `json:"description,omitempty"`
	Icon         *string            `json:"icon,omitempty"`
	Active       *bool              `json:"active,omitempty"`
	PricingModel *PricingModel      `json:"pricingModel,omitempty"`
	BasePrice    *decimal.Decimal   `json:"basePrice,omitempty"`
	HourlyRate   *decimal.Decimal   `json:"hourlyRate,omitempty"`
	FormFields   *[]string          `json:"formFields,omitempty"`
}

func (p Patch) Apply(c *ServiceCategory, now time.Time) {
	if p.Name != nil {
		c.Name = datatypes.NewJSONType(*p.Name)
	}
	if p.Description != nil {
		c.Description = datatypes.NewJSONType(*p.Description)
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	if p.PricingModel != nil {
		c.PricingModel = *p.PricingModel
	}
	if p.BasePrice != nil {
		c.BasePrice = *p.BasePrice
	}
	if p.HourlyRate != nil {
		c.HourlyRate = *p.HourlyRate
	}
	if p.FormFields != nil {
		c.FormFields = datatypes.NewJSONSlice(*p.FormFields)
	}
	c.UpdatedAt = now
}

type ListFilter struct {
	ActiveOnly bool `form:"active_only"`
}

var (
	ErrNotFound    = errors.New("category_not_found")
	ErrInvalidName = errors.New("category_name_required")
	ErrDuplicateID = errors.New("category_id_taken")
)
