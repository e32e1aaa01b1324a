package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Address struct {
	Street  string `json:"street"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Customer struct {
	ID             snowflake.ID                `gorm:"column:id;primaryKey" json:"id"`
	CustomerNumber string                      `gorm:"column:customer_number;uniqueIndex" json:"customerNumber"`
	Salutation     string                      `gorm:"column:salutation" json:"salutation"`
	FirstName      string                      `gorm:"column:first_name" json:"firstName"`
	LastName       string                      `gorm:"column:last_name" json:"lastName"`
	Email          string                      `gorm:"column:email" json:"email"`
	Phone          string                      `gorm:"column:phone" json:"phone"`
	Address        datatypes.JSONType[Address] `gorm:"column:address" json:"address"`
	Notes          *string                     `gorm:"column:notes" json:"notes,omitempty"`
	Active         bool                        `gorm:"column:active" json:"active"`
	CreatedBy      *string                     `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt      time.Time                   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

type CreateRequest struct {
	Salutation string  `json:"salutation"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Address    Address `json:"address"`
	Notes      *string `json:"notes,omitempty"`
	CreatedBy  *string `json:"-"`
}

// Patch enumerates the mutable customer fields.
type Patch struct {
	Salutation *string  `json:"salutation,omitempty"`
	FirstName  *string  `json:"firstName,omitempty"`
	LastName   *string  `json:"lastName,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Address    *Address `json:"address,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Active     *bool    `json:"active,omitempty"`
}

func (p Patch) Apply(c *Customer, now time.Time) {
	if p.Salutation != nil {
		c.Salutation = *p.Salutation
	}
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = datatypes.NewJSONType(*p.Address)
	}
	if p.Notes != nil {
		c.Notes = p.Notes
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	c.UpdatedAt = now
}

type ListFilter struct {
	ActiveOnly bool `form:"active_only"`
}

var (
	ErrNotFound     = errors.New("customer_not_found")
	ErrInvalidName  = errors.New("customer_name_required")
	ErrInvalidEmail = errors.New("customer_email_required")
)
