package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Contact is the customer snapshot embedded in an offer. It deliberately
// stays a copy: the quote must read as issued even if the customer record
// changes later.
type Contact struct {
	Salutation string `json:"salutation"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type Location struct {
	Street      string  `json:"street"`
	ZipCode     string  `json:"zipCode"`
	City        string  `json:"city"`
	Floor       int     `json:"floor"`
	HasElevator bool    `json:"hasElevator"`
	Distance    float64 `json:"distance"`
}

type ServiceDetails struct {
	MovingDate        *string `json:"movingDate,omitempty"`
	StartTime         *string `json:"startTime,omitempty"`
	CleaningDate      *string `json:"cleaningDate,omitempty"`
	CleaningStartTime *string `json:"cleaningStartTime,omitempty"`
	Object            *string `json:"object,omitempty"`
	Workers           int     `json:"workers"`
	Trucks            int     `json:"trucks"`
	Boxes             int     `json:"boxes"`
	Assembly          bool    `json:"assembly"`
}

type Offer struct {
	ID                 snowflake.ID                                `gorm:"column:id;primaryKey" json:"id"`
	OfferNumber        string                                      `gorm:"column:offer_number;uniqueIndex" json:"offerNumber"`
	CustomerID         *snowflake.ID                               `gorm:"column:customer_id" json:"customerId,omitempty"`
	Status             Status                                      `gorm:"column:status;index" json:"status"`
	Category           string                                      `gorm:"column:category;index" json:"category"`
	Language           string                                      `gorm:"column:language" json:"language"`
	Customer           datatypes.JSONType[Contact]                 `gorm:"column:customer" json:"customer"`
	CurrentLocation    datatypes.JSONType[Location]                `gorm:"column:current_location" json:"currentLocation"`
	NewLocation        datatypes.JSONType[Location]                `gorm:"column:new_location" json:"newLocation"`
	ServiceDetails     datatypes.JSONType[ServiceDetails]          `gorm:"column:service_details" json:"serviceDetails"`
	AdditionalServices datatypes.JSONSlice[pricing.AddOnSelection] `gorm:"column:additional_services" json:"additionalServices"`
	Pricing            datatypes.JSONType[pricing.Breakdown]       `gorm:"column:pricing" json:"pricing"`
	Notes              *string                                     `gorm:"column:notes" json:"notes,omitempty"`
	EmailSent          bool                                        `gorm:"column:email_sent" json:"emailSent"`
	EmailSentAt        *time.Time                                  `gorm:"column:email_sent_at" json:"emailSentAt,omitempty"`
	ContactPerson      *string                                     `gorm:"column:contact_person" json:"contactPerson,omitempty"`
	CreatedBy          *string                                     `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt          time.Time                                   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time                                   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Offer) TableName() string {
	return "offers"
}

// PricingInput carries everything the calculator needs apart from the tax
// configuration, which the service resolves from company settings.
type PricingInput struct {
	BasePrice          decimal.Decimal          `json:"basePrice"`
	AdditionalServices []pricing.AddOnSelection `json:"additionalServices"`
	Discount           pricing.Discount         `json:"discount"`
}

type CreateRequest struct {
	Category        string         `json:"category"`
	Language        string         `json:"language"`
	CustomerID      *string        `json:"customerId,omitempty"`
	Customer        Contact        `json:"customer"`
	CurrentLocation Location       `json:"currentLocation"`
	NewLocation     Location       `json:"newLocation"`
	ServiceDetails  ServiceDetails `json:"serviceDetails"`
	Pricing         PricingInput   `json:"pricing"`
	Notes           *string        `json:"notes,omitempty"`
	ContactPerson   *string        `json:"contactPerson,omitempty"`
	CreatedBy       *string        `json:"-"`
}

// Patch enumerates the mutable offer fields. The pricing breakdown is not
// directly patchable; it is only replaced wholesale by CalculatePricing.
type Patch struct {
	Status             *Status                   `json:"status,omitempty"`
	Customer           *Contact                  `json:"customer,omitempty"`
	CurrentLocation    *Location                 `json:"currentLocation,omitempty"`
	NewLocation        *Location                 `json:"newLocation,omitempty"`
	ServiceDetails     *ServiceDetails           `json:"serviceDetails,omitempty"`
	AdditionalServices *[]pricing.AddOnSelection `json:"additionalServices,omitempty"`
	Notes              *string                   `json:"notes,omitempty"`
	ContactPerson      *string                   `json:"contactPerson,omitempty"`
}

func (p Patch) Apply(o *Offer, now time.Time) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Customer != nil {
		o.Customer = datatypes.NewJSONType(*p.Customer)
	}
	if p.CurrentLocation != nil {
		o.CurrentLocation = datatypes.NewJSONType(*p.CurrentLocation)
	}
	if p.NewLocation != nil {
		o.NewLocation = datatypes.NewJSONType(*p.NewLocation)
	}
	if p.ServiceDetails != nil {
		o.ServiceDetails = datatypes.NewJSONType(*p.ServiceDetails)
	}
	if p.AdditionalServices != nil {
		o.AdditionalServices = datatypes.NewJSONSlice(*p.AdditionalServices)
	}
	if p.Notes != nil {
		o.Notes = p.Notes
	}
	if p.ContactPerson != nil {
		o.ContactPerson = p.ContactPerson
	}
	o.UpdatedAt = now
}

type ListFilter struct {
	Status   *Status `form:"status"`
	Category string  `form:"category"`
}

var (
	ErrNotFound        = errors.New("offer_not_found")
	ErrInvalidCategory = errors.New("offer_category_required")
	ErrInvalidStatus   = errors.New("offer_status_invalid")
)
