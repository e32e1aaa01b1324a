package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SettingsID is the primary key of the single company settings document.
const SettingsID = "company_settings"

type Address struct {
	Type    string  `json:"type"`
	Street  string  `json:"street"`
	City    string  `json:"city"`
	ZipCode string  `json:"zipCode"`
	Country string  `json:"country"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Website *string `json:"website,omitempty"`
}

type Theme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
}

type TaxSettings struct {
	Enabled bool            `json:"enabled"`
	Rate    decimal.Decimal `json:"rate"`
	Label   string          `json:"label"`
}

// BankSettings carries the creditor side of generated QR-bills.
type BankSettings struct {
	IBAN string `json:"iban"`
}

type EmailSettings struct {
	SMTPHost     string `json:"smtpHost"`
	SMTPPort     int    `json:"smtpPort"`
	SMTPUser     string `json:"smtpUser"`
	SMTPPassword string `json:"smtpPassword"`
	FromEmail    string `json:"fromEmail"`
	FromName     string `json:"fromName"`
}

type CompanySettings struct {
	ID                 string                            `gorm:"column:id;primaryKey" json:"id"`
	CompanyName        string                            `gorm:"column:company_name" json:"companyName"`
	Logo               *string                           `gorm:"column:logo" json:"logo,omitempty"`
	Addresses          datatypes.JSONSlice[Address]      `gorm:"column:addresses" json:"addresses"`
	Theme              datatypes.JSONType[Theme]         `gorm:"column:theme" json:"theme"`
	DefaultLanguage    string                            `gorm:"column:default_language" json:"defaultLanguage"`
	SupportedLanguages datatypes.JSONSlice[string]       `gorm:"column:supported_languages" json:"supportedLanguages"`
	Tax                datatypes.JSONType[TaxSettings]   `gorm:"column:tax" json:"tax"`
	Bank               datatypes.JSONType[BankSettings]  `gorm:"column:bank" json:"bank"`
	Email              datatypes.JSONType[EmailSettings] `gorm:"column:email" json:"email"`
	UpdatedAt          time.Time                         `gorm:"column:updated_at" json:"updatedAt"`
}

func (CompanySettings) TableName() string {
	return "company_settings"
}

// TaxConfig is the slice of settings the pricing flow needs, resolved once
// per request.
type TaxConfig struct {
	Rate    decimal.Decimal
	Enabled bool
}

// FallbackTaxConfig is used whenever settings cannot be read: the quoting
// flow must never block on missing configuration.
func FallbackTaxConfig() TaxConfig {
	return TaxConfig{Rate: decimal.NewFromFloat(7.7), Enabled: true}
}

// Default returns the settings document created on first read.
func Default(now time.Time) *CompanySettings {
	website := "www.gelbe-umzuege.ch"
	logo := "/uploads/logo.png"
	return &CompanySettings{
		ID:          SettingsID,
		CompanyName: "Gelbe-Umzüge",
		Logo:        &logo,
		Addresses: datatypes.NewJSONSlice([]Address{
			{
				Type:    "hauptsitz",
				Street:  "Sandstrasse 5",
				City:    "Schönbühl",
				ZipCode: "3322",
				Country: "CH",
				Phone:   "031 557 24 31",
				Email:   "info@gelbe-umzuege.ch",
				Website: &website,
			},
			{
				Type:    "branch",
				Street:  "Güterstrasse 204",
				City:    "Basel",
				ZipCode: "4053",
				Country: "CH",
				Phone:   "031 557 24 31",
				Email:   "info@gelbe-umzuege.ch",
				Website: &website,
			},
		}),
		Theme: datatypes.NewJSONType(Theme{
			PrimaryColor:   "#EAB308",
			SecondaryColor: "#000000",
			AccentColor:    "#FFFFFF",
		}),
		DefaultLanguage:    "de",
		SupportedLanguages: datatypes.NewJSONSlice([]string{"de", "en", "fr", "it"}),
		Tax: datatypes.NewJSONType(TaxSettings{
			Enabled: true,
			Rate:    decimal.NewFromFloat(7.7),
			Label:   "MwSt",
		}),
		Email: datatypes.NewJSONType(EmailSettings{
			SMTPHost:  "smtp.gmail.com",
			SMTPPort:  587,
			FromEmail: "noreply@gelbe-umzuege.ch",
			FromName:  "Gelbe-Umzüge",
		}),
		UpdatedAt: now,
	}
}

// Patch enumerates the mutable settings fields. Nil fields are left
// untouched.
type Patch struct {
	CompanyName        *string        `json:"companyName,omitempty"`
	Logo               *string        `json:"logo,omitempty"`
	Addresses          *[]Address     `json:"addresses,omitempty"`
	Theme              *Theme         `json:"theme,omitempty"`
	DefaultLanguage    *string        `json:"defaultLanguage,omitempty"`
	SupportedLanguages *[]string      `json:"supportedLanguages,omitempty"`
	Tax                *TaxSettings   `json:"tax,omitempty"`
	Bank               *BankSettings  `json:"bank,omitempty"`
	Email              *EmailSettings `json:"email,omitempty"`
}

func (p Patch) Apply(s *CompanySettings, now time.Time) {
	if p.CompanyName != nil {
		s.CompanyName = *p.CompanyName
	}
	if p.Logo != nil {
		s.Logo = p.Logo
	}
	if p.Addresses != nil {
		s.Addresses = datatypes.NewJSONSlice(*p.Addresses)
	}
	if p.Theme != nil {
		s.Theme = datatypes.NewJSONType(*p.Theme)
	}
	if p.DefaultLanguage != nil {
		s.DefaultLanguage = *p.DefaultLanguage
	}
	if p.SupportedLanguages != nil {
		s.SupportedLanguages = datatypes.NewJSONSlice(*p.SupportedLanguages)
	}
	if p.Tax != nil {
		s.Tax = datatypes.NewJSONType(*p.Tax)
	}
	if p.Bank != nil {
		s.Bank = datatypes.NewJSONType(*p.Bank)
	}
	if p.Email != nil {
		s.Email = datatypes.NewJSONType(*p.Email)
	}
	s.UpdatedAt = now
}
