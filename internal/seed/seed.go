// Package seed installs the default catalogue a fresh installation needs:
// the company settings document, the three service categories and the
// standard add-on services. Every helper is idempotent, so the seeder can
// run on every startup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	addondomain "github.com/mazisel/umzug/internal/addon/domain"
	categorydomain "github.com/mazisel/umzug/internal/category/domain"
	settingsdomain "github.com/mazisel/umzug/internal/settings/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaults seeds settings, categories and add-on services inside a
// single transaction. Existing records are left untouched.
func EnsureDefaults(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSettingsTx(ctx, tx); err != nil {
			return err
		}
		if err := ensureCategoriesTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureAddOnsTx(ctx, tx, node)
	})
}

func ensureSettingsTx(ctx context.Context, tx *gorm.DB) error {
	var existing settingsdomain.CompanySettings
	err := tx.WithContext(ctx).Where("id = ?", settingsdomain.SettingsID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.WithContext(ctx).Create(settingsdomain.Default(time.Now().UTC())).Error
}

func ensureCategoriesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	categories := []categorydomain.ServiceCategory{
		{
			CategoryID: "umzug",
			Name:       i18n("Umzug", "Moving", "Déménagement", "Trasloco"),
			Description: i18n(
				"Professioneller Umzugsservice",
				"Professional moving service",
				"Service de déménagement professionnel",
				"Servizio di trasloco professionale",
			),
			Icon:         "package",
			Active:       true,
			PricingModel: categorydomain.PricingCustom,
			BasePrice:    decimal.Zero,
			HourlyRate:   decimal.NewFromInt(120),
			FormFields: datatypes.NewJSONSlice([]string{
				"currentAddress", "newAddress", "floor", "elevator",
				"movingDate", "startTime", "object", "workers", "trucks",
			}),
		},
		{
			CategoryID: "moebeltransport",
			Name:       i18n("Möbeltransport", "Furniture Transport", "Transport de meubles", "Trasporto mobili"),
			Description: i18n(
				"Sicherer Transport von Möbeln",
				"Safe furniture transportation",
				"Transport sécurisé de meubles",
				"Trasporto sicuro di mobili",
			),
			Icon:         "truck",
			Active:       true,
			PricingModel: categorydomain.PricingHourly,
			BasePrice:    decimal.Zero,
			HourlyRate:   decimal.NewFromInt(80),
			FormFields:   datatypes.NewJSONSlice([]string{"pickupAddress", "deliveryAddress", "furnitureList"}),
		},
		{
			CategoryID: "reinigung",
			Name:       i18n("Reinigung", "Cleaning", "Nettoyage", "Pulizia"),
			Description: i18n(
				"Professionelle Reinigungsservices",
				"Professional cleaning services",
				"Services de nettoyage professionnel",
				"Servizi di pulizia professionale",
			),
			Icon:         "sparkles",
			Active:       true,
			PricingModel: categorydomain.PricingFixed,
			BasePrice:    decimal.NewFromInt(900),
			HourlyRate:   decimal.NewFromInt(60),
			FormFields:   datatypes.NewJSONSlice([]string{"address", "roomCount", "cleaningType", "cleaningDate"}),
		},
	}

	now := time.Now().UTC()
	for _, category := range categories {
		var existing categorydomain.ServiceCategory
		err := tx.WithContext(ctx).Where("category_id = ?", category.CategoryID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category.ID = node.Generate()
		category.CreatedAt = now
		category.UpdatedAt = now
		if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureAddOnsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	packingRate := decimal.NewFromInt(50)
	addOns := []addondomain.AdditionalService{
		{
			ServiceID:  "cleaning",
			CategoryID: "umzug",
			Name:       i18n("Reinigung", "Cleaning", "Nettoyage", "Pulizia"),
			Description: i18n(
				"Professionelle Endreinigung der alten Wohnung",
				"Professional final cleaning of the old apartment",
				"Nettoyage final professionnel de l'ancien appartement",
				"Pulizia finale professionale del vecchio appartamento",
			),
			Price:     decimal.NewFromInt(900),
			PriceType: addondomain.PriceFixed,
			Active:    true,
			Order:     1,
		},
		{
			ServiceID:  "disposal",
			CategoryID: "umzug",
			Name:       i18n("Entsorgung", "Disposal", "Élimination", "Smaltimento"),
			Description: i18n(
				"Entsorgung von Altmöbeln und Abfall",
				"Disposal of old furniture and waste",
				"Élimination des vieux meubles et déchets",
				"Smaltimento di vecchi mobili e rifiuti",
			),
			Price:     decimal.NewFromInt(250),
			PriceType: addondomain.PriceFixed,
			Active:    true,
			Order:     2,
		},
		{
			ServiceID:  "packing",
			CategoryID: "umzug",
			Name:       i18n("Verpackungsservice", "Packing Service", "Service d'emballage", "Servizio di imballaggio"),
			Description: i18n(
				"Professionelles Verpacken Ihrer Gegenstände",
				"Professional packing of your items",
				"Emballage professionnel de vos articles",
				"Imballaggio professionale dei vostri articoli",
			),
			Price:      decimal.NewFromInt(50),
			PriceType:  addondomain.PriceHourly,
			HourlyRate: &packingRate,
			Active:     true,
			Order:      3,
		},
	}

	now := time.Now().UTC()
	for _, addOn := range addOns {
		var existing addondomain.AdditionalService
		err := tx.WithContext(ctx).Where("service_id = ?", addOn.ServiceID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		addOn.ID = node.Generate()
		addOn.CreatedAt = now
		addOn.UpdatedAt = now
		if err := tx.WithContext(ctx).Create(&addOn).Error; err != nil {
			return err
		}
	}
	return nil
}

func i18n(de, en, fr, it string) datatypes.JSONType[map[string]string] {
	return datatypes.NewJSONType(map[string]string{"de": de, "en": en, "fr": fr, "it": it})
}
