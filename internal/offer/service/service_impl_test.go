package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/offer/domain"
	"github.com/mazisel/umzug/internal/offer/repository"
	"github.com/mazisel/umzug/internal/pricing"
	seqdomain "github.com/mazisel/umzug/internal/sequence/domain"
	seqrepository "github.com/mazisel/umzug/internal/sequence/repository"
	seqservice "github.com/mazisel/umzug/internal/sequence/service"
	settingsdomain "github.com/mazisel/umzug/internal/settings/domain"
	settingsrepository "github.com/mazisel/umzug/internal/settings/repository"
	settingsservice "github.com/mazisel/umzug/internal/settings/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Offer{},
		&seqdomain.Counter{},
		&settingsdomain.CompanySettings{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sequence := seqservice.New(seqservice.Params{
		DB:     db,
		Log:    zap.NewNop(),
		Config: config.Config{},
		Repo:   seqrepository.Provide(),
	})
	settings := settingsservice.New(settingsservice.Params{
		DB:     db,
		Log:    zap.NewNop(),
		Config: config.Config{Cache: config.CacheConfig{SettingsTTL: time.Minute}},
		Clock:  clock.SystemClock{},
		Repo:   settingsrepository.Provide(),
	})

	return New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.SystemClock{},
		Repo:     repository.Provide(),
		Sequence: sequence,
		Settings: settings,
	})
}

func movingRequest() domain.CreateRequest {
	return domain.CreateRequest{
		Category: "umzug",
		Customer: domain.Contact{
			Salutation: "Herr",
			FirstName:  "Max",
			LastName:   "Muster",
			Email:      "max@example.ch",
			Phone:      "+41 79 000 00 00",
		},
		CurrentLocation: domain.Location{Street: "Sandstrasse 5", ZipCode: "3322", City: "Schönbühl", Floor: 2},
		NewLocation:     domain.Location{Street: "Güterstrasse 204", ZipCode: "4053", City: "Basel", Floor: 1, HasElevator: true},
		Pricing: domain.PricingInput{
			BasePrice: decimal.NewFromInt(1200),
			AdditionalServices: []pricing.AddOnSelection{
				{ServiceID: "cleaning", Selected: true, Price: decimal.NewFromInt(900)},
			},
		},
	}
}

func TestCreateAllocatesNumberAndComputesPricing(t *testing.T) {
	svc := newTestService(t)

	offer, err := svc.Create(context.Background(), movingRequest())
	require.NoError(t, err)

	assert.Equal(t, "10001", offer.OfferNumber)
	assert.Equal(t, domain.StatusDraft, offer.Status)
	assert.Equal(t, "de", offer.Language)

	// Crew defaults for a fresh moving quote.
	details := offer.ServiceDetails.Data()
	assert.Equal(t, 2, details.Workers)
	assert.Equal(t, 1, details.Trucks)

	// 1200 + 900 = 2100, 7.7% tax = 161.70, total 2261.70.
	breakdown := offer.Pricing.Data()
	assert.True(t, breakdown.Subtotal.Equal(decimal.NewFromInt(2100)), breakdown.Subtotal.String())
	assert.True(t, breakdown.TaxAmount.Equal(decimal.NewFromFloat(161.7)), breakdown.TaxAmount.String())
	assert.True(t, breakdown.Total.Equal(decimal.NewFromFloat(2261.7)), breakdown.Total.String())
	assert.Equal(t, "CHF", breakdown.Currency)
}

func TestCreateNumbersAreSequential(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)
	second, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)

	assert.Equal(t, "10001", first.OfferNumber)
	assert.Equal(t, "10002", second.OfferNumber)
}

func TestCreateRequiresCategory(t *testing.T) {
	svc := newTestService(t)

	req := movingRequest()
	req.Category = "  "
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestGetByOfferNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)

	byNumber, err := svc.Get(ctx, created.OfferNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)

	byID, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.OfferNumber, byID.OfferNumber)

	_, err = svc.Get(ctx, "99999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)

	status := domain.StatusSent
	notes := "Kunde ruft zurück"
	updated, err := svc.Update(ctx, created.OfferNumber, domain.Patch{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	// Pricing is untouched by a plain patch.
	assert.True(t, updated.Pricing.Data().Total.Equal(decimal.NewFromFloat(2261.7)))
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)

	bad := domain.Status("archived")
	_, err = svc.Update(ctx, created.OfferNumber, domain.Patch{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestCalculatePricingPersistsBreakdown(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)

	breakdown, err := svc.CalculatePricing(ctx, created.OfferNumber, domain.PricingInput{
		BasePrice: decimal.NewFromInt(1000),
		AdditionalServices: []pricing.AddOnSelection{
			{ServiceID: "cleaning", Selected: false, Price: decimal.NewFromInt(900)},
			{ServiceID: "disposal", Selected: true, Price: decimal.NewFromInt(250)},
		},
		Discount: pricing.Discount{Amount: decimal.NewFromInt(10), Kind: pricing.DiscountPercentage},
	})
	require.NoError(t, err)

	// 1000 + 250 = 1250, -10% = 1125, +7.7% = 1211.625.
	assert.True(t, breakdown.Subtotal.Equal(decimal.NewFromInt(1250)), breakdown.Subtotal.String())
	assert.True(t, breakdown.Total.Equal(decimal.NewFromFloat(1211.625)), breakdown.Total.String())

	reread, err := svc.Get(ctx, created.OfferNumber)
	require.NoError(t, err)
	assert.True(t, reread.Pricing.Data().Total.Equal(decimal.NewFromFloat(1211.625)))
	selections := []pricing.AddOnSelection(reread.AdditionalServices)
	require.Len(t, selections, 2)
	assert.Equal(t, "disposal", selections[1].ServiceID)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, movingRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.OfferNumber))
	_, err = svc.Get(ctx, created.OfferNumber)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.OfferNumber), domain.ErrNotFound)
}
