package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/settings/domain"
	"github.com/mazisel/umzug/internal/settings/repository"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	if migrate {
		require.NoError(t, db.AutoMigrate(&domain.CompanySettings{}))
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, cache *redisclient.Client) domain.Service {
	t.Helper()
	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Config: config.Config{Cache: config.CacheConfig{SettingsTTL: time.Minute}},
		Clock:  clock.SystemClock{},
		Repo:   repository.Provide(),
		Cache:  cache,
	})
}

func TestGetCreatesDefaultSettings(t *testing.T) {
	svc := newTestService(t, openTestDB(t, true), nil)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SettingsID, settings.ID)
	assert.Equal(t, "Gelbe-Umzüge", settings.CompanyName)
	assert.Equal(t, "de", settings.DefaultLanguage)
	assert.Len(t, []domain.Address(settings.Addresses), 2)

	tax := settings.Tax.Data()
	assert.True(t, tax.Enabled)
	assert.True(t, tax.Rate.Equal(decimal.NewFromFloat(7.7)))
}

func TestTaxConfigFromSettings(t *testing.T) {
	svc := newTestService(t, openTestDB(t, true), nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, domain.Patch{
		Tax: &domain.TaxSettings{Enabled: false, Rate: decimal.NewFromFloat(8.1), Label: "MwSt"},
	})
	require.NoError(t, err)

	tax := svc.TaxConfig(ctx)
	assert.False(t, tax.Enabled)
	assert.True(t, tax.Rate.Equal(decimal.NewFromFloat(8.1)))
}

func TestTaxConfigFallsBackWhenUnreadable(t *testing.T) {
	// No migration: every read fails, the quoting flow must still get a rate.
	svc := newTestService(t, openTestDB(t, false), nil)

	tax := svc.TaxConfig(context.Background())
	assert.True(t, tax.Enabled)
	assert.True(t, tax.Rate.Equal(decimal.NewFromFloat(7.7)))
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := newTestService(t, openTestDB(t, true), nil)
	ctx := context.Background()

	name := "Gelbe Umzüge AG"
	iban := "CH9300762011623852957"
	updated, err := svc.Update(ctx, domain.Patch{
		CompanyName: &name,
		Bank:        &domain.BankSettings{IBAN: iban},
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.CompanyName)
	assert.Equal(t, iban, updated.Bank.Data().IBAN)

	// Untouched fields survive the patch.
	assert.Equal(t, "de", updated.DefaultLanguage)

	reread, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, reread.CompanyName)
}

func TestCacheServesRepeatedReads(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisclient.NewClient(&redisclient.Options{Addr: mr.Addr()})
	db := openTestDB(t, true)
	svc := newTestService(t, db, cache)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)

	// Mutate the row behind the service's back; the cached copy wins until
	// the next invalidation.
	require.NoError(t, db.Model(&domain.CompanySettings{}).
		Where("id = ?", domain.SettingsID).
		Update("company_name", "Changed Behind Cache").Error)

	cached, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.CompanyName, cached.CompanyName)

	name := "Fresh Name"
	_, err = svc.Update(ctx, domain.Patch{CompanyName: &name})
	require.NoError(t, err)

	after, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, name, after.CompanyName)
}
