package seed

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	addondomain "github.com/mazisel/umzug/internal/addon/domain"
	categorydomain "github.com/mazisel/umzug/internal/category/domain"
	settingsdomain "github.com/mazisel/umzug/internal/settings/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&settingsdomain.CompanySettings{},
		&categorydomain.ServiceCategory{},
		&addondomain.AdditionalService{},
	))
	return db
}

func TestEnsureDefaults(t *testing.T) {
	db := openTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, EnsureDefaults(db, node))

	var settings settingsdomain.CompanySettings
	require.NoError(t, db.Where("id = ?", settingsdomain.SettingsID).First(&settings).Error)
	assert.Equal(t, "Gelbe-Umzüge", settings.CompanyName)

	var categories []categorydomain.ServiceCategory
	require.NoError(t, db.Order("category_id").Find(&categories).Error)
	require.Len(t, categories, 3)
	assert.Equal(t, "moebeltransport", categories[0].CategoryID)
	assert.Equal(t, "reinigung", categories[1].CategoryID)
	assert.Equal(t, "umzug", categories[2].CategoryID)
	assert.True(t, categories[1].BasePrice.Equal(decimal.NewFromInt(900)))

	var addOns []addondomain.AdditionalService
	require.NoError(t, db.Order("display_order").Find(&addOns).Error)
	require.Len(t, addOns, 3)
	assert.Equal(t, "cleaning", addOns[0].ServiceID)
	assert.Equal(t, addondomain.PriceHourly, addOns[2].PriceType)
	require.NotNil(t, addOns[2].HourlyRate)
	assert.True(t, addOns[2].HourlyRate.Equal(decimal.NewFromInt(50)))
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, EnsureDefaults(db, node))
	require.NoError(t, EnsureDefaults(db, node))

	var count int64
	require.NoError(t, db.Model(&categorydomain.ServiceCategory{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
	require.NoError(t, db.Model(&addondomain.AdditionalService{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestEnsureDefaultsKeepsExistingSettings(t *testing.T) {
	db := openTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, EnsureDefaults(db, node))

	require.NoError(t, db.Model(&settingsdomain.CompanySettings{}).
		Where("id = ?", settingsdomain.SettingsID).
		Update("company_name", "Custom AG").Error)

	require.NoError(t, EnsureDefaults(db, node))

	var settings settingsdomain.CompanySettings
	require.NoError(t, db.Where("id = ?", settingsdomain.SettingsID).First(&settings).Error)
	assert.Equal(t, "Custom AG", settings.CompanyName)
}
