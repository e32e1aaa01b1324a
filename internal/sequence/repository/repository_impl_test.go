package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mazisel/umzug/internal/sequence/domain"
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
	require.NoError(t, db.AutoMigrate(&domain.Counter{}))
	return db
}

func TestCounterRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()
	ctx := context.Background()

	found, err := repo.FindCounter(ctx, db, "offer")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repo.InsertCounter(ctx, db, &domain.Counter{
		Name:      "offer",
		LastValue: 10001,
		UpdatedAt: time.Now().UTC(),
	}))

	found, err = repo.FindCounter(ctx, db, "offer")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(10001), found.LastValue)
}

func TestCompareAndSwap(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.InsertCounter(ctx, db, &domain.Counter{
		Name:      "invoice",
		LastValue: 100001,
		UpdatedAt: time.Now().UTC(),
	}))

	ok, err := repo.CompareAndSwap(ctx, db, "invoice", 100001, 100002)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stale observers lose.
	ok, err = repo.CompareAndSwap(ctx, db, "invoice", 100001, 100003)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindCounter(ctx, db, "invoice")
	require.NoError(t, err)
	assert.Equal(t, int64(100002), found.LastValue)
}

func TestMaxAssigned(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, db.Exec(`CREATE TABLE customers (customer_number TEXT)`).Error)

	value, err := repo.MaxAssigned(ctx, db, domain.Customer)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	for _, n := range []string{"10001", "10003", "10002"} {
		require.NoError(t, db.Exec(`INSERT INTO customers (customer_number) VALUES (?)`, n).Error)
	}

	value, err = repo.MaxAssigned(ctx, db, domain.Customer)
	require.NoError(t, err)
	assert.Equal(t, "10003", value)
}
