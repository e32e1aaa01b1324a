package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/mazisel/umzug/internal/clock"
	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/customer/domain"
	"github.com/mazisel/umzug/internal/customer/repository"
	seqdomain "github.com/mazisel/umzug/internal/sequence/domain"
	seqrepository "github.com/mazisel/umzug/internal/sequence/repository"
	seqservice "github.com/mazisel/umzug/internal/sequence/service"
	"github.com/mazisel/umzug/pkg/db/pagination"
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
	require.NoError(t, db.AutoMigrate(&domain.Customer{}, &seqdomain.Counter{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sequence := seqservice.New(seqservice.Params{
		DB:     db,
		Log:    zap.NewNop(),
		Config: config.Config{},
		Repo:   seqrepository.Provide(),
	})

	return New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.SystemClock{},
		Repo:      repository.Provide(),
		Sequences: sequence,
	})
}

func createRequest() domain.CreateRequest {
	return domain.CreateRequest{
		Salutation: "Herr",
		FirstName:  "Max",
		LastName:   "Muster",
		Email:      "max@example.ch",
		Phone:      "+41 79 000 00 00",
		Address:    domain.Address{Street: "Sandstrasse 5", ZipCode: "3322", City: "Schönbühl", Country: "CH"},
	}
}

func TestCreateAllocatesCustomerNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)
	second, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	assert.Equal(t, "10001", first.CustomerNumber)
	assert.Equal(t, "10002", second.CustomerNumber)
	assert.True(t, first.Active)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := createRequest()
	req.LastName = " "
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	req = createRequest()
	req.Email = ""
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestGetByNumberAndID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	byNumber, err := svc.Get(ctx, created.CustomerNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)

	byID, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.CustomerNumber, byID.CustomerNumber)

	_, err = svc.Get(ctx, "99999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAndListActiveFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest())
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, first.CustomerNumber, domain.Patch{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	all, err := svc.List(ctx, domain.ListFilter{}, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, domain.ListFilter{ActiveOnly: true}, pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].Active)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.CustomerNumber))
	_, err = svc.Get(ctx, created.CustomerNumber)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
