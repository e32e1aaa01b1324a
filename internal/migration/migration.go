// Package migration brings the database schema up to date. The schema is
// derived from the gorm models; postgres deployments take an advisory lock
// first so concurrent migrator processes cannot interleave DDL.
package migration

import (
	"context"
	"errors"
	"time"

	addondomain "github.com/mazisel/umzug/internal/addon/domain"
	categorydomain "github.com/mazisel/umzug/internal/category/domain"
	customerdomain "github.com/mazisel/umzug/internal/customer/domain"
	invoicedomain "github.com/mazisel/umzug/internal/invoice/domain"
	offerdomain "github.com/mazisel/umzug/internal/offer/domain"
	seqdomain "github.com/mazisel/umzug/internal/sequence/domain"
	settingsdomain "github.com/mazisel/umzug/internal/settings/domain"
	"gorm.io/gorm"
)

// Models is the full set of persisted types, in creation order.
func Models() []any {
	return []any{
		&seqdomain.Counter{},
		&settingsdomain.CompanySettings{},
		&customerdomain.Customer{},
		&categorydomain.ServiceCategory{},
		&addondomain.AdditionalService{},
		&offerdomain.Offer{},
		&invoicedomain.Invoice{},
	}
}

// Run migrates the schema for every model.
func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if db.Dialector.Name() == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		unlock, err := acquireAdvisoryLock(ctx, sqlDB)
		if err != nil {
			return err
		}
		defer func() {
			_ = unlock(context.Background())
		}()
	}

	return db.WithContext(ctx).AutoMigrate(Models()...)
}
