package bootstrap

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/seed"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureDefaultCatalogue installs the default settings, categories and
// add-on services when seeding is enabled. Intended as an fx.Invoke on
// startup; it is idempotent across restarts.
func EnsureDefaultCatalogue(cfg config.Config, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	if !cfg.Bootstrap.SeedDefaults {
		return nil
	}
	if db == nil {
		return errors.New("bootstrap requires database handle")
	}

	if err := seed.EnsureDefaults(db, node); err != nil {
		return err
	}
	log.Named("bootstrap").Info("default catalogue ensured")
	return nil
}
