package db

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/mazisel/umzug/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

var ErrUnsupportedDriver = errors.New("unsupported_database_driver")

func New(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Database.Driver)
	}

	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	log.Info("database connected", zap.String("driver", cfg.Database.Driver))
	return conn, nil
}
