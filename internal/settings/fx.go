package settings

import (
	"github.com/mazisel/umzug/internal/settings/repository"
	"github.com/mazisel/umzug/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
