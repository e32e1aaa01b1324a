package addon

import (
	"github.com/mazisel/umzug/internal/addon/repository"
	"github.com/mazisel/umzug/internal/addon/service"
	"go.uber.org/fx"
)

var Module = fx.Module("addon.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
