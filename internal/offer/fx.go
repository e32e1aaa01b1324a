package offer

import (
	"github.com/mazisel/umzug/internal/offer/repository"
	"github.com/mazisel/umzug/internal/offer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("offer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
