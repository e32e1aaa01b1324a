package invoice

import (
	"github.com/mazisel/umzug/internal/invoice/repository"
	"github.com/mazisel/umzug/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
