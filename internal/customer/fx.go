package customer

import (
	"github.com/mazisel/umzug/internal/customer/repository"
	"github.com/mazisel/umzug/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
