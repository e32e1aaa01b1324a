package category

import (
	"github.com/mazisel/umzug/internal/category/repository"
	"github.com/mazisel/umzug/internal/category/service"
	"go.uber.org/fx"
)

var Module = fx.Module("category.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
