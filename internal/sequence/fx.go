package sequence

import (
	"github.com/mazisel/umzug/internal/sequence/repository"
	"github.com/mazisel/umzug/internal/sequence/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sequence.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
