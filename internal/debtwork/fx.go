package debtwork

import (
	"github.com/smallbiznis/collectra/internal/debtwork/repository"
	"github.com/smallbiznis/collectra/internal/debtwork/service"
	"go.uber.org/fx"
)

var Module = fx.Module("debtwork.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
