package customer

import (
	"github.com/smallbiznis/collectra/internal/customer/repository"
	"github.com/smallbiznis/collectra/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
