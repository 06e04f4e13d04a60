package receivables

import (
	"github.com/smallbiznis/collectra/internal/receivables/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receivables.service",
	fx.Provide(service.New),
)
