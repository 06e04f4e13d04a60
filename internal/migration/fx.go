package migration

import (
	"github.com/smallbiznis/collectra/internal/config"
	"github.com/smallbiznis/collectra/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}

		if cfg.SeedDemo {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
