package db

import (
	"time"

	"github.com/smallbiznis/collectra/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FromApp maps application config onto the connection config.
func FromApp(appCfg config.Config) Config {
	return Config{
		Type:            appCfg.DBType,
		Host:            appCfg.DBHost,
		Port:            appCfg.DBPort,
		Name:            appCfg.DBName,
		User:            appCfg.DBUser,
		Password:        appCfg.DBPassword,
		SSLMode:         appCfg.DBSSLMode,
		MaxIdleConn:     appCfg.DBMaxIdleConn,
		MaxOpenConn:     appCfg.DBMaxOpenConn,
		ConnMaxLifetime: appCfg.DBConnMaxLifetime,
		ConnMaxIdleTime: appCfg.DBConnMaxIdleTime,
	}
}

// Open builds the gorm connection.
func Open(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialect, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	log.Info("database connected",
		zap.String("type", cfg.Type),
		zap.String("name", cfg.Name),
	)

	return conn, nil
}

var Module = fx.Module("db",
	fx.Provide(
		FromApp,
		Open,
	),
)
