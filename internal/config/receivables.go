package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AgingBucket describes one band of the receivables aging report.
// MaxDays == nil means the bucket is open-ended.
type AgingBucket struct {
	Label   string `mapstructure:"label"`
	MinDays int    `mapstructure:"minDays"`
	MaxDays *int   `mapstructure:"maxDays"`
}

type ReceivablesConfig struct {
	AgingBuckets []AgingBucket `mapstructure:"agingBuckets"`
}

func DefaultReceivablesConfig() ReceivablesConfig {
	return ReceivablesConfig{
		AgingBuckets: []AgingBucket{
			{Label: "0-30", MinDays: 0, MaxDays: intPtr(30)},
			{Label: "31-60", MinDays: 31, MaxDays: intPtr(60)},
			{Label: "61-90", MinDays: 61, MaxDays: intPtr(90)},
			{Label: "90+", MinDays: 91, MaxDays: nil},
		},
	}
}

func intPtr(v int) *int { return &v }

// ReceivablesConfigHolder keeps the current receivables config and swaps it
// atomically on file change, so report requests never see a half-written
// config.
type ReceivablesConfigHolder struct {
	current atomic.Value // holds ReceivablesConfig
}

func NewReceivablesConfigHolder() (*ReceivablesConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("receivables")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/collectra/config") // Volume-mounted config
	v.AddConfigPath("/etc/collectra")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("COLLECTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReceivablesConfig()
		v.SetDefault("receivables.agingBuckets", defaults.AgingBuckets)
	}

	var cfg ReceivablesConfig
	if err := v.UnmarshalKey("receivables", &cfg); err != nil {
		return nil, err
	}
	if err := validateReceivablesConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReceivablesConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReceivablesConfig
		if err := v.UnmarshalKey("receivables", &updated); err != nil {
			log.Printf("[receivables-config] reload failed: %v", err)
			return
		}
		if err := validateReceivablesConfig(updated); err != nil {
			log.Printf("[receivables-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[receivables-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ReceivablesConfigHolder) Get() ReceivablesConfig {
	return h.current.Load().(ReceivablesConfig)
}

func validateReceivablesConfig(cfg ReceivablesConfig) error {
	if len(cfg.AgingBuckets) == 0 {
		return errors.New("receivables.agingBuckets cannot be empty")
	}
	for _, b := range cfg.AgingBuckets {
		if strings.TrimSpace(b.Label) == "" {
			return errors.New("receivables.agingBuckets label cannot be empty")
		}
		if b.MaxDays != nil && *b.MaxDays < b.MinDays {
			return errors.New("receivables.agingBuckets maxDays cannot be below minDays")
		}
	}
	return nil
}
