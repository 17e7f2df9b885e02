package logevents

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/snapshot"
)

// DefaultSettingsPath is where log settings are kept when nothing else is configured.
const DefaultSettingsPath = "assets/log_settings.json"

// pluginConfig holds the configuration for the log events plugin.
// Configuration can be set via environment variables with the specified defaults.
type pluginConfig struct {
	// Path of the settings file used by the FILE storage.
	SettingsPath string `env:"LOGEVENTS_SETTINGS_PATH" envDefault:"assets/log_settings.json"`

	// Where settings are persisted: FILE, REDIS or NOP.
	Storage string `env:"LOGEVENTS_STORAGE" envDefault:"FILE"`

	// Redis connection used by the REDIS storage.
	RedisAddress  string `env:"LOGEVENTS_REDIS_ADDRESS"`
	RedisPassword string `env:"LOGEVENTS_REDIS_PASSWORD"`
	RedisKey      string `env:"LOGEVENTS_REDIS_KEY" envDefault:"logevents:settings"`

	// Whether the settings panel should be served.
	ShowPanel bool `env:"LOGEVENTS_SHOW_PANEL" envDefault:"false"`

	// Listen address of the settings panel.
	PanelAddr string `env:"LOGEVENTS_PANEL_ADDR" envDefault:":7333"`

	// Address of the statsd agent. Metrics are disabled when empty.
	StatsdAddress string `env:"LOGEVENTS_STATSD_ADDRESS"`
}

// loadPluginConfig loads the plugin configuration from environment variables. Values are checked
// by Options.validate once the options passed to New are applied on top.
func loadPluginConfig() (pluginConfig, error) {
	cfg := pluginConfig{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse logevents config")
	}

	return cfg, nil
}

// applyToOptions applies the configuration values to the given Options.
func (cfg *pluginConfig) applyToOptions(opt *Options) {
	// An unknown name leaves StorageTypeUndefined, which Options.validate rejects unless a storage
	// is given directly.
	storageType, _ := snapshot.ParseStorageType(cfg.Storage)

	opt.SettingsPath = cfg.SettingsPath
	opt.StorageType = storageType
	opt.RedisOptions = snapshot.RedisStorageOptions{
		Address:  cfg.RedisAddress,
		Password: cfg.RedisPassword,
		Key:      cfg.RedisKey,
	}
	opt.ShowPanel = cfg.ShowPanel
	opt.PanelAddr = cfg.PanelAddr
	opt.StatsdAddress = cfg.StatsdAddress
}
