package logevents

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/logevents/snapshot"
)

// Options configures a Plugin. Environment configuration is applied first, then every Option
// passed to New.
type Options struct {
	SettingsPath  string                       // Settings file used by the FILE storage
	StorageType   snapshot.StorageType         // Where settings are persisted
	RedisOptions  snapshot.RedisStorageOptions // Connection used by the REDIS storage
	Storage       snapshot.Storage             // Overrides StorageType when set
	ShowPanel     bool                         // Whether the settings panel should be served
	PanelAddr     string                       // Listen address of the settings panel
	StatsdAddress string                       // Statsd agent address, metrics disabled when empty
	Logger        *zerolog.Logger              // Logger for the plugin's own messages
	Sink          Sink                         // Receives the logged event lines
}

// Option overrides a single field of Options.
type Option func(*Options)

// newDefaultOptions creates Options with default values.
func newDefaultOptions() Options {
	return Options{
		SettingsPath: DefaultSettingsPath,
		StorageType:  snapshot.StorageTypeFile,
		RedisOptions: snapshot.RedisStorageOptions{Key: snapshot.DefaultRedisKey},
	}
}

// WithSettingsPath stores settings in the file at path.
func WithSettingsPath(path string) Option {
	return func(opt *Options) {
		opt.SettingsPath = path
		opt.StorageType = snapshot.StorageTypeFile
	}
}

// WithStorage persists settings in the given storage instead of the configured one.
func WithStorage(storage snapshot.Storage) Option {
	return func(opt *Options) { opt.Storage = storage }
}

// WithRedis persists settings in redis.
func WithRedis(redisOpts snapshot.RedisStorageOptions) Option {
	return func(opt *Options) {
		opt.RedisOptions = redisOpts
		opt.StorageType = snapshot.StorageTypeRedis
	}
}

// WithShowPanel toggles the settings panel.
func WithShowPanel(show bool) Option {
	return func(opt *Options) { opt.ShowPanel = show }
}

// WithPanelAddr sets the settings panel listen address.
func WithPanelAddr(addr string) Option {
	return func(opt *Options) { opt.PanelAddr = addr }
}

// WithStatsdAddress enables metrics reporting to the statsd agent at addr.
func WithStatsdAddress(addr string) Option {
	return func(opt *Options) { opt.StatsdAddress = addr }
}

// WithLogger sets the logger the plugin reports its own warnings and errors to.
func WithLogger(logger zerolog.Logger) Option {
	return func(opt *Options) { opt.Logger = &logger }
}

// WithSink sends logged event lines to sink instead of the plugin logger.
func WithSink(sink Sink) Option {
	return func(opt *Options) { opt.Sink = sink }
}

// validate checks that all required options are set and valid.
func (opt *Options) validate() error {
	if opt.ShowPanel && opt.PanelAddr == "" {
		return eris.New("panel address cannot be empty")
	}
	if opt.Storage != nil {
		return nil
	}
	if !opt.StorageType.IsValid() {
		return eris.Errorf("invalid storage type: %s", opt.StorageType)
	}
	if opt.StorageType == snapshot.StorageTypeFile && opt.SettingsPath == "" {
		return eris.New("settings path cannot be empty")
	}
	if opt.StorageType == snapshot.StorageTypeRedis {
		if err := opt.RedisOptions.Validate(); err != nil {
			return eris.Wrap(err, "invalid redis options")
		}
	}
	return nil
}

// newStorage builds the storage the options describe, along with a description of where it
// keeps the settings.
func (opt *Options) newStorage() (snapshot.Storage, string, error) {
	if opt.Storage != nil {
		if fs, ok := opt.Storage.(*snapshot.FileStorage); ok {
			return fs, fs.Path(), nil
		}
		return opt.Storage, "custom", nil
	}

	switch opt.StorageType {
	case snapshot.StorageTypeFile:
		fs, err := snapshot.NewFileStorage(opt.SettingsPath)
		if err != nil {
			return nil, "", err
		}
		return fs, fs.Path(), nil
	case snapshot.StorageTypeRedis:
		rs, err := snapshot.NewRedisStorage(opt.RedisOptions)
		if err != nil {
			return nil, "", err
		}
		return rs, "redis://" + opt.RedisOptions.Address, nil
	case snapshot.StorageTypeNop:
		return snapshot.NewNopStorage(), "nop", nil
	case snapshot.StorageTypeUndefined:
		fallthrough
	default:
		return nil, "", eris.Errorf("invalid storage type: %s", opt.StorageType)
	}
}
