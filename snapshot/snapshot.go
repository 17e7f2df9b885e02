package snapshot

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/settings"
)

// Snapshot is the full persisted state: the global enable flag plus the settings of every
// known logged type, keyed by logged type ID.
type Snapshot struct {
	PluginEnabled  bool                              `json:"plugin_enabled"`
	EventsSettings map[string]settings.EventSettings `json:"events_settings"`
}

// New returns an empty snapshot with the plugin enabled.
func New() *Snapshot {
	return &Snapshot{
		PluginEnabled:  true,
		EventsSettings: make(map[string]settings.EventSettings),
	}
}

var ErrSnapshotNotFound = eris.New("snapshot not found")

// Storage persists snapshots. Load is called once at startup and Store once at exit.
type Storage interface {
	// Store saves the snapshot, replacing any existing one.
	Store(ctx context.Context, snapshot *Snapshot) error

	// Load retrieves the stored snapshot. Returns an error wrapping ErrSnapshotNotFound if
	// nothing was stored yet.
	Load(ctx context.Context) (*Snapshot, error)
}

// Encode renders the snapshot as indented, human-editable JSON.
func Encode(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, eris.New("snapshot is nil")
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal snapshot")
	}
	return append(data, '\n'), nil
}

// rawEventSettings and rawSnapshot mirror the file layout with pointer fields so that missing
// fields can be told apart from zero values.
type rawEventSettings struct {
	Enabled *bool           `json:"enabled"`
	Pretty  *bool           `json:"pretty"`
	Level   *settings.Level `json:"level"`
}

type rawSnapshot struct {
	PluginEnabled  *bool                         `json:"plugin_enabled"`
	EventsSettings *map[string]*rawEventSettings `json:"events_settings"`
}

// Decode parses a snapshot. Every field is required; a missing or malformed field, including an
// unknown level name, fails the whole decode.
func Decode(data []byte) (*Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "failed to unmarshal snapshot")
	}
	if raw.PluginEnabled == nil {
		return nil, eris.New("snapshot is missing plugin_enabled")
	}
	if raw.EventsSettings == nil || *raw.EventsSettings == nil {
		return nil, eris.New("snapshot is missing events_settings")
	}

	s := New()
	s.PluginEnabled = *raw.PluginEnabled
	for id, es := range *raw.EventsSettings {
		switch {
		case es == nil:
			return nil, eris.Errorf("settings of %s are null", id)
		case es.Enabled == nil:
			return nil, eris.Errorf("settings of %s are missing enabled", id)
		case es.Pretty == nil:
			return nil, eris.Errorf("settings of %s are missing pretty", id)
		case es.Level == nil:
			return nil, eris.Errorf("settings of %s are missing level", id)
		}
		s.EventsSettings[id] = settings.EventSettings{
			Enabled: *es.Enabled,
			Pretty:  *es.Pretty,
			Level:   *es.Level,
		}
	}
	return s, nil
}

// StorageType defines the type of snapshot storage to use.
type StorageType uint8

const (
	StorageTypeUndefined StorageType = iota
	StorageTypeNop
	StorageTypeFile
	StorageTypeRedis
)

const (
	nopStorageString       = "NOP"
	fileStorageString      = "FILE"
	redisStorageString     = "REDIS"
	undefinedStorageString = "UNDEFINED"
)

func (s StorageType) String() string {
	switch s {
	case StorageTypeUndefined:
		return undefinedStorageString
	case StorageTypeNop:
		return nopStorageString
	case StorageTypeFile:
		return fileStorageString
	case StorageTypeRedis:
		return redisStorageString
	default:
		return undefinedStorageString
	}
}

func (s StorageType) IsValid() bool {
	return s == StorageTypeNop || s == StorageTypeFile || s == StorageTypeRedis
}

func ParseStorageType(s string) (StorageType, error) {
	switch strings.ToUpper(s) {
	case nopStorageString:
		return StorageTypeNop, nil
	case fileStorageString:
		return StorageTypeFile, nil
	case redisStorageString:
		return StorageTypeRedis, nil
	default:
		return StorageTypeUndefined, eris.Errorf("invalid storage type: %s", s)
	}
}
