package logevents

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/logevents/settings"
	"pkg.world.dev/world-engine/logevents/snapshot"
)

// PluginSettings is the process-wide state of the plugin. It lives as a world resource and is
// only touched from the logic thread.
type PluginSettings struct {
	// GloballyEnabled gates every logging path. Nothing is logged while it is false.
	GloballyEnabled bool
	// ShowPanel tells the application to serve the settings panel.
	ShowPanel bool
	// SettingsPath describes where settings are loaded from and saved to.
	SettingsPath string

	// restored is what the previous run saved. It is read during registration only.
	restored *snapshot.Snapshot
}

// loadPluginSettings loads the previous run's settings. A missing or unreadable snapshot is not
// fatal: it is reported as a warning and the plugin starts from defaults.
func loadPluginSettings(
	ctx context.Context, storage snapshot.Storage, path string, showPanel bool, logger *zerolog.Logger,
) *PluginSettings {
	ps := &PluginSettings{
		GloballyEnabled: true,
		ShowPanel:       showPanel,
		SettingsPath:    path,
		restored:        snapshot.New(),
	}

	snap, err := storage.Load(ctx)
	switch {
	case eris.Is(err, snapshot.ErrSnapshotNotFound):
		logger.Warn().Str("path", path).Msg("no saved log settings found, using defaults")
	case err != nil:
		logger.Warn().Err(err).Str("path", path).Msg("failed to load log settings, using defaults")
	default:
		ps.restored = snap
		ps.GloballyEnabled = snap.PluginEnabled
		logger.Debug().
			Str("path", path).
			Int("events", len(snap.EventsSettings)).
			Msg("restored log settings")
	}
	return ps
}

// Restored returns the settings the previous run saved for id.
func (ps *PluginSettings) Restored(id LoggedTypeID) (settings.EventSettings, bool) {
	s, ok := ps.restored.EventsSettings[id]
	return s, ok
}

// RestoredCount returns how many types the previous run saved settings for.
func (ps *PluginSettings) RestoredCount() int {
	return len(ps.restored.EventsSettings)
}
