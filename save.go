package logevents

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/snapshot"
	"pkg.world.dev/world-engine/logevents/statsd"
)

// saveTimeout bounds how long saving may delay exit.
const saveTimeout = 5 * time.Second

// Snapshot collects the current settings of every logged type.
func (p *Plugin) Snapshot() (*snapshot.Snapshot, error) {
	snap := snapshot.New()
	snap.PluginEnabled = p.settings.GloballyEnabled
	for id, handle := range p.registry.All() {
		s, err := p.registry.Settings(handle)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read settings of %s", id)
		}
		snap.EventsSettings[id] = *s
	}
	return snap, nil
}

// Save persists the current settings.
func (p *Plugin) Save(ctx context.Context) error {
	start := time.Now()

	snap, err := p.Snapshot()
	if err != nil {
		return err
	}
	if err := p.storage.Store(ctx, snap); err != nil {
		return eris.Wrap(err, "failed to store log settings")
	}
	statsd.EmitSaveStat(start, p.storageName)

	event := p.logger.Debug().Str("path", p.settings.SettingsPath).Int("events", len(snap.EventsSettings))
	if patch, err := snapshot.Diff(p.settings.restored, snap); err == nil {
		event = event.Int("changes", len(patch))
	}
	event.Msg("saved log settings")
	return nil
}

// saveOnExit saves once the world's final tick is over. Failures are logged and never stop the
// application from exiting.
func (p *Plugin) saveOnExit(_ *ecs.World) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := p.Save(ctx); err != nil {
		p.logger.Error().Err(err).Str("path", p.settings.SettingsPath).Msg("failed to save log settings")
	}
}
