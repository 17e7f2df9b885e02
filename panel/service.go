// Package panel serves a JSON API to inspect and edit the log settings of a running application.
package panel

import (
	"context"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents"
	"pkg.world.dev/world-engine/logevents/settings"
)

// Source is what the panel reads and edits. *logevents.Plugin implements it.
type Source interface {
	Settings() *logevents.PluginSettings
	Registry() *logevents.Registry
	Save(ctx context.Context) error
}

var _ Source = (*logevents.Plugin)(nil)

// Executor runs fn where the source may be touched and returns fn's error. Pass Plugin.Do when
// the world ticks on another goroutine.
type Executor func(ctx context.Context, fn func() error) error

// Inline runs fn on the calling goroutine.
func Inline(_ context.Context, fn func() error) error {
	return fn()
}

// State is the plugin-wide part of the settings.
type State struct {
	GloballyEnabled bool   `json:"globally_enabled"`
	ShowPanel       bool   `json:"show_panel"`
	SettingsPath    string `json:"settings_path"`
}

// StatePatch changes the fields that are set.
type StatePatch struct {
	GloballyEnabled *bool `json:"globally_enabled"`
	ShowPanel       *bool `json:"show_panel"`
}

// Entry is one logged type and its settings.
type Entry struct {
	ID    string `json:"id"`
	Kinds string `json:"kinds"`
	settings.EventSettings
}

// EventPatch changes the fields that are set.
type EventPatch struct {
	Enabled *bool           `json:"enabled"`
	Pretty  *bool           `json:"pretty"`
	Level   *settings.Level `json:"level"`
}

// List is the filtered view of the logged types.
type List struct {
	Shown  int     `json:"shown"`
	Total  int     `json:"total"`
	Events []Entry `json:"events"`
}

// Service reads and edits settings through an Executor.
type Service struct {
	source Source
	exec   Executor
}

// NewService creates a service. A nil exec runs everything inline.
func NewService(source Source, exec Executor) *Service {
	if exec == nil {
		exec = Inline
	}
	return &Service{source: source, exec: exec}
}

// State returns the plugin-wide settings.
func (s *Service) State(ctx context.Context) (State, error) {
	var state State
	err := s.exec(ctx, func() error {
		state = s.state()
		return nil
	})
	return state, err
}

// SetPlugin applies patch to the plugin-wide settings and returns the result.
func (s *Service) SetPlugin(ctx context.Context, patch StatePatch) (State, error) {
	var state State
	err := s.exec(ctx, func() error {
		ps := s.source.Settings()
		if patch.GloballyEnabled != nil {
			ps.GloballyEnabled = *patch.GloballyEnabled
		}
		if patch.ShowPanel != nil {
			ps.ShowPanel = *patch.ShowPanel
		}
		state = s.state()
		return nil
	})
	return state, err
}

// List returns the logged types matching filter, sorted by id, with the number of logged types.
func (s *Service) List(ctx context.Context, filter Filter) (List, error) {
	match := filter.Matcher()
	list := List{Events: make([]Entry, 0)}
	err := s.exec(ctx, func() error {
		registry := s.source.Registry()
		list.Total = registry.Len()
		for id, handle := range registry.All() {
			es, err := registry.Settings(handle)
			if err != nil {
				return err
			}
			if !match(id, *es) {
				continue
			}
			list.Events = append(list.Events, Entry{ID: id, Kinds: registry.Kinds(id).String(), EventSettings: *es})
		}
		list.Shown = len(list.Events)
		return nil
	})
	return list, err
}

// Update applies patch to the settings of id and returns the result.
func (s *Service) Update(ctx context.Context, id string, patch EventPatch) (Entry, error) {
	if patch.Level != nil && !patch.Level.IsValid() {
		return Entry{}, eris.Wrapf(settings.ErrInvalidLevel, "%d", *patch.Level)
	}

	var entry Entry
	err := s.exec(ctx, func() error {
		registry := s.source.Registry()
		es, err := registry.SettingsByID(id)
		if err != nil {
			return err
		}
		if patch.Enabled != nil {
			es.Enabled = *patch.Enabled
		}
		if patch.Pretty != nil {
			es.Pretty = *patch.Pretty
		}
		if patch.Level != nil {
			es.Level = *patch.Level
		}
		entry = Entry{ID: id, Kinds: registry.Kinds(id).String(), EventSettings: *es}
		return nil
	})
	return entry, err
}

// Save persists the current settings right away instead of waiting for exit.
func (s *Service) Save(ctx context.Context) error {
	return s.exec(ctx, func() error {
		return s.source.Save(ctx)
	})
}

func (s *Service) state() State {
	ps := s.source.Settings()
	return State{
		GloballyEnabled: ps.GloballyEnabled,
		ShowPanel:       ps.ShowPanel,
		SettingsPath:    ps.SettingsPath,
	}
}
