package logevents

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.world.dev/world-engine/logevents/ecs"
	"pkg.world.dev/world-engine/logevents/internal/testutils"
	"pkg.world.dev/world-engine/logevents/settings"
	"pkg.world.dev/world-engine/logevents/snapshot"
)

func allocFor[E ecs.Event, C ecs.Component](w *ecs.World, allocs *int) func() Handle {
	return func() Handle {
		*allocs++
		return ecs.InsertResource(w, &loggedSettings[E, C]{settings: settings.Default()})
	}
}

func restoredFrom(entries map[string]settings.EventSettings) *PluginSettings {
	snap := snapshot.New()
	for id, s := range entries {
		snap.EventsSettings[id] = s
	}
	return &PluginSettings{GloballyEnabled: true, restored: snap}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	quiet := settings.EventSettings{Enabled: false, Pretty: false, Level: settings.Warn}

	tests := []struct {
		name       string
		restore    *PluginSettings
		setupFn    func(*testing.T, *Registry, *PluginSettings, *int)
		kind       Kind
		wantResult RegisterResult
		wantAllocs int
		want       settings.EventSettings
	}{
		{
			name:       "new id gets defaults",
			restore:    restoredFrom(nil),
			kind:       KindPolled,
			wantResult: Created,
			wantAllocs: 1,
			want:       settings.Default(),
		},
		{
			name:       "new id is restored",
			restore:    restoredFrom(map[string]settings.EventSettings{"Foo": quiet}),
			kind:       KindPolled,
			wantResult: Created,
			wantAllocs: 1,
			want:       quiet,
		},
		{
			name:       "nil restore source",
			restore:    nil,
			kind:       KindTriggered,
			wantResult: Created,
			wantAllocs: 1,
			want:       settings.Default(),
		},
		{
			name:    "same kind twice keeps live edits",
			restore: restoredFrom(map[string]settings.EventSettings{"Foo": quiet}),
			setupFn: func(t *testing.T, r *Registry, ps *PluginSettings, allocs *int) {
				_, handle := r.Register("Foo", KindPolled, ps, allocFor[testutils.Foo, noComponent](r.world, allocs))
				s, err := r.Settings(handle)
				require.NoError(t, err)
				s.Level = settings.Trace
			},
			kind:       KindPolled,
			wantResult: AlreadyExists,
			wantAllocs: 1,
			want:       settings.EventSettings{Enabled: false, Pretty: false, Level: settings.Trace},
		},
		{
			name:    "other kind shares settings",
			restore: restoredFrom(nil),
			setupFn: func(t *testing.T, r *Registry, ps *PluginSettings, allocs *int) {
				_, handle := r.Register("Foo", KindPolled, ps, allocFor[testutils.Foo, noComponent](r.world, allocs))
				s, err := r.Settings(handle)
				require.NoError(t, err)
				s.Enabled = false
			},
			kind:       KindTriggered,
			wantResult: Created,
			wantAllocs: 1,
			want:       settings.EventSettings{Enabled: false, Pretty: true, Level: settings.Info},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRegistry(ecs.NewWorld())
			allocs := 0
			if tt.setupFn != nil {
				tt.setupFn(t, r, tt.restore, &allocs)
			}

			result, handle := r.Register("Foo", tt.kind, tt.restore, allocFor[testutils.Foo, noComponent](r.world, &allocs))
			assert.Equal(t, tt.wantResult, result)
			assert.Equal(t, tt.wantAllocs, allocs)
			assert.Equal(t, 1, r.Len())

			got, err := r.Settings(handle)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)

			looked, ok := r.Lookup("Foo")
			require.True(t, ok)
			assert.Equal(t, handle, looked)
		})
	}
}

func TestRegistry_Kinds(t *testing.T) {
	t.Parallel()

	r := newRegistry(ecs.NewWorld())
	allocs := 0
	assert.Equal(t, Kind(0), r.Kinds("Foo"))

	r.Register("Foo", KindPolled, nil, allocFor[testutils.Foo, noComponent](r.world, &allocs))
	assert.Equal(t, KindPolled, r.Kinds("Foo"))
	assert.Equal(t, "polled", r.Kinds("Foo").String())

	r.Register("Foo", KindTriggered, nil, allocFor[testutils.Foo, noComponent](r.world, &allocs))
	assert.Equal(t, KindPolled|KindTriggered, r.Kinds("Foo"))
	assert.Equal(t, "polled|triggered", r.Kinds("Foo").String())
	assert.Equal(t, "none", Kind(0).String())
}

func TestRegistry_AllIsSortedAndRestartable(t *testing.T) {
	t.Parallel()

	r := newRegistry(ecs.NewWorld())
	allocs := 0
	r.Register("Ping", KindTriggered, nil, allocFor[testutils.Ping, noComponent](r.world, &allocs))
	r.Register("Foo", KindPolled, nil, allocFor[testutils.Foo, noComponent](r.world, &allocs))
	r.Register("AddHealth", KindTriggered, nil, allocFor[ecs.OnAdd, testutils.Health](r.world, &allocs))
	r.Register("Bar", KindPolled, nil, allocFor[testutils.Bar, noComponent](r.world, &allocs))

	collect := func() []string {
		var ids []string
		for id := range r.All() {
			ids = append(ids, id)
		}
		return ids
	}

	want := []string{"AddHealth", "Bar", "Foo", "Ping"}
	assert.Equal(t, want, collect())
	assert.Equal(t, want, collect())

	// Stopping early is honored.
	var first []string
	for id := range r.All() {
		first = append(first, id)
		break
	}
	assert.Equal(t, []string{"AddHealth"}, first)
}

func TestRegistry_SettingsErrors(t *testing.T) {
	t.Parallel()

	w := ecs.NewWorld()
	r := newRegistry(w)

	_, err := r.Settings(Handle(99))
	assert.True(t, eris.Is(err, ecs.ErrResourceNotFound))

	type notSettings struct{}
	handle := ecs.InsertResource(w, &notSettings{})
	_, err = r.Settings(handle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not hold log settings")

	_, err = r.SettingsByID("Missing")
	assert.True(t, eris.Is(err, ErrNotLogged))
}

func TestLoggedTypeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Foo", loggedTypeID[testutils.Foo, noComponent]())
	assert.Equal(t, "AddHealth", loggedTypeID[ecs.OnAdd, testutils.Health]())
	assert.Equal(t, "DespawnHealth", loggedTypeID[ecs.OnDespawn, testutils.Health]())
	assert.Equal(t, "PingHealth", loggedTypeID[testutils.Ping, testutils.Health]())
}

func TestFormatLine(t *testing.T) {
	t.Parallel()

	origin := &ecs.Origin{File: "main.go", Line: 12}

	tests := []struct {
		name    string
		header  string
		origin  *ecs.Origin
		value   any
		pretty  bool
		want    string
		wantOK  bool
		contain []string
	}{
		{
			name:   "compact",
			header: "Foo",
			value:  testutils.Foo{Value: 42},
			want:   "Foo: {Value:42}",
			wantOK: true,
		},
		{
			name:   "compact with origin",
			header: "Foo",
			origin: origin,
			value:  testutils.Foo{Value: 42},
			want:   "Foo at main.go:12: {Value:42}",
			wantOK: true,
		},
		{
			name:    "pretty",
			header:  "Foo on Player(3)",
			value:   testutils.Foo{Value: 42},
			pretty:  true,
			wantOK:  true,
			contain: []string{"Foo on Player(3): ", "testutils.Foo", "42"},
		},
		{
			name:   "panicking String method drops the line",
			header: "Faulty",
			value:  testutils.Faulty{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, ok := formatLine(tt.header, tt.origin, tt.value, tt.pretty)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Empty(t, line)
				return
			}
			if tt.want != "" {
				assert.Equal(t, tt.want, line)
			}
			for _, s := range tt.contain {
				assert.Contains(t, line, s)
			}
		})
	}
}
