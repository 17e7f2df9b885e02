package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.world.dev/world-engine/logevents/settings"
)

func TestFilterMatcher(t *testing.T) {
	t.Parallel()

	ids := []string{"AddHealth", "Bar", "Foo", "RemoveHealth"}
	values := map[string]settings.EventSettings{
		"AddHealth":    {Enabled: true, Level: settings.Info},
		"Bar":          {Enabled: false, Level: settings.Debug},
		"Foo":          {Enabled: true, Level: settings.Debug},
		"RemoveHealth": {Enabled: false, Level: settings.Warn},
	}
	debug := settings.Debug

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty", filter: Filter{}, want: ids},
		{name: "substring ignores case", filter: Filter{Name: "health"}, want: []string{"AddHealth", "RemoveHealth"}},
		{name: "substring with case", filter: Filter{Name: "health", CaseSensitive: true}, want: nil},
		{name: "regex", filter: Filter{Name: "^(add|bar)", Regex: true}, want: []string{"AddHealth", "Bar"}},
		{name: "regex with case", filter: Filter{Name: "^(add|Bar)", Regex: true, CaseSensitive: true}, want: []string{"Bar"}},
		{name: "invalid regex", filter: Filter{Name: "([", Regex: true}, want: nil},
		{name: "enabled only", filter: Filter{Enabled: EnabledOnly}, want: []string{"AddHealth", "Foo"}},
		{name: "disabled only", filter: Filter{Enabled: DisabledOnly}, want: []string{"Bar", "RemoveHealth"}},
		{name: "level", filter: Filter{Level: &debug}, want: []string{"Bar", "Foo"}},
		{name: "combined", filter: Filter{Name: "o", Enabled: EnabledOnly, Level: &debug}, want: []string{"Foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match := tt.filter.Matcher()
			var got []string
			for _, id := range ids {
				if match(id, values[id]) {
					got = append(got, id)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]EnabledFilter{"": EnabledAll, "all": EnabledAll, "Enabled": EnabledOnly, "disabled": DisabledOnly} {
		got, err := ParseEnabledFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEnabledFilter("maybe")
	require.Error(t, err)

	level, err := ParseLevelFilter("ALL")
	require.NoError(t, err)
	assert.Nil(t, level)

	level, err = ParseLevelFilter("warn")
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, settings.Warn, *level)

	_, err = ParseLevelFilter("loud")
	require.ErrorIs(t, err, settings.ErrInvalidLevel)
}
