package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/logevents/settings"
	"pkg.world.dev/world-engine/logevents/snapshot"
)

func sampleSnapshot() *snapshot.Snapshot {
	s := snapshot.New()
	s.PluginEnabled = false
	s.EventsSettings["Foo"] = settings.EventSettings{Enabled: false, Pretty: false, Level: settings.Warn}
	s.EventsSettings["AddHealth"] = settings.EventSettings{Enabled: true, Pretty: true, Level: settings.Trace}
	s.EventsSettings["game.PlayerJoined"] = settings.Default()
	return s
}

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "log_settings.json")

	storage, err := snapshot.NewFileStorage(path)
	assert.NilError(t, err)

	want := sampleSnapshot()
	assert.NilError(t, storage.Store(ctx, want))

	got, err := storage.Load(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, want, got)

	// Encoding the decoded snapshot again must decode to the same value.
	bz, err := snapshot.Encode(got)
	assert.NilError(t, err)
	again, err := snapshot.Decode(bz)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, again)
}

func TestFileStorage_HumanReadable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log_settings.json")

	storage, err := snapshot.NewFileStorage(path)
	assert.NilError(t, err)
	assert.NilError(t, storage.Store(ctx, sampleSnapshot()))

	bz, err := os.ReadFile(path)
	assert.NilError(t, err)
	content := string(bz)
	assert.Assert(t, strings.Contains(content, `"plugin_enabled": false`))
	assert.Assert(t, strings.Contains(content, `"events_settings"`))
	assert.Assert(t, strings.Contains(content, `"level": "WARN"`))
	assert.Assert(t, strings.Count(content, "\n") > 5, "file should be indented")
}

func TestFileStorage_OverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log_settings.json")

	storage, err := snapshot.NewFileStorage(path)
	assert.NilError(t, err)
	assert.NilError(t, storage.Store(ctx, sampleSnapshot()))

	second := snapshot.New()
	second.EventsSettings["Bar"] = settings.Default()
	assert.NilError(t, storage.Store(ctx, second))

	got, err := storage.Load(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, second, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 1, "temporary files must not be left behind")
}

func TestFileStorage_LoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	missing, err := snapshot.NewFileStorage(filepath.Join(dir, "missing.json"))
	assert.NilError(t, err)
	_, err = missing.Load(ctx)
	assert.Assert(t, eris.Is(err, snapshot.ErrSnapshotNotFound))

	corruptPath := filepath.Join(dir, "corrupt.json")
	assert.NilError(t, os.WriteFile(corruptPath, []byte("(plugin_enabled: true"), 0o600))
	corrupt, err := snapshot.NewFileStorage(corruptPath)
	assert.NilError(t, err)
	_, err = corrupt.Load(ctx)
	assert.Assert(t, err != nil)
	assert.Assert(t, !eris.Is(err, snapshot.ErrSnapshotNotFound))

	badLevelPath := filepath.Join(dir, "bad_level.json")
	badLevel := `{"plugin_enabled":true,"events_settings":{
		"Foo":{"enabled":true,"pretty":true,"level":"INFO"},
		"Bar":{"enabled":true,"pretty":true,"level":"LOUD"}}}`
	assert.NilError(t, os.WriteFile(badLevelPath, []byte(badLevel), 0o600))
	bad, err := snapshot.NewFileStorage(badLevelPath)
	assert.NilError(t, err)
	got, err := bad.Load(ctx)
	assert.Assert(t, err != nil, "an unknown level must fail the whole load")
	assert.Assert(t, got == nil)
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "null", content: `null`},
		{name: "empty object", content: `{}`},
		{name: "missing plugin_enabled", content: `{"events_settings":{}}`},
		{name: "missing events_settings", content: `{"plugin_enabled":true}`},
		{name: "null events_settings", content: `{"plugin_enabled":true,"events_settings":null}`},
		{name: "null entry", content: `{"plugin_enabled":true,"events_settings":{"Foo":null}}`},
		{name: "missing level", content: `{"plugin_enabled":true,"events_settings":{"Foo":{"enabled":true,"pretty":true}}}`},
		{name: "missing pretty", content: `{"plugin_enabled":true,"events_settings":{"Foo":{"enabled":true,"level":"INFO"}}}`},
		{name: "missing enabled", content: `{"plugin_enabled":true,"events_settings":{"Foo":{"pretty":true,"level":"INFO"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := snapshot.Decode([]byte(tt.content))
			assert.Assert(t, err != nil)
			assert.Assert(t, got == nil)

			path := filepath.Join(t.TempDir(), "log_settings.json")
			assert.NilError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			storage, err := snapshot.NewFileStorage(path)
			assert.NilError(t, err)
			_, err = storage.Load(context.Background())
			assert.Assert(t, err != nil)
			assert.Assert(t, !eris.Is(err, snapshot.ErrSnapshotNotFound))
		})
	}

	got, err := snapshot.Decode([]byte(`{"plugin_enabled":false,"events_settings":{}}`))
	assert.NilError(t, err)
	assert.Assert(t, !got.PluginEnabled)
	assert.Equal(t, len(got.EventsSettings), 0)
}

func TestNewFileStorage_EmptyPath(t *testing.T) {
	_, err := snapshot.NewFileStorage("")
	assert.Assert(t, err != nil)
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)

	storage, err := snapshot.NewRedisStorage(snapshot.RedisStorageOptions{Address: s.Addr()})
	assert.NilError(t, err)

	_, err = storage.Load(ctx)
	assert.Assert(t, eris.Is(err, snapshot.ErrSnapshotNotFound))

	want := sampleSnapshot()
	assert.NilError(t, storage.Store(ctx, want))
	assert.Assert(t, s.Exists(snapshot.DefaultRedisKey))

	got, err := storage.Load(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, want, got)
}

func TestRedisStorage_CustomKeyAndMalformed(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	assert.NilError(t, s.Set("game:log", "not json"))

	storage, err := snapshot.NewRedisStorage(snapshot.RedisStorageOptions{Address: s.Addr(), Key: "game:log"})
	assert.NilError(t, err)

	_, err = storage.Load(ctx)
	assert.Assert(t, err != nil)
	assert.Assert(t, !eris.Is(err, snapshot.ErrSnapshotNotFound))
}

func TestNopStorage(t *testing.T) {
	ctx := context.Background()
	storage := snapshot.NewNopStorage()

	assert.NilError(t, storage.Store(ctx, sampleSnapshot()))
	_, err := storage.Load(ctx)
	assert.Assert(t, eris.Is(err, snapshot.ErrSnapshotNotFound))
}

func TestParseStorageType(t *testing.T) {
	for _, st := range []snapshot.StorageType{
		snapshot.StorageTypeNop, snapshot.StorageTypeFile, snapshot.StorageTypeRedis,
	} {
		parsed, err := snapshot.ParseStorageType(strings.ToLower(st.String()))
		assert.NilError(t, err)
		assert.Equal(t, parsed, st)
		assert.Assert(t, parsed.IsValid())
	}

	parsed, err := snapshot.ParseStorageType("s3")
	assert.Assert(t, err != nil)
	assert.Equal(t, parsed, snapshot.StorageTypeUndefined)
	assert.Assert(t, !parsed.IsValid())
}

func TestSchema(t *testing.T) {
	schema, err := snapshot.Schema()
	assert.NilError(t, err)

	content := string(schema)
	assert.Assert(t, strings.Contains(content, "plugin_enabled"))
	assert.Assert(t, strings.Contains(content, "events_settings"))
	for _, l := range settings.AllLevels() {
		assert.Assert(t, strings.Contains(content, `"`+l.String()+`"`), "schema should list level %s", l)
	}
}

func TestDiff(t *testing.T) {
	before := sampleSnapshot()

	patch, err := snapshot.Diff(before, sampleSnapshot())
	assert.NilError(t, err)
	assert.Equal(t, len(patch), 0)

	after := sampleSnapshot()
	after.PluginEnabled = true
	foo := after.EventsSettings["Foo"]
	foo.Level = settings.Error
	after.EventsSettings["Foo"] = foo

	patch, err = snapshot.Diff(before, after)
	assert.NilError(t, err)
	assert.Equal(t, len(patch), 2)
	assert.Assert(t, strings.Contains(patch.String(), "/events_settings/Foo/level"))

	patch, err = snapshot.Diff(nil, before)
	assert.NilError(t, err)
	assert.Assert(t, len(patch) > 0)
}
