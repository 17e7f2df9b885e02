package statsd_test

import (
	"testing"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.world.dev/world-engine/logevents/internal/testutils"
	"pkg.world.dev/world-engine/logevents/statsd"
)

func TestMetrics(t *testing.T) {
	recorder := testutils.NewMetricsRecorder()
	statsd.SetClient(recorder)
	t.Cleanup(func() { statsd.SetClient(nil) })

	statsd.EmitLine("INFO")
	statsd.EmitLine("INFO")
	statsd.EmitLine("WARN")
	statsd.DropLine("Foo")
	statsd.EmitSaveStat(time.Now(), "FILE")

	assert.Equal(t, int64(2), recorder.Counter("emitted", "level:INFO"))
	assert.Equal(t, int64(1), recorder.Counter("emitted", "level:WARN"))
	assert.Equal(t, int64(1), recorder.Counter("dropped", "type:Foo"))
	assert.Equal(t, 1, recorder.TimingCount("save", "storage:FILE"))
}

func TestSetClientNilRestoresNoOp(t *testing.T) {
	statsd.SetClient(nil)
	_, ok := statsd.Client().(*ddstatsd.NoOpClient)
	assert.True(t, ok)
}

func TestInit_EmptyAddress(t *testing.T) {
	require.Error(t, statsd.Init("", nil))
}
