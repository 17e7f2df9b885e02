package testutils

import (
	"sync"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
)

// MetricsRecorder is a statsd client that remembers counters and timings instead of sending them.
type MetricsRecorder struct {
	*ddstatsd.NoOpClient

	mu      sync.Mutex
	counts  map[string]int64
	timings map[string]int
}

var _ ddstatsd.ClientInterface = (*MetricsRecorder)(nil)

func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{
		NoOpClient: &ddstatsd.NoOpClient{},
		counts:     make(map[string]int64),
		timings:    make(map[string]int),
	}
}

func (m *MetricsRecorder) Incr(name string, tags []string, _ float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key(name, tags)]++
	return nil
}

func (m *MetricsRecorder) Timing(name string, _ time.Duration, tags []string, _ float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[key(name, tags)]++
	return nil
}

// Counter returns how many times the counter with exactly these tags was incremented.
func (m *MetricsRecorder) Counter(name string, tags ...string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key(name, tags)]
}

// TimingCount returns how many timings were recorded under the name and tags.
func (m *MetricsRecorder) TimingCount(name string, tags ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timings[key(name, tags)]
}

func key(name string, tags []string) string {
	k := name
	for _, tag := range tags {
		k += "|" + tag
	}
	return k
}
