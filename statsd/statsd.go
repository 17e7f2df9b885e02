// Package statsd is a helper package that wraps the few statsd methods logevents needs.
// It hides the datadog dependency so if we decide to migrate away from datadog in the future, we only need to
// edit this single file.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const (
	emittedMetric = "emitted"
	droppedMetric = "dropped"
	saveMetric    = "save"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// SetClient replaces the global client. Tests use it to capture metrics.
func SetClient(c ddstatsd.ClientInterface) {
	if c == nil {
		c = &ddstatsd.NoOpClient{}
	}
	client = c
}

// EmitLine counts one emitted log line of the given level.
func EmitLine(level string) {
	if err := Client().Incr(emittedMetric, []string{"level:" + level}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit line stat: %v", err)
	}
}

// DropLine counts one log line dropped because its value could not be formatted.
func DropLine(loggedType string) {
	if err := Client().Incr(droppedMetric, []string{"type:" + loggedType}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit drop stat: %v", err)
	}
}

// EmitSaveStat records how long persisting the settings took.
func EmitSaveStat(start time.Time, storage string) {
	duration := time.Since(start)
	if err := Client().Timing(saveMetric, duration, []string{"storage:" + storage}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit save stat: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("logevents."),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "failed to create statsd client")
	}
	// Success! replace the global client
	client = newClient
	return nil
}
