package logevents

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/logevents/settings"
)

// Sink receives every logged event line with the level configured for its type.
type Sink interface {
	Log(level settings.Level, line string)
}

// ZerologSink writes lines to a zerolog logger.
type ZerologSink struct {
	logger zerolog.Logger
}

var _ Sink = (*ZerologSink)(nil)

// NewZerologSink creates a sink that tags every line with module=logevents.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger.With().Str("module", "logevents").Logger()}
}

func (s *ZerologSink) Log(level settings.Level, line string) {
	s.logger.WithLevel(level.Zerolog()).Msg(line)
}
