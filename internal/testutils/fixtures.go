package testutils

import (
	"strings"
	"sync"

	"pkg.world.dev/world-engine/logevents/settings"
)

// Foo is a polled event.
type Foo struct {
	Value int
}

func (Foo) Name() string { return "Foo" }

// Bar is a polled event.
type Bar struct {
	Label string
}

func (Bar) Name() string { return "Bar" }

// Ping is an event fired as a trigger.
type Ping struct {
	Seq int
}

func (Ping) Name() string { return "Ping" }

// Health is a component.
type Health struct {
	Value int
}

func (Health) Name() string { return "Health" }

// Faulty is an event whose String method panics.
type Faulty struct{}

func (Faulty) Name() string { return "Faulty" }

func (Faulty) String() string { panic("faulty formatter") }

// Line is one line received by a Sink.
type Line struct {
	Level settings.Level
	Text  string
}

// Sink records every line it receives.
type Sink struct {
	mu    sync.Mutex
	lines []Line
}

func NewSink() *Sink {
	return &Sink{lines: make([]Line, 0)}
}

func (s *Sink) Log(level settings.Level, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, Line{Level: level, Text: line})
}

// Lines returns a copy of the received lines.
func (s *Sink) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Matching returns the received lines that start with prefix.
func (s *Sink) Matching(prefix string) []Line {
	var out []Line
	for _, line := range s.Lines() {
		if strings.HasPrefix(line.Text, prefix) {
			out = append(out, line)
		}
	}
	return out
}

// Reset forgets every received line.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = s.lines[:0]
}
