package settings

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Level is the severity a logged type is emitted at. Lower values are more severe.
type Level uint8

const (
	Error Level = iota
	Warn
	Info
	Debug
	Trace
)

const (
	errorString = "ERROR"
	warnString  = "WARN"
	infoString  = "INFO"
	debugString = "DEBUG"
	traceString = "TRACE"
)

// ErrInvalidLevel is returned when a string does not name one of the five levels.
var ErrInvalidLevel = eris.New("invalid log level")

// AllLevels lists every level from the most to the least severe.
func AllLevels() []Level {
	return []Level{Error, Warn, Info, Debug, Trace}
}

// String returns the canonical uppercase name of the level.
func (l Level) String() string {
	switch l {
	case Error:
		return errorString
	case Warn:
		return warnString
	case Info:
		return infoString
	case Debug:
		return debugString
	case Trace:
		return traceString
	default:
		return "UNDEFINED"
	}
}

// IsValid reports whether l is one of the five defined levels.
func (l Level) IsValid() bool {
	return l <= Trace
}

// Zerolog maps the level onto the zerolog level used for emission.
func (l Level) Zerolog() zerolog.Level {
	switch l {
	case Error:
		return zerolog.ErrorLevel
	case Warn:
		return zerolog.WarnLevel
	case Info:
		return zerolog.InfoLevel
	case Debug:
		return zerolog.DebugLevel
	case Trace:
		return zerolog.TraceLevel
	default:
		return zerolog.NoLevel
	}
}

// ParseLevel parses a level name, ignoring case. Use it for user input; the settings file
// only accepts canonical names.
func ParseLevel(s string) (Level, error) {
	return parseCanonical(strings.ToUpper(strings.TrimSpace(s)))
}

func parseCanonical(s string) (Level, error) {
	switch s {
	case errorString:
		return Error, nil
	case warnString:
		return Warn, nil
	case infoString:
		return Info, nil
	case debugString:
		return Debug, nil
	case traceString:
		return Trace, nil
	default:
		return 0, eris.Wrapf(ErrInvalidLevel, "%q does not represent a valid log level", s)
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	if !l.IsValid() {
		return nil, eris.Wrapf(ErrInvalidLevel, "cannot marshal level %d", uint8(l))
	}
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return eris.Wrap(err, "level must be a string")
	}
	parsed, err := parseCanonical(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// JSONSchema describes the level as a string enum.
func (Level) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(AllLevels()))
	for _, l := range AllLevels() {
		enum = append(enum, l.String())
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Severity the event is logged at.",
	}
}
