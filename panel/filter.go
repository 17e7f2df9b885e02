package panel

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents/settings"
)

// EnabledFilter selects events by their enabled flag.
type EnabledFilter uint8

const (
	EnabledAll EnabledFilter = iota
	EnabledOnly
	DisabledOnly
)

func (f EnabledFilter) String() string {
	switch f {
	case EnabledAll:
		return "all"
	case EnabledOnly:
		return "enabled"
	case DisabledOnly:
		return "disabled"
	default:
		return "all"
	}
}

// ParseEnabledFilter parses "all", "enabled" or "disabled". An empty string means all.
func ParseEnabledFilter(s string) (EnabledFilter, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return EnabledAll, nil
	case "enabled":
		return EnabledOnly, nil
	case "disabled":
		return DisabledOnly, nil
	default:
		return EnabledAll, eris.Errorf("invalid enabled filter: %s", s)
	}
}

// ParseLevelFilter parses "all" or a level name. It returns nil for all levels.
func ParseLevelFilter(s string) (*settings.Level, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil //nolint:nilnil // nil means no level filter
	}
	level, err := settings.ParseLevel(s)
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// Filter selects which logged types are listed.
type Filter struct {
	Name          string          // Substring of the id, or a regular expression when Regex is set
	Regex         bool            // Treat Name as a regular expression
	CaseSensitive bool            // Match Name with case
	Enabled       EnabledFilter   // Filter on the enabled flag
	Level         *settings.Level // Only this level, nil for all
}

// Matcher compiles the filter. An invalid regular expression matches nothing.
func (f Filter) Matcher() func(id string, s settings.EventSettings) bool {
	matchName := f.nameMatcher()
	return func(id string, s settings.EventSettings) bool {
		switch f.Enabled {
		case EnabledOnly:
			if !s.Enabled {
				return false
			}
		case DisabledOnly:
			if s.Enabled {
				return false
			}
		case EnabledAll:
		}
		if f.Level != nil && s.Level != *f.Level {
			return false
		}
		return matchName(id)
	}
}

func (f Filter) nameMatcher() func(string) bool {
	if f.Name == "" {
		return func(string) bool { return true }
	}

	if f.Regex {
		expr := f.Name
		if !f.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return func(string) bool { return false }
		}
		return re.MatchString
	}

	if f.CaseSensitive {
		return func(id string) bool { return strings.Contains(id, f.Name) }
	}
	needle := strings.ToLower(f.Name)
	return func(id string) bool { return strings.Contains(strings.ToLower(id), needle) }
}
