package logevents

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"

	"pkg.world.dev/world-engine/logevents/ecs"
)

// fmtPanicMarker is what fmt writes in place of a value whose String or Format method panicked.
const fmtPanicMarker = "(PANIC="

// formatLine renders "<header>[ at <origin>]: <value>". Pretty output spans several indented
// lines, compact output is a single line. It reports false if the value could not be rendered;
// it never panics.
func formatLine(header string, origin *ecs.Origin, value any, prettyPrint bool) (line string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			line, ok = "", false
		}
	}()

	var body string
	if prettyPrint {
		body = fmt.Sprintf("%# v", pretty.Formatter(value))
	} else {
		body = fmt.Sprintf("%+v", value)
	}
	if strings.Contains(body, fmtPanicMarker) {
		return "", false
	}

	var b strings.Builder
	b.WriteString(header)
	if origin != nil {
		b.WriteString(" at ")
		b.WriteString(origin.String())
	}
	b.WriteString(": ")
	b.WriteString(body)
	return b.String(), true
}

// entityHeader renders "<id> on <label>" for a trigger fired on an entity.
func entityHeader(w *ecs.World, id LoggedTypeID, target ecs.EntityID) string {
	return id + " on " + ecs.Label(w, target)
}
