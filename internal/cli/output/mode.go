// Package output renders CLI results as styled text, markdown, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects how command results are rendered.
type Mode string

// OutputMode is an alias kept for call sites that read better with it.
type OutputMode = Mode

// Output modes.
const (
	ModeAuto     Mode = "auto"     // text on a terminal, markdown otherwise
	ModeText     Mode = "text"     // styled terminal output
	ModeMarkdown Mode = "markdown" // plain markdown, for pipes and agents
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode, for flag completion.
var Modes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML}

// ParseMode converts a flag value into a Mode. The empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case "md":
		return ModeMarkdown, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return m, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// IsMachine reports whether the mode is meant for programs rather than people.
func (m Mode) IsMachine() bool {
	return m == ModeJSON || m == ModeYAML
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
