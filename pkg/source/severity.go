package source

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Severity is an oxlint rule or category level.
type Severity int

// Severity levels understood by oxlint.
const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the oxlint spelling of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Active reports whether the severity enables a rule.
func (s Severity) Active() bool {
	return s == SeverityWarn || s == SeverityError
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity %q", string(text))
	}
	*s = v
	return nil
}

// ParseSeverity decodes a severity as it appears in a config document:
// "off", "warn", "error", 0, 1, 2, or an array whose first element is one of
// those. Any other value is reported as not ok.
func ParseSeverity(v any) (Severity, bool) {
	switch val := v.(type) {
	case Severity:
		return val, val >= SeverityOff && val <= SeverityError
	case string:
		switch val {
		case "off":
			return SeverityOff, true
		case "warn":
			return SeverityWarn, true
		case "error":
			return SeverityError, true
		}
	case float64:
		if val == float64(int64(val)) {
			return severityFromInt(int64(val))
		}
	case int:
		return severityFromInt(int64(val))
	case int64:
		return severityFromInt(val)
	case uint64:
		if val <= 2 {
			return severityFromInt(int64(val))
		}
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return severityFromInt(n)
		}
	case []any:
		if len(val) > 0 {
			if _, nested := val[0].([]any); !nested {
				return ParseSeverity(val[0])
			}
		}
	}
	return SeverityOff, false
}

func severityFromInt(n int64) (Severity, bool) {
	switch n {
	case 0:
		return SeverityOff, true
	case 1:
		return SeverityWarn, true
	case 2:
		return SeverityError, true
	}
	return SeverityOff, false
}

// IsActive reports whether v decodes to an enabling severity.
func IsActive(v any) bool {
	s, ok := ParseSeverity(v)
	return ok && s.Active()
}

// IsInactive reports whether v decodes to "off".
func IsInactive(v any) bool {
	s, ok := ParseSeverity(v)
	return ok && !s.Active()
}

// Categories maps an oxlint category to its raw severity value.
type Categories map[string]any

// Enabled returns the categories that are not switched off, sorted.
// Values that are not a recognised severity count as enabled, the same as oxlint.
func (c Categories) Enabled() []string {
	out := make([]string, 0, len(c))
	for name, v := range c {
		if IsInactive(v) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CategoriesFromStrings builds Categories from plain string values, as read
// from tool settings.
func CategoriesFromStrings(m map[string]string) Categories {
	out := make(Categories, len(m))
	for k, v := range m {
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
