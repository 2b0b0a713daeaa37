package linter

import (
	"strings"
)

// Severity encodes a rule's effective reporting level.
type Severity uint8

const (
	// SeverityOff disables a rule entirely.
	SeverityOff Severity = iota
	// SeverityWarn reports without failing.
	SeverityWarn
	// SeverityError reports as an error.
	SeverityError
)

// String returns the canonical lowercase name.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}

	return "off"
}

// ResolveSeverity turns a raw rule config value into an effective severity.
// Accepted encodings: numeric 0|1|2 (any Go numeric type, as config
// decoders produce int, int64, or float64), the case-insensitive strings
// "off"|"warn"|"error", or a non-empty slice whose first element is one of
// those. Anything else resolves to SeverityOff.
func ResolveSeverity(value any) Severity {
	switch v := value.(type) {
	case Severity:
		if v <= SeverityError {
			return v
		}
	case int:
		return severityFromInt(v)
	case int64:
		return severityFromInt(int(v))
	case uint64:
		return severityFromInt(int(v))
	case float64:
		if v == float64(int(v)) {
			return severityFromInt(int(v))
		}
	case string:
		switch strings.ToLower(v) {
		case "off":
			return SeverityOff
		case "warn":
			return SeverityWarn
		case "error":
			return SeverityError
		}
	case []any:
		if len(v) > 0 {
			return ResolveSeverity(v[0])
		}
	}

	return SeverityOff
}

// RuleOptions extracts the option payload of a rule config value: the
// elements after the severity head for slice-shaped values, nil otherwise.
func RuleOptions(value any) []any {
	slice, ok := value.([]any)
	if !ok || len(slice) <= 1 {
		return nil
	}

	return slice[1:]
}

func severityFromInt(v int) Severity {
	switch v {
	case 1:
		return SeverityWarn
	case 2:
		return SeverityError
	default:
		return SeverityOff
	}
}
