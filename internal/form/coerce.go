package form

import (
	"strconv"
	"strings"
)

// Coerce converts submitted values into the request payload. Only fields
// in defs are sent. Integer parse failures are reported as a
// *ValidationError; AsIntOrZero never fails.
func Coerce(defs []Def, values Values) (map[string]any, error) {
	out := make(map[string]any, len(defs))
	var errs []FieldError
	for _, d := range defs {
		raw := values[d.Name]
		v, ok := coerce(d.Coerce, raw)
		if !ok {
			errs = append(errs, FieldError{Name: d.Name, Label: d.Label, Reason: reasonNumber})
			continue
		}
		out[d.Name] = v
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return out, nil
}

func coerce(c Coercion, raw string) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	switch c {
	case AsOptString:
		if trimmed == "" {
			return nil, true
		}
		return raw, true
	case AsInt:
		n, err := strconv.Atoi(trimmed)
		return n, err == nil
	case AsOptInt:
		if trimmed == "" {
			return nil, true
		}
		n, err := strconv.Atoi(trimmed)
		return n, err == nil
	case AsIntOrZero:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, true
		}
		return n, true
	case AsOptFloat:
		if trimmed == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	case AsBool:
		return trimmed == "true", true
	default:
		return raw, true
	}
}
