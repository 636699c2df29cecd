package form

import (
	"strconv"
	"strings"
)

// FieldError is a rejected field.
type FieldError struct {
	Name   string
	Label  string
	Reason string
}

// ValidationError lists every field rejected before submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Label + ": " + f.Reason
	}
	return strings.Join(parts, "; ")
}

// ByField maps field names to their reason, for rendering.
func (e *ValidationError) ByField() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Name] = f.Reason
	}
	return out
}

const (
	reasonRequired = "pole wymagane"
	reasonNumber   = "nieprawidłowa liczba"
	reasonMin      = "wartość za mała"
	reasonMax      = "wartość za duża"
)

// Validate checks required fields and numeric ranges. It returns a
// *ValidationError when any field is rejected.
func Validate(defs []Def, values Values) error {
	var errs []FieldError
	for _, d := range defs {
		v := strings.TrimSpace(values[d.Name])
		if v == "" {
			if d.Required {
				errs = append(errs, FieldError{Name: d.Name, Label: d.Label, Reason: reasonRequired})
			}
			continue
		}
		if d.Kind != Number {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if d.Coerce == AsIntOrZero {
				continue // Sent as 0
			}
			errs = append(errs, FieldError{Name: d.Name, Label: d.Label, Reason: reasonNumber})
			continue
		}
		if lo, err := strconv.ParseFloat(d.Min, 64); err == nil && n < lo {
			errs = append(errs, FieldError{Name: d.Name, Label: d.Label, Reason: reasonMin})
			continue
		}
		if hi, err := strconv.ParseFloat(d.Max, 64); err == nil && n > hi {
			errs = append(errs, FieldError{Name: d.Name, Label: d.Label, Reason: reasonMax})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
