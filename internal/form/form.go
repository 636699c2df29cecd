// Package form defines entity form fields and the pipeline that turns a
// record into form values (Prefill), checks submitted values (Validate)
// and converts them into a JSON payload (Coerce).
package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"prison-admin/internal/domain"
	"prison-admin/internal/view"
)

// Kind is the input control of a field.
type Kind string

const (
	Text     Kind = "text"
	TextArea Kind = "textarea"
	Email    Kind = "email"
	Date     Kind = "date"
	Time     Kind = "time"
	DateTime Kind = "datetime-local"
	Number   Kind = "number"
	Select   Kind = "select"
)

// Coercion is how a submitted string becomes a payload value.
type Coercion int

const (
	AsString    Coercion = iota // sent verbatim
	AsOptString                 // "" becomes null
	AsInt                       // parsed integer
	AsOptInt                    // "" becomes null, else integer
	AsIntOrZero                 // unparseable becomes 0
	AsOptFloat                  // "" becomes null, else float
	AsBool                      // "true" is true, anything else false
)

// Def describes one form field.
type Def struct {
	Name        string
	Label       string
	Kind        Kind
	Coerce      Coercion
	Required    bool
	Placeholder string
	Min         string
	Max         string
	Step        string

	// Default is used when creating, or when the record lacks the field.
	Default     string
	DefaultFunc func() string

	// Options are the fixed choices of a select. Source names a reference
	// list that supplies them instead.
	Options []view.Option
	Source  string
}

func (d Def) defaultValue() string {
	if d.DefaultFunc != nil {
		return d.DefaultFunc()
	}
	return d.Default
}

// Values are submitted form values keyed by field name.
type Values map[string]string

// Defaults returns the initial values of an empty form.
func Defaults(defs []Def) Values {
	out := make(Values, len(defs))
	for _, d := range defs {
		out[d.Name] = d.defaultValue()
	}
	return out
}

// Prefill renders every field of rec as its form string. Fields the record
// does not carry fall back to their default.
func Prefill(defs []Def, rec domain.Record) Values {
	out := make(Values, len(defs))
	for _, d := range defs {
		if !rec.Has(d.Name) {
			out[d.Name] = d.defaultValue()
			continue
		}
		out[d.Name] = formString(d.Kind, rec[d.Name])
	}
	return out
}

func formString(kind Kind, v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}

	switch kind {
	case Date:
		if len(s) > 10 {
			s = s[:10]
		}
	case Time:
		if len(s) > 5 {
			s = s[:5]
		}
	case DateTime:
		s = strings.Replace(s, " ", "T", 1)
		if len(s) > 16 {
			s = s[:16]
		}
	}
	return s
}

// Render builds the view fields. options supplies the choices of fields
// backed by a reference Source; errs attaches per-field messages.
func Render(defs []Def, values Values, options map[string][]view.Option, errs map[string]string) []view.Field {
	fields := make([]view.Field, 0, len(defs))
	for _, d := range defs {
		f := view.Field{
			Name:        d.Name,
			Label:       d.Label,
			Kind:        string(d.Kind),
			Value:       values[d.Name],
			Required:    d.Required,
			Placeholder: d.Placeholder,
			Min:         d.Min,
			Max:         d.Max,
			Step:        d.Step,
			Error:       errs[d.Name],
		}
		if d.Kind == Select {
			choices := d.Options
			if d.Source != "" {
				choices = append(append([]view.Option{}, d.Options...), options[d.Name]...)
			}
			f.Options = make([]view.Option, len(choices))
			for i, o := range choices {
				o.Selected = o.Value == f.Value
				f.Options[i] = o
			}
		}
		fields = append(fields, f)
	}
	return fields
}
