package format

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed labels_pl.yaml
var labelsPL []byte

// Labels holds the translation tables for one locale.
type Labels struct {
	Yes              string            `yaml:"yes_label"`
	No               string            `yaml:"no_label"`
	Placeholder      string            `yaml:"placeholder"`
	Status           map[string]string `yaml:"status"`
	IncidentType     map[string]string `yaml:"incident_type"`
	CellType         map[string]string `yaml:"cell_type"`
	VisitType        map[string]string `yaml:"visit_type"`
	Gender           map[string]string `yaml:"gender"`
	EnrollmentStatus map[string]string `yaml:"enrollment_status"`
	Column           map[string]string `yaml:"column"`
}

// ParseLabels decodes a YAML label table.
func ParseLabels(data []byte) (*Labels, error) {
	var l Labels
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if l.Placeholder == "" {
		l.Placeholder = "-"
	}
	return &l, nil
}

var (
	defaultLabels = mustParse(labelsPL)
	printer       = message.NewPrinter(language.Polish)
	datePrefix    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

func mustParse(data []byte) *Labels {
	l, err := ParseLabels(data)
	if err != nil {
		panic(err)
	}
	return l
}

// Default returns the built-in pl-PL labels.
func Default() *Labels { return defaultLabels }

func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// Status translates a prisoner, visit, enrollment or severity value.
func Status(s string) string { return lookup(defaultLabels.Status, s) }

// IncidentType translates an incident type.
func IncidentType(s string) string { return lookup(defaultLabels.IncidentType, s) }

// CellType translates a cell type.
func CellType(s string) string { return lookup(defaultLabels.CellType, s) }

// VisitType translates a visit type.
func VisitType(s string) string { return lookup(defaultLabels.VisitType, s) }

// Gender translates a gender value.
func Gender(s string) string { return lookup(defaultLabels.Gender, s) }

// EnrollmentStatus translates an enrollment status for form options.
func EnrollmentStatus(s string) string { return lookup(defaultLabels.EnrollmentStatus, s) }

// YesNo renders a boolean.
func YesNo(b bool) string {
	if b {
		return defaultLabels.Yes
	}
	return defaultLabels.No
}

// Placeholder is shown for missing values.
func Placeholder() string { return defaultLabels.Placeholder }

// Column returns the header for a report column, falling back to the raw
// key with underscores replaced by spaces.
func Column(key string) string {
	if v, ok := defaultLabels.Column[key]; ok {
		return v
	}
	return strings.ReplaceAll(key, "_", " ")
}

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders an ISO date or timestamp as a pl-PL date (dd.mm.yyyy).
func Date(s string) string {
	if s == "" {
		return defaultLabels.Placeholder
	}
	if t, ok := parseTime(s); ok {
		return t.Format("02.01.2006")
	}
	if m := datePrefix.FindString(s); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return s
}

// DateTime renders an ISO timestamp as a pl-PL date and time.
func DateTime(s string) string {
	if s == "" {
		return defaultLabels.Placeholder
	}
	if t, ok := parseTime(s); ok {
		return t.Format("02.01.2006, 15:04:05")
	}
	return s
}

// Count renders an integer with pl-PL digit grouping.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Value renders an arbitrary JSON value for a generic table cell.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return defaultLabels.Placeholder
	case bool:
		return YesNo(t)
	case string:
		if datePrefix.MatchString(t) {
			return Date(t)
		}
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any, []any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
	return fmt.Sprint(v)
}
