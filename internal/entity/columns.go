package entity

import (
	"strconv"
	"strings"

	"prison-admin/internal/domain"
	"prison-admin/internal/format"
	"prison-admin/internal/refcache"
	"prison-admin/internal/view"
)

func text(s string) view.Cell {
	if s == "" {
		return view.Cell{Text: format.Placeholder()}
	}
	return view.Cell{Text: s}
}

func joinName(r domain.Record, first, last string) string {
	return strings.TrimSpace(r.String(first) + " " + r.String(last))
}

func fullName(r domain.Record) string { return joinName(r, "first_name", "last_name") }

// withNumber renders "Jan Kowalski (P2025-0001)".
func withNumber(name, number string) string {
	if number == "" {
		return name
	}
	return name + " (" + number + ")"
}

func hourMinute(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func dateCell(key string) func(domain.Record) view.Cell {
	return func(r domain.Record) view.Cell {
		return text(format.Date(r.String(key)))
	}
}

func statusCell(key string, translate func(string) string) func(domain.Record) view.Cell {
	return func(r domain.Record) view.Cell {
		v := r.String(key)
		return view.Cell{Text: translate(v), Badge: v}
	}
}

func boolBadge(key, yes, yesBadge, no, noBadge string) func(domain.Record) view.Cell {
	return func(r domain.Record) view.Cell {
		if r.Bool(key) {
			return view.Cell{Text: yes, Badge: yesBadge}
		}
		return view.Cell{Text: no, Badge: noBadge}
	}
}

// occupancyBadge grades a cell's fill level: full is critical, partly
// occupied is moderate, empty is minor.
func occupancyBadge(r domain.Record) view.Cell {
	occ, _ := r.Int("current_occupancy")
	capacity, _ := r.Int("capacity")
	badge := "minor"
	switch {
	case occ >= capacity:
		badge = "critical"
	case occ > 0:
		badge = "moderate"
	}
	return view.Cell{Text: r.String("current_occupancy") + "/" + r.String("capacity"), Badge: badge}
}

func options(values []string, translate func(string) string) []view.Option {
	out := make([]view.Option, len(values))
	for i, v := range values {
		out[i] = view.Option{Value: v, Label: translate(v)}
	}
	return out
}

func identity(s string) string { return s }

func itoa(n int) string { return strconv.Itoa(n) }

// OptionFor renders a reference record as a select option.
func OptionFor(source string, r domain.Record) view.Option {
	id := r.String("id")
	var label string
	switch source {
	case refcache.Cells:
		label = r.String("cell_code") + " (" + r.String("block_name") + ") - " +
			r.String("current_occupancy") + "/" + r.String("capacity")
	case refcache.Staff:
		label = fullName(r)
		if role := r.String("role_name"); role != "" {
			label += " (" + role + ")"
		}
	case refcache.Prisoners:
		label = r.String("prisoner_number") + " - " + fullName(r)
	case refcache.Visitors:
		label = fullName(r)
		if rel := r.String("relationship_type"); rel != "" {
			label += " (" + rel + ")"
		}
	default:
		label = r.String("name")
	}
	return view.Option{Value: id, Label: label}
}

// Options renders a reference list as select options.
func Options(source string, records []domain.Record) []view.Option {
	out := make([]view.Option, len(records))
	for i, r := range records {
		out[i] = OptionFor(source, r)
	}
	return out
}
