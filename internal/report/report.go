// Package report renders the read-only summary views served by the
// backend under /api/views. Reports have no fixed schema: columns are
// taken from the keys of the first row, in the order the backend sent
// them.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"prison-admin/internal/format"
	"prison-admin/internal/view"
)

// ErrUnknownReport is returned for a report name with no definition.
var ErrUnknownReport = errors.New("unknown report")

// Def names one report.
type Def struct {
	Name  string
	Label string
	Path  string
}

// Defs lists the reports in tab order. The first is the default.
var Defs = []Def{
	{Name: "prisoner-details", Label: "Szczegóły więźniów", Path: "/api/views/prisoner-details"},
	{Name: "cell-occupancy", Label: "Obłożenie cel", Path: "/api/views/cell-occupancy"},
	{Name: "upcoming-releases", Label: "Nadchodzące zwolnienia", Path: "/api/views/upcoming-releases"},
	{Name: "block-summary", Label: "Podsumowanie bloków", Path: "/api/views/block-summary"},
	{Name: "staff-overview", Label: "Przegląd personelu", Path: "/api/views/staff-overview"},
}

// Default is the report shown when the reports page opens.
func Default() string { return Defs[0].Name }

// Lookup finds a report definition.
func Lookup(name string) (Def, error) {
	for _, d := range Defs {
		if d.Name == name {
			return d, nil
		}
	}
	return Def{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
}

// EmptyMessage is the placeholder of a report without rows.
const EmptyMessage = "Brak danych do wyświetlenia"

// Row is one report row with its keys in document order.
type Row struct {
	Keys   []string
	Values map[string]any
}

// DecodeRows reads a JSON array of objects, keeping key order.
func DecodeRows(r io.Reader) ([]Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	rows := []Row{}
	for dec.More() {
		row, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeObject(dec *json.Decoder) (Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return Row{}, err
	}
	row := Row{Values: map[string]any{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Row{}, fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Row{}, fmt.Errorf("expected object key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return Row{}, fmt.Errorf("read %s: %w", key, err)
		}
		if _, dup := row.Values[key]; !dup {
			row.Keys = append(row.Keys, key)
		}
		row.Values[key] = v
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Row{}, err
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read %q: %w", want, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// Table renders rows as a generic table.
func Table(rows []Row) view.Table {
	if len(rows) == 0 {
		return view.PlaceholderTable(nil, EmptyMessage)
	}
	keys := rows[0].Keys
	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = format.Column(k)
	}
	out := make([]view.Row, len(rows))
	for i, r := range rows {
		cells := make([]view.Cell, len(keys))
		for j, k := range keys {
			cells[j] = view.Cell{Text: format.Value(r.Values[k])}
		}
		out[i] = view.Row{Cells: cells}
	}
	return view.Table{Columns: headers, Rows: out}
}

// Tabs returns the tab bar with exactly one tab active.
func Tabs(active string) []view.Tab {
	if _, err := Lookup(active); err != nil {
		active = Default()
	}
	tabs := make([]view.Tab, len(Defs))
	for i, d := range Defs {
		tabs[i] = view.Tab{Name: d.Name, Label: d.Label, Active: d.Name == active}
	}
	return tabs
}

// Getter performs a GET against the backend.
type Getter interface {
	Get(ctx context.Context, endpoint string, out any) error
}

// Viewer loads and renders reports.
type Viewer struct {
	api Getter
}

// NewViewer creates a Viewer.
func NewViewer(api Getter) *Viewer {
	return &Viewer{api: api}
}

// Load fetches the named report and renders it with its tab active.
func (v *Viewer) Load(ctx context.Context, name string) (view.Report, error) {
	def, err := Lookup(name)
	if err != nil {
		return view.Report{}, err
	}
	var raw json.RawMessage
	if err := v.api.Get(ctx, def.Path, &raw); err != nil {
		return view.Report{}, fmt.Errorf("load report %s: %w", name, err)
	}
	rows, err := DecodeRows(bytes.NewReader(raw))
	if err != nil {
		return view.Report{}, fmt.Errorf("decode report %s: %w", name, err)
	}
	return view.Report{Tabs: Tabs(name), Table: Table(rows)}, nil
}
