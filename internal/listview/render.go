package listview

import (
	"prison-admin/internal/domain"
	"prison-admin/internal/view"
)

// Column renders one table column from a record.
type Column struct {
	Header string
	Cell   func(domain.Record) view.Cell
}

// Text is a Column cell func that renders a field verbatim, or the
// placeholder dash when empty.
func Text(key string) func(domain.Record) view.Cell {
	return func(r domain.Record) view.Cell {
		if s := r.String(key); s != "" {
			return view.Cell{Text: s}
		}
		return view.Cell{Text: "-"}
	}
}

// RenderTable turns records into a table. An empty result renders one
// explicit placeholder row instead of an empty body.
func RenderTable(cols []Column, records []domain.Record, actions func(domain.Record) []view.Action, empty string) view.Table {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	if len(records) == 0 {
		return view.PlaceholderTable(headers, empty)
	}

	rows := make([]view.Row, 0, len(records))
	for _, rec := range records {
		cells := make([]view.Cell, len(cols))
		for i, c := range cols {
			cells[i] = c.Cell(rec)
		}
		row := view.Row{Cells: cells}
		if actions != nil {
			row.Actions = actions(rec)
		}
		rows = append(rows, row)
	}
	return view.Table{Columns: headers, Rows: rows}
}
