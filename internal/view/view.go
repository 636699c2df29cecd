// Package view defines the view descriptions produced by the console and
// rendered by the browser. Everything here is plain data; building a view
// never touches the network.
package view

// Cell is one table cell. Badge, when set, names the status style.
type Cell struct {
	Text  string `json:"text"`
	Badge string `json:"badge,omitempty"`
}

// ActionKind identifies a row action.
type ActionKind string

const (
	ActionView   ActionKind = "view"
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// Action is a button attached to a table row.
type Action struct {
	Kind  ActionKind `json:"kind"`
	ID    int64      `json:"id"`
	Label string     `json:"label"`
}

// Row is one table row. A placeholder row carries a single message cell
// spanning every column.
type Row struct {
	Cells       []Cell   `json:"cells"`
	Actions     []Action `json:"actions,omitempty"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// Table is a rendered table.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// PlaceholderTable returns a table with exactly one placeholder row.
func PlaceholderTable(columns []string, message string) Table {
	if columns == nil {
		columns = []string{}
	}
	return Table{
		Columns: columns,
		Rows:    []Row{{Cells: []Cell{{Text: message}}, Placeholder: true}},
	}
}

// PagerKind identifies a pagination control.
type PagerKind string

const (
	PagerPrev     PagerKind = "prev"
	PagerPage     PagerKind = "page"
	PagerEllipsis PagerKind = "ellipsis"
	PagerNext     PagerKind = "next"
)

// PagerItem is one control of the page-number bar.
type PagerItem struct {
	Kind     PagerKind `json:"kind"`
	Page     int       `json:"page,omitempty"`
	Active   bool      `json:"active,omitempty"`
	Disabled bool      `json:"disabled,omitempty"`
}

// Option is one choice of a select.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Filter is a categorical filter select above a list.
type Filter struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

// Card is a tile in a card grid (used for programs).
type Card struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Lines    []string `json:"lines,omitempty"`
}

// List is a filtered, optionally paginated entity list.
type List struct {
	Entity     string      `json:"entity"`
	Page       string      `json:"page"`
	Title      string      `json:"title"`
	Searchable bool        `json:"searchable"`
	Search     string      `json:"search"`
	Filters    []Filter    `json:"filters"`
	Table      Table       `json:"table"`
	Cards      []Card      `json:"cards,omitempty"`
	Pager      []PagerItem `json:"pager"`
	Total      int         `json:"total"`
	TotalText  string      `json:"totalText"`
	CanCreate  bool        `json:"canCreate"`

	// ConfirmDelete is asked before a delete action is sent.
	ConfirmDelete string `json:"confirmDelete,omitempty"`
}

// Field is one input of a form.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Value       string   `json:"value"`
	Required    bool     `json:"required,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Min         string   `json:"min,omitempty"`
	Max         string   `json:"max,omitempty"`
	Step        string   `json:"step,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Form is a create or edit form shown in the modal.
type Form struct {
	Entity string  `json:"entity"`
	Title  string  `json:"title"`
	ID     *int64  `json:"id,omitempty"`
	Fields []Field `json:"fields"`
}

// Line is a label/value pair in a detail view.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section groups lines and free-text items under a heading.
type Section struct {
	Heading string   `json:"heading"`
	Lines   []Line   `json:"lines,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// Detail is a read-only record view shown in the modal.
type Detail struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Modal is the content of the shared overlay. Exactly one of Form and
// Detail is set while the modal is open.
type Modal struct {
	Open   bool    `json:"open"`
	Title  string  `json:"title,omitempty"`
	Form   *Form   `json:"form,omitempty"`
	Detail *Detail `json:"detail,omitempty"`
}

// Counter is a dashboard stat tile.
type Counter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Bar is one bar of a horizontal histogram. Percent is relative to the
// largest bar.
type Bar struct {
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// Dashboard is the landing page.
type Dashboard struct {
	Counters []Counter `json:"counters"`
	Blocks   []Bar     `json:"blocks"`
}

// Tab is one report tab.
type Tab struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Report is the report viewer with its active tab rendered.
type Report struct {
	Tabs  []Tab `json:"tabs"`
	Table Table `json:"table"`
}
