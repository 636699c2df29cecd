// Package entity describes every managed entity: where it lives on the
// backend, how its list is filtered and rendered, which form fields it
// has and what is shown to the operator after a mutation.
package entity

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"prison-admin/internal/domain"
	"prison-admin/internal/form"
	"prison-admin/internal/listview"
	"prison-admin/internal/view"
)

// ErrUnknownEntity is returned for an entity name with no descriptor.
var ErrUnknownEntity = errors.New("unknown entity")

// Filter is a categorical filter above a list. Options come either from
// the fixed list or from a reference Source.
type Filter struct {
	Name    string
	Label   string
	All     string
	Options []view.Option
	Source  string
}

// Messages are the operator-facing texts of an entity.
type Messages struct {
	CreateTitle   string
	EditTitle     string
	Created       string
	Updated       string
	Deleted       string
	ConfirmDelete string
	DeleteFailed  string
	Empty         string
}

// Descriptor is everything the console needs to manage one entity.
type Descriptor struct {
	Name  string
	Path  string
	Title string
	Page  string

	Paginated  bool
	Capped     bool
	Searchable bool
	Filters    []Filter

	Columns []listview.Column
	Card    func(domain.Record) view.Card
	Actions []view.ActionKind

	CreateFields []form.Def
	EditFields   []form.Def
	CreateExtras func() map[string]any
	// Fetchable entities have GET {Path}/{id}; others are edited from
	// the row already loaded in the list.
	Fetchable bool

	Messages    Messages
	Invalidates []string
}

// CanCreate reports whether the entity has a create form.
func (d *Descriptor) CanCreate() bool { return len(d.CreateFields) > 0 }

// CanEdit reports whether rows carry an edit action.
func (d *Descriptor) CanEdit() bool { return slices.Contains(d.Actions, view.ActionEdit) }

// CanDelete reports whether rows carry a delete action.
func (d *Descriptor) CanDelete() bool { return slices.Contains(d.Actions, view.ActionDelete) }

// Fields returns the form fields for creating or editing.
func (d *Descriptor) Fields(editing bool) []form.Def {
	if editing && d.EditFields != nil {
		return d.EditFields
	}
	return d.CreateFields
}

// RecordPath is the backend path of one record.
func (d *Descriptor) RecordPath(id int64) string {
	return d.Path + "/" + strconv.FormatInt(id, 10)
}

// FormTitle is the modal title of the create or edit form.
func (d *Descriptor) FormTitle(editing bool) string {
	if editing {
		return d.Messages.EditTitle
	}
	return d.Messages.CreateTitle
}

var actionLabels = map[view.ActionKind]string{
	view.ActionView:   "Szczegóły",
	view.ActionEdit:   "Edytuj",
	view.ActionDelete: "Usuń",
}

// RowActions returns the buttons of one row.
func (d *Descriptor) RowActions(rec domain.Record) []view.Action {
	id, ok := rec.ID()
	if !ok || len(d.Actions) == 0 {
		return nil
	}
	out := make([]view.Action, len(d.Actions))
	for i, k := range d.Actions {
		out[i] = view.Action{Kind: k, ID: id, Label: actionLabels[k]}
	}
	return out
}

// Table renders records as the list table.
func (d *Descriptor) Table(records []domain.Record) view.Table {
	return listview.RenderTable(d.Columns, records, d.RowActions, d.Messages.Empty)
}

// Cards renders records as a card grid.
func (d *Descriptor) Cards(records []domain.Record) []view.Card {
	if d.Card == nil {
		return nil
	}
	out := make([]view.Card, len(records))
	for i, r := range records {
		out[i] = d.Card(r)
	}
	return out
}

// Registry holds descriptors in navigation order.
type Registry struct {
	order  []string
	byName map[string]*Descriptor
}

// NewRegistry builds a registry from descriptors.
func NewRegistry(descs ...*Descriptor) *Registry {
	r := &Registry{byName: make(map[string]*Descriptor, len(descs))}
	for _, d := range descs {
		r.order = append(r.order, d.Name)
		r.byName[d.Name] = d
	}
	return r
}

// Default returns the registry of every managed entity.
func Default() *Registry {
	return NewRegistry(
		Prisoners(), Cells(), Staff(), Visits(), Programs(), Enrollments(), Incidents(), Visitors(),
	)
}

// Lookup finds a descriptor by name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return d, nil
}

// All returns descriptors in registration order.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	for i, name := range r.order {
		out[i] = r.byName[name]
	}
	return out
}

// OnPage returns the descriptors whose lists are shown on page.
func (r *Registry) OnPage(page string) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.All() {
		if d.Page == page {
			out = append(out, d)
		}
	}
	return out
}

func today() string { return time.Now().Format(time.DateOnly) }

func nowMinute() string { return time.Now().Format("2006-01-02T15:04") }
