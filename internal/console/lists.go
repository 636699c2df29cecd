package console

import (
	"context"
	"fmt"
	"log/slog"

	"prison-admin/internal/entity"
	"prison-admin/internal/format"
	"prison-admin/internal/listview"
	"prison-admin/internal/view"
)

// List renders the displayed state of a list without fetching.
func (c *Console) List(ctx context.Context, name string) (view.List, error) {
	d, l, err := c.lookup(name)
	if err != nil {
		return view.List{}, err
	}
	return c.renderList(ctx, d, l.State()), nil
}

// LoadList re-fetches a list with its current search, filters and offset.
func (c *Console) LoadList(ctx context.Context, name string) (view.List, error) {
	d, l, err := c.lookup(name)
	if err != nil {
		return view.List{}, err
	}
	return c.load(ctx, d, l, l.State())
}

// SearchNow applies a search term immediately, rewinding to page one.
func (c *Console) SearchNow(ctx context.Context, name, term string) (view.List, error) {
	d, l, err := c.lookup(name)
	if err != nil {
		return view.List{}, err
	}
	if !d.Searchable {
		return view.List{}, fmt.Errorf("%w: search on %s", ErrNotAllowed, name)
	}
	return c.load(ctx, d, l, l.State().WithSearch(term))
}

// Search schedules a search after the debounce window. Keystrokes inside
// the window collapse into a single fetch with the last term; the result
// reaches the UI through the session state.
func (c *Console) Search(name, term string) error {
	d, err := c.entities.Lookup(name)
	if err != nil {
		return err
	}
	deb, ok := c.debouncers[name]
	if !d.Searchable || !ok {
		return fmt.Errorf("%w: search on %s", ErrNotAllowed, name)
	}
	deb.Trigger(func() {
		if _, err := c.SearchNow(c.baseCtx, name, term); err != nil {
			slog.Debug("Debounced search failed", "entity", name, "error", err, "component", "Console")
		}
	})
	return nil
}

// Filter sets a categorical filter ("" clears it) and rewinds to page one.
func (c *Console) Filter(ctx context.Context, name, filter, value string) (view.List, error) {
	d, l, err := c.lookup(name)
	if err != nil {
		return view.List{}, err
	}
	known := false
	for _, f := range d.Filters {
		if f.Name == filter {
			known = true
			break
		}
	}
	if !known {
		return view.List{}, fmt.Errorf("%w: %s on %s", ErrUnknownFilter, filter, name)
	}
	return c.load(ctx, d, l, l.State().WithFilter(filter, value))
}

// GoToPage fetches a 1-based page of a paginated list.
func (c *Console) GoToPage(ctx context.Context, name string, page int) (view.List, error) {
	d, l, err := c.lookup(name)
	if err != nil {
		return view.List{}, err
	}
	if !d.Paginated {
		return view.List{}, fmt.Errorf("%w: paging %s", ErrNotAllowed, name)
	}
	return c.load(ctx, d, l, l.State().WithPage(page))
}

func (c *Console) load(ctx context.Context, d *entity.Descriptor, l *listview.Loader, next listview.State) (view.List, error) {
	st, applied, err := l.Load(ctx, next)
	if err != nil {
		c.loadError(err)
		c.logError("List load failed", "entity", d.Name, "error", err)
		return c.renderList(ctx, d, st), fmt.Errorf("load %s: %w", d.Name, err)
	}
	v := c.renderList(ctx, d, st)
	if applied {
		c.state.SetList(d.Name, v)
	}
	return v, nil
}

// renderList builds the list view from a state. Filter options backed by a
// reference list are read from the cache; an unavailable list leaves the
// filter with only its "all" choice.
func (c *Console) renderList(ctx context.Context, d *entity.Descriptor, st listview.State) view.List {
	filters := make([]view.Filter, 0, len(d.Filters))
	for _, f := range d.Filters {
		selected := st.Filters[f.Name]
		opts := []view.Option{{Value: "", Label: f.All, Selected: selected == ""}}
		choices := f.Options
		if f.Source != "" {
			records, err := c.cache.Get(ctx, f.Source, false)
			if err != nil {
				slog.Warn("Filter options unavailable", "entity", d.Name, "source", f.Source, "error", err, "component", "Console")
			}
			choices = entity.Options(f.Source, records)
		}
		for _, o := range choices {
			o.Selected = o.Value == selected && selected != ""
			opts = append(opts, o)
		}
		filters = append(filters, view.Filter{Name: f.Name, Label: f.Label, Options: opts})
	}

	v := view.List{
		Entity:        d.Name,
		Page:          d.Page,
		Title:         d.Title,
		Searchable:    d.Searchable,
		Search:        st.Search,
		Filters:       filters,
		Pager:         []view.PagerItem{},
		Total:         st.Total,
		TotalText:     format.Count(st.Total),
		CanCreate:     d.CanCreate(),
		ConfirmDelete: d.Messages.ConfirmDelete,
	}
	if d.Card != nil {
		v.Cards = d.Cards(st.Records)
	} else {
		v.Table = d.Table(st.Records)
	}
	if d.Paginated {
		v.Pager = st.Pagination().Controls()
	}
	return v
}
