package listview

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"prison-admin/internal/apiclient"
)

// FetchFunc retrieves one page of records for the given query.
type FetchFunc func(ctx context.Context, q url.Values) (apiclient.Page, error)

// Load fetches the records for next and returns next filled with the
// result. It does not touch any shared state.
func Load(ctx context.Context, fetch FetchFunc, next State) (State, error) {
	page, err := fetch(ctx, next.Query())
	if err != nil {
		return next, err
	}
	out := next.clone()
	out.Records = page.Data
	out.Total = page.Total
	out.Loaded = true
	return out, nil
}

// Loader holds the displayed state of one list and serialises updates to
// it. Every load is stamped with a sequence number; a response that
// arrives after a newer one has been applied is dropped, so a slow
// earlier request can never overwrite a newer view.
type Loader struct {
	name  string
	fetch FetchFunc

	mu      sync.Mutex
	state   State
	issued  uint64
	applied uint64
}

// NewLoader creates a Loader starting from initial.
func NewLoader(name string, initial State, fetch FetchFunc) *Loader {
	return &Loader{name: name, fetch: fetch, state: initial}
}

// State returns the displayed state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load fetches next and makes it the displayed state. It returns the state
// that is displayed afterwards and whether this load was applied. On error
// the displayed state is left untouched. A response superseded by a newer
// applied load is dropped, failed or not.
func (l *Loader) Load(ctx context.Context, next State) (State, bool, error) {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.mu.Unlock()

	loaded, err := Load(ctx, l.fetch, next)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq < l.applied {
		slog.Debug("Discarding stale list response", "list", l.name, "seq", seq, "applied", l.applied, "error", err, "component", "List")
		return l.state, false, nil
	}
	if err != nil {
		return l.state, false, err
	}
	l.applied = seq
	l.state = loaded
	return l.state, true, nil
}

// Reload re-fetches the displayed query, keeping filters and offset.
func (l *Loader) Reload(ctx context.Context) (State, bool, error) {
	return l.Load(ctx, l.State())
}
