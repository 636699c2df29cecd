// Package console implements the operator workflows: navigation, list
// loading with search, filters and pagination, the create/edit form
// cycle, deletion, the prisoner detail view and the report viewer. Every
// workflow produces view descriptions and pushes them into the shared
// session state; failures are reported to the operator as toasts.
package console

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/entity"
	"prison-admin/internal/listview"
	"prison-admin/internal/modal"
	"prison-admin/internal/notify"
	"prison-admin/internal/refcache"
	"prison-admin/internal/report"
	"prison-admin/internal/state"
)

var (
	ErrUnknownPage     = errors.New("unknown page")
	ErrUnknownFilter   = errors.New("unknown filter")
	ErrNotConfirmed    = errors.New("deletion not confirmed")
	ErrNotAllowed      = errors.New("operation not available for this entity")
	ErrRecordNotLoaded = errors.New("record is not in the loaded list")
	ErrNoOpenForm      = errors.New("no open form for this entity")
)

// API is the backend surface the console uses.
type API interface {
	Get(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, body, out any) error
	Put(ctx context.Context, endpoint string, body, out any) error
	Delete(ctx context.Context, endpoint string) error
	List(ctx context.Context, path string, query url.Values) (apiclient.Page, error)
}

// Options configures a Console.
type Options struct {
	API      API
	Entities *entity.Registry
	Cache    *refcache.Cache
	Notifier *notify.Notifier
	Modal    *modal.Controller
	State    *state.AppState

	PageSize       int
	ListLimit      int
	SearchDebounce time.Duration
}

// Console owns the per-view state of every list and runs the workflows.
type Console struct {
	api      API
	entities *entity.Registry
	cache    *refcache.Cache
	notifier *notify.Notifier
	modal    *modal.Controller
	state    *state.AppState
	reports  *report.Viewer

	loaders    map[string]*listview.Loader
	debouncers map[string]*listview.Debouncer

	// baseCtx outlives requests; debounced searches run under it.
	baseCtx context.Context
	cancel  context.CancelFunc
}

// New creates a Console with one list loader per entity.
func New(opts Options) *Console {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Console{
		api:        opts.API,
		entities:   opts.Entities,
		cache:      opts.Cache,
		notifier:   opts.Notifier,
		modal:      opts.Modal,
		state:      opts.State,
		reports:    report.NewViewer(opts.API),
		loaders:    make(map[string]*listview.Loader),
		debouncers: make(map[string]*listview.Debouncer),
		baseCtx:    ctx,
		cancel:     cancel,
	}
	for _, d := range opts.Entities.All() {
		limit := 0
		switch {
		case d.Paginated:
			limit = opts.PageSize
		case d.Capped:
			limit = opts.ListLimit
		}
		path := d.Path
		fetch := func(ctx context.Context, q url.Values) (apiclient.Page, error) {
			return c.api.List(ctx, path, q)
		}
		c.loaders[d.Name] = listview.NewLoader(d.Name, listview.NewState(limit, d.Paginated), fetch)
		if d.Searchable {
			c.debouncers[d.Name] = listview.NewDebouncer(opts.SearchDebounce)
		}
	}
	return c
}

// Close stops pending debounced searches.
func (c *Console) Close() {
	for _, d := range c.debouncers {
		d.Stop()
	}
	c.cancel()
}

func (c *Console) lookup(name string) (*entity.Descriptor, *listview.Loader, error) {
	d, err := c.entities.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	return d, c.loaders[name], nil
}

// Navigate switches to page and loads everything it shows.
func (c *Console) Navigate(ctx context.Context, page string) error {
	p, ok := state.ParsePage(page)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	c.state.SetPage(p)
	c.logInfo("Page opened", "page", page)

	switch p {
	case state.PageDashboard:
		_, err := c.Dashboard(ctx)
		return err
	case state.PageReports:
		name := c.state.Report()
		if _, err := report.Lookup(name); err != nil {
			name = report.Default()
		}
		_, err := c.Report(ctx, name)
		return err
	default:
		return c.reloadPage(ctx, string(p))
	}
}

// reloadPage re-fetches every list shown on page, keeping filters and
// offsets. All lists are attempted; the first error is returned.
func (c *Console) reloadPage(ctx context.Context, page string) error {
	var first error
	for _, d := range c.entities.OnPage(page) {
		if _, err := c.LoadList(ctx, d.Name); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// loadError reports a failed load to the operator.
func (c *Console) loadError(err error) {
	c.notifier.Error("Błąd ładowania danych: " + apiclient.Message(err))
}
