package listview

import (
	"maps"
	"net/url"
	"strconv"

	"prison-admin/internal/domain"
)

// State is the explicit per-view state of one entity list. Values are
// copied on every transition so a State handed out is never mutated.
type State struct {
	Search    string            `json:"search"`
	Filters   map[string]string `json:"filters"`
	Offset    int               `json:"offset"`
	Limit     int               `json:"limit"`
	Paginated bool              `json:"paginated"`
	Total     int               `json:"total"`
	Records   []domain.Record   `json:"-"`
	Loaded    bool              `json:"loaded"`
}

// NewState returns an empty list state. A Limit of 0 fetches without a limit.
func NewState(limit int, paginated bool) State {
	return State{
		Filters:   map[string]string{},
		Limit:     limit,
		Paginated: paginated,
		Records:   []domain.Record{},
	}
}

func (s State) clone() State {
	out := s
	out.Filters = maps.Clone(s.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	return out
}

// WithSearch sets the free-text term and rewinds to the first page.
func (s State) WithSearch(term string) State {
	out := s.clone()
	out.Search = term
	out.Offset = 0
	return out
}

// WithFilter sets a categorical filter ("" clears it) and rewinds to the
// first page.
func (s State) WithFilter(name, value string) State {
	out := s.clone()
	if value == "" {
		delete(out.Filters, name)
	} else {
		out.Filters[name] = value
	}
	out.Offset = 0
	return out
}

// WithPage moves to a 1-based page, clamped to the known page range.
func (s State) WithPage(page int) State {
	out := s.clone()
	if n := out.Pagination().PageCount(); n > 0 && page > n {
		page = n
	}
	out.Offset = OffsetFor(page, out.Limit)
	return out
}

// Pagination returns the pagination window of the state.
func (s State) Pagination() Pagination {
	return Pagination{Total: s.Total, Limit: s.Limit, Offset: s.Offset}
}

// Query builds the list request parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.Paginated {
		q.Set("offset", strconv.Itoa(s.Offset))
	}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	for k, v := range s.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}
