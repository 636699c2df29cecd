package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/", Metrics: NewMetrics("test")})
}

func TestCall_SendsJSON(t *testing.T) {
	var gotMethod, gotPath, gotType, gotAccept string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 5, "cell_code": "A-101"}`)
	})

	var out map[string]any
	err := c.Post(context.Background(), "/api/cells", map[string]any{"cell_code": "A-101", "capacity": 2}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/cells", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, float64(2), gotBody["capacity"])
	assert.Equal(t, "A-101", out["cell_code"])

	require.NoError(t, c.Delete(context.Background(), "/api/cells/5"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "application/json", gotType)
}

func TestCall_GetHasNoContentType(t *testing.T) {
	var gotType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `[]`)
	})
	require.NoError(t, c.Get(context.Background(), "/api/cells", nil))
	assert.Empty(t, gotType)
}

func TestCall_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"structured detail", http.StatusBadRequest, `{"detail": "Cell is full"}`, "Cell is full"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body"],"msg":"field required"}]}`, `[{"loc":["body"],"msg":"field required"}]`},
		{"empty body", http.StatusInternalServerError, ``, genericFailure},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, genericFailure},
		{"no detail field", http.StatusNotFound, `{"error": "nope"}`, genericFailure},
		{"null detail", http.StatusNotFound, `{"detail": null}`, genericFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			err := c.Delete(context.Background(), "/api/cells/3")
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.message, reqErr.Message)
			assert.Equal(t, tt.message, Message(fmt.Errorf("wrapped: %w", err)))
		})
	}
}

func TestCall_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(Options{BaseURL: base})
	err := c.Get(context.Background(), "/api/stats", nil)
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.Status)
	assert.NotEmpty(t, reqErr.Message)
}

func TestList_Envelope(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"data": [{"id": 1}, {"id": 2}], "total": 47}`)
	})

	page, err := c.List(context.Background(), "/api/prisoners", url.Values{"limit": {"20"}, "offset": {"20"}})
	require.NoError(t, err)
	assert.Equal(t, 47, page.Total)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, "20", gotQuery.Get("offset"))
}

func TestList_BareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ` [{"id": 1}, {"id": 2}, {"id": 3}]`)
	})

	page, err := c.List(context.Background(), "/api/cells", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	id, ok := page.Data[2].ID()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestList_EmptyEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": null, "total": 0}`)
	})

	page, err := c.List(context.Background(), "/api/prisoners", nil)
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/prisoners/{id}/history", routeLabel("/api/prisoners/12/history"))
	assert.Equal(t, "/api/prisoners", routeLabel("/api/prisoners?limit=20&offset=0"))
	assert.Equal(t, "/api/views/cell-occupancy", routeLabel("/api/views/cell-occupancy"))
}

func TestRateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	c := New(Options{BaseURL: srv.URL, RateLimit: 1})
	require.NoError(t, c.Get(context.Background(), "/api/stats", nil))

	// The single token is spent; a cancelled context must fail fast
	// instead of reaching the server.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Get(ctx, "/api/stats", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
