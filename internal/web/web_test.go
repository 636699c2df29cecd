package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/console"
	"prison-admin/internal/entity"
	"prison-admin/internal/modal"
	"prison-admin/internal/notify"
	"prison-admin/internal/refcache"
	"prison-admin/internal/report"
	"prison-admin/internal/state"
)

type fixture struct {
	server   *Server
	http     *httptest.Server
	mutating atomic.Int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}

	backend := http.NewServeMux()
	backend.HandleFunc("GET /api/prisoners", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":1,"prisoner_number":"P1","first_name":"Jan","last_name":"Nowak","status":"incarcerated"}],"total":1}`)
	})
	backend.HandleFunc("GET /api/cells", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	backend.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_prisoners":1,"prisoners_by_block":[]}`)
	})
	backend.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			f.mutating.Add(1)
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"Not found"}`)
	})
	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	client := apiclient.New(apiclient.Options{BaseURL: api.URL})
	st := state.New(50, api.URL, "")
	n := notify.New(time.Minute)
	m := modal.New()
	c := console.New(console.Options{
		API:            client,
		Entities:       entity.Default(),
		Cache:          refcache.New(client, refcache.DefaultSources()...),
		Notifier:       n,
		Modal:          m,
		State:          st,
		PageSize:       20,
		ListLimit:      50,
		SearchDebounce: 10 * time.Millisecond,
	})
	t.Cleanup(c.Close)

	metrics := apiclient.NewMetrics("prison_admin_test")
	f.server = New(Options{
		Console:  c,
		State:    st,
		Notifier: n,
		Modal:    m,
		Metrics:  metrics.Handler(),
		Version:  "v1.2.3",
	})
	t.Cleanup(f.server.Close)

	f.http = httptest.NewServer(f.server.Handler())
	t.Cleanup(f.http.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, f.http.URL+path, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	resp, body := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestUIServesVersion(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.http.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(html), "v1.2.3")
	assert.NotContains(t, string(html), "{{APP_VERSION}}")
}

func TestUIKeepsTypedSearchTermOnPush(t *testing.T) {
	// A pushed snapshot only carries the last applied term; re-rendering
	// must put the operator's unsent input back into the focused box.
	assert.Contains(t, uiHTML, "var typed = searching ? active.value : '';")
	assert.Contains(t, uiHTML, "input.value = typed;")
}

func TestMetricsMounted(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.http.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNavigate(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/ui/navigate", `{"page":"prisoners"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "prisoners", body["page"])
	lists := body["lists"].(map[string]any)
	assert.Contains(t, lists, "prisoners")

	resp, body = f.do(t, http.MethodPost, "/ui/navigate", `{"page":"sentences"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "unknown page")

	resp, _ = f.do(t, http.MethodPost, "/ui/navigate", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/ui/lists/prisoners", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "prisoners", body["entity"])

	resp, _ = f.do(t, http.MethodGet, "/ui/lists/sentences", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = f.do(t, http.MethodPost, "/ui/lists/prisoners/filter", `{"name":"status","value":"released"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])

	resp, _ = f.do(t, http.MethodPost, "/ui/lists/prisoners/search", `{"term":"Now"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/ui/lists/cells/search", `{"term":"A"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDeleteRequiresConfirm(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodDelete, "/ui/records/prisoners/1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, f.mutating.Load())

	resp, body := f.do(t, http.MethodDelete, "/ui/records/prisoners/1?confirm=true", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
	assert.EqualValues(t, 1, f.mutating.Load())

	resp, _ = f.do(t, http.MethodDelete, "/ui/records/prisoners/abc?confirm=true", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFormLifecycle(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/ui/forms/prisoners", `{"values":{}}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "no form open")

	resp, body := f.do(t, http.MethodGet, "/ui/forms/prisoners", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["open"])

	resp, body = f.do(t, http.MethodPost, "/ui/forms/prisoners", `{"values":{"first_name":"Jan"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "last_name")
	assert.NotContains(t, fields, "first_name")
	assert.Zero(t, f.mutating.Load())

	resp, body = f.do(t, http.MethodPost, "/ui/modal/key", `{"key":"Escape"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["open"])
}

func TestSnapshotCarriesToastsAndModal(t *testing.T) {
	f := newFixture(t)
	f.server.notifier.Error("Błąd: test")

	resp, body := f.do(t, http.MethodGet, "/ui/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	toasts := body["toasts"].([]any)
	require.Len(t, toasts, 1)
	toast := toasts[0].(map[string]any)
	assert.Equal(t, "Błąd: test", toast["message"])

	resp, _ = f.do(t, http.MethodDelete, "/ui/toasts/"+toast["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, f.server.notifier.Active())
}

func TestWebSocketPushesSnapshot(t *testing.T) {
	f := newFixture(t)
	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var initial map[string]any
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "dashboard", initial["page"])

	// The client is registered right after the initial write.
	time.Sleep(100 * time.Millisecond)
	f.server.notifier.Info("Witaj")
	for {
		var snap Snapshot
		require.NoError(t, conn.ReadJSON(&snap))
		if len(snap.Toasts) > 0 {
			assert.Equal(t, "Witaj", snap.Toasts[0].Message)
			return
		}
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", entity.ErrUnknownEntity), http.StatusNotFound},
		{report.ErrUnknownReport, http.StatusNotFound},
		{console.ErrRecordNotLoaded, http.StatusNotFound},
		{console.ErrNotConfirmed, http.StatusBadRequest},
		{console.ErrNoOpenForm, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), c.err.Error())
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	f.server.port = "0"
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.server.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
