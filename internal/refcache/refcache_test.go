package refcache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/domain"
)

type fakeLister struct {
	calls atomic.Int32
	delay time.Duration
	err   error
	last  url.Values
	mu    sync.Mutex
}

func (f *fakeLister) List(_ context.Context, path string, q url.Values) (apiclient.Page, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = q
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return apiclient.Page{}, f.err
	}
	n := float64(f.calls.Load())
	return apiclient.Page{Data: []domain.Record{{"id": n, "path": path}}, Total: 1}, nil
}

func TestGetLoadsOnce(t *testing.T) {
	l := &fakeLister{}
	c := New(l, DefaultSources()...)

	first, err := c.Get(context.Background(), Blocks, false)
	require.NoError(t, err)
	second, err := c.Get(context.Background(), Blocks, false)
	require.NoError(t, err)

	assert.Equal(t, int32(1), l.calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, "/api/cell-blocks", first[0]["path"])
}

func TestGetForceRefetches(t *testing.T) {
	l := &fakeLister{}
	c := New(l, DefaultSources()...)

	_, err := c.Get(context.Background(), Staff, false)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), Staff, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), l.calls.Load())
}

func TestInvalidate(t *testing.T) {
	l := &fakeLister{}
	c := New(l, DefaultSources()...)

	_, err := c.Get(context.Background(), Cells, false)
	require.NoError(t, err)
	c.Invalidate(Cells, "unknown")

	got, err := c.Get(context.Background(), Cells, false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), l.calls.Load())
	assert.Equal(t, float64(2), got[0]["id"])
}

func TestSourceQueries(t *testing.T) {
	l := &fakeLister{}
	c := New(l, DefaultSources()...)

	_, err := c.Get(context.Background(), Prisoners, false)
	require.NoError(t, err)
	assert.Equal(t, "incarcerated", l.last.Get("status"))
	assert.Equal(t, "1000", l.last.Get("limit"))

	_, err = c.Get(context.Background(), Visitors, false)
	require.NoError(t, err)
	assert.Equal(t, "false", l.last.Get("blacklisted"))
}

func TestConcurrentGetsCoalesce(t *testing.T) {
	l := &fakeLister{delay: 30 * time.Millisecond}
	c := New(l, DefaultSources()...)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), Roles, false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), l.calls.Load())
}

func TestGetErrors(t *testing.T) {
	l := &fakeLister{err: errors.New("boom")}
	c := New(l, DefaultSources()...)

	_, err := c.Get(context.Background(), ProgramTypes, false)
	require.Error(t, err)

	l.err = nil
	_, err = c.Get(context.Background(), ProgramTypes, false)
	require.NoError(t, err, "a failed load is not cached")
	assert.Equal(t, int32(2), l.calls.Load())

	_, err = c.Get(context.Background(), "nope", false)
	require.Error(t, err)
}
