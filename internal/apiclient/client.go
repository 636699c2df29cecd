package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"prison-admin/internal/domain"
)

// genericFailure is used when an error response carries no readable detail.
const genericFailure = "Request failed"

// RequestError is the single failure type returned by Client. Transport
// failures carry Status 0.
type RequestError struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
}

func (e *RequestError) Error() string { return e.Message }

// Message extracts the human-readable message of err, unwrapping a
// RequestError when present.
func Message(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // 0 means no timeout
	RateLimit  float64       // requests per second, 0 means unlimited
	HTTPClient *http.Client
	Metrics    *Metrics
}

// Client calls the records REST API. All bodies are JSON.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	metrics *Metrics
}

// New creates a new Client.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		metrics: opts.Metrics,
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Call performs a request against endpoint and decodes the response body
// into out when out is non-nil. Every failure is a *RequestError.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any) error {
	start := time.Now()
	status, err := c.do(ctx, method, endpoint, body, out)
	c.metrics.observe(method, endpoint, status, time.Since(start))
	if err != nil {
		slog.Debug("API call failed", "method", method, "endpoint", endpoint, "status", status, "error", err, "component", "API")
		return err
	}
	slog.Debug("API call", "method", method, "endpoint", endpoint, "status", status, "component", "API")
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) (int, error) {
	fail := func(status int, msg string) (int, error) {
		return status, &RequestError{Method: method, Endpoint: endpoint, Status: status, Message: msg}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, err.Error())
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fail(0, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, errorDetail(resp.Body))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Sprintf("decode response: %v", err))
	}
	return resp.StatusCode, nil
}

// errorDetail reads the "detail" field of an error body. FastAPI returns
// validation errors with detail as a list; those are rendered as JSON.
func errorDetail(r io.Reader) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil || len(payload.Detail) == 0 {
		return genericFailure
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		if s == "" {
			return genericFailure
		}
		return s
	}
	if string(payload.Detail) == "null" {
		return genericFailure
	}
	return string(payload.Detail)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Call(ctx, http.MethodGet, endpoint, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Call(ctx, http.MethodPost, endpoint, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Call(ctx, http.MethodPut, endpoint, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.Call(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Page is one page of records as returned by a list endpoint.
type Page struct {
	Data  []domain.Record
	Total int
}

// List fetches a collection. The backend answers either with a bare JSON
// array or with a {"data": [...], "total": n} envelope; both are accepted.
func (c *Client) List(ctx context.Context, path string, query url.Values) (Page, error) {
	endpoint := path
	if enc := query.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var raw json.RawMessage
	if err := c.Get(ctx, endpoint, &raw); err != nil {
		return Page{}, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []domain.Record
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return Page{}, &RequestError{Method: http.MethodGet, Endpoint: endpoint, Status: http.StatusOK, Message: "decode list: " + err.Error()}
		}
		return Page{Data: rows, Total: len(rows)}, nil
	}

	var env struct {
		Data  []domain.Record `json:"data"`
		Total json.Number     `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Page{}, &RequestError{Method: http.MethodGet, Endpoint: endpoint, Status: http.StatusOK, Message: "decode list: " + err.Error()}
	}
	total, err := strconv.Atoi(env.Total.String())
	if err != nil {
		total = len(env.Data)
	}
	if env.Data == nil {
		env.Data = []domain.Record{}
	}
	return Page{Data: env.Data, Total: total}, nil
}
