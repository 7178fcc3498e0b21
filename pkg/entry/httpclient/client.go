// Package httpclient talks to the SPARC API and satisfies the same entry
// service contract as the local store.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sparc/entities"
	"sparc/pkg/entry"
	svc "sparc/pkg/entry/service"
	"sparc/pkg/export"
	"sparc/pkg/middleware"
)

type Client struct {
	base string
	http *http.Client
}

var _ svc.Service = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (c *Client) do(ctx context.Context, method, path, uid string, body, out any) error {
	resp, err := c.send(ctx, method, path, uid, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns error statuses into entry errors.
func (c *Client) send(ctx context.Context, method, path, uid string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.HeaderUID, uid)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}
	defer resp.Body.Close()
	var ae apiError
	_ = json.NewDecoder(resp.Body).Decode(&ae)
	switch resp.StatusCode {
	case http.StatusUnprocessableEntity:
		if len(ae.Fields) > 0 {
			return nil, &entry.ValidationError{Fields: ae.Fields}
		}
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", entry.ErrNotFound, ae.Error)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", entry.ErrForbidden, ae.Error)
	}
	if ae.Error == "" {
		ae.Error = resp.Status
	}
	return nil, fmt.Errorf("%s %s: %s (%d)", method, path, ae.Error, resp.StatusCode)
}

func (c *Client) Create(ctx context.Context, uid string, in entry.Input) (*entities.TimeEntry, error) {
	var out entities.TimeEntry
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries", uid, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, uid, id string, p entry.Patch) (*entities.TimeEntry, error) {
	var out entities.TimeEntry
	if err := c.do(ctx, http.MethodPatch, "/api/v1/entries/"+url.PathEscape(id), uid, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SoftDelete(ctx context.Context, uid string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/v1/entries/delete", uid, map[string][]string{"ids": ids}, nil)
}

func (c *Client) List(ctx context.Context, uid string, opts entry.ListOptions) ([]entities.TimeEntry, error) {
	q := url.Values{}
	if opts.Range != "" {
		q.Set("range", string(opts.Range))
	}
	if opts.Task != "" {
		q.Set("task", opts.Task)
	}
	if opts.IncludeDeleted {
		q.Set("include_deleted", "true")
	}
	path := "/api/v1/entries"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []entities.TimeEntry
	if err := c.do(ctx, http.MethodGet, path, uid, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Duplicate(ctx context.Context, uid string, ids []string) ([]entities.TimeEntry, error) {
	if len(ids) == 0 {
		return []entities.TimeEntry{}, nil
	}
	var out []entities.TimeEntry
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries/duplicate", uid, map[string][]string{"ids": ids}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Export downloads an export of the entries matching view and parses it back
// into rows, header first.
func (c *Client) Export(ctx context.Context, uid string, f export.Format, view url.Values) ([][]string, error) {
	q := url.Values{}
	for k, v := range view {
		q[k] = append([]string(nil), v...)
	}
	q.Set("format", string(f))
	resp, err := c.send(ctx, http.MethodGet, "/api/v1/entries/export?"+q.Encode(), uid, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch f {
	case export.XLSX:
		return export.ReadXLSX(resp.Body)
	case export.HTML:
		return export.ReadHTML(resp.Body)
	default:
		return export.ReadCSV(resp.Body)
	}
}
