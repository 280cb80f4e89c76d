package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// defaultTimeout bounds each remote call. A timeout is a regular failure to
// callers; it counts toward the retry ceiling like any other error.
const defaultTimeout = 15 * time.Second

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.Code, e.Body)
}

// HTTPClient implements Client against a REST service:
//
//	POST   {base}/{collection}          create, returns the record
//	PATCH  {base}/{collection}/{id}     upsert, returns the record
//	DELETE {base}/{collection}/{id}
//	GET    {base}/{collection}?...      returns an array
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// Compile-time interface check: HTTPClient must implement Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTP remote client. apiKey may be empty for
// unauthenticated services.
func NewHTTPClient(baseURL, apiKey string, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// Insert implements Client.
func (c *HTTPClient) Insert(ctx context.Context, collection string, record, result any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/"+collection, record, result)
}

// Update implements Client.
func (c *HTTPClient) Update(ctx context.Context, collection, id string, record, result any) error {
	return c.do(ctx, http.MethodPatch, c.baseURL+"/"+collection+"/"+url.PathEscape(id), record, result)
}

// Delete implements Client.
func (c *HTTPClient) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/"+collection+"/"+url.PathEscape(id), nil, nil)
}

// Query implements Client.
func (c *HTTPClient) Query(ctx context.Context, collection string, query Query, result any) error {
	params := url.Values{}
	for field, value := range query.Equals {
		params.Set(field, value)
	}
	if !query.DateTimeFrom.IsZero() {
		params.Set("date_time_gte", query.DateTimeFrom.UTC().Format(time.RFC3339))
	}
	if query.OrderBy != "" {
		params.Set("order", query.OrderBy)
	}

	endpoint := c.baseURL + "/" + collection
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, result)
}

// do runs one request/response cycle with JSON bodies.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Debug().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("remote call failed")
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
