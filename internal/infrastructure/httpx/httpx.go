package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"currency-gateway/internal/infrastructure/metrics"

	"github.com/cenkalti/backoff/v4"
)

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

// Client issues JSON GETs against one upstream. MaxRetries bounds the extra
// attempts made on transport errors and 5xx responses; zero means a single attempt.
type Client struct {
	HTTP       *http.Client
	Token      string
	Name       string
	MaxRetries uint64
	Metrics    *metrics.Metrics
}

func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.DoJSON(ctx, req, out)
}

func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	op := func() error {
		start := time.Now()
		err := c.once(httpClient, req, out)
		c.Metrics.ObserveUpstream(c.Name, err, time.Since(start))
		return err
	}
	var b backoff.BackOff = backoff.WithMaxRetries(exp, c.MaxRetries)
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

func (c *Client) once(httpClient *http.Client, req *http.Request, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return statusError(resp)
	}
	if resp.StatusCode != http.StatusOK {
		return backoff.Permanent(statusError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode: %w", err))
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: string(body)}
}
