package provider_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"currency-gateway/internal/infrastructure/httpx"
)

type rtFunc func(*http.Request) *http.Response

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

// stubClient answers every request with body and code and records the requested URLs.
func stubClient(resBody string, code int, urls *[]string) *httpx.Client {
	return &httpx.Client{
		Name: "stub",
		HTTP: &http.Client{
			Timeout: 2 * time.Second,
			Transport: rtFunc(func(r *http.Request) *http.Response {
				if urls != nil {
					*urls = append(*urls, r.URL.String())
				}
				return &http.Response{
					StatusCode: code,
					Body:       io.NopCloser(strings.NewReader(resBody)),
					Header:     make(http.Header),
					Request:    r,
				}
			}),
		},
	}
}

var ctx = context.Background()
