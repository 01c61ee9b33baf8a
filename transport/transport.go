// Package transport sends the requests of fetch cells.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request carries the options of a fetch: method, headers and body.
type Request struct {
	Method string
	Header http.Header
	Body   []byte
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport sends a request for resource and returns its response.
// It must give up as soon as ctx is cancelled and return ctx's error.
type Transport interface {
	Send(ctx context.Context, resource string, req Request) (*Response, error)
}

// Func adapts an ordinary function to a Transport.
type Func func(ctx context.Context, resource string, req Request) (*Response, error)

func (f Func) Send(ctx context.Context, resource string, req Request) (*Response, error) {
	return f(ctx, resource, req)
}

// HTTP sends requests with an http.Client.
type HTTP struct {
	client *http.Client
}

var _ Transport = (*HTTP)(nil)

// NewHTTP returns an HTTP transport, a nil client gets one with the given timeout (none when zero).
func NewHTTP(client *http.Client, timeout time.Duration) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &HTTP{client: client}
}

func (t *HTTP) Send(ctx context.Context, resource string, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, resource, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
