package transport

import (
	"context"
	"fmt"
	"net/http"
)

// Request describes one JSON call against the remote gist API.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   any

	// Token takes precedence over Username/Password when both are set.
	Token    string
	Username string
	Password string
}

// Transport executes a Request and decodes a successful JSON response into out.
type Transport interface {
	Do(ctx context.Context, req *Request, out any) error
}

// Func adapts a plain function to Transport.
type Func func(ctx context.Context, req *Request, out any) error

func (f Func) Do(ctx context.Context, req *Request, out any) error {
	return f(ctx, req, out)
}

// Error is returned for any non-2xx response.
type Error struct {
	StatusCode int
	Status     string
	Message    string
	URL        string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (%s): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Status)
}

// NewRequest creates a request with an empty header set.
func NewRequest(method, URL string) *Request {
	return &Request{Method: method, URL: URL, Header: http.Header{}}
}

// Set sets a header value.
func (r *Request) Set(key, value string) *Request {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// Send sets the JSON body.
func (r *Request) Send(body any) *Request {
	r.Body = body
	return r
}
