package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const defaultHTTPClientTO = 30 * time.Second

// HTTP is a Transport backed by net/http.
type HTTP struct {
	Client *http.Client
}

// NewHTTP creates an HTTP transport; a nil client gets a default one with a 30s timeout.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPClientTO}
	}
	return &HTTP{Client: client}
}

// Do sends req and decodes a 2xx JSON body into out (when out is not nil).
func (h *HTTP) Do(ctx context.Context, req *Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	switch {
	case req.Token != "":
		(&oauth2.Token{AccessToken: req.Token}).SetAuthHeader(httpReq)
	case req.Username != "":
		httpReq.SetBasicAuth(req.Username, req.Password)
	}

	resp, err := h.Client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Status: resp.Status, URL: req.URL}
		var errResp struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &errResp) == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
