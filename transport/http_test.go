package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPDo_SendsJSONAndDecodes(t *testing.T) {
	var gotAuth, gotType, gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	req := NewRequest(http.MethodPost, srv.URL).Set("Content-Type", "application/json").Send(map[string]any{"public": true})
	req.Token = "secret"
	req.Username = "ignored"
	var out struct {
		ID string `json:"id"`
	}
	if err := NewHTTP(nil).Do(context.Background(), req, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if out.ID != "abc" {
		t.Fatalf("id mismatch: got %q", out.ID)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotType != "application/json" || gotMethod != http.MethodPost {
		t.Fatalf("unexpected request: type=%q method=%q", gotType, gotMethod)
	}
	if gotBody["public"] != true {
		t.Fatalf("unexpected body: %v", gotBody)
	}
}

func TestHTTPDo_BasicAuth(t *testing.T) {
	var user, pass string
	var ok bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	req := NewRequest(http.MethodGet, srv.URL)
	req.Username, req.Password = "alice", "pw"
	if err := NewHTTP(nil).Do(context.Background(), req, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ok || user != "alice" || pass != "pw" {
		t.Fatalf("basic auth mismatch: ok=%v user=%q pass=%q", ok, user, pass)
	}
}

func TestHTTPDo_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	err := NewHTTP(nil).Do(context.Background(), NewRequest(http.MethodGet, srv.URL), nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Not Found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}
