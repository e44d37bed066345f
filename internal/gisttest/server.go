// Package gisttest provides an in-memory gist API for tests.
package gisttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// File is a stored gist file.
type File struct {
	Filename string  `json:"filename"`
	Content  *string `json:"content,omitempty"`
}

// Gist is a stored gist.
type Gist struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Public      bool             `json:"public"`
	Files       map[string]*File `json:"files"`
	HTMLURL     string           `json:"html_url"`
}

// Call records one received request.
type Call struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server is a fake gist API mounted under /gists.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	gists map[string]*Gist
	calls []Call
	fail  map[string]int
}

// NewServer starts the fake API; call Close when done.
func NewServer() *Server {
	s := &Server{gists: map[string]*Gist{}, fail: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// BaseURL returns the gist collection URL.
func (s *Server) BaseURL() string {
	return s.URL + "/gists"
}

// Put stores a gist with the given files and returns its id.
func (s *Server) Put(description string, files map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &Gist{ID: newID(), Description: description, Files: map[string]*File{}}
	for name, content := range files {
		c := content
		g.Files[name] = &File{Filename: name, Content: &c}
	}
	s.gists[g.ID] = g
	return g.ID
}

// Content returns a stored file content.
func (s *Server) Content(id, name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		return "", false
	}
	f, ok := g.Files[name]
	if !ok || f.Content == nil {
		return "", false
	}
	return *f.Content, true
}

// Gist returns a stored gist.
func (s *Server) Gist(id string) (*Gist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	return g, ok
}

// FailNext makes the next request with method respond with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method] = status
}

// Calls returns received requests in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Count returns the number of received requests with method.
func (s *Server) Count(method string) int {
	count := 0
	for _, call := range s.Calls() {
		if call.Method == method {
			count++
		}
	}
	return count
}

type requestBody struct {
	Public      bool             `json:"public"`
	Description *string          `json:"description"`
	Files       map[string]*File `json:"files"`
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var raw []byte
	if r.Body != nil {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		raw = body
	}
	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: raw})
	if status, ok := s.fail[r.Method]; ok {
		delete(s.fail, r.Method)
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/gists"), "/")
	switch {
	case r.Method == http.MethodPost && id == "":
		var body requestBody
		if err := json.Unmarshal(raw, &body); err != nil || len(body.Files) == 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Validation Failed"})
			return
		}
		g := &Gist{ID: newID(), Public: body.Public, Files: map[string]*File{}}
		if body.Description != nil {
			g.Description = *body.Description
		}
		for name, f := range body.Files {
			content := ""
			if f != nil && f.Content != nil {
				content = *f.Content
			}
			g.Files[name] = &File{Filename: name, Content: &content}
		}
		g.HTMLURL = s.URL + "/" + g.ID
		s.gists[g.ID] = g
		writeJSON(w, http.StatusCreated, g)
	case r.Method == http.MethodGet && id != "":
		g, ok := s.gists[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, g)
	case r.Method == http.MethodPatch && id != "":
		g, ok := s.gists[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		var body requestBody
		if err := json.Unmarshal(raw, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Problems parsing JSON"})
			return
		}
		if body.Description != nil {
			g.Description = *body.Description
		}
		for name, f := range body.Files {
			if f == nil || f.Content == nil {
				continue
			}
			content := *f.Content
			g.Files[name] = &File{Filename: name, Content: &content}
		}
		writeJSON(w, http.StatusOK, g)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method Not Allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
