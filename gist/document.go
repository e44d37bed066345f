package gist

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/viant/gist/transport"
)

const (
	// DefaultBaseURL is the gist collection endpoint.
	DefaultBaseURL = "https://api.github.com/gists"
	// DefaultUserAgent identifies this client to the remote service.
	DefaultUserAgent = "gist api"
)

// Option configures a Document.
type Option func(*Document)

// WithTransport sets the transport used for remote calls.
func WithTransport(t transport.Transport) Option {
	return func(d *Document) { d.transport = t }
}

// WithBaseURL overrides the gist collection URL.
func WithBaseURL(baseURL string) Option {
	return func(d *Document) {
		if baseURL != "" {
			d.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent overrides the client-identifying header.
func WithUserAgent(agent string) Option {
	return func(d *Document) {
		if agent != "" {
			d.userAgent = agent
		}
	}
}

// Document holds the local state of one remote gist: identity, metadata,
// staged files and the queue of deferred edits.
//
// The files map is what the next save sends; the snapshot only caches the last
// remote representation. A Document is not safe for concurrent use.
type Document struct {
	id          string
	public      bool
	description string
	files       map[string]*FileContent
	snapshot    *Snapshot
	queue       *batch

	token    string
	username string
	password string

	baseURL   string
	userAgent string
	transport transport.Transport
}

// New creates a Document; an empty id stands for a gist not created yet.
func New(id string, opts ...Option) *Document {
	d := &Document{
		id:        id,
		files:     map[string]*FileContent{},
		queue:     newBatch(),
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.transport == nil {
		d.transport = transport.NewHTTP(nil)
	}
	return d
}

// SetToken sets an access token; it takes precedence over basic auth.
func (d *Document) SetToken(token string) *Document {
	d.token = token
	return d
}

// SetBasicAuth sets basic auth credentials.
func (d *Document) SetBasicAuth(user, pass string) *Document {
	d.username = user
	d.password = pass
	return d
}

// SetPublic sets the gist visibility used on create.
func (d *Document) SetPublic(public bool) *Document {
	d.public = public
	return d
}

// SetDescription sets the gist description.
func (d *Document) SetDescription(description string) *Document {
	d.description = description
	return d
}

// ID returns the remote gist id, empty for a new gist.
func (d *Document) ID() string { return d.id }

// Public reports the visibility used on create.
func (d *Document) Public() bool { return d.public }

// Description returns the description sent on the next save.
func (d *Document) Description() string { return d.description }

// IsNew reports whether the gist has no remote identity yet.
func (d *Document) IsNew() bool {
	return d.id == ""
}

// URL returns the collection URL for a new gist, the gist URL otherwise.
func (d *Document) URL() string {
	if d.IsNew() {
		return d.baseURL
	}
	return d.baseURL + "/" + d.id
}

// Pending returns the number of queued edits not applied yet.
func (d *Document) Pending() int {
	return d.queue.pending()
}

// Content returns the staged content of a file.
func (d *Document) Content(name string) (string, bool) {
	file, ok := d.files[name]
	if !ok || file == nil || file.Content == nil {
		return "", false
	}
	return *file.Content, true
}

// Filenames returns the staged file names, sorted.
func (d *Document) Filenames() []string {
	names := make([]string, 0, len(d.files))
	for name := range d.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns a handle for filename, declaring the file when absent.
func (d *Document) File(filename string) *File {
	if _, ok := d.files[filename]; !ok {
		d.files[filename] = &FileContent{}
	}
	return &File{name: filename, doc: d}
}

// Fetch returns the remote gist, reusing the cached snapshot when present.
func (d *Document) Fetch(ctx context.Context) (*Snapshot, error) {
	if d.IsNew() {
		return nil, ErrUnsavedDocument
	}
	if d.snapshot != nil {
		return d.snapshot, nil
	}
	snapshot := &Snapshot{}
	if err := d.transport.Do(ctx, d.request(http.MethodGet), snapshot); err != nil {
		return nil, err
	}
	d.snapshot = snapshot
	return snapshot, nil
}

// Save creates the gist when new, updates it otherwise.
func (d *Document) Save(ctx context.Context) (*Snapshot, error) {
	if d.IsNew() {
		return d.Create(ctx)
	}
	return d.Update(ctx)
}

// Create posts the staged files and adopts the returned identity.
func (d *Document) Create(ctx context.Context) (*Snapshot, error) {
	if !d.IsNew() {
		return nil, ErrAlreadyCreated
	}
	if len(d.files) == 0 {
		return nil, ErrNoFiles
	}
	req := d.request(http.MethodPost).Send(&createBody{Public: d.public, Files: d.files, Description: d.description})
	snapshot := &Snapshot{}
	if err := d.transport.Do(ctx, req, snapshot); err != nil {
		return nil, err
	}
	d.id = snapshot.ID
	d.snapshot = snapshot
	return snapshot, nil
}

// Update runs every queued edit in order, then patches the gist with the merged files.
func (d *Document) Update(ctx context.Context) (*Snapshot, error) {
	if d.IsNew() {
		return nil, ErrUnsavedDocument
	}
	if err := d.queue.end(ctx); err != nil {
		return nil, err
	}
	req := d.request(http.MethodPatch).Send(&updateBody{Files: d.files, Description: d.description})
	snapshot := &Snapshot{}
	if err := d.transport.Do(ctx, req, snapshot); err != nil {
		return nil, err
	}
	d.queue = newBatch()
	d.snapshot = snapshot
	return snapshot, nil
}

func (d *Document) write(filename, content string) {
	file, ok := d.files[filename]
	if !ok || file == nil {
		file = &FileContent{}
		d.files[filename] = file
	}
	file.Content = &content
}

func (d *Document) request(method string) *transport.Request {
	req := transport.NewRequest(method, d.URL()).
		Set("Content-Type", "application/json").
		Set("Accept", "application/json").
		Set("User-Agent", d.userAgent)
	if d.token != "" {
		req.Token = d.token
	} else if d.username != "" {
		req.Username = d.username
		req.Password = d.password
	}
	return req
}
