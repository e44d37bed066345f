package service

import (
	"net/http"
	"time"

	"github.com/viant/afs"
	"github.com/viant/gist/convert"
	"github.com/viant/gist/gist"
	"github.com/viant/gist/transport"
)

// Option configures the Service.
type Option func(*Service)

// WithTransport sets the transport shared by every gist the service opens.
func WithTransport(t transport.Transport) Option {
	return func(s *Service) { s.transport = t }
}

// WithBaseURL sets the gist collection URL.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) { s.baseURL = baseURL }
}

// WithUserAgent sets the client-identifying header.
func WithUserAgent(agent string) Option {
	return func(s *Service) { s.userAgent = agent }
}

// WithToken sets the access token.
func WithToken(token string) Option {
	return func(s *Service) { s.token = token }
}

// WithBasicAuth sets basic auth credentials.
func WithBasicAuth(user, password string) Option {
	return func(s *Service) {
		s.username = user
		s.password = password
	}
}

// WithFS sets the storage service used to read and write local files.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithConverter sets the text converter applied to uploaded files.
func WithConverter(converter *convert.Factory) Option {
	return func(s *Service) { s.converter = converter }
}

// WithLogf sets the default progress logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Service) { s.logf = logf }
}

// WithConfig applies API and auth settings from cfg. The API timeout only
// shapes the default HTTP transport; an explicit WithTransport wins.
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		if cfg.API.BaseURL != "" {
			s.baseURL = cfg.API.BaseURL
		}
		if cfg.API.UserAgent != "" {
			s.userAgent = cfg.API.UserAgent
		}
		if cfg.API.TimeoutSeconds > 0 {
			s.timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
		}
		if cfg.Auth.Token != "" {
			s.token = cfg.Auth.Token
		}
		if cfg.Auth.User != "" {
			s.username = cfg.Auth.User
			s.password = cfg.Auth.Password
		}
	}
}

// Service exposes gist operations over local files.
type Service struct {
	transport transport.Transport
	timeout   time.Duration
	baseURL   string
	userAgent string
	token     string
	username  string
	password  string
	fs        afs.Service
	converter *convert.Factory
	logf      func(format string, args ...any)
}

// NewService creates a new Service.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.transport == nil {
		var client *http.Client
		if s.timeout > 0 {
			client = &http.Client{Timeout: s.timeout}
		}
		s.transport = transport.NewHTTP(client)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.converter == nil {
		s.converter = convert.NewFactory()
	}
	return s, nil
}

// Document opens a gist with the service credentials; an empty id opens a new gist.
func (s *Service) Document(id string) *gist.Document {
	doc := gist.New(id,
		gist.WithTransport(s.transport),
		gist.WithBaseURL(s.baseURL),
		gist.WithUserAgent(s.userAgent),
	)
	if s.token != "" {
		doc.SetToken(s.token)
	}
	if s.username != "" {
		doc.SetBasicAuth(s.username, s.password)
	}
	return doc
}

func (s *Service) resolveLogf(override func(format string, args ...any)) func(format string, args ...any) {
	if override != nil {
		return override
	}
	if s.logf != nil {
		return s.logf
	}
	return func(string, ...any) {}
}
