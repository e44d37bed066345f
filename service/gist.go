package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/gist/gist"
)

// Create creates a gist from local paths and inline files.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*gist.Snapshot, error) {
	logf := s.resolveLogf(req.Logf)
	doc := s.Document("").SetDescription(req.Description).SetPublic(req.Public)
	for _, path := range req.Paths {
		items, err := s.listFiles(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			doc.File(item.name).Write(string(item.content))
			logf("create: staged %s (%d bytes)", item.name, len(item.content))
		}
	}
	names := make([]string, 0, len(req.Files))
	for name := range req.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.File(name).Write(req.Files[name])
	}
	snapshot, err := doc.Save(ctx)
	if err != nil {
		return nil, err
	}
	logf("create: id=%s files=%d url=%s", snapshot.ID, len(doc.Filenames()), snapshot.HTMLURL)
	return snapshot, nil
}

// Get fetches a gist.
func (s *Service) Get(ctx context.Context, req GetRequest) (*gist.Snapshot, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, gist.ErrUnsavedDocument
	}
	return s.Document(req.ID).Fetch(ctx)
}

// Read returns the remote content of one gist file.
func (s *Service) Read(ctx context.Context, req ReadRequest) (string, error) {
	if req.Filename == "" {
		return "", fmt.Errorf("read: filename is required")
	}
	return s.Document(req.ID).File(req.Filename).Read(ctx)
}

// Edit stages edits in order and saves once.
func (s *Service) Edit(ctx context.Context, req EditRequest) (*gist.Snapshot, error) {
	logf := s.resolveLogf(req.Logf)
	doc := s.Document(req.ID).SetPublic(req.Public)
	if req.Description != nil {
		doc.SetDescription(*req.Description)
	} else if !doc.IsNew() {
		current, err := doc.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		doc.SetDescription(current.Description)
	}
	for _, edit := range req.Edits {
		if edit.Filename == "" {
			return nil, fmt.Errorf("edit: filename is required")
		}
		file := doc.File(edit.Filename)
		switch edit.Mode {
		case ModeWrite, "":
			file.Write(edit.Content)
		case ModeAppend:
			file.Append(edit.Content)
		case ModePrepend:
			file.Prepend(edit.Content)
		default:
			return nil, fmt.Errorf("edit: unsupported mode %q", edit.Mode)
		}
	}
	pending := doc.Pending()
	snapshot, err := doc.Save(ctx)
	if err != nil {
		return nil, err
	}
	logf("edit: id=%s edits=%d queued=%d", snapshot.ID, len(req.Edits), pending)
	return snapshot, nil
}
