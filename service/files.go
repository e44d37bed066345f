package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/gist/internal/fingerprint"
	"github.com/viant/gist/internal/lock"
	"github.com/viant/gist/internal/manifest"
)

type localFile struct {
	name    string
	content []byte
}

// listFiles reads a file, or the direct files of a directory, converted to text.
func (s *Service) listFiles(ctx context.Context, location string) ([]localFile, error) {
	object, err := s.fs.Object(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", location, err)
	}
	if !object.IsDir() {
		item, err := s.readFile(ctx, object.Name(), object.URL())
		if err != nil {
			return nil, err
		}
		return []localFile{item}, nil
	}
	objects, err := s.fs.List(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", location, err)
	}
	var items []localFile
	for _, object := range objects {
		if object.IsDir() || object.Name() == manifest.Name || object.Name() == lock.Name {
			continue
		}
		item, err := s.readFile(ctx, object.Name(), object.URL())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].name < items[j].name })
	return items, nil
}

func (s *Service) readFile(ctx context.Context, name, URL string) (localFile, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return localFile{}, fmt.Errorf("download %s: %w", URL, err)
	}
	name, text, err := s.converter.Text(name, data)
	if err != nil {
		return localFile{}, fmt.Errorf("convert %s: %w", URL, err)
	}
	return localFile{name: name, content: text}, nil
}

// lockFolder locks a local folder; other storage schemes are not locked.
func lockFolder(location string) (*lock.Lock, error) {
	if url.Scheme(location, file.Scheme) != file.Scheme {
		return nil, nil
	}
	return lock.Acquire(url.Path(location))
}

// Clone downloads every gist file into req.Dest and returns the written URLs.
// The folder manifest is updated so a later Push can omit the gist id.
func (s *Service) Clone(ctx context.Context, req CloneRequest) (written []string, err error) {
	logf := s.resolveLogf(req.Logf)
	if req.Dest == "" {
		return nil, fmt.Errorf("clone: destination is required")
	}
	snapshot, err := s.Get(ctx, GetRequest{ID: req.ID})
	if err != nil {
		return nil, err
	}
	folderLock, err := lockFolder(req.Dest)
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	defer func() {
		if rerr := folderLock.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	names := make([]string, 0, len(snapshot.Files))
	for name := range snapshot.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	state := manifest.New(snapshot.ID)
	written = make([]string, 0, len(names))
	for _, name := range names {
		if f := snapshot.Files[name]; f != nil && f.Truncated {
			logf("clone: %s is truncated in the API response", name)
		}
		content := []byte(snapshot.Content(name))
		target := url.Join(req.Dest, name)
		if err := s.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
			return nil, fmt.Errorf("clone: write %s: %w", target, err)
		}
		if state.Files[name], err = fingerprint.Of(content); err != nil {
			return nil, err
		}
		logf("clone: wrote %s", target)
		written = append(written, target)
	}
	state.SyncedAt = time.Now()
	if err := manifest.Save(ctx, s.fs, req.Dest, state); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	return written, nil
}

// Push writes local files whose content differs from the gist and saves once.
// Nothing is sent when every file is unchanged. When req.ID is empty the id is
// taken from the folder manifest written by Clone or a previous Push.
// Files the manifest shows unchanged locally since the last sync are skipped,
// so remote edits made meanwhile are not overwritten.
func (s *Service) Push(ctx context.Context, req PushRequest) (result *PushResult, err error) {
	logf := s.resolveLogf(req.Logf)
	object, err := s.fs.Object(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("push: stat %s: %w", req.Path, err)
	}
	isDir := object.IsDir()
	id := req.ID
	var previous *manifest.Manifest
	if isDir {
		var folderLock *lock.Lock
		if folderLock, err = lockFolder(req.Path); err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
		defer func() {
			if rerr := folderLock.Release(); rerr != nil && err == nil {
				err = rerr
			}
		}()
		if previous, err = manifest.Load(ctx, s.fs, req.Path); err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
		if previous != nil && id == "" {
			id = previous.ID
		}
	}
	if previous != nil && previous.ID != id {
		previous = nil
	}
	if id == "" {
		return nil, fmt.Errorf("push: gist id is required when %s has no manifest", req.Path)
	}

	doc := s.Document(id)
	snapshot, err := doc.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	doc.SetDescription(snapshot.Description)
	items, err := s.listFiles(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	state := manifest.New(id)
	result = &PushResult{ID: id, URL: snapshot.HTMLURL}
	for _, item := range items {
		fp, err := fingerprint.Of(item.content)
		if err != nil {
			return nil, err
		}
		state.Files[item.name] = fp
		if last, ok := previous.Fingerprint(item.name); ok && last == fp {
			result.Skipped = append(result.Skipped, item.name)
			continue
		}
		_, exists := snapshot.Files[item.name]
		same, err := fingerprint.Equal([]byte(snapshot.Content(item.name)), item.content)
		if err != nil {
			return nil, err
		}
		if exists && same {
			result.Skipped = append(result.Skipped, item.name)
			continue
		}
		doc.File(item.name).Write(string(item.content))
		result.Changed = append(result.Changed, item.name)
	}
	if len(result.Changed) == 0 {
		logf("push: id=%s (no changes)", id)
	} else {
		if _, err := doc.Save(ctx); err != nil {
			return nil, err
		}
		logf("push: id=%s changed=%d skipped=%d", id, len(result.Changed), len(result.Skipped))
	}
	if isDir {
		state.SyncedAt = time.Now()
		if err := manifest.Save(ctx, s.fs, req.Path, state); err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
	}
	return result, nil
}
