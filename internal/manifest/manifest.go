// Package manifest records which gist a local folder tracks and the
// fingerprints of the file contents last synced with it.
package manifest

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/bintly"
)

// Name is the manifest file kept inside a synced folder.
const Name = ".gist"

const version = 1

// Manifest describes the last sync of a folder with a gist.
type Manifest struct {
	ID       string
	SyncedAt time.Time
	Files    map[string]uint64
}

// New creates an empty manifest for a gist id.
func New(id string) *Manifest {
	return &Manifest{ID: id, Files: map[string]uint64{}}
}

// Fingerprint returns the recorded fingerprint of name; a nil manifest records nothing.
func (m *Manifest) Fingerprint(name string) (uint64, bool) {
	if m == nil {
		return 0, false
	}
	fp, ok := m.Files[name]
	return fp, ok
}

// EncodeBinary encodes the manifest to a binary stream.
func (m *Manifest) EncodeBinary(stream *bintly.Writer) error {
	stream.Int16(version)
	stream.String(m.ID)
	stream.Time(m.SyncedAt)
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	stream.Int(len(names))
	for _, name := range names {
		stream.String(name)
		stream.String(strconv.FormatUint(m.Files[name], 16))
	}
	return nil
}

// DecodeBinary decodes the manifest from a binary stream.
func (m *Manifest) DecodeBinary(stream *bintly.Reader) error {
	var v int16
	stream.Int16(&v)
	if v != version {
		return fmt.Errorf("manifest: unsupported version %d", v)
	}
	stream.String(&m.ID)
	stream.Time(&m.SyncedAt)
	var size int
	stream.Int(&size)
	m.Files = make(map[string]uint64, size)
	for i := 0; i < size; i++ {
		var name, hex string
		stream.String(&name)
		stream.String(&hex)
		fp, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return fmt.Errorf("manifest: file %s: %w", name, err)
		}
		m.Files[name] = fp
	}
	return nil
}

// Load reads the manifest of dir; it returns nil without error when none exists.
func Load(ctx context.Context, fs afs.Service, dir string) (*Manifest, error) {
	URL := url.Join(dir, Name)
	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("manifest: stat %s: %w", URL, err)
	}
	if !ok {
		return nil, nil
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", URL, err)
	}
	readers := bintly.NewReaders()
	reader := readers.Get()
	defer readers.Put(reader)
	if err := reader.FromBytes(data); err != nil {
		return nil, fmt.Errorf("manifest: decode %s: %w", URL, err)
	}
	m := &Manifest{}
	if err := m.DecodeBinary(reader); err != nil {
		return nil, err
	}
	return m, nil
}

// Save writes the manifest into dir.
func Save(ctx context.Context, fs afs.Service, dir string, m *Manifest) error {
	writers := bintly.NewWriters()
	writer := writers.Get()
	defer writers.Put(writer)
	if err := m.EncodeBinary(writer); err != nil {
		return err
	}
	URL := url.Join(dir, Name)
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(writer.Bytes())); err != nil {
		return fmt.Errorf("manifest: write %s: %w", URL, err)
	}
	return nil
}
