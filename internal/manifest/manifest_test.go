package manifest

import (
	"context"
	"testing"
	"time"

	"github.com/viant/afs"
)

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	dir := "file://" + t.TempDir()

	got, err := Load(ctx, fs, dir)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil manifest, got %+v", got)
	}

	m := New("abc123")
	m.SyncedAt = time.Now().UTC().Truncate(time.Second)
	m.Files["a.txt"] = 42
	m.Files["b.md"] = ^uint64(0)
	if err := Save(ctx, fs, dir, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = Load(ctx, fs, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "abc123" || !got.SyncedAt.Equal(m.SyncedAt) {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.Files) != 2 || got.Files["a.txt"] != 42 || got.Files["b.md"] != ^uint64(0) {
		t.Fatalf("files mismatch: %v", got.Files)
	}
}
