package gist

import (
	"context"
	"net/http"
	"testing"

	"github.com/viant/gist/internal/gisttest"
)

func TestFile_NewGistEditsAreWrites(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()

	testCases := []struct {
		description string
		edit        func(f *File)
		expect      string
	}{
		{description: "write", edit: func(f *File) { f.Write("x") }, expect: "x"},
		{description: "append", edit: func(f *File) { f.Append("x") }, expect: "x"},
		{description: "prepend", edit: func(f *File) { f.Prepend("x") }, expect: "x"},
		{description: "append replaces", edit: func(f *File) { f.Write("a").Append("x") }, expect: "x"},
	}
	for _, tc := range testCases {
		d := newTestDocument(srv, "")
		tc.edit(d.File("a.txt"))
		got, ok := d.Content("a.txt")
		if !ok || got != tc.expect {
			t.Fatalf("%s: content mismatch: got %q want %q", tc.description, got, tc.expect)
		}
		if d.Pending() != 0 {
			t.Fatalf("%s: expected nothing queued, got %d", tc.description, d.Pending())
		}
	}
	if n := len(srv.Calls()); n != 0 {
		t.Fatalf("expected no network call, got %d", n)
	}
}

func TestFile_AppendsApplyInOrder(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()
	id := srv.Put("", map[string]string{"a.txt": "a"})

	d := newTestDocument(srv, id)
	d.File("a.txt").Append("b")
	d.File("a.txt").Append("c")
	if d.Pending() != 2 {
		t.Fatalf("expected 2 queued edits, got %d", d.Pending())
	}
	if len(srv.Calls()) != 0 {
		t.Fatalf("edits must not touch the network before save")
	}
	if _, err := d.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := srv.Content(id, "a.txt"); got != "abc" {
		t.Fatalf("content mismatch: got %q want %q", got, "abc")
	}
	if n := srv.Count(http.MethodGet); n != 1 {
		t.Fatalf("expected a single GET for the drain, got %d", n)
	}
}

func TestFile_PrependThenAppend(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()
	id := srv.Put("", map[string]string{"a.txt": "a"})

	d := newTestDocument(srv, id)
	d.File("a.txt").Prepend("x")
	d.File("a.txt").Append("y")
	if _, err := d.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := srv.Content(id, "a.txt"); got != "xay" {
		t.Fatalf("content mismatch: got %q want %q", got, "xay")
	}
}

func TestFile_MergeReadsStagedContentFirst(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()
	id := srv.Put("", map[string]string{"a.txt": "remote", "b.txt": "b"})

	d := newTestDocument(srv, id)
	d.File("a.txt").Write("local")
	d.File("a.txt").Append("+1")
	d.File("b.txt").Append("+2")
	d.File("c.txt").Append("new")
	if _, err := d.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	expect := map[string]string{"a.txt": "local+1", "b.txt": "b+2", "c.txt": "new"}
	for name, want := range expect {
		if got, _ := srv.Content(id, name); got != want {
			t.Fatalf("%s: got %q want %q", name, got, want)
		}
	}
}

func TestFile_AppendAcrossSaves(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()
	id := srv.Put("", map[string]string{"log.txt": "1"})
	ctx := context.Background()

	d := newTestDocument(srv, id)
	log := d.File("log.txt")
	log.Append("2")
	if _, err := d.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	log.Append("3")
	if _, err := d.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := srv.Content(id, "log.txt"); got != "123" {
		t.Fatalf("content mismatch: %q", got)
	}
	if n := srv.Count(http.MethodGet); n != 1 {
		t.Fatalf("expected the patch response to serve the second drain, got %d GETs", n)
	}
}

func TestFile_Read(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()
	id := srv.Put("", map[string]string{"a.txt": "a"})
	ctx := context.Background()

	got, err := newTestDocument(srv, "").File("a.txt").Read(ctx)
	if err != nil || got != "" {
		t.Fatalf("new gist read: got %q err %v", got, err)
	}
	if n := len(srv.Calls()); n != 0 {
		t.Fatalf("expected no network call, got %d", n)
	}

	d := newTestDocument(srv, id)
	if got, err = d.File("a.txt").Read(ctx); err != nil || got != "a" {
		t.Fatalf("read: got %q err %v", got, err)
	}
	if got, err = d.File("missing.txt").Read(ctx); err != nil || got != "" {
		t.Fatalf("missing file read: got %q err %v", got, err)
	}
}

func TestFile_ReadError(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()

	if _, err := newTestDocument(srv, "unknown").File("a.txt").Read(context.Background()); err == nil {
		t.Fatalf("expected error for unknown gist")
	}
}

func TestFile_DispatchFollowsCreation(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()
	ctx := context.Background()

	d := newTestDocument(srv, "")
	f := d.File("a.txt").Append("a")
	if _, err := d.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f.Append("b")
	if d.Pending() != 1 {
		t.Fatalf("expected append after create to be queued, got %d", d.Pending())
	}
	if _, err := d.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := srv.Content(d.ID(), "a.txt"); got != "ab" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestFile_WriteSupersedesQueuedEdits(t *testing.T) {
	srv := gisttest.NewServer()
	defer srv.Close()

	testCases := []struct {
		description string
		edit        func(f *File)
		expect      string
		pending     int
	}{
		{description: "append then write", edit: func(f *File) { f.Append("b").Write("x") }, expect: "x", pending: 0},
		{description: "prepend then write", edit: func(f *File) { f.Prepend("b").Write("x") }, expect: "x", pending: 0},
		{description: "write then append", edit: func(f *File) { f.Append("b").Write("x").Append("c") }, expect: "xc", pending: 1},
	}
	for _, tc := range testCases {
		id := srv.Put("", map[string]string{"a.txt": "a", "b.txt": "1"})
		d := newTestDocument(srv, id)
		d.File("b.txt").Append("2")
		tc.edit(d.File("a.txt"))
		if d.Pending() != tc.pending+1 {
			t.Fatalf("%s: expected %d queued edits, got %d", tc.description, tc.pending+1, d.Pending())
		}
		if _, err := d.Save(context.Background()); err != nil {
			t.Fatalf("%s: Save: %v", tc.description, err)
		}
		if got, _ := srv.Content(id, "a.txt"); got != tc.expect {
			t.Fatalf("%s: content mismatch: got %q want %q", tc.description, got, tc.expect)
		}
		if got, _ := srv.Content(id, "b.txt"); got != "12" {
			t.Fatalf("%s: other file edit lost: %q", tc.description, got)
		}
	}
}

func TestFile_Accessors(t *testing.T) {
	d := New("").SetPublic(true).SetDescription("notes")
	f := d.File("a.txt")
	if f.Name() != "a.txt" || f.Document() != d {
		t.Fatalf("file accessors mismatch: %q %p", f.Name(), f.Document())
	}
	if !d.Public() || d.Description() != "notes" || d.ID() != "" {
		t.Fatalf("document accessors mismatch: public=%v desc=%q id=%q", d.Public(), d.Description(), d.ID())
	}
}
