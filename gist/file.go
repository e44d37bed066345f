package gist

import "context"

// File is a handle staging edits of one file into its Document.
type File struct {
	name string
	doc  *Document
}

// Name returns the file name.
func (f *File) Name() string { return f.name }

// Document returns the gist the file belongs to.
func (f *File) Document() *Document { return f.doc }

// Write replaces the file content. Appends and prepends of the file still
// queued are superseded and will not run.
func (f *File) Write(content string) *File {
	f.doc.queue.drop(f.name)
	f.doc.write(f.name, content)
	return f
}

// Append adds content at the end of the file. On a created gist the edit is
// queued and applied against the remote content on the next save.
func (f *File) Append(content string) *File {
	if f.doc.IsNew() {
		return f.Write(content)
	}
	return f.add(content, false)
}

// Prepend adds content at the start of the file, see Append.
func (f *File) Prepend(content string) *File {
	if f.doc.IsNew() {
		return f.Write(content)
	}
	return f.add(content, true)
}

// Read returns the remote content of the file; "" for a new gist or a file the gist lacks.
func (f *File) Read(ctx context.Context) (string, error) {
	if f.doc.IsNew() {
		return "", nil
	}
	snapshot, err := f.doc.Fetch(ctx)
	if err != nil {
		return "", err
	}
	return snapshot.Content(f.name), nil
}

func (f *File) add(content string, prepend bool) *File {
	doc, name := f.doc, f.name
	doc.queue.push(name, func(ctx context.Context) error {
		snapshot, err := doc.Fetch(ctx)
		if err != nil {
			return err
		}
		existing, staged := doc.Content(name)
		if !staged {
			existing = snapshot.Content(name)
		}
		if prepend {
			doc.write(name, content+existing)
		} else {
			doc.write(name, existing+content)
		}
		return nil
	})
	return f
}
