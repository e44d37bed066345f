package service

// EditMode selects how an edit is staged.
type EditMode string

const (
	ModeWrite   EditMode = "write"
	ModeAppend  EditMode = "append"
	ModePrepend EditMode = "prepend"
)

// Edit defines one staged file change.
type Edit struct {
	Filename string   `json:"filename" yaml:"filename"`
	Content  string   `json:"content" yaml:"content"`
	Mode     EditMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// CreateRequest defines inputs for creating a gist from local files.
type CreateRequest struct {
	// Paths are file or directory URLs; directories contribute their direct files.
	Paths       []string
	Files       map[string]string
	Description string
	Public      bool
	Logf        func(format string, args ...any)
}

// GetRequest defines inputs for fetching a gist.
type GetRequest struct {
	ID string
}

// ReadRequest defines inputs for reading one gist file.
type ReadRequest struct {
	ID       string
	Filename string
}

// EditRequest defines inputs for applying edits in one save.
// An empty ID creates a new gist.
type EditRequest struct {
	ID          string
	Description *string
	Public      bool
	Edits       []Edit
	Logf        func(format string, args ...any)
}

// CloneRequest defines inputs for downloading gist files.
type CloneRequest struct {
	ID   string
	Dest string
	Logf func(format string, args ...any)
}

// PushRequest defines inputs for pushing changed local files to a gist.
type PushRequest struct {
	ID   string
	Path string
	Logf func(format string, args ...any)
}

// PushResult reports a push outcome.
type PushResult struct {
	ID      string   `json:"id"`
	Changed []string `json:"changed"`
	Skipped []string `json:"skipped"`
	URL     string   `json:"url,omitempty"`
}
