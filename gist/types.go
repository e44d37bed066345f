package gist

import "time"

// FileContent is a staged file record sent on save; a nil Content means the
// file was declared but nothing has been written to it yet.
type FileContent struct {
	Content *string `json:"content,omitempty"`
}

// SnapshotFile is a file as returned by the remote service.
type SnapshotFile struct {
	Filename  string  `json:"filename,omitempty"`
	Type      string  `json:"type,omitempty"`
	Language  string  `json:"language,omitempty"`
	RawURL    string  `json:"raw_url,omitempty"`
	Size      int     `json:"size,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
	Content   *string `json:"content,omitempty"`
}

// Snapshot is the remote representation of a gist.
type Snapshot struct {
	ID          string                   `json:"id"`
	Description string                   `json:"description"`
	Public      bool                     `json:"public"`
	Files       map[string]*SnapshotFile `json:"files"`
	HTMLURL     string                   `json:"html_url,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// Content returns the remote content of a file, or "" when the file or its content is absent.
func (s *Snapshot) Content(name string) string {
	if s == nil || s.Files == nil {
		return ""
	}
	file, ok := s.Files[name]
	if !ok || file == nil || file.Content == nil {
		return ""
	}
	return *file.Content
}

type createBody struct {
	Public      bool                    `json:"public"`
	Files       map[string]*FileContent `json:"files"`
	Description string                  `json:"description"`
}

type updateBody struct {
	Files       map[string]*FileContent `json:"files"`
	Description string                  `json:"description"`
}
