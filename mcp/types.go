package mcp

import "github.com/viant/gist/service"

type GetInput struct {
	ID string `json:"id"`
}

type GetOutput struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Public      bool              `json:"public"`
	URL         string            `json:"url,omitempty"`
	Files       map[string]string `json:"files"`
}

type ReadInput struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

type ReadOutput struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type EditInput struct {
	ID          string         `json:"id,omitempty"`
	Description *string        `json:"description,omitempty"`
	Public      *bool          `json:"public,omitempty"`
	Edits       []service.Edit `json:"edits"`
}

type CreateInput struct {
	Description string            `json:"description,omitempty"`
	Public      *bool             `json:"public,omitempty"`
	Files       map[string]string `json:"files"`
}

// SaveOutput is returned by tools that save a gist.
type SaveOutput struct {
	ID    string   `json:"id"`
	URL   string   `json:"url,omitempty"`
	Files []string `json:"files"`
}
