package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"

	"github.com/viant/gist/gist"
	"github.com/viant/gist/service"
)

//go:embed tools/get.md
var descGet string

//go:embed tools/read.md
var descRead string

//go:embed tools/edit.md
var descEdit string

//go:embed tools/create.md
var descCreate string

func registerTools(registry *protoserver.Registry, h *Handler) error {
	if err := protoserver.RegisterTool[*GetInput, *GetOutput](registry, "gist_get", descGet, func(ctx context.Context, in *GetInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.get(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*ReadInput, *ReadOutput](registry, "gist_read", descRead, func(ctx context.Context, in *ReadInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.read(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*EditInput, *SaveOutput](registry, "gist_edit", descEdit, func(ctx context.Context, in *EditInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.edit(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	if err := protoserver.RegisterTool[*CreateInput, *SaveOutput](registry, "gist_create", descCreate, func(ctx context.Context, in *CreateInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := h.create(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResult(out)
	}); err != nil {
		return err
	}

	return nil
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResult(payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	b, _ := json.Marshal(payload)
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: string(b)},
		},
		StructuredContent: map[string]any{"result": payload},
	}, nil
}

func (h *Handler) get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil || in.ID == "" {
		return nil, fmt.Errorf("mcp: missing id")
	}
	snapshot, err := h.service.Get(ctx, service.GetRequest{ID: in.ID})
	if err != nil {
		return nil, err
	}
	out := &GetOutput{
		ID:          snapshot.ID,
		Description: snapshot.Description,
		Public:      snapshot.Public,
		URL:         snapshot.HTMLURL,
		Files:       make(map[string]string, len(snapshot.Files)),
	}
	for name := range snapshot.Files {
		out.Files[name] = snapshot.Content(name)
	}
	h.metric("get", in.ID, start)
	return out, nil
}

func (h *Handler) read(ctx context.Context, in *ReadInput) (*ReadOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil || in.ID == "" {
		return nil, fmt.Errorf("mcp: missing id")
	}
	if in.Filename == "" {
		return nil, fmt.Errorf("mcp: missing filename")
	}
	content, err := h.service.Read(ctx, service.ReadRequest{ID: in.ID, Filename: in.Filename})
	if err != nil {
		return nil, err
	}
	h.metric("read", in.ID, start)
	return &ReadOutput{ID: in.ID, Filename: in.Filename, Content: content}, nil
}

func (h *Handler) edit(ctx context.Context, in *EditInput) (*SaveOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil || len(in.Edits) == 0 {
		return nil, fmt.Errorf("mcp: missing edits")
	}
	public := h.defaults.Public
	if in.Public != nil {
		public = *in.Public
	}
	description := in.Description
	if description == nil && in.ID == "" && h.defaults.Description != "" {
		description = &h.defaults.Description
	}
	snapshot, err := h.service.Edit(ctx, service.EditRequest{
		ID:          in.ID,
		Description: description,
		Public:      public,
		Edits:       in.Edits,
	})
	if err != nil {
		return nil, err
	}
	h.metric("edit", snapshot.ID, start)
	return saveOutput(snapshot), nil
}

func (h *Handler) create(ctx context.Context, in *CreateInput) (*SaveOutput, error) {
	start := time.Now()
	if h == nil || h.service == nil {
		return nil, fmt.Errorf("mcp: service unavailable")
	}
	if in == nil || len(in.Files) == 0 {
		return nil, gist.ErrNoFiles
	}
	public := h.defaults.Public
	if in.Public != nil {
		public = *in.Public
	}
	description := in.Description
	if description == "" {
		description = h.defaults.Description
	}
	snapshot, err := h.service.Create(ctx, service.CreateRequest{
		Files:       in.Files,
		Description: description,
		Public:      public,
	})
	if err != nil {
		return nil, err
	}
	h.metric("create", snapshot.ID, start)
	return saveOutput(snapshot), nil
}

func (h *Handler) metric(op, id string, start time.Time) {
	if h.metricsLog {
		log.Printf("mcp metric op=%s id=%s dur=%s", op, id, time.Since(start))
	}
}

func saveOutput(snapshot *gist.Snapshot) *SaveOutput {
	out := &SaveOutput{ID: snapshot.ID, URL: snapshot.HTMLURL}
	for name := range snapshot.Files {
		out.Files = append(out.Files, name)
	}
	sort.Strings(out.Files)
	return out
}
