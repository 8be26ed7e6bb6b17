// Package mcpserver implements the MCP tool surface for Notion. It
// exposes search, page, and database tools; translates Markdown content
// and flat property maps to the Notion API's block and property
// encodings; and resolves free-form names to identifiers through a
// local registry.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/agentplexus/mcp-notion/cache"
	"github.com/agentplexus/mcp-notion/notion"
)

// Registry is the local name→identifier lookup the server resolves
// against. *cache.Store implements it.
type Registry interface {
	GetByName(ctx context.Context, name string) (*cache.Entry, error)
	GetByID(ctx context.Context, id string) (*cache.Entry, error)
	Upsert(ctx context.Context, id, name, entryType, path string) error
	Search(ctx context.Context, query string) ([]cache.Entry, error)
}

// Server is the MCP server for Notion.
type Server struct {
	client   *notion.Client
	registry Registry
	logger   *zap.Logger
}

// New creates a new MCP server with the given Notion client and name
// registry.
func New(client *notion.Client, registry Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{client: client, registry: registry, logger: logger}
}

// ToolResult represents the result of a tool execution.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock represents a content block in an MCP response.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// HandleTool dispatches a tool call to the appropriate handler. Handler
// errors are returned as error results rather than protocol failures.
func (s *Server) HandleTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	var result any
	var err error

	switch name {
	case "search":
		result, err = s.handleSearch(ctx, args)
	case "get_page":
		result, err = s.handleGetPage(ctx, args)
	case "create_page":
		result, err = s.handleCreatePage(ctx, args)
	case "update_page":
		result, err = s.handleUpdatePage(ctx, args)
	case "delete_page":
		result, err = s.handleDeletePage(ctx, args)
	case "query_database":
		result, err = s.handleQueryDatabase(ctx, args)
	case "update_database":
		result, err = s.handleUpdateDatabase(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	if err != nil {
		s.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		return &ToolResult{
			Content: []ContentBlock{{Type: "text", Text: err.Error()}},
			IsError: true,
		}, nil
	}
	s.logger.Debug("tool call completed", zap.String("tool", name))

	// Plain-string results pass through; everything else is JSON.
	if text, ok := result.(string); ok {
		return &ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}, nil
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ToolResult{Content: []ContentBlock{{Type: "text", Text: string(text)}}}, nil
}

// ResolveID resolves a free-form token — a name or an identifier in
// any dash form — to a dashed identifier. Well-formed identifiers
// short-circuit without a registry lookup; names are matched
// case-insensitively; tokens that resolve to nothing are returned
// unchanged and left for the remote API to reject. Registry faults
// propagate.
func (s *Server) ResolveID(ctx context.Context, token string) (string, error) {
	clean := notion.NormalizeID(token)
	if notion.IsValidID(clean) {
		return notion.FormatID(clean), nil
	}

	entry, err := s.registry.GetByName(ctx, token)
	if err != nil {
		return "", fmt.Errorf("registry lookup for %q: %w", token, err)
	}
	if entry != nil {
		return notion.FormatID(entry.ID), nil
	}
	return token, nil
}
