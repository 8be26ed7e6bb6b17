package mcpserver

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Tools returns the list of available MCP tools.
func (s *Server) Tools() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "search",
			Description: "Find pages/databases by name. Checks the local cache first.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query",
					},
					"type": map[string]any{
						"type":        "string",
						"enum":        []string{"page", "database"},
						"description": "Filter by type",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "get_page",
			Description: "Get page content as Markdown.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Page ID (UUID) or cached name (e.g., 'COLLECT')",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "create_page",
			Description: "Create page. Content is basic Markdown: # headings, - lists, **bold**, *italic*, [links](url), > quotes.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"parent": map[string]any{
						"type":        "string",
						"description": "Parent page/database ID or cached name",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "Page title",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Page content as basic Markdown",
					},
					"properties": map[string]any{
						"type":        "object",
						"description": "Database properties (for database entries)",
					},
				},
				"required": []string{"parent", "title"},
			},
		},
		{
			Name:        "update_page",
			Description: "Update page properties or append content.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Page ID or cached name",
					},
					"properties": map[string]any{
						"type":        "object",
						"description": "Properties to update",
					},
					"append": map[string]any{
						"type":        "string",
						"description": "Markdown content to append",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "delete_page",
			Description: "Archive page.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Page ID or cached name",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "query_database",
			Description: "Query database with filters.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Database ID or cached name",
					},
					"filter": map[string]any{
						"type":        "object",
						"description": "Notion filter object",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Max results (default 100)",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "update_database",
			Description: "Update database schema.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Database ID or cached name",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "New database title",
					},
					"properties": map[string]any{
						"type":        "object",
						"description": "Properties schema to update",
					},
				},
				"required": []string{"id"},
			},
		},
	}
}
