package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/agentplexus/mcp-notion/markdown"
	"github.com/agentplexus/mcp-notion/notion"
	"github.com/agentplexus/mcp-notion/properties"
)

// maxSearchResults caps API-backed search results.
const maxSearchResults = 10

// defaultQueryLimit is the query_database result cap when the caller
// does not pass one.
const defaultQueryLimit = 100

func (s *Server) handleSearch(ctx context.Context, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	filterType, _ := args["type"].(string)

	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	cached, err := s.registry.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cache search: %w", err)
	}
	if filterType != "" {
		filtered := cached[:0]
		for _, entry := range cached {
			if entry.Type == filterType {
				filtered = append(filtered, entry)
			}
		}
		cached = filtered
	}
	if len(cached) > 0 {
		results := make([]map[string]any, len(cached))
		for i, entry := range cached {
			results[i] = map[string]any{
				"id":   notion.FormatID(entry.ID),
				"name": entry.Name,
				"type": entry.Type,
				"path": entry.Path,
			}
		}
		return map[string]any{"source": "cache", "results": results}, nil
	}

	apiResults, err := s.client.Search(ctx, query, filterType)
	if err != nil {
		return nil, err
	}
	if len(apiResults) > maxSearchResults {
		apiResults = apiResults[:maxSearchResults]
	}

	results := make([]map[string]any, len(apiResults))
	for i, item := range apiResults {
		results[i] = formatSearchResult(item)
	}
	return map[string]any{"source": "api", "results": results}, nil
}

func formatSearchResult(item notion.SearchResult) map[string]any {
	itemType := item.Object
	if itemType == "" {
		itemType = "page"
	}

	var title string
	if itemType == "page" {
		title = markdown.ExtractTitle(item.Properties)
	} else {
		// Databases and data sources carry their title at the top level.
		title = markdown.DefaultTitle
		if len(item.Title) > 0 {
			title = item.Title[0].PlainText
		}
	}

	return map[string]any{
		"id":   item.ID,
		"name": title,
		"type": itemType,
		"url":  item.URL,
	}
}

func (s *Server) handleGetPage(ctx context.Context, args map[string]any) (any, error) {
	pageID, _ := args["id"].(string)
	if pageID == "" {
		return nil, fmt.Errorf("id is required")
	}

	resolvedID, err := s.ResolveID(ctx, pageID)
	if err != nil {
		return nil, err
	}

	page, err := s.client.GetPage(ctx, resolvedID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.client.GetBlocks(ctx, resolvedID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":      resolvedID,
		"title":   markdown.ExtractTitle(page.Properties),
		"url":     page.URL,
		"content": markdown.ToMarkdown(blocks),
	}, nil
}

func (s *Server) handleCreatePage(ctx context.Context, args map[string]any) (any, error) {
	parent, _ := args["parent"].(string)
	title, _ := args["title"].(string)
	content, _ := args["content"].(string)
	userProps, _ := args["properties"].(map[string]any)

	if parent == "" || title == "" {
		return nil, fmt.Errorf("parent and title are required")
	}

	parentID, err := s.ResolveID(ctx, parent)
	if err != nil {
		return nil, err
	}
	inDatabase, err := s.isDatabase(ctx, parent, parentID)
	if err != nil {
		return nil, err
	}

	var children []notion.Block
	if content != "" {
		children = markdown.ToBlocks(content)
	}

	var dbProps map[string]any
	if inDatabase {
		db, err := s.client.GetDatabase(ctx, parentID)
		if err != nil {
			return nil, err
		}
		dbProps = properties.Expand(userProps, db.Properties, title)
	}

	page, err := s.client.CreatePage(ctx, notion.CreatePageParams{
		ParentID:   parentID,
		Title:      title,
		Properties: dbProps,
		Children:   children,
		InDatabase: inDatabase,
	})
	if err != nil {
		return nil, err
	}

	if err := s.registry.Upsert(ctx, page.ID, title, "page", ""); err != nil {
		s.logger.Warn("failed to cache created page", zap.String("id", page.ID), zap.Error(err))
	}

	result := map[string]any{"id": page.ID, "url": page.URL, "title": title}
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Created page: %s\n\n%s", title, text), nil
}

// isDatabase reports whether a create_page parent refers to a
// database: either the cache says so, or the remote API recognizes it
// as one.
func (s *Server) isDatabase(ctx context.Context, name, resolvedID string) (bool, error) {
	entry, err := s.registry.GetByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("registry lookup for %q: %w", name, err)
	}
	if entry != nil && entry.Type == "database" {
		return true, nil
	}

	if _, err := s.client.GetDatabase(ctx, resolvedID); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *Server) handleUpdatePage(ctx context.Context, args map[string]any) (any, error) {
	pageID, _ := args["id"].(string)
	userProps, _ := args["properties"].(map[string]any)
	appendContent, _ := args["append"].(string)

	if pageID == "" {
		return nil, fmt.Errorf("id is required")
	}

	resolvedID, err := s.ResolveID(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if len(userProps) > 0 {
		if err := s.client.UpdatePage(ctx, resolvedID, userProps); err != nil {
			return nil, err
		}
	}

	if appendContent != "" {
		blocks := markdown.ToBlocks(appendContent)
		if err := s.client.AppendBlocks(ctx, resolvedID, blocks); err != nil {
			return nil, err
		}
	}

	return fmt.Sprintf("Updated page %s", resolvedID), nil
}

func (s *Server) handleDeletePage(ctx context.Context, args map[string]any) (any, error) {
	pageID, _ := args["id"].(string)
	if pageID == "" {
		return nil, fmt.Errorf("id is required")
	}

	resolvedID, err := s.ResolveID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := s.client.DeleteBlock(ctx, resolvedID); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Archived page %s", resolvedID), nil
}

func (s *Server) handleQueryDatabase(ctx context.Context, args map[string]any) (any, error) {
	dbID, _ := args["id"].(string)
	filter, _ := args["filter"].(map[string]any)

	limit := defaultQueryLimit
	if l, ok := args["limit"].(float64); ok {
		limit = int(l)
	}

	if dbID == "" {
		return nil, fmt.Errorf("id is required")
	}

	resolvedID, err := s.ResolveID(ctx, dbID)
	if err != nil {
		return nil, err
	}

	pages, err := s.client.QueryDatabase(ctx, resolvedID, filter, limit)
	if err != nil {
		return nil, err
	}

	results := make([]map[string]any, len(pages))
	for i, page := range pages {
		results[i] = map[string]any{
			"id":         page.ID,
			"url":        page.URL,
			"properties": properties.Simplify(page.Properties),
		}
	}
	return map[string]any{"count": len(results), "results": results}, nil
}

func (s *Server) handleUpdateDatabase(ctx context.Context, args map[string]any) (any, error) {
	dbID, _ := args["id"].(string)
	title, _ := args["title"].(string)
	userProps, _ := args["properties"].(map[string]any)

	if dbID == "" {
		return nil, fmt.Errorf("id is required")
	}

	resolvedID, err := s.ResolveID(ctx, dbID)
	if err != nil {
		return nil, err
	}
	if err := s.client.UpdateDatabase(ctx, resolvedID, title, userProps); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Updated database %s", resolvedID), nil
}
