package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the Notion REST API root.
const DefaultBaseURL = "https://api.notion.com/v1"

// APIVersion is the Notion-Version header sent with every request.
// This version uses data_source endpoints for database schema and
// query operations.
const APIVersion = "2025-09-03"

// defaultTitleProperty is the property used when creating a database
// entry with no explicit properties.
const defaultTitleProperty = "Name"

// pageSize is the page size requested from paginated endpoints.
const pageSize = 100

// Client is a Notion REST API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       AuthMethod
}

// AuthMethod represents an authentication method.
type AuthMethod interface {
	Apply(req *http.Request)
}

// BearerAuth implements integration-token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements AuthMethod.
func (b BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+b.Token)
}

// NewClient creates a new Notion client.
func NewClient(auth AuthMethod, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		auth:       auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// APIError represents an error returned by the Notion API.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error %d: %s", e.StatusCode, e.Message)
}

// do sends a request with the standard headers and returns the response
// body. Non-2xx responses become an *APIError carrying failMsg.
func (c *Client) do(ctx context.Context, method, path string, payload any, failMsg string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Notion-Version", APIVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.auth.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    failMsg,
			Body:       string(body),
		}
	}

	return body, nil
}

// Search finds pages and data sources matching the query. filterType
// narrows results to "page" or "database" ("database" maps to the API's
// data_source object).
func (c *Client) Search(ctx context.Context, query, filterType string) ([]SearchResult, error) {
	payload := map[string]any{"query": query}
	switch filterType {
	case "page":
		payload["filter"] = map[string]string{"property": "object", "value": "page"}
	case "database":
		payload["filter"] = map[string]string{"property": "object", "value": "data_source"}
	}

	body, err := c.do(ctx, http.MethodPost, "/search", payload, "failed to search")
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("json decode error: %w", err)
	}
	return result.Results, nil
}

// GetPage retrieves page metadata and properties.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	body, err := c.do(ctx, http.MethodGet, "/pages/"+url.PathEscape(pageID), nil, "failed to get page")
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("json decode error: %w", err)
	}
	return &page, nil
}

// GetBlocks retrieves all child blocks of a page or block, following
// pagination cursors until the listing is exhausted.
func (c *Client) GetBlocks(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	cursor := ""

	for {
		path := fmt.Sprintf("/blocks/%s/children?page_size=%d", url.PathEscape(blockID), pageSize)
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}

		body, err := c.do(ctx, http.MethodGet, path, nil, "failed to get blocks")
		if err != nil {
			return nil, err
		}

		var result struct {
			Results    []Block `json:"results"`
			HasMore    bool    `json:"has_more"`
			NextCursor string  `json:"next_cursor"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("json decode error: %w", err)
		}

		blocks = append(blocks, result.Results...)
		if !result.HasMore {
			return blocks, nil
		}
		cursor = result.NextCursor
	}
}

// CreatePageParams describes a page to create.
type CreatePageParams struct {
	// ParentID is the page, database, or data source the page is
	// created under.
	ParentID string
	Title    string
	// Properties are pre-formatted property values for database
	// entries; the caller is expected to have set the title property.
	Properties map[string]any
	Children   []Block
	// InDatabase selects a database-style parent reference.
	InDatabase bool
}

// CreatePage creates a new page under a page or database.
func (c *Client) CreatePage(ctx context.Context, params CreatePageParams) (*Page, error) {
	var parent map[string]string
	var properties map[string]any

	if params.InDatabase {
		if c.IsDataSource(ctx, params.ParentID) {
			parent = map[string]string{"data_source_id": params.ParentID}
		} else {
			parent = map[string]string{"database_id": params.ParentID}
		}
		properties = params.Properties
		if len(properties) == 0 {
			properties = map[string]any{defaultTitleProperty: makeTitleProperty(params.Title)}
		}
	} else {
		parent = map[string]string{"page_id": params.ParentID}
		properties = map[string]any{"title": makeTitleProperty(params.Title)}
	}

	payload := map[string]any{"parent": parent, "properties": properties}
	if len(params.Children) > 0 {
		payload["children"] = params.Children
	}

	body, err := c.do(ctx, http.MethodPost, "/pages", payload, "failed to create page")
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("json decode error: %w", err)
	}
	return &page, nil
}

// makeTitleProperty builds a title property value from a plain string.
func makeTitleProperty(title string) map[string]any {
	return map[string]any{
		"title": []map[string]any{
			{"text": map[string]string{"content": title}},
		},
	}
}

// IsDataSource reports whether id names a data source, as opposed to a
// database container or page.
func (c *Client) IsDataSource(ctx context.Context, id string) bool {
	_, err := c.do(ctx, http.MethodGet, "/data_sources/"+url.PathEscape(id), nil, "failed to get data source")
	return err == nil
}

// UpdatePage updates a page's properties.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) error {
	payload := map[string]any{}
	if len(properties) > 0 {
		payload["properties"] = properties
	}
	_, err := c.do(ctx, http.MethodPatch, "/pages/"+url.PathEscape(pageID), payload, "failed to update page")
	return err
}

// AppendBlocks appends child blocks to a page or block.
func (c *Client) AppendBlocks(ctx context.Context, blockID string, children []Block) error {
	payload := map[string]any{"children": children}
	_, err := c.do(ctx, http.MethodPatch, "/blocks/"+url.PathEscape(blockID)+"/children", payload, "failed to append blocks")
	return err
}

// DeleteBlock archives a block or page.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/blocks/"+url.PathEscape(blockID), nil, "failed to delete block")
	return err
}

// QueryDatabase queries a database (by database or data source ID) with
// an optional filter, following pagination until limit results are
// collected or the listing is exhausted.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter map[string]any, limit int) ([]Page, error) {
	dataSourceID, err := c.resolveDataSourceID(ctx, databaseID)
	if err != nil {
		return nil, err
	}

	var results []Page
	cursor := ""

	for len(results) < limit {
		payload := map[string]any{"page_size": pageSize}
		if filter != nil {
			payload["filter"] = filter
		}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		body, err := c.do(ctx, http.MethodPost, "/data_sources/"+url.PathEscape(dataSourceID)+"/query", payload, "failed to query database")
		if err != nil {
			return nil, err
		}

		var result struct {
			Results    []Page `json:"results"`
			HasMore    bool   `json:"has_more"`
			NextCursor string `json:"next_cursor"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("json decode error: %w", err)
		}

		results = append(results, result.Results...)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// resolveDataSourceID maps a database ID to its first data source ID.
// IDs that already name a data source are returned as-is.
func (c *Client) resolveDataSourceID(ctx context.Context, databaseID string) (string, error) {
	if c.IsDataSource(ctx, databaseID) {
		return databaseID, nil
	}

	body, err := c.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(databaseID), nil, "failed to get database")
	if err != nil {
		return "", err
	}

	var db Database
	if err := json.Unmarshal(body, &db); err != nil {
		return "", fmt.Errorf("json decode error: %w", err)
	}
	if len(db.DataSources) == 0 {
		return "", fmt.Errorf("no data source found for database %s", databaseID)
	}
	return db.DataSources[0].ID, nil
}

// GetDatabase retrieves a database's schema. The id may name either the
// database container or one of its data sources; the schema always
// comes from a data source.
func (c *Client) GetDatabase(ctx context.Context, id string) (*DataSource, error) {
	body, err := c.do(ctx, http.MethodGet, "/data_sources/"+url.PathEscape(id), nil, "failed to get data source")
	if err == nil {
		var ds DataSource
		if err := json.Unmarshal(body, &ds); err != nil {
			return nil, fmt.Errorf("json decode error: %w", err)
		}
		return &ds, nil
	}

	body, err = c.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(id), nil, "failed to get database")
	if err != nil {
		return nil, err
	}

	var db Database
	if err := json.Unmarshal(body, &db); err != nil {
		return nil, fmt.Errorf("json decode error: %w", err)
	}
	if len(db.DataSources) == 0 {
		// Container without data sources: no schema to report.
		return &DataSource{Object: db.Object, ID: db.ID}, nil
	}

	body, err = c.do(ctx, http.MethodGet, "/data_sources/"+url.PathEscape(db.DataSources[0].ID), nil, "failed to get data source")
	if err != nil {
		return nil, err
	}
	var ds DataSource
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, fmt.Errorf("json decode error: %w", err)
	}
	return &ds, nil
}

// UpdateDatabase updates a database's title and/or property schema.
func (c *Client) UpdateDatabase(ctx context.Context, id, title string, properties map[string]any) error {
	payload := map[string]any{}
	if title != "" {
		payload["title"] = []map[string]any{
			{"text": map[string]string{"content": title}},
		}
	}
	if len(properties) > 0 {
		payload["properties"] = properties
	}
	_, err := c.do(ctx, http.MethodPatch, "/data_sources/"+url.PathEscape(id), payload, "failed to update database")
	return err
}
