// Command mcp-notion runs a Notion MCP server exposing a small set of
// tools (search, read, create, update, delete, query) that accept basic
// Markdown content and flat property maps instead of raw Notion JSON.
//
// The server reads configuration from environment variables:
//   - NOTION_API_KEY: A Notion integration token (required)
//   - NOTION_CACHE_PATH: Path of the local name cache database
//     (default ~/.mcp-notion/cache.db)
//   - NOTION_SEED_CONFIG: Optional YAML file seeding the name cache
//
// Example usage:
//
//	export NOTION_API_KEY=secret_...
//	go run ./cmd/mcp-notion
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/agentplexus/mcp-notion/cache"
	"github.com/agentplexus/mcp-notion/mcpserver"
	"github.com/agentplexus/mcp-notion/notion"
)

const serverName = "mcp-notion"
const serverVersion = "0.1.0"
const protocolVersion = "2024-11-05"

// config is read from NOTION_* environment variables.
type config struct {
	APIKey     string `envconfig:"API_KEY" required:"true"`
	CachePath  string `envconfig:"CACHE_PATH"`
	SeedConfig string `envconfig:"SEED_CONFIG"`
}

// MCP JSON-RPC message types
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func main() {
	// Stdout carries JSON-RPC; all logging goes to stderr.
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var cfg config
	if err := envconfig.Process("notion", &cfg); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath, err = cache.DefaultPath()
		if err != nil {
			logger.Fatal("resolve cache path", zap.Error(err))
		}
	}

	store, err := cache.Open(cachePath)
	if err != nil {
		logger.Fatal("open cache", zap.String("path", cachePath), zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	if cfg.SeedConfig != "" {
		if err := store.SeedFromFile(context.Background(), cfg.SeedConfig); err != nil {
			logger.Fatal("seed cache", zap.String("path", cfg.SeedConfig), zap.Error(err))
		}
	}

	client := notion.NewClient(notion.BearerAuth{Token: cfg.APIKey})
	server := mcpserver.New(client, store, logger)

	if err := runStdio(server, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runStdio(server *mcpserver.Server, logger *zap.Logger) error {
	reader := bufio.NewReader(os.Stdin)
	encoder := json.NewEncoder(os.Stdout)

	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			sendError(encoder, logger, nil, -32700, "Parse error")
			continue
		}

		// Notifications (requests without an id) don't get responses
		if req.ID == nil {
			handleNotification(&req, logger)
			continue
		}

		response := handleRequest(server, &req)
		if err := encoder.Encode(response); err != nil {
			logger.Error("write error", zap.Error(err))
		}
	}
}

func handleNotification(req *jsonRPCRequest, logger *zap.Logger) {
	switch req.Method {
	case "initialized", "notifications/initialized":
		// Client acknowledges initialization complete - nothing to do
	case "cancelled", "notifications/cancelled":
		// Client cancelled a request - nothing to do for now
	default:
		logger.Info("unknown notification", zap.String("method", req.Method))
	}
}

func handleRequest(server *mcpserver.Server, req *jsonRPCRequest) *jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return handleInitialize(req)
	case "tools/list":
		return handleToolsList(server, req)
	case "tools/call":
		return handleToolsCall(server, req)
	case "ping":
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]string{},
		}
	default:
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: -32601, Message: "Method not found"},
		}
	}
}

func handleInitialize(req *jsonRPCRequest) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]string{
				"name":    serverName,
				"version": serverVersion,
			},
		},
	}
}

func handleToolsList(server *mcpserver.Server, req *jsonRPCRequest) *jsonRPCResponse {
	tools := server.Tools()

	toolsList := make([]map[string]any, len(tools))
	for i, tool := range tools {
		toolsList[i] = map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		}
	}

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"tools": toolsList,
		},
	}
}

func handleToolsCall(server *mcpserver.Server, req *jsonRPCRequest) *jsonRPCResponse {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: -32602, Message: "Invalid params"},
		}
	}

	result, err := server.HandleTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: -32000, Message: err.Error()},
		}
	}

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func sendError(encoder *json.Encoder, logger *zap.Logger, id any, code int, message string) {
	if err := encoder.Encode(&jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	}); err != nil {
		logger.Error("failed to send error response", zap.Error(err))
	}
}
