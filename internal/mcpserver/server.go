// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes GitLab merge request operations as typed tools over stdio
// JSON-RPC. It wraps the internal/gitlab client, validating every
// invocation against its tool's input contract before the provider is
// called and funneling every failure through a single error format.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/perchard/gitlab-mr-mcp/internal/config"
	"github.com/perchard/gitlab-mr-mcp/internal/gitlab"
)

// Server holds the tool catalog and the GitLab client the handlers call.
type Server struct {
	client gitlab.Client
	cfg    config.Config
	ops    []operation
}

// NewServer creates a server exposing the merge request tool catalog over
// the given client. Ambient project filters are read from cfg.
func NewServer(client gitlab.Client, cfg config.Config) (*Server, error) {
	s := &Server{client: client, cfg: cfg}
	ops, err := s.operations()
	if err != nil {
		return nil, err
	}
	s.ops = ops
	return s, nil
}

// Run connects to GitLab and serves the tool catalog on stdio. It blocks
// until the context is cancelled or stdin is closed.
func Run(ctx context.Context, cfg config.Config) error {
	client, err := gitlab.NewClient(cfg.GitLabToken, cfg.GitLabHost)
	if err != nil {
		return err
	}
	s, err := NewServer(client, cfg)
	if err != nil {
		return err
	}

	mcpServer := server.NewMCPServer(
		"gitlab-mr-mcp",
		config.Version,
		server.WithToolCapabilities(true),
	)

	tools := make([]server.ServerTool, 0, len(s.ops))
	for _, op := range s.ops {
		tools = append(tools, server.ServerTool{Tool: op.tool, Handler: s.toolHandler(op)})
	}
	mcpServer.AddTools(tools...)

	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "[mcp] ", log.LstdFlags))

	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// toolHandler adapts one catalog entry to the transport's handler shape.
// Failures always surface as error-flagged results, never as protocol
// errors, so callers receive a readable message for every outcome.
func (s *Server) toolHandler(op operation) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.dispatch(ctx, op, req.GetArguments()), nil
	}
}

// Dispatch invokes the named tool with the given arguments. An unknown
// name produces an error result without any handler running.
func (s *Server) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	for _, op := range s.ops {
		if op.tool.Name == name {
			return s.dispatch(ctx, op, args)
		}
	}
	return failureResult(unknownToolError(name))
}

// Tools returns the catalog in its advertised order.
func (s *Server) Tools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(s.ops))
	for _, op := range s.ops {
		tools = append(tools, op.tool)
	}
	return tools
}

func (s *Server) dispatch(ctx context.Context, op operation, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = map[string]any{}
	}
	if err := op.schema.Validate(args); err != nil {
		return failureResult(validationError(schemaErrorDetail(err)))
	}
	payload, err := op.handler(ctx, args)
	if err != nil {
		return failureResult(err)
	}
	return successResult(payload)
}

// successResult serializes a handler payload into the single text content
// item every tool returns. String payloads pass through verbatim; they are
// the informational empty-collection sentences.
func successResult(payload any) *mcp.CallToolResult {
	if text, ok := payload.(string); ok {
		return mcp.NewToolResultText(text)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return failureResult(fmt.Errorf("marshal result: %w", err))
	}
	return mcp.NewToolResultText(string(data))
}
