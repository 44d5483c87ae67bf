// Package mcp hosts generated tools on an MCP server speaking over stdio.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

// Server adapts an MCP SDK server to the tool Host contract.
type Server struct {
	server *sdk.Server
	names  map[string]struct{}
}

// NewServer creates a server advertising the given implementation name and version.
func NewServer(name, version string) *Server {
	return &Server{
		server: sdk.NewServer(&sdk.Implementation{Name: name, Version: version}, nil),
		names:  make(map[string]struct{}),
	}
}

// Register exposes desc as an MCP tool. Registration happens once at startup,
// before Serve.
func (s *Server) Register(desc schema.ToolDescriptor) error {
	if _, ok := s.names[desc.Name]; ok {
		return fmt.Errorf("tool %q already registered", desc.Name)
	}
	s.names[desc.Name] = struct{}{}

	s.server.AddTool(&sdk.Tool{
		Name:        desc.Name,
		Description: desc.Description,
		InputSchema: InputSchema(desc.Parameters),
	}, toolHandler(desc))
	return nil
}

// Serve runs the server over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	slog.Info("Serving MCP over stdio", "tools", len(s.names))
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session on transport.
func (s *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// toolHandler bridges an MCP tools/call to desc.Invoke. Invoke errors are
// protocol errors; everything else is one text block.
func toolHandler(desc schema.ToolDescriptor) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid arguments: %w", desc.Name, err)
		}
		text, err := desc.Invoke(ctx, args)
		if err != nil {
			slog.Warn("Tool call rejected", "tool", desc.Name, "err", err)
			return nil, err
		}
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: text}},
		}, nil
	}
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := make(map[string]any)
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return args, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	return args, nil
}
