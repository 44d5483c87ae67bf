package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

var echoParams = []schema.ParameterSpec{
	{Name: "item_id", Type: schema.TypeString, Required: true, Positional: true},
	{Name: "limit", Type: schema.TypeInteger, Positional: true},
	{Name: "body", Type: schema.TypeObject},
}

// echoTool returns its arguments as JSON, or errInvalid when item_id is absent.
func echoTool(name string) schema.ToolDescriptor {
	return schema.ToolDescriptor{
		Name:        name,
		Description: "Echo arguments.",
		Parameters:  echoParams,
		Invoke: func(_ context.Context, args map[string]any) (string, error) {
			if _, ok := args["item_id"]; !ok {
				return "", errInvalid
			}
			data, err := json.Marshal(args)
			return string(data), err
		},
	}
}

var errInvalid = errors.New("missing required parameter 'item_id'")

func connect(t *testing.T, srv *Server) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := sdk.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestServer_ListTools(t *testing.T) {
	srv := NewServer("ebay", "test")
	require.NoError(t, srv.Register(echoTool("buy_browse_get_item")))
	cs := connect(t, srv)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)

	tool := res.Tools[0]
	assert.Equal(t, "buy_browse_get_item", tool.Name)
	assert.Equal(t, "Echo arguments.", tool.Description)

	got, err := json.Marshal(tool.InputSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"item_id": {"type": "string"},
			"limit": {"type": ["integer", "null"]},
			"body": {"type": ["object", "null"], "description": "JSON object or array; a JSON-encoded string is also accepted."}
		},
		"required": ["item_id"]
	}`, string(got))
}

func TestServer_CallTool(t *testing.T) {
	srv := NewServer("ebay", "test")
	require.NoError(t, srv.Register(echoTool("buy_browse_get_item")))
	cs := connect(t, srv)

	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      "buy_browse_get_item",
		Arguments: map[string]any{"item_id": "v1|1|0", "limit": 3},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"item_id":"v1|1|0","limit":3}`, text.Text)
}

func TestToolHandler_InvokeErrorIsProtocolError(t *testing.T) {
	handler := toolHandler(echoTool("buy_browse_get_item"))

	_, err := handler(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{Name: "buy_browse_get_item", Arguments: json.RawMessage(`{"limit":1}`)},
	})
	assert.ErrorIs(t, err, errInvalid)
}

func TestToolHandler_DecodesArguments(t *testing.T) {
	var got map[string]any
	desc := echoTool("x")
	desc.Invoke = func(_ context.Context, args map[string]any) (string, error) {
		got = args
		return "ok", nil
	}
	handler := toolHandler(desc)

	for _, raw := range []string{``, `null`, `{}`} {
		res, err := handler(context.Background(), &sdk.CallToolRequest{
			Params: &sdk.CallToolParamsRaw{Name: "x", Arguments: json.RawMessage(raw)},
		})
		require.NoError(t, err, "arguments %q", raw)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Equal(t, "ok", res.Content[0].(*sdk.TextContent).Text)
	}

	_, err := handler(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{Name: "x", Arguments: json.RawMessage(`{"n": 12345678901234567890}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), got["n"])

	_, err = handler(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{Name: "x", Arguments: json.RawMessage(`[1,2]`)},
	})
	assert.Error(t, err)
}

func TestServer_RegisterRejectsDuplicates(t *testing.T) {
	srv := NewServer("ebay", "test")
	require.NoError(t, srv.Register(echoTool("a")))
	assert.Error(t, srv.Register(echoTool("a")))
}

func TestInputSchema_NoParameters(t *testing.T) {
	s := InputSchema(nil)
	assert.Equal(t, "object", s.Type)
	assert.Empty(t, s.Properties)
	assert.Empty(t, s.Required)
}
