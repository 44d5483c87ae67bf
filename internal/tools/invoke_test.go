package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/schema"
)

type recordedCall struct {
	area, method string
	positional   []any
	keyword      map[string]any
	info         schema.CallInfo
}

type fakeClient struct {
	mu     sync.Mutex
	calls  []recordedCall
	result any
	err    error
	panics any
}

func (f *fakeClient) Call(ctx context.Context, area, method string, positional []any, keyword map[string]any) (any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{
		area:       area,
		method:     method,
		positional: positional,
		keyword:    keyword,
		info:       schema.CallFrom(ctx),
	})
	f.mu.Unlock()
	if f.panics != nil {
		panic(f.panics)
	}
	return f.result, f.err
}

func (f *fakeClient) lastCall(t *testing.T) recordedCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "client was not called")
	return f.calls[len(f.calls)-1]
}

type staticSource struct {
	client schema.RemoteClient
	err    error
	hits   int
}

func (s *staticSource) Client(context.Context) (schema.RemoteClient, error) {
	s.hits++
	if s.err != nil {
		return nil, s.err
	}
	return s.client, nil
}

func newTestAdapter(client *fakeClient) (*Adapter, *staticSource) {
	src := &staticSource{client: client}
	return NewAdapter(src), src
}

var shapeParams = []schema.ParameterSpec{
	{Name: "a", Type: schema.TypeString, Annotation: "str", Required: true, Positional: true},
	{Name: "b", Type: schema.TypeString, Annotation: "str", Positional: true},
	{Name: "c", Type: schema.TypeObject, Annotation: "dict"},
}

func TestInvoke_ShapesPositionalAndKeyword(t *testing.T) {
	client := &fakeClient{result: map[string]any{"ok": true}}
	adapter, _ := newTestAdapter(client)
	invoke := adapter.Build("sell_inventory", "m", shapeParams)

	out, err := invoke(context.Background(), map[string]any{"a": "x", "c": `{"k":1}`})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	call := client.lastCall(t)
	assert.Equal(t, "sell_inventory", call.area)
	assert.Equal(t, "m", call.method)
	assert.Equal(t, []any{"x"}, call.positional)
	assert.Equal(t, map[string]any{"c": map[string]any{"k": json.Number("1")}}, call.keyword)
	assert.Equal(t, "sell_inventory_m", call.info.Tool)
	assert.NotEmpty(t, call.info.ID)
}

func TestInvoke_FillsPositionalGapsWithNil(t *testing.T) {
	params := []schema.ParameterSpec{
		{Name: "a", Type: schema.TypeString, Positional: true},
		{Name: "k", Type: schema.TypeInteger},
		{Name: "b", Type: schema.TypeString, Positional: true},
		{Name: "c", Type: schema.TypeString, Positional: true},
	}
	client := &fakeClient{result: "done"}
	adapter, _ := newTestAdapter(client)

	out, err := adapter.Build("x", "m", params)(context.Background(), map[string]any{"c": "z", "k": 3})
	require.NoError(t, err)
	assert.Equal(t, `"done"`, out)

	call := client.lastCall(t)
	assert.Equal(t, []any{nil, nil, "z"}, call.positional)
	assert.Equal(t, map[string]any{"k": 3}, call.keyword)
}

func TestInvoke_NullOptionalIsOmitted(t *testing.T) {
	client := &fakeClient{}
	adapter, _ := newTestAdapter(client)

	_, err := adapter.Build("x", "m", shapeParams)(context.Background(), map[string]any{"a": "x", "b": nil, "c": nil})
	require.NoError(t, err)

	call := client.lastCall(t)
	assert.Equal(t, []any{"x"}, call.positional)
	assert.Empty(t, call.keyword)
}

func TestInvoke_StructuredValuesPassThrough(t *testing.T) {
	client := &fakeClient{}
	adapter, _ := newTestAdapter(client)
	invoke := adapter.Build("x", "m", shapeParams)

	_, err := invoke(context.Background(), map[string]any{"a": "x", "c": map[string]any{"k": "v"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, client.lastCall(t).keyword["c"])

	_, err = invoke(context.Background(), map[string]any{"a": "x", "c": `[1, "two"]`})
	require.NoError(t, err)
	assert.Equal(t, []any{json.Number("1"), "two"}, client.lastCall(t).keyword["c"])
}

func TestInvoke_MissingRequired(t *testing.T) {
	params := append([]schema.ParameterSpec{}, shapeParams...)
	params = append(params, schema.ParameterSpec{Name: "lang", Type: schema.TypeString, Required: true})

	cases := map[string]struct {
		args  map[string]any
		param string
	}{
		"positional":      {map[string]any{"lang": "en-US"}, "a"},
		"positional null": {map[string]any{"a": nil, "lang": "en-US"}, "a"},
		"keyword":         {map[string]any{"a": "x"}, "lang"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{}
			adapter, src := newTestAdapter(client)

			_, err := adapter.Build("x", "m", params)(context.Background(), tc.args)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.param, verr.Param)
			assert.Equal(t, fmt.Sprintf("missing required parameter '%s'", tc.param), verr.Error())
			assert.Zero(t, src.hits, "no client is built for invalid input")
			assert.Empty(t, client.calls)
		})
	}
}

func TestInvoke_JSONNullCountsAsAbsent(t *testing.T) {
	params := []schema.ParameterSpec{
		{Name: "body", Type: schema.TypeObject, Annotation: "dict", Required: true},
		{Name: "extra", Type: schema.TypeObject, Annotation: "dict"},
	}
	client := &fakeClient{}
	adapter, src := newTestAdapter(client)
	invoke := adapter.Build("x", "m", params)

	_, err := invoke(context.Background(), map[string]any{"body": " null "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "body", verr.Param)
	assert.Equal(t, "missing required parameter 'body'", verr.Error())
	assert.Zero(t, src.hits)

	_, err = invoke(context.Background(), map[string]any{"body": `{}`, "extra": "null"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"body": map[string]any{}}, client.lastCall(t).keyword)
}

func TestInvoke_InvalidJSON(t *testing.T) {
	for _, raw := range []string{"{not json", "", `{"a":1} trailing`} {
		client := &fakeClient{}
		adapter, _ := newTestAdapter(client)

		_, err := adapter.Build("x", "m", shapeParams)(context.Background(), map[string]any{"a": "x", "c": raw})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "input %q: got %v", raw, err)
		assert.Equal(t, "c", verr.Param)
		assert.Contains(t, verr.Error(), "parameter 'c' must be valid JSON")
		assert.Empty(t, client.calls)
	}
}

func TestInvoke_ConfigurationErrorIsReturned(t *testing.T) {
	src := &staticSource{err: &ConfigurationError{Missing: []string{"EBAY_CLIENT_ID"}}}
	adapter := NewAdapter(src)

	_, err := adapter.Build("x", "m", shapeParams)(context.Background(), map[string]any{"a": "x"})
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, []string{"EBAY_CLIENT_ID"}, cerr.Missing)
}

func TestInvoke_RemoteFailuresBecomePayloads(t *testing.T) {
	cases := []struct {
		name    string
		client  *fakeClient
		kind    string
		message string
	}{
		{
			name: "api error",
			client: &fakeClient{err: &ebay.APIError{StatusCode: 404, Errors: []ebay.ErrorDetail{
				{ErrorID: 11001, Message: "The specified item Id was not found."},
			}}},
			kind:    KindAPI,
			message: "ebay: HTTP 404: The specified item Id was not found. (errorId 11001)",
		},
		{
			name:    "argument error",
			client:  &fakeClient{err: &ebay.ArgumentError{Area: "x", Method: "m", Reason: "no such method"}},
			kind:    KindArgument,
			message: "ebay: x.m: no such method",
		},
		{
			name:    "plain error",
			client:  &fakeClient{err: errors.New("boom")},
			kind:    KindRemote,
			message: "boom",
		},
		{
			name:    "panic",
			client:  &fakeClient{panics: "kaboom"},
			kind:    KindPanic,
			message: "panic: kaboom",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, _ := newTestAdapter(tc.client)

			out, err := adapter.Build("x", "m", shapeParams)(context.Background(), map[string]any{"a": "x"})
			require.NoError(t, err)

			var payload map[string]string
			require.NoError(t, json.Unmarshal([]byte(out), &payload))
			assert.Equal(t, map[string]string{"error": tc.kind, "message": tc.message}, payload)
		})
	}
}

func TestInvoke_UnserialisableResult(t *testing.T) {
	client := &fakeClient{result: map[string]any{"n": 1, "fn": func() {}}}
	adapter, _ := newTestAdapter(client)

	out, err := adapter.Build("x", "m", shapeParams)(context.Background(), map[string]any{"a": "x"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, float64(1), decoded["n"])
	assert.IsType(t, "", decoded["fn"])
}

func TestInvoke_SelfReferencingResult(t *testing.T) {
	loop := map[string]any{"id": "1", "fn": func() {}}
	loop["self"] = loop
	client := &fakeClient{result: loop}
	adapter, _ := newTestAdapter(client)

	out, err := adapter.Build("x", "m", shapeParams)(context.Background(), map[string]any{"a": "x"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "1", decoded["id"])
	assert.IsType(t, map[string]any{}, decoded["self"])
}

func TestClassifyFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"token", &url.Error{Op: "Get", URL: "https://api.ebay.com", Err: &oauth2.RetrieveError{ErrorCode: "invalid_client"}}, KindAuthentication},
		{"network", &url.Error{Op: "Get", URL: "https://api.ebay.com", Err: errors.New("connection refused")}, KindNetwork},
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), KindTimeout},
		{"cancelled", ctx.Err(), KindTimeout},
		{"api", fmt.Errorf("call: %w", &ebay.APIError{StatusCode: 500}), KindAPI},
		{"other", errors.New("boom"), KindRemote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyFailure(tc.err))
		})
	}
}

func TestEncodeResult(t *testing.T) {
	assert.Equal(t, `null`, encodeResult(nil))
	assert.Equal(t, `{"id":"1"}`, encodeResult(map[string]any{"id": "1"}))
	assert.Equal(t, `{"1":"a"}`, encodeResult(map[int]string{1: "a"}))
	assert.Equal(t, `["(1+2i)"]`, encodeResult([]any{complex(1, 2)}))
}
