package ebay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

const maxResponseBytes = 32 << 20

// Call binds the arguments to method and performs the request. A nil
// argument means "use the default" and is never sent.
func (h *AreaHandle) Call(ctx context.Context, method string, positional []any, keyword map[string]any) (any, error) {
	m, ok := h.area.Method(method)
	if !ok {
		return nil, &ArgumentError{Area: h.area.ID, Method: method, Reason: "no such method"}
	}
	bound, err := bind(m, positional, keyword)
	if err != nil {
		return nil, &ArgumentError{Area: h.area.ID, Method: method, Reason: err.Error()}
	}
	req, err := h.client.newRequest(ctx, h.area, m, bound)
	if err != nil {
		return nil, fmt.Errorf("ebay: %s.%s: %w", h.area.ID, method, err)
	}
	return h.client.do(req)
}

// bind maps call arguments onto declared parameters the way a native call
// would: positionals fill non-keyword-only slots in order, keywords bind by
// name, and every parameter without a default must end up bound.
func bind(m *Method, positional []any, keyword map[string]any) (map[string]any, error) {
	var slots []Param
	for _, p := range m.Params {
		if !p.KeywordOnly {
			slots = append(slots, p)
		}
	}
	if len(positional) > len(slots) {
		return nil, fmt.Errorf("takes %d positional arguments but %d were given", len(slots), len(positional))
	}

	bound := make(map[string]any, len(m.Params))
	given := make(map[string]bool, len(positional)+len(keyword))
	for i, v := range positional {
		given[slots[i].Name] = true
		if v != nil {
			bound[slots[i].Name] = v
		}
	}
	for name, v := range keyword {
		if _, ok := m.Param(name); !ok {
			return nil, fmt.Errorf("got an unexpected keyword argument %q", name)
		}
		if given[name] {
			return nil, fmt.Errorf("got multiple values for argument %q", name)
		}
		given[name] = true
		if v != nil {
			bound[name] = v
		}
	}
	for _, p := range m.Params {
		if _, ok := bound[p.Name]; !ok && !p.Optional {
			return nil, fmt.Errorf("missing required argument %q", p.Name)
		}
	}
	return bound, nil
}

func (c *Client) newRequest(ctx context.Context, area *Area, m *Method, bound map[string]any) (*http.Request, error) {
	verb, path := m.Route()
	query := url.Values{}
	header := http.Header{}
	var body io.Reader

	for _, p := range m.Params {
		v, ok := bound[p.Name]
		if !ok {
			continue
		}
		switch p.In {
		case InPath:
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(formatValue(v)))
		case InHeader:
			header.Set(p.WireName(), formatValue(v))
		case InBody:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", p.Name, err)
			}
			body = bytes.NewReader(data)
			header.Set("Content-Type", "application/json")
		default:
			query.Set(p.WireName(), formatValue(v))
		}
	}

	target := c.endpoint(area) + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, verb, target, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get(MarketplaceHeader) == "" && c.marketplaceID != "" {
		req.Header.Set(MarketplaceHeader, c.marketplaceID)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (any, error) {
	if err := c.wait(req.Context()); err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	slog.Debug("eBay request",
		"call_id", schema.CallFrom(req.Context()).ID,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", req.Method, req.URL.Path, err)
	}
	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("ebay: %s %s: response exceeds %d bytes", req.Method, req.URL.Path, maxResponseBytes)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return decodeResponse(resp, data)
}

func decodeResponse(resp *http.Response, data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		out := map[string]any{"statusCode": resp.StatusCode}
		if loc := resp.Header.Get("Location"); loc != "" {
			out["location"] = loc
		}
		return out, nil
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return v, nil
	case mediaType == "" || strings.HasPrefix(mediaType, "text/"):
		return string(data), nil
	default:
		return map[string]any{
			"contentType": mediaType,
			"encoding":    "base64",
			"data":        base64.StdEncoding.EncodeToString(data),
		}, nil
	}
}

// formatValue renders a scalar or list argument for a path, query or header slot.
// Lists are comma-joined; structured values are sent as compact JSON.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []string:
		return strings.Join(x, ",")
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Map, reflect.Struct:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(v)
}
