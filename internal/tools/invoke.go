package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

const instrumentationName = "github.com/ebaymcp/ebaymcp/internal/tools"

// Adapter turns SDK methods into flat-argument invoke functions that call
// through a shared client.
type Adapter struct {
	source schema.ClientSource
	tracer trace.Tracer
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithTracer sets the tracer used for per-invocation spans. The global
// provider's tracer is used when unset.
func WithTracer(tracer trace.Tracer) AdapterOption {
	return func(a *Adapter) {
		a.tracer = tracer
	}
}

// NewAdapter returns an Adapter that obtains its client from source.
func NewAdapter(source schema.ClientSource, opts ...AdapterOption) *Adapter {
	a := &Adapter{source: source}
	for _, opt := range opts {
		opt(a)
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer(instrumentationName)
	}
	return a
}

// Build returns the invoke function for area.method.
//
// Validation failures and a missing client configuration are returned as
// errors. Everything that goes wrong inside the remote call, panics included,
// is logged and returned as a {"error", "message"} JSON payload instead.
func (a *Adapter) Build(area, method string, params []schema.ParameterSpec) schema.InvokeFunc {
	tool := area + "_" + method
	return func(ctx context.Context, args map[string]any) (string, error) {
		positional, keyword, err := shapeCall(params, args)
		if err != nil {
			return "", err
		}
		client, err := a.source.Client(ctx)
		if err != nil {
			return "", err
		}
		return a.call(ctx, client, tool, area, method, positional, keyword), nil
	}
}

// shapeCall splits a flat argument map into the positional list and keyword
// map the SDK method expects.
func shapeCall(params []schema.ParameterSpec, args map[string]any) ([]any, map[string]any, error) {
	keyword := make(map[string]any)
	slotted := make(map[int]any)
	highest := -1
	slot := 0

	for _, p := range params {
		idx := -1
		if p.Positional {
			idx = slot
			slot++
		}

		v, ok := args[p.Name]
		if !ok || v == nil {
			if p.Required {
				return nil, nil, missingParam(p.Name)
			}
			continue
		}

		if s, isString := v.(string); isString && p.Type == schema.TypeObject {
			decoded, err := decodeJSONArg(s)
			if err != nil {
				return nil, nil, invalidJSON(p.Name, err)
			}
			if decoded == nil {
				if p.Required {
					return nil, nil, missingParam(p.Name)
				}
				continue
			}
			v = decoded
		}

		if p.Positional {
			slotted[idx] = v
			highest = max(highest, idx)
		} else {
			keyword[p.Name] = v
		}
	}

	positional := make([]any, highest+1)
	for i, v := range slotted {
		positional[i] = v
	}
	return positional, keyword, nil
}

func decodeJSONArg(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func (a *Adapter) call(ctx context.Context, client schema.RemoteClient, tool, area, method string, positional []any, keyword map[string]any) string {
	callID := uuid.NewString()
	ctx = schema.WithCall(ctx, schema.CallInfo{ID: callID, Tool: tool})
	ctx, span := a.tracer.Start(ctx, "tools.invoke",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("tool.name", tool),
			attribute.String("tool.call_id", callID),
			attribute.String("ebay.area", area),
			attribute.String("ebay.method", method),
		),
	)
	defer span.End()

	slog.Debug("Invoking tool", "tool", tool, "call_id", callID, "positional", len(positional), "keyword", len(keyword))

	result, err := safeCall(ctx, client, area, method, positional, keyword)
	if err != nil {
		rerr := newRemoteCallError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, rerr.Kind)

		attrs := []any{"tool", tool, "call_id", callID, "kind", rerr.Kind, "err", err}
		var pe *panicError
		if errors.As(err, &pe) {
			attrs = append(attrs, "stack", string(pe.stack))
		}
		slog.Error("Tool call failed", attrs...)
		return errorPayload(rerr)
	}

	span.SetStatus(codes.Ok, "ok")
	return encodeResult(result)
}

func safeCall(ctx context.Context, client schema.RemoteClient, area, method string, positional []any, keyword map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return client.Call(ctx, area, method, positional, keyword)
}
