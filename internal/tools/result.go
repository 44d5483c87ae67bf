package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// encodeResult serialises a call result to JSON text. Values JSON cannot
// represent are rendered with fmt.Sprint in place.
func encodeResult(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data, err = json.Marshal(jsonSafe(v, 0))
	}
	if err != nil {
		data, _ = json.Marshal(fmt.Sprint(v))
	}
	return string(data)
}

// maxSafeDepth bounds the jsonSafe walk so self-referencing values terminate.
const maxSafeDepth = 32

func jsonSafe(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth >= maxSafeDepth {
		return fmt.Sprintf("<%T: nested too deeply>", v)
	}
	if _, err := json.Marshal(v); err == nil {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonSafe(iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = jsonSafe(rv.Index(i).Interface(), depth+1)
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return jsonSafe(rv.Elem().Interface(), depth+1)
	default:
		return fmt.Sprint(v)
	}
}

// errorPayload renders the text returned for an absorbed remote failure.
func errorPayload(rerr *RemoteCallError) string {
	msg := rerr.Error()
	if msg == "" {
		msg = rerr.Kind
	}
	data, _ := json.Marshal(map[string]string{"error": rerr.Kind, "message": msg})
	return string(data)
}
