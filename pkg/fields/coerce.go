package fields

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-dynform/pkg/schema"
)

// Stored values may come from Go callers or from decoded YAML/JSON defaults,
// so readers accept both typed and generic shapes.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, asString(item))
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func asFiles(v any) []schema.FileDescriptor {
	switch t := v.(type) {
	case []schema.FileDescriptor:
		return append([]schema.FileDescriptor(nil), t...)
	case []any:
		out := make([]schema.FileDescriptor, 0, len(t))
		for _, item := range t {
			switch d := item.(type) {
			case schema.FileDescriptor:
				out = append(out, d)
			case map[string]any:
				size, _ := asFloat(d["size"])
				out = append(out, schema.FileDescriptor{
					URI:  asString(d["uri"]),
					Name: asString(d["name"]),
					Type: asString(d["type"]),
					Size: int64(size),
				})
			}
		}
		return out
	}
	return nil
}
