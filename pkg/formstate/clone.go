package formstate

import "github.com/goliatone/go-dynform/pkg/schema"

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes bindings write. Bindings always
// replace slices rather than mutating them, so other types are shared.
func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneValues(typed)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(v)
		}
		return out
	case []string:
		if typed == nil {
			return typed
		}
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	case []schema.FileDescriptor:
		if typed == nil {
			return typed
		}
		out := make([]schema.FileDescriptor, len(typed))
		copy(out, typed)
		return out
	default:
		return typed
	}
}

func cloneErrors(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
