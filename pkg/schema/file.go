package schema

import "strings"

// FileDescriptor is the value shape of one picked file in a TypeFiles field.
type FileDescriptor struct {
	URI  string `json:"uri" yaml:"uri"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Size int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// IsImage reports whether the descriptor's MIME type is an image type.
func (d FileDescriptor) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(d.Type), "image/")
}

// DisplayName returns Name, or the last URI segment when Name is empty.
func (d FileDescriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	uri := strings.TrimRight(d.URI, "/")
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
