// Package render defines the seam between form screens and concrete output
// formats. A screen is the ordered list of view nodes produced by a Form.
package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/view"
)

// Renderer converts a screen into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, screen []view.Node, options Options) ([]byte, error)
}

// Screener is implemented by anything that can snapshot a screen, such as
// *dynform.Form.
type Screener interface {
	Screen() []view.Node
}

// RenderScreen snapshots s and renders it with r.
func RenderScreen(ctx context.Context, r Renderer, s Screener, options Options) ([]byte, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Render(ctx, s.Screen(), options)
}
