// Package render turns finished markup into PDF bytes and builds the markup
// for the report and quote documents. The core never inspects the PDF
// payload; it only assembles data and hands the markup to a Renderer.
package render

import (
	"context"
	"errors"
)

// ErrRender wraps any document-generation failure: malformed markup or a
// renderer-process failure.
var ErrRender = errors.New("render: document generation failed")

// Options is the fixed option set passed to the rendering backend.
type Options struct {
	Landscape         bool
	MarginInches      float64
	PreferCSSPageSize bool
}

// Renderer produces a binary PDF from a fully rendered markup string.
type Renderer interface {
	Render(ctx context.Context, html string, opts Options) ([]byte, error)
}
