package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// ChromePDF renders markup with a headless Chromium print-to-PDF. The markup
// is injected via SetDocumentContent, so embedded data-URI images and fonts
// resolve without filesystem or network access.
type ChromePDF struct {
	bin     string // optional browser binary path; empty lets rod resolve one
	timeout time.Duration
}

func NewChromePDF(bin string, timeout time.Duration) *ChromePDF {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromePDF{bin: bin, timeout: timeout}
}

func (c *ChromePDF) Render(ctx context.Context, html string, opts Options) ([]byte, error) {
	l := launcher.New().Headless(true)
	if c.bin != "" {
		l = l.Bin(c.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("render.ChromePDF: launch: %w: %v", ErrRender, err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("render.ChromePDF: connect: %w: %v", ErrRender, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("render.ChromePDF: page: %w: %v", ErrRender, err)
	}
	page = page.Timeout(c.timeout)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("render.ChromePDF: set content: %w: %v", ErrRender, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("render.ChromePDF: wait load: %w: %v", ErrRender, err)
	}

	margin := opts.MarginInches
	req := &proto.PagePrintToPDF{
		PrintBackground:   true,
		Landscape:         opts.Landscape,
		PreferCSSPageSize: opts.PreferCSSPageSize,
		MarginTop:         &margin,
		MarginBottom:      &margin,
		MarginLeft:        &margin,
		MarginRight:       &margin,
	}

	stream, err := page.PDF(req)
	if err != nil {
		return nil, fmt.Errorf("render.ChromePDF: print: %w: %v", ErrRender, err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("render.ChromePDF: read stream: %w: %v", ErrRender, err)
	}

	return pdf, nil
}
