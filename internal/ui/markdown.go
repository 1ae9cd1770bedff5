package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultMarkdownWidth = 80

// rendererCache keeps one glamour renderer per (width, style). The TUI
// re-renders on every resize and full-screen toggle, so renderers are reused.
type rendererCache struct {
	mu    sync.Mutex
	items map[rendererKey]*glamour.TermRenderer
}

type rendererKey struct {
	width int
	style string
}

var renderers = &rendererCache{}

func (c *rendererCache) get(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultMarkdownWidth
	}
	if style == "" {
		style = "dark"
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := rendererKey{width: width, style: style}
	if r, ok := c.items[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	if c.items == nil {
		c.items = make(map[rendererKey]*glamour.TermRenderer)
	}
	c.items[k] = r
	return r, nil
}

func (c *rendererCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// RenderMarkdownWithStyle renders entry content with the given glamour style.
// The raw content is returned when rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := renderers.get(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
