package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers caches glamour renderers by wrap width
var renderers sync.Map // map[int]*glamour.TermRenderer

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := renderers.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	renderers.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a deal description for the terminal.
// The raw text is returned if it cannot be rendered.
func RenderMarkdown(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return SubtleStyle.Italic(true).Render("No description")
	}

	renderer, err := markdownRenderer(width)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(rendered)
}
