// ABOUTME: Markdown renderer wrapper around glamour for listing panes
// ABOUTME: Caches rendered results keyed by content hash + width

package interactive

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders listings with glamour and remembers the result.
type markdownRenderer struct {
	cache map[string]string // "hash:width" -> rendered
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{cache: make(map[string]string)}
}

// Render returns the terminal rendering of md wrapped to width. Rendering
// failures fall back to the raw markdown.
func (r *markdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}
	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	out = strings.TrimRight(out, "\n ")
	r.cache[key] = out
	return out
}

func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
