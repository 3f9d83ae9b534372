package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// Renderer turns chapter blocks into the HTML placed in the content
// container. Paragraphs are markdown; raw HTML inside them is dropped.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Linkify,
			),
		),
	}
}

func (r *Renderer) Render(doc *DocumentContent) (string, error) {
	var buf bytes.Buffer

	for i, block := range doc.DocumentContent {
		switch block.Type {
		case "heading":
			level := block.Level
			if level < 1 || level > 6 {
				level = 2
			}
			fmt.Fprintf(&buf, "<h%d>%s</h%d>", level, html.EscapeString(block.body()), level)

		case "paragraph":
			var p bytes.Buffer
			if err := r.md.Convert([]byte(block.body()), &p); err != nil {
				return "", fmt.Errorf("render block %d: %w", i, err)
			}
			buf.WriteString(strings.TrimSpace(p.String()))

		case "code":
			fmt.Fprintf(&buf, "<pre><code>%s</code></pre>", html.EscapeString(block.body()))

		case "list":
			buf.WriteString("<ul>")
			for _, item := range block.Items {
				fmt.Fprintf(&buf, "<li>%s</li>", html.EscapeString(item))
			}
			buf.WriteString("</ul>")
		}
	}

	return buf.String(), nil
}
