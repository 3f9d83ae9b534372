package highlight

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/dom"
)

// MarkerClass is the class every painted marker carries.
const MarkerClass = "text-highlight"

var ErrPaintFailed = errors.New("failed to apply highlight")

// Style is what a marker needs to know about its highlight class.
type Style struct {
	ID              string
	Name            string
	Color           string
	BackgroundColor string
}

func StyleOf(class *data.HighlightClass) Style {
	return Style{
		ID:              class.ID,
		Name:            class.Name,
		Color:           class.Color,
		BackgroundColor: class.BackgroundColor,
	}
}

// NewMarker builds a detached <mark> for a highlight of text. The id
// attribute is left for the caller to set.
func NewMarker(style Style, text string) *html.Node {
	css := fmt.Sprintf(
		"background-color: %s; color: %s; cursor: pointer; border-radius: 2px; padding: 1px 2px",
		style.BackgroundColor, style.Color,
	)

	return &html.Node{
		Type:     html.ElementNode,
		Data:     "mark",
		DataAtom: atom.Mark,
		Attr: []html.Attribute{
			{Key: "class", Val: MarkerClass},
			{Key: "style", Val: css},
			{Key: "title", Val: style.Name + ": " + text},
			{Key: "data-dblclick", Val: "remove"},
		},
	}
}

// IsMarker reports whether n is a highlight marker.
func IsMarker(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Mark &&
		slices.Contains(dom.ClassList(n), MarkerClass)
}

// Paint wraps the contents of r in marker. When the range cuts through an
// element, the contents are extracted, moved into the marker and the marker
// is inserted where they were.
func Paint(r *dom.Range, marker *html.Node) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPaintFailed, rec)
		}
	}()

	err = r.SurroundContents(marker)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dom.ErrPartialSelection) {
		return fmt.Errorf("%w: %w", ErrPaintFailed, err)
	}

	fragment := r.ExtractContents()
	for fragment.FirstChild != nil {
		c := fragment.FirstChild
		fragment.RemoveChild(c)
		marker.AppendChild(c)
	}
	r.InsertNode(marker)

	return nil
}

// Unpaint moves the marker's children into its parent, removes the marker
// and merges the text nodes left behind.
func Unpaint(marker *html.Node) {
	if parent := dom.Unwrap(marker); parent != nil {
		dom.Normalize(parent)
	}
}
