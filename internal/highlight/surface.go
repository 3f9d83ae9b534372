package highlight

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"studyhall/highlighter/internal/dom"
)

var ErrMarkerNotFound = errors.New("marker not found")

// Span is a located piece of text on a surface. Anchor holds whatever the
// surface needs to paint it again; callers treat it as opaque.
type Span struct {
	Text              string
	StartOffset       int
	EndOffset         int
	ContainerSelector string
	Anchor            any
}

// Mark is a painted marker that has not been committed to the store yet.
type Mark interface {
	SetID(id string)
	// Unpaint removes the marker again.
	Unpaint()
}

// Surface is everything the highlighter needs from rendered content.
type Surface interface {
	// CaptureSelection returns the current selection. It fails with
	// ErrNotCaptured when nothing usable is selected.
	CaptureSelection() (Span, error)
	ClearSelection()
	// FindText returns the first occurrence of text inside a single text node.
	FindText(text string) (Span, bool)
	HasMarker(id string) bool
	// MarkerIDs lists the ids of painted markers in document order.
	MarkerIDs() []string
	PaintRange(span Span, style Style) (Mark, error)
	UnpaintRange(id string) error
}

// DocumentSurface implements Surface over a rendered document.
type DocumentSurface struct {
	Doc *dom.Document
}

func NewDocumentSurface(doc *dom.Document) *DocumentSurface {
	return &DocumentSurface{Doc: doc}
}

func (s *DocumentSurface) CaptureSelection() (Span, error) {
	r := s.Doc.Selection()
	if r == nil || r.Collapsed() {
		return Span{}, fmt.Errorf("%w: empty selection", ErrNotCaptured)
	}

	ca := r.CommonAncestor()
	if ca == nil || !dom.Contains(s.Doc.Container, ca) {
		return Span{}, fmt.Errorf("%w: selection outside the content container", ErrNotCaptured)
	}

	text := strings.TrimSpace(r.String())
	if text == "" {
		return Span{}, fmt.Errorf("%w: empty selection", ErrNotCaptured)
	}

	start := r.Start.Node
	if start.Type == html.TextNode && start.Parent != nil {
		start = start.Parent
	}

	return Span{
		Text:              text,
		StartOffset:       r.Start.Offset,
		EndOffset:         r.End.Offset,
		ContainerSelector: ContainerSelector(start, s.Doc.Container),
		Anchor:            r,
	}, nil
}

func (s *DocumentSurface) ClearSelection() {
	s.Doc.RemoveAllRanges()
}

func (s *DocumentSurface) FindText(text string) (Span, bool) {
	r, ok := dom.FindText(s.Doc.Container, text)
	if !ok {
		return Span{}, false
	}

	return Span{
		Text:        text,
		StartOffset: r.Start.Offset,
		EndOffset:   r.End.Offset,
		Anchor:      r,
	}, true
}

func (s *DocumentSurface) HasMarker(id string) bool {
	return id != "" && s.Doc.GetElementByID(id) != nil
}

func (s *DocumentSurface) MarkerIDs() []string {
	var ids []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if IsMarker(n) {
			if id := dom.Attr(n, "id"); id != "" {
				ids = append(ids, id)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(s.Doc.Container)
	return ids
}

func (s *DocumentSurface) PaintRange(span Span, style Style) (Mark, error) {
	r, ok := span.Anchor.(*dom.Range)
	if !ok || r == nil {
		return nil, fmt.Errorf("%w: span is not anchored in this document", ErrPaintFailed)
	}

	marker := NewMarker(style, span.Text)
	if err := Paint(r, marker); err != nil {
		return nil, err
	}
	return &documentMark{node: marker}, nil
}

func (s *DocumentSurface) UnpaintRange(id string) error {
	marker := s.Doc.GetElementByID(id)
	if marker == nil || !IsMarker(marker) {
		return ErrMarkerNotFound
	}

	Unpaint(marker)
	return nil
}

type documentMark struct {
	node *html.Node
}

func (m *documentMark) SetID(id string) {
	dom.SetAttr(m.node, "id", id)
}

func (m *documentMark) Unpaint() {
	Unpaint(m.node)
}

// ContainerSelector builds a best-effort CSS path from el up to, but not
// including, container. An element with an id ends the walk.
func ContainerSelector(el, container *html.Node) string {
	if id := dom.Attr(el, "id"); id != "" {
		return "#" + id
	}

	selector := el.Data
	if classes := dom.ClassList(el); len(classes) > 0 {
		selector += "." + strings.Join(classes, ".")
	}

	if parent := el.Parent; parent != nil && parent != container && parent.Type == html.ElementNode {
		selector = ContainerSelector(parent, container) + " > " + selector
	}
	return selector
}
