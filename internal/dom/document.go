// Package dom implements the subset of the browser DOM the highlighter needs
// (ranges, text-node iteration, wrapping and unwrapping) on top of the
// golang.org/x/net/html node tree.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContainerID is the id carried by the content container element.
const ContainerID = "chapter-content"

var (
	ErrPartialSelection = errors.New("range partially selects a non-text node")
	ErrInvalidBoundary  = errors.New("invalid range boundary")
	ErrNodeNotFound     = errors.New("node not found")
)

// Document is a rendered chapter. Container plays the role of the designated
// content container; Selection mirrors window.getSelection().
type Document struct {
	Container *html.Node
	selection *Range
}

// Parse builds a document whose container holds the given HTML fragment.
func Parse(content string) (*Document, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "article",
		DataAtom: atom.Article,
		Attr:     []html.Attribute{{Key: "id", Val: ContainerID}},
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	for _, n := range nodes {
		container.AppendChild(n)
	}

	return &Document{Container: container}, nil
}

// HTML renders the container and everything below it.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.Container); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TextContent returns the concatenated text of the container.
func (d *Document) TextContent() string {
	return TextContent(d.Container)
}

// GetElementByID searches the container for an element with the given id.
func (d *Document) GetElementByID(id string) *html.Node {
	return GetElementByID(d.Container, id)
}

// Selection returns the current selection, or nil when nothing is selected.
func (d *Document) Selection() *Range {
	return d.selection
}

// Select replaces the current selection after validating it against the
// container.
func (d *Document) Select(r *Range) error {
	if err := r.Validate(d.Container); err != nil {
		return err
	}
	d.selection = r
	return nil
}

// RemoveAllRanges clears the selection.
func (d *Document) RemoveAllRanges() {
	d.selection = nil
}

// Resolve turns a path-addressed boundary into a live one.
func (d *Document) Resolve(path []int, offset int) (Boundary, error) {
	n, err := NodeAt(d.Container, path)
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Node: n, Offset: offset}, nil
}

// TextContent returns the text of n and its descendants, ignoring comments.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for t := range TextNodes(n) {
		sb.WriteString(t.Data)
	}
	return sb.String()
}

// GetElementByID returns the first element below root (inclusive) with id.
func GetElementByID(root *html.Node, id string) *html.Node {
	if root.Type == html.ElementNode && Attr(root, "id") == id {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := GetElementByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Attr returns the value of the attribute key, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets or replaces the attribute key.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// ClassList splits the class attribute into its names.
func ClassList(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}
