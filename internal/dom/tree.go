package dom

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// TextNodes yields every text node below root in document order, like a
// TreeWalker with SHOW_TEXT.
func TextNodes(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(n *html.Node) bool
		walk = func(n *html.Node) bool {
			for c := n.FirstChild; c != nil; {
				next := c.NextSibling
				if c.Type == html.TextNode {
					if !yield(c) {
						return false
					}
				} else if !walk(c) {
					return false
				}
				c = next
			}
			return true
		}
		walk(root)
	}
}

// Normalize removes empty text nodes below n and merges adjacent ones.
func Normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling

		if c.Type != html.TextNode {
			Normalize(c)
			c = next
			continue
		}

		if c.Data == "" {
			n.RemoveChild(c)
			c = next
			continue
		}

		for next != nil && next.Type == html.TextNode {
			c.Data += next.Data
			following := next.NextSibling
			n.RemoveChild(next)
			next = following
		}
		c = next
	}
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	return isInclusiveAncestor(root, n)
}

// Unwrap moves the children of n into its parent in place and removes n.
// It returns the former parent so callers can normalize it.
func Unwrap(n *html.Node) *html.Node {
	parent := n.Parent
	if parent == nil {
		return nil
	}

	for n.FirstChild != nil {
		c := n.FirstChild
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)

	return parent
}

// NodePath returns the child indices leading from root to n.
func NodePath(root, n *html.Node) ([]int, error) {
	var path []int
	for cur := n; cur != root; cur = cur.Parent {
		if cur == nil {
			return nil, ErrNodeNotFound
		}
		path = append(path, index(cur))
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// NodeAt follows a child-index path from root.
func NodeAt(root *html.Node, path []int) (*html.Node, error) {
	n := root
	for depth, i := range path {
		n = childAt(n, i)
		if n == nil {
			return nil, fmt.Errorf("%w: no child %d at depth %d", ErrNodeNotFound, i, depth)
		}
	}
	return n, nil
}

func nodeLength(n *html.Node) int {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return utf8.RuneCountInString(n.Data)
	default:
		count := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			count++
		}
		return count
	}
}

func index(n *html.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		i++
	}
	return i
}

func childAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

func isInclusiveAncestor(a, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == a {
			return true
		}
	}
	return false
}

func treeRoot(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// precedes reports whether a comes before b in tree order.
func precedes(a, b *html.Node) bool {
	pa, _ := NodePath(treeRoot(a), a)
	pb, _ := NodePath(treeRoot(b), b)

	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

func cloneShallow(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

func splitRunes(s string, i int) (string, string) {
	rs := []rune(s)
	return string(rs[:i]), string(rs[i:])
}

func substring(s string, from, to int) string {
	rs := []rune(s)
	return string(rs[from:to])
}

// FindText returns a range over the first occurrence of text that lies
// inside a single text node below root.
func FindText(root *html.Node, text string) (*Range, bool) {
	if text == "" {
		return nil, false
	}

	for n := range TextNodes(root) {
		i := strings.Index(n.Data, text)
		if i < 0 {
			continue
		}
		from := utf8.RuneCountInString(n.Data[:i])
		return NewTextRange(n, from, from+utf8.RuneCountInString(text)), true
	}
	return nil, false
}
