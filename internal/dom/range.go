package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Boundary is a range endpoint. Offset counts runes inside text nodes and
// children inside elements.
type Boundary struct {
	Node   *html.Node
	Offset int
}

type Range struct {
	Start Boundary
	End   Boundary
}

// NewTextRange returns a range covering [from, to) of a single text node.
func NewTextRange(text *html.Node, from, to int) *Range {
	return &Range{
		Start: Boundary{Node: text, Offset: from},
		End:   Boundary{Node: text, Offset: to},
	}
}

// Validate checks both boundaries lie under root, are within bounds and are
// in order.
func (r *Range) Validate(root *html.Node) error {
	for _, b := range []Boundary{r.Start, r.End} {
		if b.Node == nil || !isInclusiveAncestor(root, b.Node) {
			return fmt.Errorf("%w: node outside container", ErrInvalidBoundary)
		}
		if b.Offset < 0 || b.Offset > nodeLength(b.Node) {
			return fmt.Errorf("%w: offset %d out of bounds", ErrInvalidBoundary, b.Offset)
		}
	}

	if compareBoundaries(r.Start, r.End) > 0 {
		return fmt.Errorf("%w: start after end", ErrInvalidBoundary)
	}
	return nil
}

func (r *Range) Collapsed() bool {
	return r.Start.Node == r.End.Node && r.Start.Offset == r.End.Offset
}

// CommonAncestor returns the deepest node containing both boundaries.
func (r *Range) CommonAncestor() *html.Node {
	for n := r.Start.Node; n != nil; n = n.Parent {
		if isInclusiveAncestor(n, r.End.Node) {
			return n
		}
	}
	return nil
}

// String returns the selected text, like Selection.toString().
func (r *Range) String() string {
	if r.Collapsed() {
		return ""
	}

	sn, so := r.Start.Node, r.Start.Offset
	en, eo := r.End.Node, r.End.Offset

	if sn == en && sn.Type == html.TextNode {
		return substring(sn.Data, so, eo)
	}

	ca := r.CommonAncestor()
	var sb strings.Builder

	for t := range TextNodes(ca) {
		from, to := 0, nodeLength(t)

		switch {
		case t == sn:
			from = so
		case compareBoundaries(r.Start, Boundary{Node: t, Offset: 0}) > 0:
			continue
		}

		switch {
		case t == en:
			to = eo
		case compareBoundaries(Boundary{Node: t, Offset: to}, r.End) > 0:
			continue
		}

		if from < to {
			sb.WriteString(substring(t.Data, from, to))
		}
	}
	return sb.String()
}

// SurroundContents wraps the range contents in wrapper, which must be a
// detached element without children. It fails when a non-text node is
// only partially inside the range, leaving the tree untouched.
func (r *Range) SurroundContents(wrapper *html.Node) error {
	ca := r.CommonAncestor()
	if ca == nil {
		return ErrInvalidBoundary
	}

	for _, n := range []*html.Node{r.Start.Node, r.End.Node} {
		for cur := n; cur != ca; cur = cur.Parent {
			if cur.Type != html.TextNode {
				return ErrPartialSelection
			}
		}
	}

	fragment := r.ExtractContents()
	r.InsertNode(wrapper)
	moveChildren(fragment, wrapper)

	r.selectNode(wrapper)
	return nil
}

// ExtractContents removes the range contents from the tree and returns them
// under a fragment node. Elements only partially inside the range are
// cloned so the fragment keeps their structure. The range collapses to the
// point where the contents used to start.
func (r *Range) ExtractContents() *html.Node {
	fragment := &html.Node{Type: html.DocumentNode}
	if r.Collapsed() {
		return fragment
	}

	sn, so := r.Start.Node, r.Start.Offset
	en, eo := r.End.Node, r.End.Offset

	if sn == en && sn.Type == html.TextNode {
		head, rest := splitRunes(sn.Data, so)
		mid, tail := splitRunes(rest, eo-so)

		clone := cloneShallow(sn)
		clone.Data = mid
		fragment.AppendChild(clone)

		sn.Data = head + tail
		r.End = r.Start
		return fragment
	}

	ca := r.CommonAncestor()

	var firstPartial, lastPartial *html.Node
	if !isInclusiveAncestor(sn, en) {
		firstPartial = childOnPath(ca, sn)
	}
	if !isInclusiveAncestor(en, sn) {
		lastPartial = childOnPath(ca, en)
	}

	var contained []*html.Node
	var from *html.Node
	if sn == ca {
		from = childAt(ca, so)
	} else {
		from = firstPartial.NextSibling
	}
	for c := from; c != nil; c = c.NextSibling {
		if c == lastPartial || (en == ca && index(c) >= eo) {
			break
		}
		contained = append(contained, c)
	}

	var newNode *html.Node
	var newOffset int
	if isInclusiveAncestor(sn, en) {
		newNode, newOffset = sn, so
	} else {
		ref := sn
		for ref.Parent != nil && !isInclusiveAncestor(ref.Parent, en) {
			ref = ref.Parent
		}
		newNode, newOffset = ref.Parent, index(ref)+1
	}

	if firstPartial != nil {
		if firstPartial.Type == html.TextNode {
			head, tail := splitRunes(firstPartial.Data, so)
			clone := cloneShallow(firstPartial)
			clone.Data = tail
			fragment.AppendChild(clone)
			firstPartial.Data = head
		} else {
			clone := cloneShallow(firstPartial)
			fragment.AppendChild(clone)
			sub := &Range{
				Start: Boundary{Node: sn, Offset: so},
				End:   Boundary{Node: firstPartial, Offset: nodeLength(firstPartial)},
			}
			moveChildren(sub.ExtractContents(), clone)
		}
	}

	for _, c := range contained {
		ca.RemoveChild(c)
		fragment.AppendChild(c)
	}

	if lastPartial != nil {
		if lastPartial.Type == html.TextNode {
			head, tail := splitRunes(lastPartial.Data, eo)
			clone := cloneShallow(lastPartial)
			clone.Data = head
			fragment.AppendChild(clone)
			lastPartial.Data = tail
		} else {
			clone := cloneShallow(lastPartial)
			fragment.AppendChild(clone)
			sub := &Range{
				Start: Boundary{Node: lastPartial, Offset: 0},
				End:   Boundary{Node: en, Offset: eo},
			}
			moveChildren(sub.ExtractContents(), clone)
		}
	}

	r.Start = Boundary{Node: newNode, Offset: newOffset}
	r.End = r.Start
	return fragment
}

// InsertNode inserts n, a detached node, at the start of the range,
// splitting a text node when the start falls inside one.
func (r *Range) InsertNode(n *html.Node) {
	sn, so := r.Start.Node, r.Start.Offset

	var parent, ref *html.Node
	if sn.Type == html.TextNode {
		parent = sn.Parent
		switch {
		case so == 0:
			ref = sn
		case so >= nodeLength(sn):
			ref = sn.NextSibling
		default:
			head, tail := splitRunes(sn.Data, so)
			sn.Data = head
			split := &html.Node{Type: html.TextNode, Data: tail}
			parent.InsertBefore(split, sn.NextSibling)
			ref = split
		}
	} else {
		parent = sn
		ref = childAt(sn, so)
	}

	parent.InsertBefore(n, ref)
	r.selectNode(n)
}

func (r *Range) selectNode(n *html.Node) {
	i := index(n)
	r.Start = Boundary{Node: n.Parent, Offset: i}
	r.End = Boundary{Node: n.Parent, Offset: i + 1}
}

// childOnPath returns the child of ancestor that contains n.
func childOnPath(ancestor, n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Parent == ancestor {
			return cur
		}
	}
	return nil
}

func moveChildren(from, to *html.Node) {
	for from.FirstChild != nil {
		c := from.FirstChild
		from.RemoveChild(c)
		to.AppendChild(c)
	}
}

// compareBoundaries returns -1, 0 or 1 as a is before, equal to or after b.
func compareBoundaries(a, b Boundary) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}

	if isInclusiveAncestor(a.Node, b.Node) {
		child := childOnPath(a.Node, b.Node)
		if index(child) < a.Offset {
			return 1
		}
		return -1
	}

	if isInclusiveAncestor(b.Node, a.Node) {
		return -compareBoundaries(b, a)
	}

	if precedes(a.Node, b.Node) {
		return -1
	}
	return 1
}
