package highlight

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/dom"
)

const chapterHTML = `<h1 class="chapter-title">1장</h1><p class="lead intro">머신러닝과 인공지능의 관계</p><p>딥러닝은 <em>인공신경망</em>을 쓴다</p>`

func newTestHighlighter(t *testing.T) (*Highlighter, data.Models) {
	t.Helper()

	models := data.NewMemoryModels()
	return New(models, slog.New(slog.DiscardHandler)), models
}

func newTestSurface(t *testing.T) *DocumentSurface {
	t.Helper()

	doc, err := dom.Parse(chapterHTML)
	if err != nil {
		t.Fatalf("Parse() err: %v", err)
	}
	return NewDocumentSurface(doc)
}

func selectText(t *testing.T, s *DocumentSurface, text string) {
	t.Helper()

	r, ok := dom.FindText(s.Doc.Container, text)
	if !ok {
		t.Fatalf("text %q not found", text)
	}
	if err := s.Doc.Select(r); err != nil {
		t.Fatalf("Select() err: %v", err)
	}
}

func markers(s *DocumentSurface) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if IsMarker(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(s.Doc.Container)
	return found
}

var defaultScope = Scope{NotebookID: "nb-1", ChapterID: "1", HighlightMode: true, ClassID: "yellow"}

func TestCapture_ImportantScenario(t *testing.T) {
	h, models := newTestHighlighter(t)
	s := newTestSurface(t)
	selectText(t, s, "인공지능")

	hl, err := h.Capture(s, defaultScope)
	if err != nil {
		t.Fatalf("Capture() err: %v", err)
	}

	if hl.Text != "인공지능" || hl.ClassID != "yellow" {
		t.Errorf("unexpected highlight: %+v", hl)
	}
	if hl.StartOffset != 6 || hl.EndOffset != 10 {
		t.Errorf("offsets = %d..%d, want 6..10", hl.StartOffset, hl.EndOffset)
	}
	if hl.ContainerSelector != "p.lead.intro" {
		t.Errorf("ContainerSelector = %q, want %q", hl.ContainerSelector, "p.lead.intro")
	}

	ms := markers(s)
	if len(ms) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(ms))
	}
	if got := dom.Attr(ms[0], "id"); got != hl.ID {
		t.Errorf("marker id = %q, want %q", got, hl.ID)
	}
	if got := dom.Attr(ms[0], "title"); got != "중요: 인공지능" {
		t.Errorf("marker title = %q", got)
	}
	if got := dom.TextContent(ms[0]); got != "인공지능" {
		t.Errorf("marker text = %q", got)
	}
	if s.Doc.Selection() != nil {
		t.Error("selection was not cleared")
	}

	stored, err := models.Highlights.GetByChapter(&data.ChapterFilters{NotebookID: "nb-1", ChapterID: "1"})
	if err != nil {
		t.Fatalf("GetByChapter() err: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != hl.ID {
		t.Errorf("expected the captured highlight to be stored, got %d records", len(stored))
	}
}

func TestCapture_NotCaptured(t *testing.T) {
	tests := []struct {
		name   string
		scope  Scope
		text   string
		before func(s *DocumentSurface)
	}{
		{name: "mode off", scope: Scope{NotebookID: "nb-1", ChapterID: "1", ClassID: "yellow"}, text: "인공지능"},
		{name: "no class", scope: Scope{NotebookID: "nb-1", ChapterID: "1", HighlightMode: true}, text: "인공지능"},
		{name: "unknown class", scope: Scope{NotebookID: "nb-1", ChapterID: "1", HighlightMode: true, ClassID: "purple"}, text: "인공지능"},
		{name: "whitespace only", scope: defaultScope, text: " "},
		{name: "no selection", scope: defaultScope, before: func(s *DocumentSurface) { s.Doc.RemoveAllRanges() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, models := newTestHighlighter(t)
			s := newTestSurface(t)
			if tt.text != "" {
				selectText(t, s, tt.text)
			}
			if tt.before != nil {
				tt.before(s)
			}
			before, _ := s.Doc.HTML()

			_, err := h.Capture(s, tt.scope)
			if !errors.Is(err, ErrNotCaptured) {
				t.Fatalf("Capture() err = %v, want ErrNotCaptured", err)
			}

			after, _ := s.Doc.HTML()
			if after != before {
				t.Errorf("document changed: %s", after)
			}
			all, _, _ := models.Highlights.GetAll(data.Filters{Page: 1, PageSize: 10})
			if len(all) != 0 {
				t.Errorf("expected no stored highlights, got %d", len(all))
			}
		})
	}
}

func TestCapture_AcrossElements(t *testing.T) {
	h, _ := newTestHighlighter(t)
	s := newTestSurface(t)
	textBefore := s.Doc.TextContent()

	var start, end *html.Node
	for n := range dom.TextNodes(s.Doc.Container) {
		switch {
		case strings.HasPrefix(n.Data, "딥러닝"):
			start = n
		case n.Data == "인공신경망":
			end = n
		}
	}
	r := &dom.Range{
		Start: dom.Boundary{Node: start, Offset: 0},
		End:   dom.Boundary{Node: end, Offset: 2},
	}
	if err := s.Doc.Select(r); err != nil {
		t.Fatalf("Select() err: %v", err)
	}

	hl, err := h.Capture(s, defaultScope)
	if err != nil {
		t.Fatalf("Capture() err: %v", err)
	}
	if hl.Text != "딥러닝은 인공" {
		t.Errorf("Text = %q", hl.Text)
	}

	ms := markers(s)
	if len(ms) != 1 || dom.TextContent(ms[0]) != "딥러닝은 인공" {
		t.Fatalf("unexpected markers: %d", len(ms))
	}
	if got := s.Doc.TextContent(); got != textBefore {
		t.Errorf("TextContent() = %q, want %q", got, textBefore)
	}
}

func TestRemove_RoundTrip(t *testing.T) {
	h, models := newTestHighlighter(t)
	s := newTestSurface(t)
	before, _ := s.Doc.HTML()
	textBefore := s.Doc.TextContent()

	selectText(t, s, "인공지능")
	hl, err := h.Capture(s, defaultScope)
	if err != nil {
		t.Fatalf("Capture() err: %v", err)
	}

	if err := h.Remove(s, hl.ID); err != nil {
		t.Fatalf("Remove() err: %v", err)
	}

	if got := s.Doc.TextContent(); got != textBefore {
		t.Errorf("TextContent() = %q, want %q", got, textBefore)
	}
	if got, _ := s.Doc.HTML(); got != before {
		t.Errorf("HTML() = %s, want %s", got, before)
	}
	if _, err := models.Highlights.Get(hl.ID); !errors.Is(err, data.ErrRecordNotFound) {
		t.Errorf("Get() err = %v, want ErrRecordNotFound", err)
	}
}

func TestRemove_UnknownRecordLeavesSurface(t *testing.T) {
	h, models := newTestHighlighter(t)
	s := newTestSurface(t)

	selectText(t, s, "인공지능")
	hl, err := h.Capture(s, defaultScope)
	if err != nil {
		t.Fatalf("Capture() err: %v", err)
	}
	if err := models.Highlights.Delete(hl.ID); err != nil {
		t.Fatalf("Delete() err: %v", err)
	}
	painted, _ := s.Doc.HTML()

	if err := h.Remove(s, hl.ID); !errors.Is(err, data.ErrRecordNotFound) {
		t.Fatalf("Remove() err = %v, want ErrRecordNotFound", err)
	}
	if got, _ := s.Doc.HTML(); got != painted {
		t.Errorf("HTML() = %s, want %s", got, painted)
	}
}

func TestPrune(t *testing.T) {
	h, models := newTestHighlighter(t)
	s := newTestSurface(t)
	textBefore := s.Doc.TextContent()

	var captured []*data.Highlight
	for _, text := range []string{"인공지능", "인공신경망"} {
		selectText(t, s, text)
		hl, err := h.Capture(s, defaultScope)
		if err != nil {
			t.Fatalf("Capture(%s) err: %v", text, err)
		}
		captured = append(captured, hl)
	}

	if err := models.Highlights.Delete(captured[0].ID); err != nil {
		t.Fatalf("Delete() err: %v", err)
	}

	n, err := h.Prune(s)
	if err != nil {
		t.Fatalf("Prune() err: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if ids := s.MarkerIDs(); len(ids) != 1 || ids[0] != captured[1].ID {
		t.Errorf("MarkerIDs() = %v, want [%s]", ids, captured[1].ID)
	}
	if got := s.Doc.TextContent(); got != textBefore {
		t.Errorf("TextContent() = %q, want %q", got, textBefore)
	}

	if n, _ := h.Prune(s); n != 0 {
		t.Errorf("second Prune() = %d, want 0", n)
	}
}

func TestRestore_ReloadAndIdempotent(t *testing.T) {
	h, _ := newTestHighlighter(t)
	s := newTestSurface(t)

	for _, text := range []string{"인공지능", "인공신경망"} {
		selectText(t, s, text)
		if _, err := h.Capture(s, defaultScope); err != nil {
			t.Fatalf("Capture(%s) err: %v", text, err)
		}
	}
	painted, _ := s.Doc.HTML()

	reloaded := newTestSurface(t)
	result, err := h.Restore(reloaded, "nb-1", "1")
	if err != nil {
		t.Fatalf("Restore() err: %v", err)
	}
	if result.Restored != 2 {
		t.Errorf("Restored = %d, want 2", result.Restored)
	}
	if got, _ := reloaded.Doc.HTML(); got != painted {
		t.Errorf("reloaded HTML = %s, want %s", got, painted)
	}

	again, err := h.Restore(reloaded, "nb-1", "1")
	if err != nil {
		t.Fatalf("second Restore() err: %v", err)
	}
	if again.Restored != 0 || again.AlreadyShown != 2 {
		t.Errorf("second pass result = %+v", again)
	}
	if got := len(markers(reloaded)); got != 2 {
		t.Errorf("expected 2 markers after second pass, got %d", got)
	}
}

func TestRestore_MissesAndOtherChapters(t *testing.T) {
	h, models := newTestHighlighter(t)
	s := newTestSurface(t)

	records := []*data.Highlight{
		{Text: "존재하지 않는 문장", ClassID: "green", NotebookID: "nb-1", ChapterID: "1"},
		{Text: "머신러닝", ClassID: "red", NotebookID: "nb-1", ChapterID: "2"},
	}
	for _, r := range records {
		if err := models.Highlights.Insert(r); err != nil {
			t.Fatalf("Insert() err: %v", err)
		}
	}

	result, err := h.Restore(s, "nb-1", "1")
	if err != nil {
		t.Fatalf("Restore() err: %v", err)
	}
	if result.Missed != 1 || result.Restored != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(markers(s)) != 0 {
		t.Error("expected no markers")
	}
}

func TestContainerSelector(t *testing.T) {
	doc, err := dom.Parse(`<section id="s1"><div class="a b"><p>x</p></div></section><ul><li class="item">y</li></ul><p>z</p>`)
	if err != nil {
		t.Fatalf("Parse() err: %v", err)
	}

	tests := []struct {
		text string
		want string
	}{
		{text: "x", want: "#s1 > div.a.b > p"},
		{text: "y", want: "ul > li.item"},
		{text: "z", want: "p"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			for n := range dom.TextNodes(doc.Container) {
				if n.Data == tt.text {
					if got := ContainerSelector(n.Parent, doc.Container); got != tt.want {
						t.Errorf("ContainerSelector() = %q, want %q", got, tt.want)
					}
					return
				}
			}
			t.Fatalf("text %q not found", tt.text)
		})
	}
}
