package content

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func newBackend(t *testing.T, hits *int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /notebooks", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Write([]byte(`[{"id":"1","title":"AI 기초","description":"","filesCount":2,"lastUpdated":"2026-01-01T00:00:00Z"}]`))
	})
	mux.HandleFunc("GET /notebooks/1/chapters", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Write([]byte(`[{"id":1,"title":"개요","notebook_id":"1"}]`))
	})
	mux.HandleFunc("GET /notebooks/1/content", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Query().Get("path") != "1" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"title":"개요","metadata":"","documentContent":[{"type":"paragraph","content":"인공지능"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Fetch(t *testing.T) {
	hits := 0
	srv := newBackend(t, &hits)
	c := NewClient(srv.URL+"/", nil, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	notebooks, err := c.Notebooks(ctx)
	if err != nil {
		t.Fatalf("Notebooks() err: %v", err)
	}
	if len(notebooks) != 1 || notebooks[0].Title != "AI 기초" {
		t.Errorf("unexpected notebooks: %+v", notebooks)
	}

	chapters, err := c.Chapters(ctx, "1")
	if err != nil {
		t.Fatalf("Chapters() err: %v", err)
	}
	if len(chapters) != 1 || chapters[0].ID != 1 {
		t.Errorf("unexpected chapters: %+v", chapters)
	}

	doc, err := c.Content(ctx, "1", "1")
	if err != nil {
		t.Fatalf("Content() err: %v", err)
	}
	if len(doc.DocumentContent) != 1 || doc.DocumentContent[0].body() != "인공지능" {
		t.Errorf("unexpected content: %+v", doc)
	}

	if _, err := c.Content(ctx, "1", "9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Content(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := c.Chapters(ctx, "2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Chapters(missing) err = %v, want ErrNotFound", err)
	}
}

func TestClient_Cache(t *testing.T) {
	hits := 0
	srv := newBackend(t, &hits)
	cache := &memoryCache{items: map[string][]byte{}}
	c := NewClient(srv.URL, cache, slog.New(slog.DiscardHandler))

	for range 3 {
		if _, err := c.Content(context.Background(), "1", "1"); err != nil {
			t.Fatalf("Content() err: %v", err)
		}
	}

	if hits != 1 {
		t.Errorf("backend hit %d times, want 1", hits)
	}
	if _, ok := cache.items["/notebooks/1/content?path=1"]; !ok {
		t.Error("content was not cached")
	}

	if err := c.Invalidate(context.Background(), "1", "1"); err != nil {
		t.Fatalf("Invalidate() err: %v", err)
	}
	if _, ok := cache.items["/notebooks/1/content?path=1"]; ok {
		t.Error("content still cached after Invalidate()")
	}
	if _, err := c.Content(context.Background(), "1", "1"); err != nil {
		t.Fatalf("Content() err: %v", err)
	}
	if hits != 2 {
		t.Errorf("backend hit %d times after Invalidate(), want 2", hits)
	}
}

func TestRenderer_Render(t *testing.T) {
	doc := &DocumentContent{
		DocumentContent: []Block{
			{Type: "heading", Level: 2, Content: "1장 <개요>"},
			{Type: "paragraph", Content: "머신러닝과 **인공지능**의 관계"},
			{Type: "paragraph", Text: "<script>alert(1)</script>"},
			{Type: "list", Items: []string{"하나", "둘"}},
			{Type: "code", Content: "x < y"},
			{Type: "image", Content: "ignored"},
		},
	}

	got, err := NewRenderer().Render(doc)
	if err != nil {
		t.Fatalf("Render() err: %v", err)
	}

	want := `<h2>1장 &lt;개요&gt;</h2>` +
		`<p>머신러닝과 <strong>인공지능</strong>의 관계</p>` +
		`<!-- raw HTML omitted -->` +
		`<ul><li>하나</li><li>둘</li></ul>` +
		`<pre><code>x &lt; y</code></pre>`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}
