package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"studyhall/highlighter/internal/content"
	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/highlight"
	"studyhall/highlighter/internal/scheduler"
)

type mockContentSource struct {
	mu          sync.Mutex
	blocks      []content.Block
	calls       int
	invalidated int
}

func (m *mockContentSource) Notebooks(ctx context.Context) ([]content.Notebook, error) {
	return []content.Notebook{{ID: "nb-1", Title: "AI 기초"}}, nil
}

func (m *mockContentSource) Chapters(ctx context.Context, notebookID string) ([]content.Chapter, error) {
	if notebookID != "nb-1" {
		return nil, content.ErrNotFound
	}
	return []content.Chapter{{ID: 1, Title: "개요", NotebookID: "nb-1"}}, nil
}

func (m *mockContentSource) Content(ctx context.Context, notebookID, chapterID string) (*content.DocumentContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if notebookID != "nb-1" || chapterID != "1" {
		return nil, content.ErrNotFound
	}
	return &content.DocumentContent{Title: "1장", DocumentContent: m.blocks}, nil
}

func (m *mockContentSource) Invalidate(ctx context.Context, notebookID, chapterID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.invalidated++
	return nil
}

type mockStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	presignErr error
}

func (m *mockStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *mockStorage) PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error) {
	if m.presignErr != nil {
		return "", m.presignErr
	}
	return "https://exports.example.com/" + key + "?signed", nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type testEnv struct {
	models    data.Models
	source    *mockContentSource
	storage   *mockStorage
	scheduler *scheduler.Scheduler
	services  *Service
}

func newTestEnv(t *testing.T, captureDelay time.Duration) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	sched := scheduler.NewScheduler(2, logger)
	sched.Start()
	t.Cleanup(sched.Stop)

	env := &testEnv{
		models: data.NewMemoryModels(),
		source: &mockContentSource{blocks: []content.Block{
			{Type: "heading", Level: 2, Content: "개요"},
			{Type: "paragraph", Content: "머신러닝과 인공지능의 관계"},
		}},
		storage:   &mockStorage{objects: map[string][]byte{}},
		scheduler: sched,
	}

	env.services = NewServices(env.models, env.source, env.storage, sched, Config{
		Workspace: WorkspaceConfig{
			CaptureDelay: captureDelay,
			RestoreDelay: time.Millisecond,
		},
		ExportURLExpiry: 15 * time.Minute,
	}, logger)

	return env
}

func enableHighlightMode(t *testing.T, env *testEnv, sessionID string) {
	t.Helper()

	_, v, err := env.services.Workspace.SetMode(sessionID, true, nil)
	if err != nil || v != nil {
		t.Fatalf("SetMode() v = %v, err = %v", v, err)
	}
}

func TestHighlightClassService_Create(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	tests := []struct {
		name      string
		class     data.HighlightClass
		wantField string
	}{
		{name: "valid", class: data.HighlightClass{Name: "정의", Color: "#000", BackgroundColor: "#ffffff"}},
		{name: "blank name", class: data.HighlightClass{Name: "  ", Color: "#000", BackgroundColor: "#fff"}, wantField: "name"},
		{name: "bad color", class: data.HighlightClass{Name: "x", Color: "red", BackgroundColor: "#fff"}, wantField: "color"},
		{name: "missing background", class: data.HighlightClass{Name: "x", Color: "#000"}, wantField: "background_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := tt.class
			v, err := env.services.HighlightClass.Create(&class)
			if err != nil {
				t.Fatalf("Create() err: %v", err)
			}

			if tt.wantField == "" {
				if v != nil {
					t.Fatalf("unexpected validation errors: %v", v.Errors)
				}
				if !strings.HasPrefix(class.ID, "custom-") {
					t.Errorf("ID = %q, want custom- prefix", class.ID)
				}
				return
			}

			if v == nil || v.Errors[tt.wantField] == "" {
				t.Errorf("expected validation error for %s, got %v", tt.wantField, v)
			}
		})
	}
}

func TestHighlightClassService_Delete(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	svc := env.services.HighlightClass

	custom := &data.HighlightClass{Name: "정의", Color: "#000", BackgroundColor: "#fff"}
	if v, err := svc.Create(custom); err != nil || v != nil {
		t.Fatalf("Create() v = %v, err = %v", v, err)
	}

	if err := svc.Delete(custom.ID); err != nil {
		t.Fatalf("Delete(unused custom) err: %v", err)
	}
	if err := svc.Delete(custom.ID); !errors.Is(err, ErrHighlightClassNotFound) {
		t.Errorf("Delete(again) err = %v, want ErrHighlightClassNotFound", err)
	}

	for _, id := range []string{"yellow", "green", "red"} {
		if err := svc.Delete(id); err != nil {
			t.Fatalf("Delete(%s) err: %v", id, err)
		}
	}
	if err := svc.Delete("blue"); !errors.Is(err, ErrLastHighlightClass) {
		t.Fatalf("Delete(last) err = %v, want ErrLastHighlightClass", err)
	}

	classes, err := svc.List()
	if err != nil {
		t.Fatalf("List() err: %v", err)
	}
	if len(classes) != 1 || classes[0].ID != "blue" {
		t.Errorf("expected only blue to remain, got %d classes", len(classes))
	}
}

func TestHighlightService_Insert(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	valid := data.Highlight{Text: "인공지능", ClassID: "yellow", NotebookID: "nb-1", ChapterID: "1", StartOffset: 6, EndOffset: 10}

	tests := []struct {
		name      string
		mutate    func(h *data.Highlight)
		wantField string
	}{
		{name: "valid", mutate: func(h *data.Highlight) {}},
		{name: "blank text", mutate: func(h *data.Highlight) { h.Text = " " }, wantField: "text"},
		{name: "no notebook", mutate: func(h *data.Highlight) { h.NotebookID = "" }, wantField: "notebook_id"},
		{name: "reversed offsets", mutate: func(h *data.Highlight) { h.StartOffset = 11 }, wantField: "end_offset"},
		{name: "unknown class", mutate: func(h *data.Highlight) { h.ClassID = "purple" }, wantField: "class_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)

			v, err := env.services.Highlight.InsertHighlight(&h)
			if err != nil {
				t.Fatalf("InsertHighlight() err: %v", err)
			}
			if tt.wantField == "" {
				if v != nil {
					t.Fatalf("unexpected validation errors: %v", v.Errors)
				}
				if !strings.HasPrefix(h.ID, "highlight-") {
					t.Errorf("ID = %q", h.ID)
				}
				return
			}
			if v == nil || v.Errors[tt.wantField] == "" {
				t.Errorf("expected validation error for %s, got %v", tt.wantField, v)
			}
		})
	}

	if err := env.services.Highlight.DeleteHighlight("highlight-missing"); !errors.Is(err, ErrHighlightNotFound) {
		t.Errorf("DeleteHighlight(missing) err = %v, want ErrHighlightNotFound", err)
	}
}

func TestWorkspace_CaptureImportant(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	view, v, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil || v != nil {
		t.Fatalf("Open() v = %v, err = %v", v, err)
	}
	if view.SelectedClassID != "yellow" || view.HighlightMode {
		t.Errorf("unexpected initial state: %+v", view)
	}
	if view.Title != "개요" {
		t.Errorf("Title = %q, want %q", view.Title, "개요")
	}

	// highlight mode is off by default
	_, v, err = env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"})
	if err != nil {
		t.Fatalf("Select() err: %v", err)
	}
	if v == nil || v.Errors["selection"] == "" {
		t.Fatalf("expected selection to be rejected, got %v", v)
	}

	enableHighlightMode(t, env, view.ID)

	hl, v, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"})
	if err != nil || v != nil {
		t.Fatalf("Select() v = %v, err = %v", v, err)
	}
	if hl.Text != "인공지능" || hl.ClassID != "yellow" || hl.NotebookID != "nb-1" || hl.ChapterID != "1" {
		t.Errorf("unexpected highlight: %+v", hl)
	}

	got, err := env.services.Workspace.Get(view.ID)
	if err != nil {
		t.Fatalf("Get() err: %v", err)
	}
	if n := strings.Count(got.HTML, "<mark"); n != 1 {
		t.Errorf("expected 1 marker, got %d in %s", n, got.HTML)
	}
	if !strings.Contains(got.HTML, `id="`+hl.ID+`"`) || !strings.Contains(got.HTML, ">인공지능</mark>") {
		t.Errorf("marker not found in %s", got.HTML)
	}
}

func TestWorkspace_BoundarySelection(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	// container > p (index 1) > text (index 0)
	input := SelectionInput{
		Start: &BoundaryInput{Path: []int{1, 0}, Offset: 0},
		End:   &BoundaryInput{Path: []int{1, 0}, Offset: 4},
	}
	hl, v, err := env.services.Workspace.Select(ctx, view.ID, input)
	if err != nil || v != nil {
		t.Fatalf("Select() v = %v, err = %v", v, err)
	}
	if hl.Text != "머신러닝" || hl.ContainerSelector != "p" {
		t.Errorf("unexpected highlight: %+v", hl)
	}

	bad := SelectionInput{
		Start: &BoundaryInput{Path: []int{1, 0}, Offset: 0},
		End:   &BoundaryInput{Path: []int{7}, Offset: 0},
	}
	_, v, err = env.services.Workspace.Select(ctx, view.ID, bad)
	if err != nil {
		t.Fatalf("Select() err: %v", err)
	}
	if v == nil || v.Errors["end"] == "" {
		t.Errorf("expected end to be rejected, got %v", v)
	}
}

func TestWorkspace_ReloadRestores(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	if _, v, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"}); err != nil || v != nil {
		t.Fatalf("Select() v = %v, err = %v", v, err)
	}
	before, _ := env.services.Workspace.Get(view.ID)

	after, err := env.services.Workspace.Reload(ctx, view.ID)
	if err != nil {
		t.Fatalf("Reload() err: %v", err)
	}
	if after.HTML != before.HTML {
		t.Errorf("reloaded HTML = %s, want %s", after.HTML, before.HTML)
	}
	if after.LastRestore.Restored != 1 {
		t.Errorf("LastRestore = %+v", after.LastRestore)
	}
	if env.source.invalidated != 1 {
		t.Errorf("content invalidated %d times, want 1", env.source.invalidated)
	}

	// a second session on the same chapter sees the highlight too
	other, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	if other.HTML != before.HTML {
		t.Errorf("second session HTML = %s", other.HTML)
	}
}

func TestWorkspace_RemoveMarker(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	hl, _, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"})
	if err != nil {
		t.Fatalf("Select() err: %v", err)
	}

	after, err := env.services.Workspace.RemoveMarker(view.ID, hl.ID)
	if err != nil {
		t.Fatalf("RemoveMarker() err: %v", err)
	}
	if after.HTML != view.HTML {
		t.Errorf("HTML after removal = %s, want %s", after.HTML, view.HTML)
	}
	if _, err := env.services.Highlight.GetHighlight(hl.ID); !errors.Is(err, ErrHighlightNotFound) {
		t.Errorf("GetHighlight() err = %v, want ErrHighlightNotFound", err)
	}
	if _, err := env.services.Workspace.RemoveMarker(view.ID, hl.ID); !errors.Is(err, ErrHighlightNotFound) {
		t.Errorf("second RemoveMarker() err = %v, want ErrHighlightNotFound", err)
	}
}

func TestWorkspace_CloseCancelsPendingCapture(t *testing.T) {
	env := newTestEnv(t, time.Hour)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	errc := make(chan error, 1)
	go func() {
		_, _, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"})
		errc <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for env.scheduler.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("capture was never scheduled")
		}
		time.Sleep(time.Millisecond)
	}

	if err := env.services.Workspace.Close(view.ID); err != nil {
		t.Fatalf("Close() err: %v", err)
	}

	select {
	case err := <-errc:
		if !errors.Is(err, ErrSessionClosed) {
			t.Errorf("Select() err = %v, want ErrSessionClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Select() did not return after Close()")
	}

	if got := env.scheduler.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
	if _, err := env.services.Workspace.Get(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() err = %v, want ErrSessionNotFound", err)
	}
}

func TestWorkspace_ClassDeletedClearsSelection(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	view, _, err := env.services.Workspace.Open(context.Background(), "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}

	if err := env.services.HighlightClass.Delete("yellow"); err != nil {
		t.Fatalf("Delete() err: %v", err)
	}

	got, err := env.services.Workspace.Get(view.ID)
	if err != nil {
		t.Fatalf("Get() err: %v", err)
	}
	if got.SelectedClassID != "" {
		t.Errorf("SelectedClassID = %q, want empty", got.SelectedClassID)
	}
}

func TestWorkspace_CloseIdle(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	stale, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	fresh, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}

	if got := env.services.Workspace.CloseIdle(25 * time.Millisecond); got != 1 {
		t.Errorf("CloseIdle() = %d, want 1", got)
	}
	if _, err := env.services.Workspace.Get(stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(stale) err = %v, want ErrSessionNotFound", err)
	}
	if _, err := env.services.Workspace.Get(fresh.ID); err != nil {
		t.Errorf("Get(fresh) err: %v", err)
	}
	if got := env.services.Workspace.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestWorkspace_ConcurrentSelections(t *testing.T) {
	env := newTestEnv(t, 50*time.Millisecond)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	texts := []string{"머신러닝", "인공지능"}
	captured := make([]*data.Highlight, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Go(func() {
			hl, v, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: text})
			if v != nil && !v.Valid() {
				err = fmt.Errorf("validation: %v", v.Errors)
			}
			captured[i], errs[i] = hl, err
		})
	}
	wg.Wait()

	for i, text := range texts {
		if errs[i] != nil {
			t.Errorf("Select(%s) err: %v", text, errs[i])
			continue
		}
		if captured[i].Text != text {
			t.Errorf("Select(%s) captured %q", text, captured[i].Text)
		}
	}

	got, err := env.services.Workspace.Get(view.ID)
	if err != nil {
		t.Fatalf("Get() err: %v", err)
	}
	if n := strings.Count(got.HTML, "text-highlight"); n != 2 {
		t.Errorf("expected 2 markers, got %d: %s", n, got.HTML)
	}
}

func TestWorkspace_AbandonedOpenIsClosed(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	logger := slog.New(slog.DiscardHandler)

	workspace := NewWorkspaceService(
		env.services.Notebook,
		highlight.New(env.models, logger),
		env.models.HighlightClasses,
		env.scheduler,
		WorkspaceConfig{RestoreDelay: time.Hour},
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, _, err := workspace.Open(ctx, "nb-1", "1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Open() err = %v, want context.DeadlineExceeded", err)
	}
	if got := workspace.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	if got := env.scheduler.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestWorkspace_DeletedHighlightsAreUnpainted(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	hl, _, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"})
	if err != nil {
		t.Fatalf("Select() err: %v", err)
	}

	if err := env.services.Highlight.DeleteHighlight(hl.ID); err != nil {
		t.Fatalf("DeleteHighlight() err: %v", err)
	}

	got, err := env.services.Workspace.Get(view.ID)
	if err != nil {
		t.Fatalf("Get() err: %v", err)
	}
	if got.HTML != view.HTML {
		t.Errorf("HTML after delete = %s, want %s", got.HTML, view.HTML)
	}

	if _, err := env.services.Workspace.RemoveMarker(view.ID, hl.ID); !errors.Is(err, ErrHighlightNotFound) {
		t.Errorf("RemoveMarker() err = %v, want ErrHighlightNotFound", err)
	}
}

func TestWorkspace_ClassDeleteUnpaintsMarkers(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	ctx := context.Background()

	view, _, err := env.services.Workspace.Open(ctx, "nb-1", "1")
	if err != nil {
		t.Fatalf("Open() err: %v", err)
	}
	enableHighlightMode(t, env, view.ID)

	yellow, _, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "인공지능"})
	if err != nil {
		t.Fatalf("Select(yellow) err: %v", err)
	}

	green := "green"
	if _, v, err := env.services.Workspace.SetMode(view.ID, true, &green); err != nil || v != nil {
		t.Fatalf("SetMode() v = %v, err = %v", v, err)
	}
	kept, _, err := env.services.Workspace.Select(ctx, view.ID, SelectionInput{Text: "머신러닝"})
	if err != nil {
		t.Fatalf("Select(green) err: %v", err)
	}

	if err := env.services.HighlightClass.Delete("yellow"); err != nil {
		t.Fatalf("Delete() err: %v", err)
	}

	got, err := env.services.Workspace.Get(view.ID)
	if err != nil {
		t.Fatalf("Get() err: %v", err)
	}
	if strings.Contains(got.HTML, `id="`+yellow.ID+`"`) {
		t.Errorf("marker of deleted class still painted: %s", got.HTML)
	}
	if !strings.Contains(got.HTML, `id="`+kept.ID+`"`) {
		t.Errorf("marker of kept class is gone: %s", got.HTML)
	}
}

func TestWorkspace_OpenUnknownChapter(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	_, _, err := env.services.Workspace.Open(context.Background(), "nb-1", "9")
	if !errors.Is(err, ErrContentNotFound) {
		t.Errorf("Open() err = %v, want ErrContentNotFound", err)
	}
}

func TestStatsService_ChapterStats(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	for _, h := range []*data.Highlight{
		{Text: "a", ClassID: "yellow", NotebookID: "nb-1", ChapterID: "1"},
		{Text: "b", ClassID: "yellow", NotebookID: "nb-1", ChapterID: "1"},
		{Text: "c", ClassID: "red", NotebookID: "nb-1", ChapterID: "1"},
		{Text: "d", ClassID: "red", NotebookID: "nb-1", ChapterID: "2"},
	} {
		if err := env.models.Highlights.Insert(h); err != nil {
			t.Fatalf("Insert() err: %v", err)
		}
	}

	stats, v, err := env.services.Stats.ChapterStats("nb-1", "1", "red")
	if err != nil || v != nil {
		t.Fatalf("ChapterStats() v = %v, err = %v", v, err)
	}

	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	want := map[string]int{"yellow": 2, "green": 0, "red": 1, "blue": 0}
	if len(stats.ByClass) != len(want) {
		t.Fatalf("expected %d class counts, got %d", len(want), len(stats.ByClass))
	}
	for _, c := range stats.ByClass {
		if c.Count != want[c.Class.ID] {
			t.Errorf("count for %s = %d, want %d", c.Class.ID, c.Count, want[c.Class.ID])
		}
	}
	if len(stats.Highlights) != 1 || stats.Highlights[0].Text != "c" {
		t.Errorf("filtered highlights = %+v", stats.Highlights)
	}

	_, v, err = env.services.Stats.ChapterStats("nb-1", "1", "purple")
	if err != nil {
		t.Fatalf("ChapterStats() err: %v", err)
	}
	if v == nil || v.Errors["class_id"] == "" {
		t.Errorf("expected class_id validation error, got %v", v)
	}
}

func TestExportService_Export(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	h := &data.Highlight{Text: "인공지능", ClassID: "green", NotebookID: "nb-1", ChapterID: "1", StartOffset: 6, EndOffset: 10}
	if err := env.models.Highlights.Insert(h); err != nil {
		t.Fatalf("Insert() err: %v", err)
	}

	result, v, err := env.services.Export.Export(context.Background(), "nb-1", "1")
	if err != nil || v != nil {
		t.Fatalf("Export() v = %v, err = %v", v, err)
	}

	if result.Highlights != 1 || result.Restored != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(result.Key, "exports/nb-1/1/") || !strings.HasSuffix(result.URL, "?signed") {
		t.Errorf("unexpected key or url: %s %s", result.Key, result.URL)
	}

	body, ok := env.storage.objects[result.Key]
	if !ok {
		t.Fatal("export was not uploaded")
	}
	if !strings.Contains(string(body), h.ID) || !strings.Contains(string(body), "text-highlight") {
		t.Errorf("export body is missing the highlight: %s", body)
	}
}

func TestExportService_PresignFailureRemovesUpload(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	env.storage.presignErr = errors.New("signing unavailable")

	if _, _, err := env.services.Export.Export(context.Background(), "nb-1", "1"); !errors.Is(err, env.storage.presignErr) {
		t.Fatalf("Export() err = %v, want %v", err, env.storage.presignErr)
	}
	if n := len(env.storage.objects); n != 0 {
		t.Errorf("expected the upload to be removed, %d objects left", n)
	}
}

func TestExportService_Disabled(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	models := data.NewMemoryModels()
	svc := NewExportService(nil, nil, nil, models, time.Minute, logger)

	if _, _, err := svc.Export(context.Background(), "nb-1", "1"); !errors.Is(err, ErrExportDisabled) {
		t.Errorf("Export() err = %v, want ErrExportDisabled", err)
	}
}
