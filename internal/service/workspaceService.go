package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/dom"
	"studyhall/highlighter/internal/highlight"
	"studyhall/highlighter/internal/scheduler"
	"studyhall/highlighter/internal/validator"
)

// DefaultClassID is the class selected when a session opens.
const DefaultClassID = "yellow"

var errTaskAborted = errors.New("task aborted")

// Scheduler runs delayed work on behalf of sessions.
type Scheduler interface {
	Schedule(owner, taskType string, delay time.Duration, fn func(ctx context.Context) error) (string, error)
	Cancel(id string) bool
	CancelOwner(owner string) int
}

type WorkspaceConfig struct {
	// CaptureDelay lets a selection settle before it is captured.
	CaptureDelay time.Duration
	// RestoreDelay lets freshly rendered content settle before highlights
	// are painted back.
	RestoreDelay time.Duration
}

type BoundaryInput struct {
	Path   []int `json:"path"`
	Offset int   `json:"offset"`
}

// SelectionInput describes a selection either by its two boundaries, with
// node paths relative to the content container, or by Text, which selects
// its first occurrence inside a single text node.
type SelectionInput struct {
	Start *BoundaryInput `json:"start"`
	End   *BoundaryInput `json:"end"`
	Text  string         `json:"text"`
}

type SessionView struct {
	ID              string                  `json:"id"`
	NotebookID      string                  `json:"notebook_id"`
	ChapterID       string                  `json:"chapter_id"`
	Title           string                  `json:"title"`
	HighlightMode   bool                    `json:"highlight_mode"`
	SelectedClassID string                  `json:"selected_class_id"`
	HTML            string                  `json:"html"`
	LastRestore     highlight.RestoreResult `json:"last_restore"`
	CreatedAt       time.Time               `json:"created_at"`
}

type session struct {
	id         string
	notebookID string
	chapterID  string
	createdAt  time.Time
	closed     chan struct{}
	lastSeen   atomic.Int64

	mu              sync.Mutex
	title           string
	highlightMode   bool
	selectedClassID string
	doc             *dom.Document
	surface         *highlight.DocumentSurface
	lastRestore     highlight.RestoreResult
}

func (sess *session) isClosed() bool {
	select {
	case <-sess.closed:
		return true
	default:
		return false
	}
}

// load must be called with mu held.
func (sess *session) load(chapter *Chapter) error {
	doc, err := dom.Parse(chapter.HTML)
	if err != nil {
		return err
	}

	sess.title = chapter.Title
	sess.doc = doc
	sess.surface = highlight.NewDocumentSurface(doc)
	return nil
}

// view must be called with mu held.
func (sess *session) view() (*SessionView, error) {
	rendered, err := sess.doc.HTML()
	if err != nil {
		return nil, err
	}

	return &SessionView{
		ID:              sess.id,
		NotebookID:      sess.notebookID,
		ChapterID:       sess.chapterID,
		Title:           sess.title,
		HighlightMode:   sess.highlightMode,
		SelectedClassID: sess.selectedClassID,
		HTML:            rendered,
		LastRestore:     sess.lastRestore,
		CreatedAt:       sess.createdAt,
	}, nil
}

// WorkspaceService keeps one rendered chapter per session and runs capture,
// restoration and marker removal against it.
type WorkspaceService struct {
	notebooks   *NotebookService
	highlighter *highlight.Highlighter
	classModel  data.HighlightClassModel
	scheduler   Scheduler
	cfg         WorkspaceConfig
	logger      *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewWorkspaceService(
	notebooks *NotebookService,
	highlighter *highlight.Highlighter,
	classModel data.HighlightClassModel,
	scheduler Scheduler,
	cfg WorkspaceConfig,
	logger *slog.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		notebooks:   notebooks,
		highlighter: highlighter,
		classModel:  classModel,
		scheduler:   scheduler,
		cfg:         cfg,
		logger:      logger,
		sessions:    make(map[string]*session),
	}
}

// Open renders a chapter into a new session and restores its highlights.
func (s *WorkspaceService) Open(ctx context.Context, notebookID, chapterID string) (*SessionView, *validator.Validator, error) {
	v := validator.New()
	if ValidateChapterScope(v, notebookID, chapterID); !v.Valid() {
		return nil, v, nil
	}

	chapter, err := s.notebooks.Chapter(ctx, notebookID, chapterID)
	if err != nil {
		return nil, nil, err
	}

	sess := &session{
		id:         "session-" + uuid.New().String(),
		notebookID: notebookID,
		chapterID:  chapterID,
		createdAt:  time.Now(),
		closed:     make(chan struct{}),
	}
	sess.lastSeen.Store(sess.createdAt.UnixNano())

	if _, err := s.classModel.Get(DefaultClassID); err == nil {
		sess.selectedClassID = DefaultClassID
	}
	if err := sess.load(chapter); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("session opened", "session_id", sess.id, "notebook_id", notebookID, "chapter_id", chapterID)

	if err := s.after(ctx, sess, scheduler.RestoreChapter, s.cfg.RestoreDelay, func() error {
		return s.restore(sess)
	}); err != nil {
		// the caller never learns the id, so nobody could close it later
		_ = s.Close(sess.id)
		return nil, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	view, err := sess.view()
	return view, nil, err
}

func (s *WorkspaceService) Get(id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.view()
}

// SetMode switches highlight mode and, when classID is not nil, the
// selected class. An empty classID clears the selection.
func (s *WorkspaceService) SetMode(id string, highlightMode bool, classID *string) (*SessionView, *validator.Validator, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}

	if classID != nil && *classID != "" {
		if _, err := s.classModel.Get(*classID); err != nil {
			if errors.Is(err, data.ErrRecordNotFound) {
				v := validator.New()
				v.AddError("class_id", "does not exist")
				return nil, v, nil
			}
			return nil, nil, err
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.highlightMode = highlightMode
	if classID != nil {
		sess.selectedClassID = *classID
	}

	view, err := sess.view()
	return view, nil, err
}

// Select places a selection on the session's content and captures it after
// the capture delay. Placing and capturing happen under one lock so a
// concurrent Select can't replace the selection in between.
func (s *WorkspaceService) Select(ctx context.Context, id string, input SelectionInput) (*data.Highlight, *validator.Validator, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}

	v := validator.New()
	var captured *data.Highlight
	err = s.after(ctx, sess, scheduler.CaptureSelection, s.cfg.CaptureDelay, func() error {
		if err := s.selectRange(sess, input, v); err != nil || !v.Valid() {
			return err
		}

		var err error
		captured, err = s.highlighter.Capture(sess.surface, highlight.Scope{
			NotebookID:    sess.notebookID,
			ChapterID:     sess.chapterID,
			HighlightMode: sess.highlightMode,
			ClassID:       sess.selectedClassID,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, highlight.ErrNotCaptured) {
			v.AddError("selection", err.Error())
			return nil, v, nil
		}
		return nil, nil, err
	}
	if !v.Valid() {
		return nil, v, nil
	}

	return captured, nil, nil
}

// selectRange must be called with sess.mu held.
func (s *WorkspaceService) selectRange(sess *session, input SelectionInput, v *validator.Validator) error {
	if input.Text != "" {
		r, ok := dom.FindText(sess.doc.Container, input.Text)
		if !ok {
			v.AddError("text", "was not found in the chapter")
			return nil
		}
		return sess.doc.Select(r)
	}

	if input.Start == nil || input.End == nil {
		v.AddError("selection", "must provide text or both start and end")
		return nil
	}

	start, err := sess.doc.Resolve(input.Start.Path, input.Start.Offset)
	if err != nil {
		v.AddError("start", err.Error())
		return nil
	}
	end, err := sess.doc.Resolve(input.End.Path, input.End.Offset)
	if err != nil {
		v.AddError("end", err.Error())
		return nil
	}

	if err := sess.doc.Select(&dom.Range{Start: start, End: end}); err != nil {
		if errors.Is(err, dom.ErrInvalidBoundary) {
			v.AddError("selection", err.Error())
			return nil
		}
		return err
	}
	return nil
}

// Reload fetches and renders the chapter again, bypassing the content
// cache, and restores its highlights onto the fresh content.
func (s *WorkspaceService) Reload(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	if err := s.notebooks.Refresh(ctx, sess.notebookID, sess.chapterID); err != nil {
		s.logger.Warn("failed to refresh chapter content", "session_id", id, "error", err)
	}

	chapter, err := s.notebooks.Chapter(ctx, sess.notebookID, sess.chapterID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	err = sess.load(chapter)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	err = s.after(ctx, sess, scheduler.RestoreChapter, s.cfg.RestoreDelay, func() error {
		return s.restore(sess)
	})
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.view()
}

// RemoveMarker unpaints a highlight on the session and deletes it.
func (s *WorkspaceService) RemoveMarker(id, highlightID string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.highlighter.Remove(sess.surface, highlightID); err != nil {
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil, ErrHighlightNotFound
		}
		return nil, err
	}

	s.logger.Info("highlight removed", "session_id", id, "highlight_id", highlightID)
	return sess.view()
}

// Close drops a session and cancels whatever it still had scheduled.
func (s *WorkspaceService) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	close(sess.closed)
	cancelled := s.scheduler.CancelOwner(id)

	s.logger.Info("session closed", "session_id", id, "cancelled_tasks", cancelled)
	return nil
}

// CloseAll closes every open session.
func (s *WorkspaceService) CloseAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		_ = s.Close(id)
	}
}

// Count returns the number of open sessions.
func (s *WorkspaceService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// CloseIdle closes sessions that haven't been used for maxIdle and returns
// how many it closed.
func (s *WorkspaceService) CloseIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle).UnixNano()

	s.mu.RLock()
	var idle []string
	for id, sess := range s.sessions {
		if sess.lastSeen.Load() < cutoff {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()

	closed := 0
	for _, id := range idle {
		if s.Close(id) == nil {
			closed++
		}
	}
	return closed
}

// ClassDeleted clears the selected class of sessions that were using it and
// unpaints the markers of highlights that went with the class.
func (s *WorkspaceService) ClassDeleted(classID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		sess.mu.Lock()
		if sess.selectedClassID == classID {
			sess.selectedClassID = ""
		}
		n, err := s.highlighter.Prune(sess.surface)
		sess.mu.Unlock()

		if err != nil {
			s.logger.Error("failed to prune markers", "session_id", sess.id, "class_id", classID, "error", err)
			continue
		}
		if n > 0 {
			s.logger.Debug("markers pruned", "session_id", sess.id, "class_id", classID, "count", n)
		}
	}
}

// HighlightsDeleted unpaints the markers of ids in every open session.
func (s *WorkspaceService) HighlightsDeleted(ids ...string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		sess.mu.Lock()
		for _, id := range ids {
			err := sess.surface.UnpaintRange(id)
			if err != nil && !errors.Is(err, highlight.ErrMarkerNotFound) {
				s.logger.Error("failed to unpaint marker", "session_id", sess.id, "highlight_id", id, "error", err)
			}
		}
		sess.mu.Unlock()
	}
}

func (s *WorkspaceService) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen.Store(time.Now().UnixNano())
	return sess, nil
}

// restore must be called with sess.mu held.
func (s *WorkspaceService) restore(sess *session) error {
	result, err := s.highlighter.Restore(sess.surface, sess.notebookID, sess.chapterID)
	if err != nil {
		return fmt.Errorf("restore highlights: %w", err)
	}

	sess.lastRestore = result
	s.logger.Debug("highlights restored",
		"session_id", sess.id,
		"restored", result.Restored,
		"missed", result.Missed,
	)
	return nil
}

// after runs fn with the session locked once delay has passed and waits for
// it. Closing the session or cancelling ctx abandons the wait, and fn is
// skipped if it has not started by then.
func (s *WorkspaceService) after(ctx context.Context, sess *session, taskType string, delay time.Duration, fn func() error) error {
	done := make(chan error, 1)

	taskID, err := s.scheduler.Schedule(sess.id, taskType, delay, func(context.Context) error {
		result := errTaskAborted
		defer func() { done <- result }()

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if sess.isClosed() {
			result = ErrSessionClosed
			return nil
		}
		if err := ctx.Err(); err != nil {
			result = err
			return nil
		}
		result = fn()
		return nil
	})
	if err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-sess.closed:
		return ErrSessionClosed
	case <-ctx.Done():
		s.scheduler.Cancel(taskID)
		return ctx.Err()
	}
}
