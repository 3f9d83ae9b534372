package data

import (
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps highlight classes and highlights for the lifetime of
// the process. Both slices are kept in insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	classes    []*HighlightClass
	highlights []*Highlight
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{now: time.Now}

	for _, class := range DefaultHighlightClasses() {
		s.classes = append(s.classes, &class)
	}

	return s
}

// Classes returns the HighlightClassModel view of the store.
func (s *MemoryStore) Classes() HighlightClassModel {
	return memoryClassModel{s}
}

// Highlights returns the HighlightModel view of the store.
func (s *MemoryStore) Highlights() HighlightModel {
	return memoryHighlightModel{s}
}

func (s *MemoryStore) classIndex(id string) int {
	return slices.IndexFunc(s.classes, func(c *HighlightClass) bool { return c.ID == id })
}

type memoryClassModel struct {
	s *MemoryStore
}

func (m memoryClassModel) Insert(class *HighlightClass) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	now := m.s.now()
	class.ID = newHighlightClassID()
	class.CreatedAt = now
	class.UpdatedAt = now

	stored := *class
	m.s.classes = append(m.s.classes, &stored)
	return nil
}

func (m memoryClassModel) Get(id string) (*HighlightClass, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	i := m.s.classIndex(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	class := *m.s.classes[i]
	return &class, nil
}

func (m memoryClassModel) GetAll() ([]*HighlightClass, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	classes := make([]*HighlightClass, 0, len(m.s.classes))
	for _, c := range m.s.classes {
		class := *c
		classes = append(classes, &class)
	}
	return classes, nil
}

func (m memoryClassModel) Update(class *HighlightClass) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.classIndex(class.ID)
	if i < 0 {
		return ErrRecordNotFound
	}

	stored := m.s.classes[i]
	stored.Name = class.Name
	stored.Color = class.Color
	stored.BackgroundColor = class.BackgroundColor
	stored.UpdatedAt = m.s.now()

	*class = *stored
	return nil
}

func (m memoryClassModel) Delete(id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.classIndex(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	if len(m.s.classes) == 1 {
		return ErrLastHighlightClass
	}

	m.s.highlights = slices.DeleteFunc(m.s.highlights, func(h *Highlight) bool {
		return h.ClassID == id
	})
	m.s.classes = slices.Delete(m.s.classes, i, i+1)

	return nil
}

type memoryHighlightModel struct {
	s *MemoryStore
}

func (m memoryHighlightModel) Insert(highlight *Highlight) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.s.classIndex(highlight.ClassID) < 0 {
		return ErrUnknownHighlightClass
	}

	highlight.ID = newHighlightID()
	highlight.CreatedAt = m.s.now()

	stored := *highlight
	m.s.highlights = append(m.s.highlights, &stored)
	return nil
}

func (m memoryHighlightModel) Get(id string) (*Highlight, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, h := range m.s.highlights {
		if h.ID == id {
			highlight := *h
			return &highlight, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m memoryHighlightModel) GetAll(filters Filters) ([]*Highlight, Metadata, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	total := len(m.s.highlights)
	from := min(filters.offset(), total)
	to := min(from+filters.limit(), total)

	highlights := make([]*Highlight, 0, to-from)
	for _, h := range m.s.highlights[from:to] {
		highlight := *h
		highlights = append(highlights, &highlight)
	}

	return highlights, calculateMetadata(total, filters.Page, filters.PageSize), nil
}

func (m memoryHighlightModel) GetByChapter(filter *ChapterFilters) ([]*Highlight, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	highlights := []*Highlight{}
	for _, h := range m.s.highlights {
		if h.NotebookID != filter.NotebookID || h.ChapterID != filter.ChapterID {
			continue
		}
		if filter.ClassID != "" && h.ClassID != filter.ClassID {
			continue
		}
		highlight := *h
		highlights = append(highlights, &highlight)
	}
	return highlights, nil
}

func (m memoryHighlightModel) Delete(id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := slices.IndexFunc(m.s.highlights, func(h *Highlight) bool { return h.ID == id })
	if i < 0 {
		return ErrRecordNotFound
	}

	m.s.highlights = slices.Delete(m.s.highlights, i, i+1)
	return nil
}
