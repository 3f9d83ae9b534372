package scheduler

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrStopped = errors.New("scheduler stopped")

// Scheduler runs delayed tasks on a fixed pool of workers. Tasks wait in a
// min-heap until they are due and can be cancelled until a worker picks
// them up.
type Scheduler struct {
	NumWorkers   int
	RetryBackoff time.Duration
	TaskChannel  chan *Task
	DelayedQueue *PriorityQueue
	Logger       *slog.Logger

	mu      sync.Mutex
	pending map[string]*Task
	wake    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

func NewScheduler(numWorkers int, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		NumWorkers:   numWorkers,
		RetryBackoff: 50 * time.Millisecond,
		TaskChannel:  make(chan *Task, 100),
		DelayedQueue: BuildMinHeap(),
		Logger:       logger,
		pending:      make(map[string]*Task),
		wake:         make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (s *Scheduler) Start() {
	for range s.NumWorkers {
		s.wg.Add(1)
		go s.worker()
	}

	s.wg.Add(1)
	go s.processDelayedTasks()
}

// Schedule queues fn to run after delay and returns the task ID.
func (s *Scheduler) Schedule(owner, taskType string, delay time.Duration, fn func(ctx context.Context) error) (string, error) {
	now := time.Now()
	task := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Owner:     owner,
		Run:       fn,
		ExecuteAt: now.Add(delay),
		CreatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return "", ErrStopped
	}

	s.pending[task.ID] = task
	heap.Push(s.DelayedQueue, task)
	s.notify()

	return task.ID, nil
}

// Cancel drops a task that has not started yet. It reports whether the
// task was still pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.pending[id]
	if !ok {
		return false
	}
	s.drop(task)
	return true
}

// CancelOwner drops every pending task of owner and returns how many there
// were.
func (s *Scheduler) CancelOwner(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, task := range s.pending {
		if task.Owner == owner {
			s.drop(task)
			n++
		}
	}
	return n
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}

// Stop cancels everything still pending, tells running tasks to give up and
// waits for the workers to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for _, task := range s.pending {
		s.drop(task)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// drop must be called with mu held.
func (s *Scheduler) drop(task *Task) {
	delete(s.pending, task.ID)
	if task.index >= 0 && task.index < s.DelayedQueue.Len() && (*s.DelayedQueue)[task.index] == task {
		heap.Remove(s.DelayedQueue, task.index)
	}
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.TaskChannel:
			s.processTask(task)
		}
	}
}

func (s *Scheduler) processTask(task *Task) {
	s.mu.Lock()
	_, ok := s.pending[task.ID]
	delete(s.pending, task.ID)
	s.mu.Unlock()

	// cancelled after it left the queue
	if !ok {
		return
	}

	err := s.run(task)
	if err == nil {
		return
	}

	s.Logger.Error("task failed",
		"task_id", task.ID,
		"type", task.Type,
		"owner", task.Owner,
		"retries", task.Retries,
		"error", err,
	)

	if task.Retries < task.MaxRetries && !errors.Is(err, context.Canceled) {
		s.scheduleRetry(task)
	}
}

func (s *Scheduler) run(task *Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	return task.Run(s.ctx)
}

func (s *Scheduler) scheduleRetry(task *Task) {
	task.Retries++
	task.ExecuteAt = time.Now().Add(s.RetryBackoff << (task.Retries - 1))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.pending[task.ID] = task
	heap.Push(s.DelayedQueue, task)
	s.notify()
}

func (s *Scheduler) processDelayedTasks() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		var due []*Task

		s.mu.Lock()
		for s.DelayedQueue.Len() > 0 {
			task := s.DelayedQueue.Peek()
			if time.Now().Before(task.ExecuteAt) {
				break
			}
			heap.Pop(s.DelayedQueue)
			due = append(due, task)
		}

		wait := time.Hour
		if next := s.DelayedQueue.Peek(); next != nil {
			wait = time.Until(next.ExecuteAt)
		}
		s.mu.Unlock()

		for _, task := range due {
			select {
			case s.TaskChannel <- task:
			case <-s.ctx.Done():
				return
			}
		}

		timer.Reset(wait)

		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		case <-timer.C:
		}
	}
}
