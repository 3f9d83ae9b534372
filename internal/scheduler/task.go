package scheduler

import (
	"context"
	"time"
)

// Task types used in log lines.
const (
	CaptureSelection = "capture-selection"
	RestoreChapter   = "restore-chapter"
)

// Task is a unit of delayed work. Owner groups tasks that are cancelled
// together, such as every timer of one workspace session.
type Task struct {
	ID         string
	Type       string
	Owner      string
	Run        func(ctx context.Context) error
	Retries    int
	MaxRetries int
	ExecuteAt  time.Time
	CreatedAt  time.Time

	index int
}
