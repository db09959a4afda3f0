package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the text form of Task.ModifiedOn in every file backend.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Priority bounds. A lower value is a higher priority.
const (
	MinPriority = 1
	MaxPriority = 5
)

// ErrIndex reports an index that does not address a stored task.
var ErrIndex = errors.New("task index out of range")

// Task is a single stored task.
type Task struct {
	Title      string
	Priority   int
	ModifiedOn time.Time
}

// FormatTime renders t with TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a TimeLayout value in the local time zone.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse modified_on: %w", err)
	}
	return t, nil
}

// ValidationError represents an invalid task field.
type ValidationError struct {
	Path string // field or record location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the title and priority of a task.
func Validate(title string, priority int) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{
			Path: "title",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if priority < MinPriority || priority > MaxPriority {
		return &ValidationError{
			Path: "priority",
			Err:  fmt.Errorf("must be between %d and %d, got %d", MinPriority, MaxPriority, priority),
		}
	}
	return nil
}

func checkIndex(index, n int) error {
	if n == 0 {
		return fmt.Errorf("%w: no task stored", ErrIndex)
	}
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d not between 0 and %d", ErrIndex, index, n-1)
	}
	return nil
}

// ChangeOp identifies the kind of change carried by a notification.
type ChangeOp int

const (
	OpCreate ChangeOp = iota + 1
	OpUpdate
	OpDelete
	OpExternal
)

func (op ChangeOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Change is the payload of every store notification.
// Index is -1 for OpExternal.
type Change struct {
	Op    ChangeOp
	Index int
}

// ChangeFrom extracts the Change from a notification payload.
func ChangeFrom(payload []any) (Change, bool) {
	for _, p := range payload {
		if c, ok := p.(Change); ok {
			return c, true
		}
	}
	return Change{}, false
}
