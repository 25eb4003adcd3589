package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the two-state lifecycle of a task. The only transition is an
// explicit update; nothing changes status automatically.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// DueDateLayout is the date-only format sent by HTML date inputs.
const DueDateLayout = "2006-01-02"

// Task validation errors
var (
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskUserID  = fmt.Errorf("%w: task user ID cannot be empty", ErrValidation)
	ErrEmptyTaskBoardID = fmt.Errorf("%w: task board ID cannot be empty", ErrValidation)
	ErrEmptyTaskTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: status must be pending or completed", ErrValidation)
	ErrInvalidDueDate   = fmt.Errorf("%w: due date must be YYYY-MM-DD or RFC 3339", ErrValidation)
)

// Task is a unit of work on one board, owned by one user.
//
// Position orders a user's tasks within a board. It is assigned by the store at
// creation as max(existing positions)+1 and is never renumbered, so gaps are
// expected after deletes.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	BoardID     uuid.UUID  `json:"boardId"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *string    `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	Position    int        `json:"position"`
}

// NewTask creates a Task. An empty status defaults to pending and an empty
// due date is treated as absent. Position is left at zero for the store to assign.
func NewTask(
	boardID, userID uuid.UUID,
	title, description string,
	status TaskStatus,
	dueDate *string,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if dueDate != nil && *dueDate == "" {
		dueDate = nil
	}

	task := &Task{
		ID:          uuid.New(),
		BoardID:     boardID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}
	if t.BoardID == uuid.Nil {
		return ErrEmptyTaskBoardID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if t.DueDate != nil {
		if _, err := ParseDueDate(*t.DueDate); err != nil {
			return err
		}
	}
	return nil
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ParseDueDate accepts a YYYY-MM-DD date or an RFC 3339 timestamp.
func ParseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(DueDateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDueDate
}

// IsOverdue reports whether a pending task's due date lies before now's calendar
// day (UTC). It is a display flag only and never changes the stored status.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status != TaskStatusPending || t.DueDate == nil {
		return false
	}
	due, err := ParseDueDate(*t.DueDate)
	if err != nil {
		return false
	}
	return truncateDay(due).Before(truncateDay(now))
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TaskPatch is a partial update. A nil field is left untouched; a non-nil
// field replaces the stored value. DueDate pointing at "" clears the due date.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	DueDate     *string
	Position    *int
	BoardID     *uuid.UUID
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.DueDate == nil && p.Position == nil && p.BoardID == nil
}

// Validate checks the fields that are present.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := ParseDueDate(*p.DueDate); err != nil {
			return err
		}
	}
	if p.BoardID != nil && *p.BoardID == uuid.Nil {
		return ErrEmptyTaskBoardID
	}
	return nil
}

// Apply copies the present fields of p onto t. ID, UserID and CreatedAt are
// never touched. Callers validate p first.
func (t *Task) Apply(p TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		if *p.DueDate == "" {
			t.DueDate = nil
		} else {
			due := *p.DueDate
			t.DueDate = &due
		}
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.BoardID != nil {
		t.BoardID = *p.BoardID
	}
}
