package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewTask_Defaults(t *testing.T) {
	t.Parallel()

	boardID, userID := uuid.New(), uuid.New()

	task, err := NewTask(boardID, userID, "Buy milk", "", "", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, boardID, task.BoardID)
	assert.Equal(t, userID, task.UserID)
	assert.Equal(t, TaskStatusPending, task.Status, "status should default to pending")
	assert.Nil(t, task.DueDate)
	assert.Equal(t, "", task.Description)
	assert.Zero(t, task.Position, "position is assigned by the store")
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
}

func TestNewTask_EmptyDueDateIsAbsent(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), uuid.New(), "Call mom", "", TaskStatusCompleted, strPtr(""))
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, TaskStatusCompleted, task.Status)
}

func TestNewTask_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		status  TaskStatus
		due     *string
		wantErr error
	}{
		{"empty title", "", "", nil, ErrEmptyTaskTitle},
		{"blank title", "   ", "", nil, ErrEmptyTaskTitle},
		{"unknown status", "Title", "archived", nil, ErrInvalidStatus},
		{"bad due date", "Title", "", strPtr("next tuesday"), ErrInvalidDueDate},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task, err := NewTask(uuid.New(), uuid.New(), tt.title, "", tt.status, tt.due)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDueDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDueDate("2024-05-01T10:30:00Z")
	require.NoError(t, err)

	_, err = ParseDueDate("05/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestTaskIsOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status TaskStatus
		due    *string
		want   bool
	}{
		{"no due date", TaskStatusPending, nil, false},
		{"due yesterday", TaskStatusPending, strPtr("2024-05-09"), true},
		{"due today", TaskStatusPending, strPtr("2024-05-10"), false},
		{"due tomorrow", TaskStatusPending, strPtr("2024-05-11"), false},
		{"completed tasks are never overdue", TaskStatusCompleted, strPtr("2024-01-01"), false},
		{"timestamp due date", TaskStatusPending, strPtr("2024-05-09T23:59:00Z"), true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task := Task{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := func() Task {
		return Task{
			ID:          uuid.New(),
			BoardID:     uuid.New(),
			UserID:      uuid.New(),
			Title:       "Buy milk",
			Description: "2 litres",
			Status:      TaskStatusPending,
			DueDate:     strPtr("2024-05-01"),
			CreatedAt:   created,
			Position:    3,
		}
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		t.Parallel()
		task := base()
		want := task
		assert.True(t, TaskPatch{}.IsEmpty())
		task.Apply(TaskPatch{})
		assert.Equal(t, want, task)
	})

	t.Run("only present fields change", func(t *testing.T) {
		t.Parallel()
		task := base()
		completed := TaskStatusCompleted
		task.Apply(TaskPatch{Status: &completed})

		assert.Equal(t, TaskStatusCompleted, task.Status)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2 litres", task.Description)
		assert.Equal(t, 3, task.Position)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, "2024-05-01", *task.DueDate)
	})

	t.Run("clearing description and due date", func(t *testing.T) {
		t.Parallel()
		task := base()
		task.Apply(TaskPatch{Description: strPtr(""), DueDate: strPtr("")})
		assert.Equal(t, "", task.Description)
		assert.Nil(t, task.DueDate)
	})

	t.Run("identity fields are immutable", func(t *testing.T) {
		t.Parallel()
		task := base()
		id, userID := task.ID, task.UserID
		newBoard := uuid.New()
		pos := 9
		task.Apply(TaskPatch{BoardID: &newBoard, Position: &pos, Title: strPtr("Buy oat milk")})

		assert.Equal(t, id, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, created, task.CreatedAt)
		assert.Equal(t, newBoard, task.BoardID)
		assert.Equal(t, 9, task.Position)
		assert.Equal(t, "Buy oat milk", task.Title)
	})
}

func TestTaskPatchValidate(t *testing.T) {
	t.Parallel()

	bad := TaskStatus("done")
	nilBoard := uuid.Nil

	tests := []struct {
		name    string
		patch   TaskPatch
		wantErr error
	}{
		{"empty patch", TaskPatch{}, nil},
		{"blank title", TaskPatch{Title: strPtr(" ")}, ErrEmptyTaskTitle},
		{"invalid status", TaskPatch{Status: &bad}, ErrInvalidStatus},
		{"invalid due date", TaskPatch{DueDate: strPtr("soon")}, ErrInvalidDueDate},
		{"clearing due date", TaskPatch{DueDate: strPtr("")}, nil},
		{"nil board", TaskPatch{BoardID: &nilBoard}, ErrEmptyTaskBoardID},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.patch.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
