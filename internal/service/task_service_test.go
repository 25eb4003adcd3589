package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/mocks"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateAndToggle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := uuid.New()

	board, err := f.boards.CreateBoard(ctx, alice, "Groceries")
	require.NoError(t, err)

	task, err := f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: board.ID, Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, 1, task.Position)

	completed := domain.TaskStatusCompleted
	updated, err := f.tasks.UpdateTask(ctx, alice, task.ID, domain.TaskPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)

	var payload struct {
		Fields []string `json:"fields"`
	}
	evts := f.emitter.Events()
	require.Len(t, evts, 3)
	assert.Equal(t, events.TaskUpdated, evts[2].Type)
	require.NoError(t, evts[2].UnmarshalPayload(&payload))
	assert.Equal(t, []string{"status"}, payload.Fields)
}

func TestTaskService_CreateRequiresOwnedBoard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice, bob := uuid.New(), uuid.New()

	board, err := f.boards.CreateBoard(ctx, alice, "Groceries")
	require.NoError(t, err)

	_, err = f.tasks.CreateTask(ctx, bob, service.CreateTaskInput{BoardID: board.ID, Title: "Sneaky"})
	assert.ErrorIs(t, err, store.ErrBoardNotFound)

	_, err = f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: uuid.New(), Title: "Orphan"})
	assert.ErrorIs(t, err, store.ErrBoardNotFound)

	_, err = f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: board.ID, Title: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

	bad := "next tuesday"
	_, err = f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: board.ID, Title: "x", DueDate: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidDueDate)
}

func TestTaskService_ListSortsByPosition(t *testing.T) {
	alice, boardID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	tasks := new(mocks.TestifyMockTaskStore)
	tasks.On("List", mock.Anything, boardID, alice).Return([]domain.Task{
		{Title: "third", Position: 3, CreatedAt: now},
		{Title: "second-late", Position: 2, CreatedAt: now.Add(time.Second)},
		{Title: "first", Position: 1, CreatedAt: now},
		{Title: "second-early", Position: 2, CreatedAt: now},
	}, nil)

	svc := service.NewTaskService(tasks, new(mocks.TestifyMockBoardStore), nil, discardLogger)
	got, err := svc.ListTasks(context.Background(), alice, boardID)
	require.NoError(t, err)

	titles := make([]string, len(got))
	for i, task := range got {
		titles[i] = task.Title
	}
	assert.Equal(t, []string{"first", "second-early", "second-late", "third"}, titles)
}

func TestTaskService_ListForeignBoardIsEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice, bob := uuid.New(), uuid.New()

	board, err := f.boards.CreateBoard(ctx, alice, "Groceries")
	require.NoError(t, err)
	_, err = f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: board.ID, Title: "Buy milk"})
	require.NoError(t, err)

	got, err := f.tasks.ListTasks(ctx, bob, board.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice, bob := uuid.New(), uuid.New()

	home, err := f.boards.CreateBoard(ctx, alice, "Home")
	require.NoError(t, err)
	work, err := f.boards.CreateBoard(ctx, alice, "Work")
	require.NoError(t, err)
	foreign, err := f.boards.CreateBoard(ctx, bob, "Bob's")
	require.NoError(t, err)

	task, err := f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: home.ID, Title: "Email"})
	require.NoError(t, err)

	t.Run("move to owned board", func(t *testing.T) {
		moved, err := f.tasks.UpdateTask(ctx, alice, task.ID, domain.TaskPatch{BoardID: &work.ID})
		require.NoError(t, err)
		assert.Equal(t, work.ID, moved.BoardID)
	})

	t.Run("move to foreign board", func(t *testing.T) {
		_, err := f.tasks.UpdateTask(ctx, alice, task.ID, domain.TaskPatch{BoardID: &foreign.ID})
		assert.ErrorIs(t, err, store.ErrBoardNotFound)
	})

	t.Run("someone else's task", func(t *testing.T) {
		title := "Hijacked"
		_, err := f.tasks.UpdateTask(ctx, bob, task.ID, domain.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := domain.TaskStatus("archived")
		_, err := f.tasks.UpdateTask(ctx, alice, task.ID, domain.TaskPatch{Status: &status})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("empty patch returns the task unchanged", func(t *testing.T) {
		before := len(f.emitter.Events())
		got, err := f.tasks.UpdateTask(ctx, alice, task.ID, domain.TaskPatch{})
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Len(t, f.emitter.Events(), before, "no event for a no-op")
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := uuid.New()

	board, err := f.boards.CreateBoard(ctx, alice, "Groceries")
	require.NoError(t, err)
	task, err := f.tasks.CreateTask(ctx, alice, service.CreateTaskInput{BoardID: board.ID, Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, f.tasks.DeleteTask(ctx, alice, task.ID))
	assert.ErrorIs(t, f.tasks.DeleteTask(ctx, alice, task.ID), store.ErrTaskNotFound)
	assert.Equal(t, events.TaskDeleted, f.emitter.Types()[len(f.emitter.Types())-1])
}
