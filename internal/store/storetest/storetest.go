// Package storetest holds a behavioural test suite that every store backend
// must pass. Backends call Run from their own _test.go files with a factory
// that returns fresh, empty stores sharing one underlying database.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores groups the three stores of one backend instance.
type Stores struct {
	Users  store.UserStore
	Boards store.BoardStore
	Tasks  store.TaskStore
}

// Factory returns stores over a fresh, empty database.
type Factory func(t *testing.T) Stores

// Run executes the full suite. Each subtest gets its own stores.
func Run(t *testing.T, newStores Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStores) })
	t.Run("Boards", func(t *testing.T) { testBoards(t, newStores) })
	t.Run("Tasks", func(t *testing.T) { testTasks(t, newStores) })
	t.Run("Cascade", func(t *testing.T) { testCascade(t, newStores) })
}

func testUsers(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		s := newStores(t)
		user := mustUser(t, "alice")
		require.NoError(t, s.Users.Create(ctx, user))

		got, err := s.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.HashedPassword, got.HashedPassword)
		assert.WithinDuration(t, user.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		s := newStores(t)
		first := mustUser(t, "alice")
		require.NoError(t, s.Users.Create(ctx, first))

		second := mustUser(t, "alice")
		second.HashedPassword = "$2a$04$zyxwvutsrqponmlkjihgfe"
		err := s.Users.Create(ctx, second)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.True(t, store.IsDuplicateError(err))

		got, err := s.Users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, first.HashedPassword, got.HashedPassword)
	})

	t.Run("unknown username", func(t *testing.T) {
		s := newStores(t)
		_, err := s.Users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		s := newStores(t)
		require.NoError(t, s.Users.Create(ctx, mustUser(t, "alice")))
		_, err := s.Users.GetByUsername(ctx, "Alice")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("invalid user rejected", func(t *testing.T) {
		s := newStores(t)
		user := mustUser(t, "alice")
		user.HashedPassword = ""
		assert.ErrorIs(t, s.Users.Create(ctx, user), domain.ErrValidation)
	})
}

func testBoards(t *testing.T, newStores Factory) {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	t.Run("list is scoped to owner", func(t *testing.T) {
		s := newStores(t)
		first := mustBoard(t, s, alice, "Groceries")
		second := mustBoard(t, s, alice, "Chores")
		mustBoard(t, s, bob, "Bob's")

		boards, err := s.Boards.List(ctx, alice)
		require.NoError(t, err)
		require.Len(t, boards, 2)
		assert.Equal(t, first.ID, boards[0].ID)
		assert.Equal(t, second.ID, boards[1].ID)

		empty, err := s.Boards.List(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("get hides other users' boards", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")

		got, err := s.Boards.Get(ctx, board.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", got.Name)

		_, err = s.Boards.Get(ctx, board.ID, bob)
		assert.ErrorIs(t, err, store.ErrBoardNotFound)
	})

	t.Run("rename", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")

		renamed, err := s.Boards.Rename(ctx, board.ID, alice, "Shopping")
		require.NoError(t, err)
		assert.Equal(t, "Shopping", renamed.Name)
		assert.Equal(t, board.ID, renamed.ID)
		assert.WithinDuration(t, board.CreatedAt, renamed.CreatedAt, time.Second)

		_, err = s.Boards.Rename(ctx, board.ID, alice, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyBoardName)

		_, err = s.Boards.Rename(ctx, board.ID, bob, "Mine now")
		assert.ErrorIs(t, err, store.ErrBoardNotFound)

		_, err = s.Boards.Rename(ctx, uuid.New(), alice, "Ghost")
		assert.ErrorIs(t, err, store.ErrBoardNotFound)

		got, err := s.Boards.Get(ctx, board.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, "Shopping", got.Name)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")

		assert.ErrorIs(t, s.Boards.Delete(ctx, board.ID, bob), store.ErrBoardNotFound)
		require.NoError(t, s.Boards.Delete(ctx, board.ID, alice))
		assert.ErrorIs(t, s.Boards.Delete(ctx, board.ID, alice), store.ErrBoardNotFound)

		boards, err := s.Boards.List(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, boards)
	})
}

func testTasks(t *testing.T, newStores Factory) {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	t.Run("positions are max plus one per board and user", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")
		other := mustBoard(t, s, alice, "Chores")

		a := mustTask(t, s, board.ID, alice, "Buy milk")
		b := mustTask(t, s, board.ID, alice, "Buy eggs")
		c := mustTask(t, s, other.ID, alice, "Sweep")
		assert.Equal(t, 1, a.Position)
		assert.Equal(t, 2, b.Position)
		assert.Equal(t, 1, c.Position)

		require.NoError(t, s.Tasks.Delete(ctx, b.ID, alice))
		d := mustTask(t, s, board.ID, alice, "Buy bread")
		assert.Equal(t, 2, d.Position)

		require.NoError(t, s.Tasks.Delete(ctx, a.ID, alice))
		e := mustTask(t, s, board.ID, alice, "Buy jam")
		assert.Equal(t, 3, e.Position, "positions are never renumbered")
	})

	t.Run("list and get are scoped to owner", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")
		task := mustTask(t, s, board.ID, alice, "Buy milk")

		tasks, err := s.Tasks.List(ctx, board.ID, alice)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, task.ID, tasks[0].ID)
		assert.Equal(t, domain.TaskStatusPending, tasks[0].Status)
		assert.Nil(t, tasks[0].DueDate)

		foreign, err := s.Tasks.List(ctx, board.ID, bob)
		require.NoError(t, err)
		assert.NotNil(t, foreign)
		assert.Empty(t, foreign)

		_, err = s.Tasks.Get(ctx, task.ID, bob)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("update applies only present fields", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")
		task := mustTask(t, s, board.ID, alice, "Buy milk")

		completed := domain.TaskStatusCompleted
		due := "2026-01-31"
		updated, err := s.Tasks.Update(ctx, task.ID, alice, domain.TaskPatch{
			Status:  &completed,
			DueDate: &due,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
		assert.Equal(t, "Buy milk", updated.Title)
		require.NotNil(t, updated.DueDate)
		assert.Equal(t, due, *updated.DueDate)
		assert.Equal(t, task.Position, updated.Position)
		assert.WithinDuration(t, task.CreatedAt, updated.CreatedAt, time.Second)

		cleared := ""
		updated, err = s.Tasks.Update(ctx, task.ID, alice, domain.TaskPatch{DueDate: &cleared})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)

		got, err := s.Tasks.Get(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, got.Status)
		assert.Nil(t, got.DueDate)
	})

	t.Run("update rejects bad patches and strangers", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")
		task := mustTask(t, s, board.ID, alice, "Buy milk")

		blank := " "
		_, err := s.Tasks.Update(ctx, task.ID, alice, domain.TaskPatch{Title: &blank})
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

		title := "Stolen"
		_, err = s.Tasks.Update(ctx, task.ID, bob, domain.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = s.Tasks.Update(ctx, uuid.New(), alice, domain.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStores(t)
		board := mustBoard(t, s, alice, "Groceries")
		task := mustTask(t, s, board.ID, alice, "Buy milk")

		assert.ErrorIs(t, s.Tasks.Delete(ctx, task.ID, bob), store.ErrTaskNotFound)
		require.NoError(t, s.Tasks.Delete(ctx, task.ID, alice))
		assert.ErrorIs(t, s.Tasks.Delete(ctx, task.ID, alice), store.ErrTaskNotFound)
	})
}

func testCascade(t *testing.T, newStores Factory) {
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	s := newStores(t)
	doomed := mustBoard(t, s, alice, "Groceries")
	kept := mustBoard(t, s, alice, "Chores")
	mustTask(t, s, doomed.ID, alice, "Buy milk")
	mustTask(t, s, doomed.ID, alice, "Buy eggs")
	// The store does not check board ownership, so another user's task can
	// sit on the board. Deleting the board removes it too.
	mustTask(t, s, doomed.ID, bob, "Stray")
	survivor := mustTask(t, s, kept.ID, alice, "Sweep")

	require.NoError(t, s.Boards.Delete(ctx, doomed.ID, alice))

	tasks, err := s.Tasks.List(ctx, doomed.ID, alice)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = s.Tasks.List(ctx, doomed.ID, bob)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = s.Tasks.List(ctx, kept.ID, alice)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, survivor.ID, tasks[0].ID)
}

func mustUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "$2a$04$abcdefghijklmnopqrstuv")
	require.NoError(t, err)
	return user
}

func mustBoard(t *testing.T, s Stores, userID uuid.UUID, name string) *domain.Board {
	t.Helper()
	board, err := domain.NewBoard(userID, name)
	require.NoError(t, err)
	require.NoError(t, s.Boards.Create(context.Background(), board))
	return board
}

func mustTask(t *testing.T, s Stores, boardID, userID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(boardID, userID, title, "", "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Tasks.Create(context.Background(), task))
	return task
}
