package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) storetest.Stores {
	db := NewDB()
	return storetest.Stores{
		Users:  NewUserStore(db, nil),
		Boards: NewBoardStore(db, nil),
		Tasks:  NewTaskStore(db, nil),
	}
}

func TestMemoryStores(t *testing.T) {
	storetest.Run(t, newStores)
}

func TestTaskStore_ConcurrentCreateAssignsDistinctPositions(t *testing.T) {
	t.Parallel()

	db := NewDB()
	tasks := NewTaskStore(db, nil)
	boardID, userID := uuid.New(), uuid.New()

	const n = 50
	positions := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := domain.NewTask(boardID, userID, "task", "", "", nil)
			if !assert.NoError(t, err) {
				return
			}
			if assert.NoError(t, tasks.Create(context.Background(), task)) {
				positions <- task.Position
			}
		}()
	}
	wg.Wait()
	close(positions)

	seen := make(map[int]bool)
	for p := range positions {
		assert.False(t, seen[p], "position %d assigned twice", p)
		seen[p] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "missing position %d", i)
	}
}

func TestTaskStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	db := NewDB()
	tasks := NewTaskStore(db, nil)
	boardID, userID := uuid.New(), uuid.New()
	due := "2026-03-01"

	task, err := domain.NewTask(boardID, userID, "Buy milk", "", "", &due)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))

	got, err := tasks.Get(context.Background(), task.ID, userID)
	require.NoError(t, err)
	*got.DueDate = "1999-01-01"
	got.Title = "mutated"

	again, err := tasks.Get(context.Background(), task.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", again.Title)
	assert.Equal(t, "2026-03-01", *again.DueDate)
}
