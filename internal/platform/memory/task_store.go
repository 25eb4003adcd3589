package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// TaskStore implements store.TaskStore over a shared DB.
type TaskStore struct {
	db     *DB
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. If logger is nil, slog.Default is used.
func NewTaskStore(db *DB, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, boardID, userID uuid.UUID) ([]domain.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	tasks := make([]domain.Task, 0)
	for _, t := range s.db.tasks {
		if t.BoardID == boardID && t.UserID == userID {
			tasks = append(tasks, copyTask(t))
		}
	}
	return tasks, nil
}

// Get implements store.TaskStore.Get.
func (s *TaskStore) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	i := s.indexOf(id, userID)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	task := copyTask(s.db.tasks[i])
	return &task, nil
}

// Create implements store.TaskStore.Create. The position is computed and the
// task appended under one write lock.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	highest := 0
	for _, t := range s.db.tasks {
		if t.BoardID == task.BoardID && t.UserID == task.UserID && t.Position > highest {
			highest = t.Position
		}
	}
	task.Position = highest + 1
	s.db.tasks = append(s.db.tasks, copyTask(*task))

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("board_id", task.BoardID.String()),
		slog.Int("position", task.Position))
	return nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexOf(id, userID)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	s.db.tasks[i].Apply(patch)
	task := copyTask(s.db.tasks[i])
	return &task, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexOf(id, userID)
	if i < 0 {
		return store.ErrTaskNotFound
	}
	s.db.tasks = append(s.db.tasks[:i], s.db.tasks[i+1:]...)
	return nil
}

// indexOf must be called with the lock held.
func (s *TaskStore) indexOf(id, userID uuid.UUID) int {
	for i, t := range s.db.tasks {
		if t.ID == id && t.UserID == userID {
			return i
		}
	}
	return -1
}

// copyTask detaches the DueDate pointer from stored state.
func copyTask(t domain.Task) domain.Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
