package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Like BoardStore, every method filters on the owning user.
type TaskStore interface {
	// List returns the user's tasks on a board in stored order. Sorting by
	// position is left to the caller.
	List(ctx context.Context, boardID, userID uuid.UUID) ([]domain.Task, error)

	// Get returns the task if userID owns it.
	// Returns ErrTaskNotFound otherwise.
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// Create saves a new task and sets task.Position to one more than the
	// highest position among the user's tasks on that board (1 for the first).
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies the present fields of patch and returns the updated task.
	// Returns ErrTaskNotFound if userID does not own the task.
	Update(ctx context.Context, id, userID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the task.
	// Returns ErrTaskNotFound if userID does not own the task.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
