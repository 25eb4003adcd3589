package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// BoardStore defines the interface for board persistence.
// Every method is scoped to the owning user; a board owned by someone else
// behaves exactly like a missing one.
type BoardStore interface {
	// List returns the user's boards in insertion order.
	List(ctx context.Context, userID uuid.UUID) ([]domain.Board, error)

	// Get returns the board if userID owns it.
	// Returns ErrBoardNotFound otherwise.
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Board, error)

	// Create saves a new board.
	// Returns validation errors from the domain Board if data is invalid.
	Create(ctx context.Context, board *domain.Board) error

	// Rename changes the board's name and returns the updated board.
	// Returns domain.ErrEmptyBoardName for a blank name and ErrBoardNotFound
	// if userID does not own the board.
	Rename(ctx context.Context, id, userID uuid.UUID, name string) (*domain.Board, error)

	// Delete removes the board and every task on it, whatever the task's
	// owner, as one operation.
	// Returns ErrBoardNotFound if userID does not own the board.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
