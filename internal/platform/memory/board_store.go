package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// BoardStore implements store.BoardStore over a shared DB.
type BoardStore struct {
	db     *DB
	logger *slog.Logger
}

// NewBoardStore creates a BoardStore. If logger is nil, slog.Default is used.
func NewBoardStore(db *DB, log *slog.Logger) *BoardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &BoardStore{
		db:     db,
		logger: log.With(slog.String("component", "board_store")),
	}
}

var _ store.BoardStore = (*BoardStore)(nil)

// List implements store.BoardStore.List.
func (s *BoardStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	boards := make([]domain.Board, 0)
	for _, b := range s.db.boards {
		if b.UserID == userID {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

// Get implements store.BoardStore.Get.
func (s *BoardStore) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Board, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	i := s.indexOf(id, userID)
	if i < 0 {
		return nil, store.ErrBoardNotFound
	}
	board := s.db.boards[i]
	return &board, nil
}

// Create implements store.BoardStore.Create.
func (s *BoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	s.db.mu.Lock()
	s.db.boards = append(s.db.boards, *board)
	s.db.mu.Unlock()

	log.Info("board created",
		slog.String("board_id", board.ID.String()),
		slog.String("user_id", board.UserID.String()))
	return nil
}

// Rename implements store.BoardStore.Rename.
func (s *BoardStore) Rename(ctx context.Context, id, userID uuid.UUID, name string) (*domain.Board, error) {
	if err := domain.ValidateBoardName(name); err != nil {
		return nil, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexOf(id, userID)
	if i < 0 {
		return nil, store.ErrBoardNotFound
	}
	s.db.boards[i].Name = name
	board := s.db.boards[i]
	return &board, nil
}

// Delete implements store.BoardStore.Delete. Every task on the board goes
// with it, whoever owns the task.
func (s *BoardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexOf(id, userID)
	if i < 0 {
		return store.ErrBoardNotFound
	}
	s.db.boards = append(s.db.boards[:i], s.db.boards[i+1:]...)

	kept := s.db.tasks[:0]
	removed := 0
	for _, t := range s.db.tasks {
		if t.BoardID == id {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.db.tasks = kept

	log.Info("board deleted",
		slog.String("board_id", id.String()),
		slog.Int("tasks_removed", removed))
	return nil
}

// indexOf must be called with the lock held.
func (s *BoardStore) indexOf(id, userID uuid.UUID) int {
	for i, b := range s.db.boards {
		if b.ID == id && b.UserID == userID {
			return i
		}
	}
	return -1
}
