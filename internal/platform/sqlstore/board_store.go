package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// BoardStore implements store.BoardStore on a SQL database.
type BoardStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewBoardStore creates a BoardStore. Delete needs transactions, so unlike
// UserStore this takes a *sql.DB.
func NewBoardStore(db *sql.DB, log *slog.Logger) *BoardStore {
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

const boardColumns = `id, name, user_id, created_at`

func scanBoard(row interface{ Scan(...any) error }) (domain.Board, error) {
	var b domain.Board
	if err := row.Scan(&b.ID, &b.Name, &b.UserID, &b.CreatedAt); err != nil {
		return domain.Board{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}

// List implements store.BoardStore.List.
func (s *BoardStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+boardColumns+`
		FROM boards
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		log.Error("failed to list boards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("board", "list", "failed to query boards", err)
	}
	defer func() { _ = rows.Close() }()

	boards := make([]domain.Board, 0)
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, store.NewStoreError("board", "list", "failed to scan board", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("board", "list", "failed to iterate boards", err)
	}
	return boards, nil
}

// Get implements store.BoardStore.Get.
func (s *BoardStore) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Board, error) {
	b, err := scanBoard(s.db.QueryRowContext(ctx, `
		SELECT `+boardColumns+`
		FROM boards
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBoardNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get board",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return nil, store.NewStoreError("board", "get", "failed to query board", err)
	}
	return &b, nil
}

// Create implements store.BoardStore.Create.
func (s *BoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boards (id, name, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, board.ID, board.Name, board.UserID, board.CreatedAt.UTC())
	if err != nil {
		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return store.NewStoreError("board", "create", "failed to insert board", MapError(err))
	}

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

	result, err := s.db.ExecContext(ctx, `
		UPDATE boards SET name = $1
		WHERE id = $2 AND user_id = $3
	`, name, id, userID)
	if err != nil {
		return nil, store.NewStoreError("board", "rename", "failed to update board", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrBoardNotFound); err != nil {
		return nil, err
	}

	return s.Get(ctx, id, userID)
}

// Delete implements store.BoardStore.Delete. The board row and its tasks are
// removed in one transaction.
func (s *BoardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			DELETE FROM boards WHERE id = $1 AND user_id = $2
		`, id, userID)
		if err != nil {
			return store.NewStoreError("board", "delete", "failed to delete board", err)
		}
		if err := CheckRowsAffected(result, store.ErrBoardNotFound); err != nil {
			return err
		}

		result, err = tx.ExecContext(ctx, `
			DELETE FROM tasks WHERE board_id = $1
		`, id)
		if err != nil {
			return store.NewStoreError("board", "delete", "failed to delete board tasks", err)
		}
		removed, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("board deleted",
		slog.String("board_id", id.String()),
		slog.Int64("tasks_removed", removed))
	return nil
}
