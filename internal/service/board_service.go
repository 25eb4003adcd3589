package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// BoardService provides board operations scoped to the calling user.
type BoardService interface {
	ListBoards(ctx context.Context, userID uuid.UUID) ([]domain.Board, error)
	CreateBoard(ctx context.Context, userID uuid.UUID, name string) (*domain.Board, error)
	RenameBoard(ctx context.Context, userID, boardID uuid.UUID, name string) (*domain.Board, error)

	// DeleteBoard removes the board and all of its tasks.
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
}

type boardServiceImpl struct {
	boards  store.BoardStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewBoardService creates a BoardService. emitter may be nil.
func NewBoardService(boards store.BoardStore, emitter events.EventEmitter, log *slog.Logger) BoardService {
	if log == nil {
		log = slog.Default()
	}
	return &boardServiceImpl{
		boards:  boards,
		emitter: emitter,
		logger:  log.With("component", "board_service"),
	}
}

type boardEventPayload struct {
	BoardID uuid.UUID `json:"boardId"`
	Name    string    `json:"name,omitempty"`
}

func (s *boardServiceImpl) ListBoards(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	boards, err := s.boards.List(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list boards",
			"error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, name string) (*domain.Board, error) {
	board, err := domain.NewBoard(userID, name)
	if err != nil {
		return nil, err
	}

	if err := s.boards.Create(ctx, board); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create board",
			"error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	emit(ctx, s.emitter, s.logger, events.BoardCreated, userID,
		boardEventPayload{BoardID: board.ID, Name: board.Name})
	return board, nil
}

func (s *boardServiceImpl) RenameBoard(
	ctx context.Context,
	userID, boardID uuid.UUID,
	name string,
) (*domain.Board, error) {
	board, err := s.boards.Rename(ctx, boardID, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to rename board: %w", err)
	}

	emit(ctx, s.emitter, s.logger, events.BoardRenamed, userID,
		boardEventPayload{BoardID: board.ID, Name: board.Name})
	return board, nil
}

func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if err := s.boards.Delete(ctx, boardID, userID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	emit(ctx, s.emitter, s.logger, events.BoardDeleted, userID, boardEventPayload{BoardID: boardID})
	return nil
}

// emit publishes an audit event. Failures are logged and never fail the
// operation that already succeeded.
func emit(
	ctx context.Context,
	emitter events.EventEmitter,
	fallback *slog.Logger,
	eventType string,
	userID uuid.UUID,
	payload interface{},
) {
	if emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, fallback)

	event, err := events.NewEvent(eventType, userID, payload)
	if err != nil {
		log.Error("failed to build event", "error", err, "event_type", eventType)
		return
	}
	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit event", "error", err, "event_type", eventType)
	}
}
