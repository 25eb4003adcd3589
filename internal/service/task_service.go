package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	BoardID     uuid.UUID
	Title       string
	Description string
	Status      domain.TaskStatus
	DueDate     *string
}

// TaskService provides task operations scoped to the calling user.
type TaskService interface {
	// ListTasks returns the user's tasks on a board ordered by position, then
	// creation time. A board the user does not own yields an empty list.
	ListTasks(ctx context.Context, userID, boardID uuid.UUID) ([]domain.Task, error)

	// CreateTask adds a task to a board the user owns. It returns
	// store.ErrBoardNotFound otherwise.
	CreateTask(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*domain.Task, error)

	// UpdateTask applies a partial update. Moving the task to another board
	// requires owning that board.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskServiceImpl struct {
	tasks   store.TaskStore
	boards  store.BoardStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a TaskService. emitter may be nil.
func NewTaskService(
	tasks store.TaskStore,
	boards store.BoardStore,
	emitter events.EventEmitter,
	log *slog.Logger,
) TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &taskServiceImpl{
		tasks:   tasks,
		boards:  boards,
		emitter: emitter,
		logger:  log.With("component", "task_service"),
	}
}

type taskEventPayload struct {
	TaskID  uuid.UUID         `json:"taskId"`
	BoardID *uuid.UUID        `json:"boardId,omitempty"`
	Status  domain.TaskStatus `json:"status,omitempty"`
	Fields  []string          `json:"fields,omitempty"`
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID, boardID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, boardID, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			"error", err, "board_id", boardID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	in CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(in.BoardID, userID, in.Title, in.Description, in.Status, in.DueDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.boards.Get(ctx, in.BoardID, userID); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			"error", err, "board_id", in.BoardID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	emit(ctx, s.emitter, s.logger, events.TaskCreated, userID,
		taskEventPayload{TaskID: task.ID, BoardID: &task.BoardID, Status: task.Status})
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		task, err := s.tasks.Get(ctx, taskID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		return task, nil
	}

	if patch.BoardID != nil {
		if _, err := s.boards.Get(ctx, *patch.BoardID, userID); err != nil {
			return nil, fmt.Errorf("failed to move task: %w", err)
		}
	}

	task, err := s.tasks.Update(ctx, taskID, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	emit(ctx, s.emitter, s.logger, events.TaskUpdated, userID, taskEventPayload{
		TaskID:  task.ID,
		BoardID: &task.BoardID,
		Status:  task.Status,
		Fields:  patchedFields(patch),
	})
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID, userID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	emit(ctx, s.emitter, s.logger, events.TaskDeleted, userID, taskEventPayload{TaskID: taskID})
	return nil
}

func patchedFields(p domain.TaskPatch) []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	if p.Position != nil {
		fields = append(fields, "position")
	}
	if p.BoardID != nil {
		fields = append(fields, "boardId")
	}
	return fields
}
