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

// TaskStore implements store.TaskStore on a SQL database.
type TaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. If logger is nil, slog.Default is used.
func NewTaskStore(db *sql.DB, log *slog.Logger) *TaskStore {
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

const taskColumns = `id, board_id, user_id, title, description, status, due_date, created_at, position`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t      domain.Task
		status string
		due    sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.BoardID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&status,
		&due,
		&t.CreatedAt,
		&t.Position,
	)
	if err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.TaskStatus(status)
	if due.Valid {
		t.DueDate = &due.String
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func nullableDueDate(due *string) sql.NullString {
	if due == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *due, Valid: true}
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, boardID, userID uuid.UUID) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE board_id = $1 AND user_id = $2
	`, boardID, userID)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", err)
	}
	return tasks, nil
}

// Get implements store.TaskStore.Get.
func (s *TaskStore) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	return getTask(ctx, s.db, id, userID)
}

func getTask(ctx context.Context, db store.DBTX, id, userID uuid.UUID) (*domain.Task, error) {
	t, err := scanTask(db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to query task", err)
	}
	return &t, nil
}

// Create implements store.TaskStore.Create. Reading the current maximum
// position and inserting happen in one transaction.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var highest int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(position), 0)
			FROM tasks
			WHERE board_id = $1 AND user_id = $2
		`, task.BoardID, task.UserID).Scan(&highest)
		if err != nil {
			return store.NewStoreError("task", "create", "failed to read max position", err)
		}

		position := highest + 1
		_, err = tx.ExecContext(ctx, `
			INSERT INTO tasks (`+taskColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			task.ID,
			task.BoardID,
			task.UserID,
			task.Title,
			task.Description,
			string(task.Status),
			nullableDueDate(task.DueDate),
			task.CreatedAt.UTC(),
			position,
		)
		if err != nil {
			return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
		}
		task.Position = position
		return nil
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("board_id", task.BoardID.String()),
		slog.Int("position", task.Position))
	return nil
}

// Update implements store.TaskStore.Update as read, apply, write inside one
// transaction.
func (s *TaskStore) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		task, err := getTask(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		task.Apply(patch)

		_, err = tx.ExecContext(ctx, `
			UPDATE tasks
			SET board_id = $1, title = $2, description = $3, status = $4,
				due_date = $5, position = $6
			WHERE id = $7 AND user_id = $8
		`,
			task.BoardID,
			task.Title,
			task.Description,
			string(task.Status),
			nullableDueDate(task.DueDate),
			task.Position,
			id,
			userID,
		)
		if err != nil {
			return store.NewStoreError("task", "update", "failed to update task", MapError(err))
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to delete task", err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}
