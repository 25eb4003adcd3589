package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both auth endpoints.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// CreateBoardRequest is the body of POST /boards. Blank names are rejected
// by the domain so the message matches rename.
type CreateBoardRequest struct {
	Name string `json:"name"`
}

// RenameBoardRequest is the body of PUT /boards.
type RenameBoardRequest struct {
	ID   uuid.UUID `json:"id"   validate:"required"`
	Name string    `json:"name"`
}

// BoardIDRequest is the body of DELETE /boards.
type BoardIDRequest struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// ListBoardsResponse is returned by GET /boards.
type ListBoardsResponse struct {
	Boards   []domain.Board `json:"boards"`
	Username string         `json:"username"`
}

// BoardResponse wraps a single board.
type BoardResponse struct {
	Board domain.Board `json:"board"`
}

// SuccessResponse acknowledges an operation with no other result.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	BoardID     uuid.UUID `json:"boardId"     validate:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     *string   `json:"dueDate"`
}

// UpdateTaskRequest is the body of PUT /tasks. Only fields present in the
// body are changed; "dueDate": null or "" clears the due date.
type UpdateTaskRequest struct {
	ID          uuid.UUID      `json:"id"          validate:"required"`
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	DueDate     OptionalString `json:"dueDate"`
	Position    *int           `json:"position"`
	BoardID     *uuid.UUID     `json:"boardId"`
}

// Patch converts the request into a domain patch.
func (req UpdateTaskRequest) Patch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		BoardID:     req.BoardID,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.DueDate.Present {
		cleared := ""
		patch.DueDate = &cleared
		if req.DueDate.Value != nil {
			patch.DueDate = req.DueDate.Value
		}
	}
	return patch
}

// TaskIDRequest is the body of DELETE /tasks.
type TaskIDRequest struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// TaskResponse is a task plus its derived overdue flag.
type TaskResponse struct {
	domain.Task
	Overdue bool `json:"overdue"`
}

// ListTasksResponse is returned by GET /tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// SingleTaskResponse wraps a single task.
type SingleTaskResponse struct {
	Task TaskResponse `json:"task"`
}

func taskToResponse(task domain.Task, now time.Time) TaskResponse {
	return TaskResponse{Task: task, Overdue: task.IsOverdue(now)}
}

func tasksToResponse(tasks []domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task, now))
	}
	return out
}

// OptionalString records whether a JSON field was present, which a plain
// *string cannot tell apart from an explicit null.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called when the field is present in the body.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
