package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Board validation errors
var (
	ErrEmptyBoardID     = fmt.Errorf("%w: board ID cannot be empty", ErrValidation)
	ErrEmptyBoardUserID = fmt.Errorf("%w: board user ID cannot be empty", ErrValidation)
	ErrEmptyBoardName   = fmt.Errorf("%w: board name cannot be empty", ErrValidation)
)

// Board is a named container of tasks owned by exactly one user.
// UserID is fixed at creation; ownership never transfers.
type Board struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBoard creates a Board owned by userID.
// Returns ErrEmptyBoardName if name is blank.
func NewBoard(userID uuid.UUID, name string) (*Board, error) {
	board := &Board{
		ID:        uuid.New(),
		Name:      name,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBoardID
	}

	if b.UserID == uuid.Nil {
		return ErrEmptyBoardUserID
	}

	return ValidateBoardName(b.Name)
}

// ValidateBoardName rejects empty and whitespace-only names.
func ValidateBoardName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyBoardName
	}
	return nil
}
