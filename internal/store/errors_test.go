package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"ErrBoardNotFound", ErrBoardNotFound, true},
		{"wrapped ErrTaskNotFound", fmt.Errorf("failed to update task: %w", ErrTaskNotFound), true},
		{"duplicate is not not-found", ErrUsernameExists, false},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrUsernameExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("register: %w", ErrUsernameExists)))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk I/O error")
	err := NewStoreError("board", "delete", "failed to delete board", cause)

	assert.Equal(t, "delete operation on board failed: failed to delete board: disk I/O error", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("task", "create", "position overflow", nil)
	assert.Equal(t, "create operation on task failed: position overflow", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
