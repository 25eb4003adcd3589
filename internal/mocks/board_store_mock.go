package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockBoardStore is a mock of store.BoardStore for use with testify/mock
type TestifyMockBoardStore struct {
	mock.Mock
}

var _ store.BoardStore = (*TestifyMockBoardStore)(nil)

// List is a mock implementation of store.BoardStore.List
func (m *TestifyMockBoardStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	args := m.Called(ctx, userID)
	if boards, ok := args.Get(0).([]domain.Board); ok {
		return boards, args.Error(1)
	}
	return nil, args.Error(1)
}

// Get is a mock implementation of store.BoardStore.Get
func (m *TestifyMockBoardStore) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Board, error) {
	args := m.Called(ctx, id, userID)
	if board, ok := args.Get(0).(*domain.Board); ok {
		return board, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.BoardStore.Create
func (m *TestifyMockBoardStore) Create(ctx context.Context, board *domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

// Rename is a mock implementation of store.BoardStore.Rename
func (m *TestifyMockBoardStore) Rename(
	ctx context.Context,
	id, userID uuid.UUID,
	name string,
) (*domain.Board, error) {
	args := m.Called(ctx, id, userID, name)
	if board, ok := args.Get(0).(*domain.Board); ok {
		return board, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.BoardStore.Delete
func (m *TestifyMockBoardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
