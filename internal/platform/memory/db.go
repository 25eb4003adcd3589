// Package memory provides process-local implementations of the store
// interfaces. All three stores share one DB so that a board delete can drop
// the board's tasks under the same lock.
package memory

import (
	"sync"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// DB holds every collection behind a single RWMutex. Data lives only for the
// lifetime of the process.
type DB struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	boards []domain.Board
	tasks  []domain.Task
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		users: make(map[string]domain.User),
	}
}

// Ping always succeeds. It lets the health check treat memory and SQL
// backends alike.
func (db *DB) Ping() error {
	return nil
}
