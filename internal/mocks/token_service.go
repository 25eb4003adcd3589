package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kanban-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueTokenFn allows test cases to mock the IssueToken behavior
	IssueTokenFn func(ctx context.Context, userID uuid.UUID, username string) (string, time.Time, error)

	// VerifyTokenFn allows test cases to mock the VerifyToken behavior
	VerifyTokenFn func(ctx context.Context, token string) (auth.Identity, bool)

	// Default values used when functions aren't explicitly defined
	Token     string
	ExpiresAt time.Time
	Err       error
	Identity  auth.Identity
	Valid     bool
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements the auth.TokenService interface
func (m *MockTokenService) IssueToken(
	ctx context.Context,
	userID uuid.UUID,
	username string,
) (string, time.Time, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, userID, username)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// VerifyToken implements the auth.TokenService interface
func (m *MockTokenService) VerifyToken(ctx context.Context, token string) (auth.Identity, bool) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, token)
	}
	return m.Identity, m.Valid
}
