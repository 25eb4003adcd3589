package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MinSecretLength is the shortest accepted HMAC signing secret, in bytes.
const MinSecretLength = 32

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// IssueToken creates a signed token for the user. It returns the token and
	// its expiry time.
	IssueToken(ctx context.Context, userID uuid.UUID, username string) (string, time.Time, error)

	// VerifyToken checks the signature and time claims of token. It never
	// returns an error: any failure yields ok == false, with the reason logged
	// at debug level.
	VerifyToken(ctx context.Context, token string) (identity Identity, ok bool)
}

// Identity is the authenticated caller carried by a verified token.
type Identity struct {
	UserID    uuid.UUID
	Username  string
	ExpiresAt time.Time
}
