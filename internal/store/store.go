package store

import (
	"context"
	"time"

	"searchdesk/internal/models"
)

// Store holds the three registries behind the portal: login codes keyed by
// email, cookie sessions keyed by token, and per-day search usage counters.
type Store interface {
	// PutLoginCode records the current code for an email, overwriting any
	// previous one. Codes do not expire and are not consumed on verification.
	PutLoginCode(ctx context.Context, email, code string) error
	// GetLoginCode returns the live code for an email, or ErrCodeNotFound.
	GetLoginCode(ctx context.Context, email string) (string, error)

	CreateSession(ctx context.Context, email string, expiresAt time.Time) (models.Session, error)
	// GetSession returns ErrSessionNotFound for unknown or expired tokens.
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// GetUsage reports the counter for email on the given day. A missing
	// record, or one stored under a different day, reads as count zero.
	GetUsage(ctx context.Context, email, day string) (models.Usage, error)
	// IncrementUsage admits one search: it checks the counter against limit
	// and increments it in a single atomic step. At or above the limit it
	// returns ErrQuotaExceeded without mutating the stored record.
	IncrementUsage(ctx context.Context, email, day string, limit int) (models.Usage, error)
}
