package postgres

import (
	"context"
	"errors"
	"time"

	"searchdesk/internal/models"
	"searchdesk/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) PutLoginCode(ctx context.Context, email, code string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO login_codes (email, code, issued_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, issued_at = NOW()
	`, email, code)
	return err
}

func (s *Store) GetLoginCode(ctx context.Context, email string) (string, error) {
	var code string
	row := s.pool.QueryRow(ctx, `
		SELECT code
		FROM login_codes
		WHERE email = $1
	`, email)
	if err := row.Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", store.ErrCodeNotFound
		}
		return "", err
	}
	return code, nil
}

func (s *Store) CreateSession(ctx context.Context, email string, expiresAt time.Time) (models.Session, error) {
	token := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (token, email, expires_at)
		VALUES ($1, $2, $3)
	`, token, email, expiresAt)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: token, Email: email, ExpiresAt: expiresAt}, nil
}

func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var session models.Session
	row := s.pool.QueryRow(ctx, `
		SELECT token, email, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`, token)
	if err := row.Scan(&session.Token, &session.Email, &session.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, store.ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM sessions
		WHERE token = $1
	`, token)
	return err
}

func (s *Store) GetUsage(ctx context.Context, email, day string) (models.Usage, error) {
	usage := models.Usage{Email: email, Day: day}
	row := s.pool.QueryRow(ctx, `
		SELECT count
		FROM search_usage
		WHERE email = $1 AND day = $2
	`, email, day)
	if err := row.Scan(&usage.Count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usage, nil
		}
		return models.Usage{}, err
	}
	return usage, nil
}

// IncrementUsage relies on the conditional upsert to keep check-then-increment
// atomic: the update only fires while the stored count is below the limit, so
// concurrent requests for the same email can never push it past.
func (s *Store) IncrementUsage(ctx context.Context, email, day string, limit int) (models.Usage, error) {
	if limit <= 0 {
		return models.Usage{Email: email, Day: day}, store.ErrQuotaExceeded
	}
	usage := models.Usage{Email: email, Day: day}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO search_usage (email, day, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (email, day) DO UPDATE SET count = search_usage.count + 1
		WHERE search_usage.count < $3
		RETURNING count
	`, email, day, limit)
	if err := row.Scan(&usage.Count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := s.GetUsage(ctx, email, day)
			if getErr != nil {
				return models.Usage{}, getErr
			}
			return current, store.ErrQuotaExceeded
		}
		return models.Usage{}, err
	}
	return usage, nil
}
