package memory

import (
	"context"
	"sync"
	"time"

	"searchdesk/internal/models"
	"searchdesk/internal/store"

	"github.com/google/uuid"
)

// Store keeps all registries in process memory. State lives for the process
// lifetime only; a restart discards logins, codes, and quota counters.
type Store struct {
	mu       sync.Mutex
	codes    map[string]string
	sessions map[string]models.Session
	usage    map[string]models.Usage
}

func NewStore() *Store {
	return &Store{
		codes:    make(map[string]string),
		sessions: make(map[string]models.Session),
		usage:    make(map[string]models.Usage),
	}
}

func (s *Store) PutLoginCode(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	return nil
}

func (s *Store) GetLoginCode(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[email]
	if !ok {
		return "", store.ErrCodeNotFound
	}
	return code, nil
}

func (s *Store) CreateSession(ctx context.Context, email string, expiresAt time.Time) (models.Session, error) {
	session := models.Session{Token: uuid.NewString(), Email: email, ExpiresAt: expiresAt}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return session, nil
}

func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return models.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Store) GetUsage(ctx context.Context, email, day string) (models.Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage, ok := s.usage[email]
	if !ok || usage.Day != day {
		return models.Usage{Email: email, Day: day}, nil
	}
	return usage, nil
}

func (s *Store) IncrementUsage(ctx context.Context, email, day string, limit int) (models.Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage, ok := s.usage[email]
	if !ok || usage.Day != day {
		usage = models.Usage{Email: email, Day: day}
	}
	if usage.Count >= limit {
		return usage, store.ErrQuotaExceeded
	}
	usage.Count++
	s.usage[email] = usage
	return usage, nil
}
