package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"

	"searchdesk/internal/store"
)

const CodeLength = 6

// NewCode returns a fixed-length numeric login code with uniformly random
// digits.
func NewCode() (string, error) {
	digits := make([]byte, CodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte(n.Int64()) + '0'
	}
	return string(digits), nil
}

type Service struct {
	store   store.Store
	channel Channel
}

func NewService(st store.Store, channel Channel) *Service {
	return &Service{store: st, channel: channel}
}

// Issue generates a fresh code for the email, overwriting any earlier one,
// and hands it to the delivery channel. The returned echo flag tells the
// caller whether the channel expects the code to be shown in the response.
func (s *Service) Issue(ctx context.Context, email string) (string, bool, error) {
	code, err := NewCode()
	if err != nil {
		return "", false, err
	}
	if err := s.store.PutLoginCode(ctx, email, code); err != nil {
		return "", false, err
	}
	if err := s.channel.Deliver(ctx, email, code); err != nil {
		return "", false, err
	}
	return code, s.channel.Echo(), nil
}

// Verify reports whether the supplied code matches the one on record. The
// stored code is left in place either way, so verifying again with the same
// code keeps succeeding until the next Issue replaces it.
func (s *Service) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.store.GetLoginCode(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1, nil
}
