package store

import "errors"

var (
	ErrCodeNotFound    = errors.New("login code not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrQuotaExceeded   = errors.New("daily search quota exceeded")
)
