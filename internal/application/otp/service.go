// Package otp issues and verifies one-time login codes.
//
// Codes are 6-digit, drawn uniformly from [100000, 999999] so a leading zero
// can never be produced, and live for 5 minutes. A key holds at most one live
// record: reissuing overwrites, and a successful verification consumes the
// record before the caller ever sees success, so replays fail.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/docucare-api/internal/domain"
)

const (
	// CodeLength is the exact number of digits a submitted code must have.
	CodeLength = 6
	// TTL is the validity window of an issued code.
	TTL = 5 * time.Minute

	codeMin   = 100000
	codeRange = 900000 // codes span [codeMin, codeMin+codeRange-1]
)

// Failure kinds. Callers may collapse these into one user-facing message but
// can still discriminate internally for logging.
var (
	ErrInvalidFormat = fmt.Errorf("otp must be exactly %d digits: %w", CodeLength, domain.ErrBadRequest)
	ErrNotFound      = fmt.Errorf("no otp issued for key: %w", domain.ErrNotFound)
	ErrMismatch      = fmt.Errorf("otp mismatch: %w", domain.ErrUnauthorized)
	ErrExpired       = fmt.Errorf("otp expired: %w", domain.ErrUnauthorized)
)

// Store is the record store keyed by the normalized contact field.
// Implementations must treat a missing key on Get as domain.ErrNotFound and
// must not purge expired records themselves — expiry is enforced here.
type Store interface {
	Put(ctx context.Context, rec *domain.LoginOTP) error
	Get(ctx context.Context, key string) (*domain.LoginOTP, error)
	Delete(ctx context.Context, key string) error
}

// Service is the OTP issuer and verifier. Issue and Verify for the same key
// are strictly serialized; distinct keys proceed independently.
type Service struct {
	store Store

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(store Store) *Service {
	return &Service{store: store, locks: make(map[string]*keyLock)}
}

// Issue generates a fresh code for key, records it with a 5-minute expiry
// (overwriting any prior unconsumed record), and returns the record so the
// orchestrator can hand the code to the notification channel. The code must
// never appear in an API response.
func (s *Service) Issue(ctx context.Context, key string) (*domain.LoginOTP, error) {
	if key == "" {
		return nil, fmt.Errorf("otp key must not be empty: %w", domain.ErrBadRequest)
	}
	unlock := s.lockKey(key)
	defer unlock()

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	rec := &domain.LoginOTP{
		Key:       key,
		Code:      code,
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}
	return rec, nil
}

// Verify checks a submitted code against the live record for key.
//
// Ordering is deliberate: the format gate runs before any store access, the
// code comparison runs before the expiry check, and expiry purges the record
// lazily. A mismatch leaves the record intact so the user may retry within
// the window; success deletes the record before returning so the same code
// can never verify twice.
func (s *Service) Verify(ctx context.Context, key, submitted string) error {
	if len(submitted) != CodeLength {
		return ErrInvalidFormat
	}
	unlock := s.lockKey(key)
	defer unlock()

	rec, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load otp: %w", err)
	}
	if rec.Code != submitted {
		return ErrMismatch
	}
	if rec.Expired(time.Now()) {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("purge expired otp: %w", err)
		}
		return ErrExpired
	}
	// Single-use: the record must be gone before success is reported.
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}

// lockKey acquires the per-key mutex, creating it on first use and dropping
// it once no caller holds or awaits it.
func (s *Service) lockKey(key string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
