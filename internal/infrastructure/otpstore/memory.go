// Package otpstore provides backings for the one-time-password store:
// an in-memory map for single-process deployments and a Redis-backed
// implementation for anything clustered.
package otpstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/docucare-api/internal/domain"
)

// Memory is an in-memory OTP store. It is only safe for single-process
// deployments. Expired records are NOT purged here — lazy purging at
// verification time is the verifier's contract, and eagerly deleting on Get
// would turn an "expired" outcome into a "not found" one.
type Memory struct {
	mu      sync.Mutex
	records map[string]domain.LoginOTP
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]domain.LoginOTP)}
}

func (m *Memory) Put(ctx context.Context, rec *domain.LoginOTP) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Key] = *rec
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (*domain.LoginOTP, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return nil, fmt.Errorf("otp record for key: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}
