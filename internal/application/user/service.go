// Package user exposes the admin-facing account directory.
package user

import (
	"context"
	"fmt"

	"github.com/docucare-api/internal/domain"
)

const defaultPageSize = 25

// Store is the persistence surface for account records.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type Service struct {
	users Store
}

func NewService(users Store) *Service {
	return &Service{users: users}
}

// List returns one page of accounts plus the cursor for the next page.
func (s *Service) List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.users.ScanPage(ctx, limit, cursor)
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

// Delete removes the account. Lookup first so a missing id is reported as
// not-found rather than silently succeeding.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
