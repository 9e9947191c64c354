// Package users tracks requesters: upsert-on-first-contact records with
// running query/booking statistics.
package users

import (
	"context"
	"fmt"
	"time"

	userRepo "keazy/database/repository/user"
	"keazy/models"
)

// Service is the user ledger surface the orchestrator and handlers use.
type Service interface {
	// TouchQuery registers a query from the user, creating the record on
	// first contact, and returns the updated counters.
	TouchQuery(ctx context.Context, userID string) (*models.User, error)
	// Get fetches a user record.
	Get(ctx context.Context, userID string) (*models.User, error)
}

// DefaultService is the Mongo-backed user ledger.
type DefaultService struct {
	Repo  userRepo.UserRepository
	Clock func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

func (s *DefaultService) TouchQuery(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.TouchQuery(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("user ledger upsert failed: %w", err)
	}
	return user, nil
}

func (s *DefaultService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user, nil
}
