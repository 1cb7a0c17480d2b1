package services

import (
	"context"
	"fmt"
	"strings"

	"confidence-pool-go/models"
)

// PoolAdminStore is the pool repository surface for administration
type PoolAdminStore interface {
	Create(ctx context.Context, pool *models.Pool) error
	FindByID(ctx context.Context, id string) (*models.Pool, error)
	FindActive(ctx context.Context, season int) ([]models.Pool, error)
	UpdateTieBreaker(ctx context.Context, poolID, question string, answer *float64) error
}

// ParticipantAdminStore is the participant repository surface for
// administration
type ParticipantAdminStore interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByPool(ctx context.Context, poolID string) ([]models.Participant, error)
}

// PoolService manages pools and their membership
type PoolService struct {
	poolRepo        PoolAdminStore
	participantRepo ParticipantAdminStore
}

// NewPoolService creates a new pool service
func NewPoolService(poolRepo PoolAdminStore, participantRepo ParticipantAdminStore) *PoolService {
	return &PoolService{
		poolRepo:        poolRepo,
		participantRepo: participantRepo,
	}
}

// CreatePool creates a new pool for a season
func (s *PoolService) CreatePool(ctx context.Context, name string, season int) (*models.Pool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("pool name cannot be empty")
	}

	pool := models.NewPool(strings.TrimSpace(name), season)
	if err := s.poolRepo.Create(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return pool, nil
}

// GetPool returns one pool
func (s *PoolService) GetPool(ctx context.Context, id string) (*models.Pool, error) {
	return s.poolRepo.FindByID(ctx, id)
}

// ListActivePools returns active pools for a season
func (s *PoolService) ListActivePools(ctx context.Context, season int) ([]models.Pool, error) {
	return s.poolRepo.FindActive(ctx, season)
}

// AddParticipant enrolls a participant in a pool
func (s *PoolService) AddParticipant(ctx context.Context, poolID, name, email string) (*models.Participant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("participant name cannot be empty")
	}
	if _, err := s.poolRepo.FindByID(ctx, poolID); err != nil {
		return nil, fmt.Errorf("pool not found: %w", err)
	}

	existing, err := s.participantRepo.FindByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, name) {
			return nil, fmt.Errorf("participant %s already exists in pool %s", name, poolID)
		}
	}

	participant := models.NewParticipant(poolID, strings.TrimSpace(name), email)
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return participant, nil
}

// GetParticipants returns all participants of a pool
func (s *PoolService) GetParticipants(ctx context.Context, poolID string) ([]models.Participant, error) {
	return s.participantRepo.FindByPool(ctx, poolID)
}

// SetTieBreaker sets the pool's tie-breaker question and, once known,
// its answer. The answer is typically filled at period end.
func (s *PoolService) SetTieBreaker(ctx context.Context, poolID, question string, answer *float64) error {
	if strings.TrimSpace(question) == "" && answer == nil {
		return fmt.Errorf("tie breaker question or answer required")
	}
	return s.poolRepo.UpdateTieBreaker(ctx, poolID, question, answer)
}
