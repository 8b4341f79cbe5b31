package metric

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/repository"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
)

type Service struct {
	repo        repository.MetricRepository
	accountRepo repository.AccountRepository
}

func NewService(repo repository.MetricRepository, accountRepo repository.AccountRepository) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
	}
}

// CreateSnapshot records one observation. The observation date defaults to
// now when omitted; weight and height must be positive.
func (s *Service) CreateSnapshot(ctx context.Context, snapshot *model.MetricSnapshot) error {
	if err := s.validateSnapshot(snapshot); err != nil {
		return err
	}

	if _, err := s.accountRepo.Get(ctx, snapshot.AccountID); err != nil {
		return fmt.Errorf("failed to resolve snapshot owner: %w", err)
	}

	if snapshot.ObservedAt.IsZero() {
		snapshot.ObservedAt = time.Now()
	}

	if err := s.repo.Create(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

func (s *Service) GetSnapshot(ctx context.Context, id uuid.UUID) (*model.MetricSnapshot, error) {
	snapshot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *Service) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*model.MetricSnapshot, error) {
	snapshots, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// UpdateSnapshot is the only mutation path for a recorded snapshot.
func (s *Service) UpdateSnapshot(ctx context.Context, id uuid.UUID, req *model.UpdateMetricSnapshotRequest) (*model.MetricSnapshot, error) {
	snapshot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if req.WeightLb != nil {
		snapshot.WeightLb = *req.WeightLb
	}
	if req.HeightIn != nil {
		snapshot.HeightIn = *req.HeightIn
	}
	if req.Steps != nil {
		snapshot.Steps = *req.Steps
	}
	if req.HeartRate != nil {
		snapshot.HeartRate = *req.HeartRate
	}
	if req.ObservedAt != nil {
		snapshot.ObservedAt = *req.ObservedAt
	}

	if err := s.validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to update snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *Service) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (s *Service) validateSnapshot(snapshot *model.MetricSnapshot) error {
	if snapshot.AccountID == uuid.Nil {
		return apperrors.Validation("account ID is required", nil)
	}
	if snapshot.WeightLb <= 0 {
		return apperrors.Validation("weight must be positive", nil)
	}
	if snapshot.HeightIn <= 0 {
		return apperrors.Validation("height must be positive", nil)
	}
	return nil
}
