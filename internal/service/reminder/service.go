package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/repository"
)

type Service struct {
	repo        repository.ReminderRepository
	accountRepo repository.AccountRepository
}

func NewService(repo repository.ReminderRepository, accountRepo repository.AccountRepository) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
	}
}

// CreateReminder inserts a new definition. No uniqueness constraint is
// enforced across overlapping schedules for the same medicine, and an
// inverted date range is accepted; it simply never matches ListDue.
func (s *Service) CreateReminder(ctx context.Context, reminder *model.ReminderDefinition) error {
	if _, err := s.accountRepo.Get(ctx, reminder.AccountID); err != nil {
		return fmt.Errorf("failed to resolve reminder owner: %w", err)
	}

	if err := s.repo.Create(ctx, reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// ListForOwner returns every definition for the account, regardless of its
// date window, in storage order.
func (s *Service) ListForOwner(ctx context.Context, accountID uuid.UUID) ([]*model.ReminderDefinition, error) {
	reminders, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// ListDue returns the definitions whose active window contains ref, inclusive
// on both ends. A zero ref means now. Expired definitions are never removed;
// they just stop appearing here.
func (s *Service) ListDue(ctx context.Context, accountID uuid.UUID, ref time.Time) ([]*model.ReminderDefinition, error) {
	if ref.IsZero() {
		ref = time.Now()
	}

	reminders, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	due := make([]*model.ReminderDefinition, 0, len(reminders))
	for _, r := range reminders {
		if r.DueOn(ref) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (s *Service) GetReminder(ctx context.Context, id uuid.UUID) (*model.ReminderDefinition, error) {
	reminder, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

func (s *Service) UpdateReminder(ctx context.Context, id uuid.UUID, req *model.UpdateReminderRequest) error {
	reminder, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get reminder: %w", err)
	}

	if req.MedicineName != nil {
		reminder.MedicineName = *req.MedicineName
	}
	if req.Dosage != nil {
		reminder.Dosage = *req.Dosage
	}
	if req.Schedule != nil {
		reminder.Schedule = *req.Schedule
	}
	if req.StartDate != nil {
		reminder.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		reminder.EndDate = *req.EndDate
	}

	if err := s.repo.Update(ctx, reminder); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return nil
}

func (s *Service) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
