package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitalsync/healthmon-api/internal/email"
	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/repository"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
	"github.com/vitalsync/healthmon-api/pkg/security"
	"github.com/vitalsync/healthmon-api/pkg/validator"
)

type Service struct {
	repo      repository.AccountRepository
	hasher    security.PasswordHasher
	emailSvc  email.Service
	validate  *validator.Validator
	onChanged func(uuid.UUID)
}

func NewService(repo repository.AccountRepository, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		emailSvc: emailSvc,
		validate: validator.New(),
	}
}

// OnAccountChanged registers a callback invoked after a successful update or
// delete, so dependent caches can drop stale entries.
func (s *Service) OnAccountChanged(fn func(uuid.UUID)) {
	s.onChanged = fn
}

// Register creates a new account. License number and specialization must be
// present if and only if the role is clinician.
func (s *Service) Register(ctx context.Context, req *model.RegisterAccountRequest) (*model.Account, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	role := model.AccountRole(req.Role)
	if err := validateClinicianFields(role, req.LicenseNumber, req.Specialization); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.Conflict("email already registered", nil)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	account := &model.Account{
		Base:         model.Base{ID: uuid.New()},
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if role == model.RoleClinician {
		account.Clinician = &model.ClinicianProfile{
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
		}
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// Best effort; registration does not depend on mail delivery.
	go func() {
		if err := s.emailSvc.SendWelcome(context.Background(), account.Email, account.FirstName); err != nil {
			log.Warn().Err(err).Str("email", account.Email).Msg("failed to send welcome email")
		}
	}()

	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *Service) GetAccountByEmail(ctx context.Context, emailAddr string) (*model.Account, error) {
	account, err := s.repo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != account.Email {
		if existing, err := s.repo.GetByEmail(ctx, *req.Email); err == nil && existing != nil {
			return nil, apperrors.Conflict("email already registered", nil)
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		account.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperrors.Validation("invalid password", err)
		}
		account.PasswordHash = hash
	}

	if req.LicenseNumber != nil || req.Specialization != nil {
		if !account.IsClinician() {
			return nil, apperrors.RoleMismatch("clinician attributes on a non-clinician account")
		}
		if req.LicenseNumber != nil {
			account.Clinician.LicenseNumber = *req.LicenseNumber
		}
		if req.Specialization != nil {
			account.Clinician.Specialization = *req.Specialization
		}
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if s.onChanged != nil {
		s.onChanged(account.ID)
	}
	return account, nil
}

// DeleteAccount soft-deletes; accounts are never hard-deleted in normal operation.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if s.onChanged != nil {
		s.onChanged(id)
	}
	return nil
}

func validateClinicianFields(role model.AccountRole, license, specialization string) error {
	switch role {
	case model.RoleClinician:
		if license == "" || specialization == "" {
			return apperrors.Validation("clinician accounts require license number and specialization", nil)
		}
	case model.RolePatient:
		if license != "" || specialization != "" {
			return apperrors.Validation("patient accounts cannot carry clinician attributes", nil)
		}
	default:
		return apperrors.Validation("unknown account role", nil)
	}
	return nil
}
