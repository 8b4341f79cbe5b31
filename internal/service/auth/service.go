package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/repository"
	"github.com/vitalsync/healthmon-api/pkg/auth"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
	"github.com/vitalsync/healthmon-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	accountRepo repository.AccountRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	expiry      time.Duration
}

func NewService(accountRepo repository.AccountRepository, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, expiryHours int) *Service {
	if expiryHours == 0 {
		expiryHours = 24
	}
	return &Service{
		accountRepo: accountRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		expiry:      time.Duration(expiryHours) * time.Hour,
	}
}

// Login verifies credentials and issues a token pair. Missing email or
// password short-circuits before any lookup.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required", nil)
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	return s.generateTokens(account)
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	account, err := s.accountRepo.Get(ctx, claims.AccountID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.generateTokens(account)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) generateTokens(account *model.Account) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.expiry.Seconds()),
		Account:      account.ToResponse(),
	}, nil
}
