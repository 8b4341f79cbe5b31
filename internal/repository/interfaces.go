package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository is the account directory. Lookups that match nothing
	// return a not-found error, never a fault.
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Account, error)
	}

	MetricRepository interface {
		Create(ctx context.Context, snapshot *model.MetricSnapshot) error
		Get(ctx context.Context, id uuid.UUID) (*model.MetricSnapshot, error)
		ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.MetricSnapshot, error)
		Update(ctx context.Context, snapshot *model.MetricSnapshot) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	RecommendationRepository interface {
		Create(ctx context.Context, rec *model.Recommendation) error
		ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Recommendation, error)
		Update(ctx context.Context, rec *model.Recommendation) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	ReminderRepository interface {
		Create(ctx context.Context, reminder *model.ReminderDefinition) error
		Get(ctx context.Context, id uuid.UUID) (*model.ReminderDefinition, error)
		ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.ReminderDefinition, error)
		Update(ctx context.Context, reminder *model.ReminderDefinition) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// CareRepository persists doctor-patient relationship rows. The pair is
	// not unique; writes address either the pair or the exact triple.
	CareRepository interface {
		Create(ctx context.Context, rel *model.CareRelationship) error
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.CareRelationship, error)
		UpdateByPair(ctx context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (int64, error)
		DeleteByTriple(ctx context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (int64, error)
	}
)
