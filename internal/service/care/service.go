package care

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/repository"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
	"github.com/vitalsync/healthmon-api/pkg/messaging"
	"github.com/vitalsync/healthmon-api/pkg/metrics"
)

const (
	eventChannel = "healthmon.appointments"

	clinicianCacheTTL     = 5 * time.Minute
	clinicianCacheCleanup = 10 * time.Minute
)

// Service manages the doctor-patient association and appointment lifecycle.
// It is the sole writer of relationship rows; the account directory supplies
// identity resolution and clinician-role validation.
type Service struct {
	repo           repository.CareRepository
	accountRepo    repository.AccountRepository
	metricRepo     repository.MetricRepository
	broker         messaging.Broker
	metrics        *metrics.Metrics
	clinicianCache *gocache.Cache
}

func NewService(repo repository.CareRepository, accountRepo repository.AccountRepository,
	metricRepo repository.MetricRepository, broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		repo:           repo,
		accountRepo:    accountRepo,
		metricRepo:     metricRepo,
		broker:         broker,
		metrics:        m,
		clinicianCache: gocache.New(clinicianCacheTTL, clinicianCacheCleanup),
	}
}

// GetClinician resolves the account and fails with a role-mismatch error when
// the account exists but does not carry the clinician role.
func (s *Service) GetClinician(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	if cached, ok := s.clinicianCache.Get(accountID.String()); ok {
		return cached.(*model.Account), nil
	}

	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	if !account.IsClinician() {
		log.Warn().Str("account_id", accountID.String()).Msg("account is not a clinician")
		return nil, apperrors.RoleMismatch("account is not a clinician")
	}

	s.clinicianCache.Set(accountID.String(), account, gocache.DefaultExpiration)
	return account, nil
}

// InvalidateClinician drops a cached directory entry after a profile update.
func (s *Service) InvalidateClinician(accountID uuid.UUID) {
	s.clinicianCache.Delete(accountID.String())
}

// ListPatients resolves every patient related to the doctor. Relationship
// rows whose patient id no longer resolves are skipped, not fatal.
func (s *Service) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.Account, error) {
	if _, err := s.GetClinician(ctx, doctorID); err != nil {
		return nil, err
	}

	rels, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}

	patients := make([]*model.Account, 0, len(rels))
	seen := make(map[uuid.UUID]bool, len(rels))
	for _, rel := range rels {
		if seen[rel.PatientID] {
			continue
		}
		seen[rel.PatientID] = true

		patient, err := s.accountRepo.Get(ctx, rel.PatientID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				log.Warn().
					Str("doctor_id", doctorID.String()).
					Str("patient_id", rel.PatientID.String()).
					Msg("skipping relationship row with unresolvable patient")
				continue
			}
			return nil, fmt.Errorf("failed to resolve patient: %w", err)
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

// PatientMetrics returns the snapshots of one of the doctor's patients.
func (s *Service) PatientMetrics(ctx context.Context, doctorID, patientID uuid.UUID) ([]*model.MetricSnapshot, error) {
	if _, err := s.GetClinician(ctx, doctorID); err != nil {
		return nil, err
	}

	snapshots, err := s.metricRepo.ListByAccount(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient metrics: %w", err)
	}
	return snapshots, nil
}

// BookAppointment inserts a relationship row unconditionally. There is no
// uniqueness check against existing rows for the pair, so concurrent or
// repeated bookings produce multiple rows.
func (s *Service) BookAppointment(ctx context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (*model.CareRelationship, error) {
	if _, err := s.GetClinician(ctx, doctorID); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	rel := &model.CareRelationship{
		ID:            uuid.New(),
		DoctorID:      doctorID,
		PatientID:     patientID,
		AppointmentAt: appointmentAt,
	}
	if err := s.repo.Create(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}
	s.publish(ctx, "appointment_booked", rel)
	return rel, nil
}

// UpdateAppointment reschedules every row matching the (doctor, patient)
// pair to the new timestamp.
func (s *Service) UpdateAppointment(ctx context.Context, doctorID, patientID uuid.UUID, newAt time.Time) error {
	rows, err := s.repo.UpdateByPair(ctx, doctorID, patientID, newAt)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	s.publish(ctx, "appointment_rescheduled", map[string]interface{}{
		"doctor_id":      doctorID,
		"patient_id":     patientID,
		"appointment_at": newAt,
		"rows_updated":   rows,
	})
	return nil
}

// CancelAppointment deletes only the row matching the exact triple.
// A mismatched timestamp removes nothing and reports not-found.
func (s *Service) CancelAppointment(ctx context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) error {
	rows, err := s.repo.DeleteByTriple(ctx, doctorID, patientID, appointmentAt)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsCancelled.Inc()
	}
	s.publish(ctx, "appointment_cancelled", map[string]interface{}{
		"doctor_id":      doctorID,
		"patient_id":     patientID,
		"appointment_at": appointmentAt,
	})
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	event := messaging.Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
	if err := s.broker.Publish(ctx, eventChannel, event); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
