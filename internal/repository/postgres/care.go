package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
)

// Create inserts a relationship row unconditionally; duplicate
// (doctor, patient) pairs are allowed.
func (r *careRepository) Create(ctx context.Context, rel *model.CareRelationship) error {
	query := `
		INSERT INTO care_relationships (
			id, doctor_id, patient_id, appointment_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	rel.CreatedAt = time.Now()
	rel.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rel.ID,
		rel.DoctorID,
		rel.PatientID,
		rel.AppointmentAt,
		rel.CreatedAt,
		rel.UpdatedAt,
	)
	if err != nil {
		return apperrors.Storage("create care relationship", err)
	}
	return nil
}

func (r *careRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.CareRelationship, error) {
	query := `
		SELECT id, doctor_id, patient_id, appointment_at, created_at, updated_at
		FROM care_relationships
		WHERE doctor_id = $1
	`
	var rels []*model.CareRelationship
	if err := r.db.SelectContext(ctx, &rels, query, doctorID); err != nil {
		return nil, apperrors.Storage("list care relationships", err)
	}
	return rels, nil
}

// UpdateByPair reschedules every row matching the (doctor, patient) pair
// and returns the number of rows touched.
func (r *careRepository) UpdateByPair(ctx context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (int64, error) {
	query := `
		UPDATE care_relationships
		SET appointment_at = $1, updated_at = $2
		WHERE doctor_id = $3 AND patient_id = $4
	`
	result, err := r.db.ExecContext(ctx, query, appointmentAt, time.Now(), doctorID, patientID)
	if err != nil {
		return 0, apperrors.Storage("update care relationship", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Storage("update care relationship", err)
	}
	return rows, nil
}

// DeleteByTriple removes only rows matching the exact
// (doctor, patient, timestamp) triple.
func (r *careRepository) DeleteByTriple(ctx context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (int64, error) {
	query := `
		DELETE FROM care_relationships
		WHERE doctor_id = $1 AND patient_id = $2 AND appointment_at = $3
	`
	result, err := r.db.ExecContext(ctx, query, doctorID, patientID, appointmentAt)
	if err != nil {
		return 0, apperrors.Storage("delete care relationship", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Storage("delete care relationship", err)
	}
	return rows, nil
}
