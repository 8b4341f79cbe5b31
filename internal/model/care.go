package model

import (
	"time"

	"github.com/google/uuid"
)

// CareRelationship is a single doctor-patient appointment row. The
// (doctor, patient) pair is deliberately not unique: booking inserts
// unconditionally, so multiple rows per pair can exist.
type CareRelationship struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	AppointmentAt time.Time `db:"appointment_at" json:"appointment_at"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type BookAppointmentRequest struct {
	DoctorID      uuid.UUID `json:"doctor_id" binding:"required"`
	PatientID     uuid.UUID `json:"patient_id" binding:"required"`
	AppointmentAt time.Time `json:"appointment_at" binding:"required"`
}

type UpdateAppointmentRequest struct {
	AppointmentAt time.Time `json:"appointment_at" binding:"required"`
}

// CancelAppointmentRequest must carry the exact original timestamp; only
// the matching triple is deleted.
type CancelAppointmentRequest struct {
	AppointmentAt time.Time `json:"appointment_at" binding:"required"`
}
