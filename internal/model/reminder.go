package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderDefinition describes a medicine-intake reminder. Schedule is free
// text (e.g. "12:00 PM, 8:00 PM") and is never machine-parsed. Due status is
// computed at query time, never stored.
type ReminderDefinition struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AccountID    uuid.UUID `db:"account_id" json:"account_id"`
	MedicineName string    `db:"medicine_name" json:"medicine_name"`
	Dosage       string    `db:"dosage" json:"dosage"`
	Schedule     string    `db:"schedule" json:"schedule"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DueOn reports whether the reminder's active window contains ref, inclusive
// on both ends. Comparison is date-granular; time-of-day is ignored.
func (r *ReminderDefinition) DueOn(ref time.Time) bool {
	day := truncateToDay(ref)
	return !day.Before(truncateToDay(r.StartDate)) && !day.After(truncateToDay(r.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type CreateReminderRequest struct {
	AccountID    uuid.UUID `json:"account_id" binding:"required"`
	MedicineName string    `json:"medicine_name" binding:"required"`
	Dosage       string    `json:"dosage" binding:"required"`
	Schedule     string    `json:"schedule" binding:"required"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
}

type UpdateReminderRequest struct {
	MedicineName *string    `json:"medicine_name"`
	Dosage       *string    `json:"dosage"`
	Schedule     *string    `json:"schedule"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}
