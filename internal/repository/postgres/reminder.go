package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
)

func (r *reminderRepository) Create(ctx context.Context, reminder *model.ReminderDefinition) error {
	query := `
		INSERT INTO medicine_reminders (
			id, account_id, medicine_name, dosage, schedule,
			start_date, end_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	reminder.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		reminder.ID,
		reminder.AccountID,
		reminder.MedicineName,
		reminder.Dosage,
		reminder.Schedule,
		reminder.StartDate,
		reminder.EndDate,
		reminder.CreatedAt,
	)
	if err != nil {
		return apperrors.Storage("create reminder", err)
	}
	return nil
}

func (r *reminderRepository) Get(ctx context.Context, id uuid.UUID) (*model.ReminderDefinition, error) {
	query := `
		SELECT id, account_id, medicine_name, dosage, schedule,
			   start_date, end_date, created_at
		FROM medicine_reminders
		WHERE id = $1
	`
	var reminder model.ReminderDefinition
	err := r.db.GetContext(ctx, &reminder, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("reminder", err)
		}
		return nil, apperrors.Storage("get reminder", err)
	}
	return &reminder, nil
}

func (r *reminderRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.ReminderDefinition, error) {
	query := `
		SELECT id, account_id, medicine_name, dosage, schedule,
			   start_date, end_date, created_at
		FROM medicine_reminders
		WHERE account_id = $1
	`
	var reminders []*model.ReminderDefinition
	if err := r.db.SelectContext(ctx, &reminders, query, accountID); err != nil {
		return nil, apperrors.Storage("list reminders", err)
	}
	return reminders, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *model.ReminderDefinition) error {
	query := `
		UPDATE medicine_reminders
		SET medicine_name = $1, dosage = $2, schedule = $3,
			start_date = $4, end_date = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		reminder.MedicineName,
		reminder.Dosage,
		reminder.Schedule,
		reminder.StartDate,
		reminder.EndDate,
		reminder.ID,
	)
	if err != nil {
		return apperrors.Storage("update reminder", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("update reminder", err)
	}
	if rows == 0 {
		return apperrors.NotFound("reminder", nil)
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM medicine_reminders
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Storage("delete reminder", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("delete reminder", err)
	}
	if rows == 0 {
		return apperrors.NotFound("reminder", nil)
	}
	return nil
}
