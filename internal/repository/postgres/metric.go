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

func (r *metricRepository) Create(ctx context.Context, snapshot *model.MetricSnapshot) error {
	query := `
		INSERT INTO metric_snapshots (
			id, account_id, weight_lb, height_in, steps,
			heart_rate, observed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	snapshot.CreatedAt = time.Now()
	snapshot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.AccountID,
		snapshot.WeightLb,
		snapshot.HeightIn,
		snapshot.Steps,
		snapshot.HeartRate,
		snapshot.ObservedAt,
		snapshot.CreatedAt,
		snapshot.UpdatedAt,
	)
	if err != nil {
		return apperrors.Storage("create metric snapshot", err)
	}
	return nil
}

func (r *metricRepository) Get(ctx context.Context, id uuid.UUID) (*model.MetricSnapshot, error) {
	query := `
		SELECT id, account_id, weight_lb, height_in, steps,
			   heart_rate, observed_at, created_at, updated_at
		FROM metric_snapshots
		WHERE id = $1
	`
	var snapshot model.MetricSnapshot
	err := r.db.GetContext(ctx, &snapshot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("metric snapshot", err)
		}
		return nil, apperrors.Storage("get metric snapshot", err)
	}
	return &snapshot, nil
}

func (r *metricRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.MetricSnapshot, error) {
	query := `
		SELECT id, account_id, weight_lb, height_in, steps,
			   heart_rate, observed_at, created_at, updated_at
		FROM metric_snapshots
		WHERE account_id = $1
		ORDER BY observed_at ASC
	`
	var snapshots []*model.MetricSnapshot
	if err := r.db.SelectContext(ctx, &snapshots, query, accountID); err != nil {
		return nil, apperrors.Storage("list metric snapshots", err)
	}
	return snapshots, nil
}

func (r *metricRepository) Update(ctx context.Context, snapshot *model.MetricSnapshot) error {
	query := `
		UPDATE metric_snapshots
		SET weight_lb = $1, height_in = $2, steps = $3,
			heart_rate = $4, observed_at = $5, updated_at = $6
		WHERE id = $7
	`
	snapshot.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		snapshot.WeightLb,
		snapshot.HeightIn,
		snapshot.Steps,
		snapshot.HeartRate,
		snapshot.ObservedAt,
		snapshot.UpdatedAt,
		snapshot.ID,
	)
	if err != nil {
		return apperrors.Storage("update metric snapshot", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("update metric snapshot", err)
	}
	if rows == 0 {
		return apperrors.NotFound("metric snapshot", nil)
	}
	return nil
}

func (r *metricRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM metric_snapshots
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Storage("delete metric snapshot", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("delete metric snapshot", err)
	}
	if rows == 0 {
		return apperrors.NotFound("metric snapshot", nil)
	}
	return nil
}
