package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/vitalsync/healthmon-api/internal/model"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
)

func (r *recommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	query := `
		INSERT INTO recommendations (id, account_id, recommendation_text, generated_at)
		VALUES ($1, $2, $3, $4)
	`
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.AccountID,
		rec.Text,
		rec.GeneratedAt,
	)
	if err != nil {
		return apperrors.Storage("create recommendation", err)
	}
	return nil
}

func (r *recommendationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Recommendation, error) {
	query := `
		SELECT id, account_id, recommendation_text, generated_at
		FROM recommendations
		WHERE account_id = $1
		ORDER BY generated_at ASC
	`
	var recs []*model.Recommendation
	if err := r.db.SelectContext(ctx, &recs, query, accountID); err != nil {
		return nil, apperrors.Storage("list recommendations", err)
	}
	return recs, nil
}

func (r *recommendationRepository) Update(ctx context.Context, rec *model.Recommendation) error {
	query := `
		UPDATE recommendations
		SET recommendation_text = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, rec.Text, rec.ID)
	if err != nil {
		return apperrors.Storage("update recommendation", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("update recommendation", err)
	}
	if rows == 0 {
		return apperrors.NotFound("recommendation", nil)
	}
	return nil
}

func (r *recommendationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM recommendations
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Storage("delete recommendation", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("delete recommendation", err)
	}
	if rows == 0 {
		return apperrors.NotFound("recommendation", nil)
	}
	return nil
}
