package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is one persisted advisory row, kept as an audit trail.
// Advisories are derived from snapshots and never re-derived from storage.
type Recommendation struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AccountID   uuid.UUID `db:"account_id" json:"account_id"`
	Text        string    `db:"recommendation_text" json:"text"`
	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`
}

type UpdateRecommendationRequest struct {
	Text string `json:"text" binding:"required"`
}
