package model

import (
	"time"

	"github.com/google/uuid"
)

// MetricSnapshot is one recorded observation of a user's physical metrics
// at a point in time. Weight is in pounds, height in inches.
type MetricSnapshot struct {
	Base
	AccountID  uuid.UUID `db:"account_id" json:"account_id"`
	WeightLb   float64   `db:"weight_lb" json:"weight_lb"`
	HeightIn   float64   `db:"height_in" json:"height_in"`
	Steps      int       `db:"steps" json:"steps"`
	HeartRate  int       `db:"heart_rate" json:"heart_rate"`
	ObservedAt time.Time `db:"observed_at" json:"observed_at"`
}

// BMI computes body mass index from imperial units.
func (s *MetricSnapshot) BMI() float64 {
	return s.WeightLb / (s.HeightIn * s.HeightIn) * 703
}

type CreateMetricSnapshotRequest struct {
	AccountID  uuid.UUID  `json:"account_id" binding:"required"`
	WeightLb   float64    `json:"weight_lb" binding:"required,gt=0"`
	HeightIn   float64    `json:"height_in" binding:"required,gt=0"`
	Steps      int        `json:"steps" binding:"min=0"`
	HeartRate  int        `json:"heart_rate" binding:"required,gt=0"`
	ObservedAt *time.Time `json:"observed_at"`
}

type UpdateMetricSnapshotRequest struct {
	WeightLb   *float64   `json:"weight_lb" binding:"omitempty,gt=0"`
	HeightIn   *float64   `json:"height_in" binding:"omitempty,gt=0"`
	Steps      *int       `json:"steps" binding:"omitempty,min=0"`
	HeartRate  *int       `json:"heart_rate" binding:"omitempty,gt=0"`
	ObservedAt *time.Time `json:"observed_at"`
}
