package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/repository"
	"github.com/vitalsync/healthmon-api/pkg/messaging"
	"github.com/vitalsync/healthmon-api/pkg/metrics"
)

const eventChannel = "healthmon.recommendations"

type Service struct {
	repo    repository.RecommendationRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
}

func NewService(repo repository.RecommendationRepository, broker messaging.Broker, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		broker:  broker,
		metrics: m,
	}
}

// GenerateAndStore derives advisories from the snapshot and persists one row
// per advisory, tagged with the owning account and today's date. Row inserts
// are independent statements; a failure does not roll back rows already
// written, but any failure fails the whole operation.
func (s *Service) GenerateAndStore(ctx context.Context, accountID uuid.UUID, snapshot *model.MetricSnapshot) ([]*model.Recommendation, error) {
	advisories := Generate(snapshot)
	generatedAt := time.Now()

	stored := make([]*model.Recommendation, 0, len(advisories))
	var firstErr error
	for _, text := range advisories {
		rec := &model.Recommendation{
			ID:          uuid.New(),
			AccountID:   accountID,
			Text:        text,
			GeneratedAt: generatedAt,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			if s.metrics != nil {
				s.metrics.RecommendationRowsFailed.Inc()
			}
			log.Error().Err(err).
				Str("account_id", accountID.String()).
				Msg("failed to persist recommendation row")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		stored = append(stored, rec)
	}
	if s.metrics != nil {
		s.metrics.RecommendationsGenerated.Add(float64(len(stored)))
	}

	if firstErr != nil {
		return stored, fmt.Errorf("failed to store recommendations: %w", firstErr)
	}

	s.publish(ctx, "recommendations_generated", map[string]interface{}{
		"account_id": accountID,
		"count":      len(stored),
	})

	return stored, nil
}

func (s *Service) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Recommendation, error) {
	recs, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

func (s *Service) UpdateRecommendation(ctx context.Context, id uuid.UUID, text string) error {
	rec := &model.Recommendation{ID: id, Text: text}
	if err := s.repo.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update recommendation: %w", err)
	}
	return nil
}

func (s *Service) DeleteRecommendation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	return nil
}

// publish is best-effort; broker failures are logged and swallowed.
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
