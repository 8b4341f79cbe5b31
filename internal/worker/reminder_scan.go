package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitalsync/healthmon-api/internal/repository"
	"github.com/vitalsync/healthmon-api/internal/service/reminder"
	"github.com/vitalsync/healthmon-api/pkg/messaging"
	"github.com/vitalsync/healthmon-api/pkg/metrics"
)

const digestChannel = "healthmon.reminders.digest"

// ReminderScanner periodically computes which reminders are due and publishes
// a per-account digest event for downstream consumers. It never mutates
// reminder rows; due status is always computed, never stored.
type ReminderScanner struct {
	accountRepo repository.AccountRepository
	reminderSvc *reminder.Service
	broker      messaging.Broker
	metrics     *metrics.Metrics
	interval    time.Duration
}

func NewReminderScanner(accountRepo repository.AccountRepository, reminderSvc *reminder.Service,
	broker messaging.Broker, m *metrics.Metrics, interval time.Duration) *ReminderScanner {
	if interval == 0 {
		interval = time.Hour
	}
	return &ReminderScanner{
		accountRepo: accountRepo,
		reminderSvc: reminderSvc,
		broker:      broker,
		metrics:     m,
		interval:    interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *ReminderScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *ReminderScanner) scan(ctx context.Context) {
	s.metrics.DueReminderScans.Inc()

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder scan: failed to list accounts")
		return
	}

	now := time.Now()
	totalDue := 0
	for _, account := range accounts {
		due, err := s.reminderSvc.ListDue(ctx, account.ID, now)
		if err != nil {
			log.Error().Err(err).
				Str("account_id", account.ID.String()).
				Msg("reminder scan: failed to list due reminders")
			continue
		}
		if len(due) == 0 {
			continue
		}
		totalDue += len(due)

		event := messaging.Event{
			Type: "reminders_due",
			Payload: map[string]interface{}{
				"account_id": account.ID,
				"reminders":  due,
			},
			Timestamp: now.Unix(),
		}
		if err := s.broker.Publish(ctx, digestChannel, event); err != nil {
			s.metrics.EventsFailed.WithLabelValues("reminders_due").Inc()
			log.Warn().Err(err).
				Str("account_id", account.ID.String()).
				Msg("reminder scan: failed to publish digest")
			continue
		}
		s.metrics.EventsPublished.WithLabelValues("reminders_due").Inc()
	}

	s.metrics.DueRemindersFound.Set(float64(totalDue))
	log.Info().Int("due", totalDue).Int("accounts", len(accounts)).Msg("reminder scan complete")
}
