package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsync/healthmon-api/internal/model"
	"github.com/vitalsync/healthmon-api/internal/service/reminder"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
	"github.com/vitalsync/healthmon-api/pkg/messaging"
	"github.com/vitalsync/healthmon-api/pkg/metrics"
)

type fakeReminderRepo struct {
	reminders []*model.ReminderDefinition
}

func (f *fakeReminderRepo) Create(_ context.Context, r *model.ReminderDefinition) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.reminders = append(f.reminders, r)
	return nil
}

func (f *fakeReminderRepo) Get(_ context.Context, id uuid.UUID) (*model.ReminderDefinition, error) {
	for _, r := range f.reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("reminder", nil)
}

func (f *fakeReminderRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*model.ReminderDefinition, error) {
	var out []*model.ReminderDefinition
	for _, r := range f.reminders {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) Update(_ context.Context, _ *model.ReminderDefinition) error { return nil }
func (f *fakeReminderRepo) Delete(_ context.Context, _ uuid.UUID) error                 { return nil }

type fakeAccountRepo struct {
	accounts []*model.Account
}

func (f *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	f.accounts = append(f.accounts, a)
	return nil
}

func (f *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, _ string) (*model.Account, error) {
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) Update(_ context.Context, _ *model.Account) error { return nil }
func (f *fakeAccountRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (f *fakeAccountRepo) List(_ context.Context) ([]*model.Account, error) {
	return f.accounts, nil
}

type captureBroker struct {
	events []messaging.Event
}

func (b *captureBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.events = append(b.events, message.(messaging.Event))
	return nil
}

func (b *captureBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, nil
}

func (b *captureBroker) Close() error { return nil }

var scannerMetrics = metrics.NewMetrics("healthmon_scanner_test")

func TestScanPublishesPerAccountDigest(t *testing.T) {
	withDue := &model.Account{Base: model.Base{ID: uuid.New()}, Role: model.RolePatient}
	withoutDue := &model.Account{Base: model.Base{ID: uuid.New()}, Role: model.RolePatient}
	accounts := &fakeAccountRepo{accounts: []*model.Account{withDue, withoutDue}}

	now := time.Now().UTC()
	reminders := &fakeReminderRepo{}
	require.NoError(t, reminders.Create(context.Background(), &model.ReminderDefinition{
		AccountID: withDue.ID,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 0, 1),
	}))
	require.NoError(t, reminders.Create(context.Background(), &model.ReminderDefinition{
		AccountID: withoutDue.ID,
		StartDate: now.AddDate(0, 0, -10),
		EndDate:   now.AddDate(0, 0, -5),
	}))

	broker := &captureBroker{}
	svc := reminder.NewService(reminders, accounts)
	scanner := NewReminderScanner(accounts, svc, broker, scannerMetrics, time.Hour)

	scanner.scan(context.Background())

	// Only the account that actually has something due gets a digest.
	require.Len(t, broker.events, 1)
	assert.Equal(t, "reminders_due", broker.events[0].Type)
	payload := broker.events[0].Payload.(map[string]interface{})
	assert.Equal(t, withDue.ID, payload["account_id"])
}

func TestRunStopsOnContextCancel(t *testing.T) {
	accounts := &fakeAccountRepo{}
	svc := reminder.NewService(&fakeReminderRepo{}, accounts)
	scanner := NewReminderScanner(accounts, svc, &captureBroker{}, scannerMetrics, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scanner.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scanner did not stop after cancellation")
	}
}
