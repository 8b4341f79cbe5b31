package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsync/healthmon-api/internal/model"
	apperrors "github.com/vitalsync/healthmon-api/pkg/errors"
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

func (f *fakeReminderRepo) Update(_ context.Context, reminder *model.ReminderDefinition) error {
	for i, r := range f.reminders {
		if r.ID == reminder.ID {
			f.reminders[i] = reminder
			return nil
		}
	}
	return apperrors.NotFound("reminder", nil)
}

func (f *fakeReminderRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.reminders {
		if r.ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("reminder", nil)
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*model.Account
}

func newFakeAccountRepo(accounts ...*model.Account) *fakeAccountRepo {
	f := &fakeAccountRepo{accounts: make(map[uuid.UUID]*model.Account)}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) Update(_ context.Context, a *model.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) List(_ context.Context) ([]*model.Account, error) {
	out := make([]*model.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func testAccount() *model.Account {
	return &model.Account{
		Base:      model.Base{ID: uuid.New()},
		FirstName: "Pat",
		LastName:  "Doe",
		Email:     "pat@example.com",
		Role:      model.RolePatient,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateReminderUnknownOwner(t *testing.T) {
	svc := NewService(&fakeReminderRepo{}, newFakeAccountRepo())

	err := svc.CreateReminder(context.Background(), &model.ReminderDefinition{
		AccountID:    uuid.New(),
		MedicineName: "Atorvastatin",
		StartDate:    day(2026, 1, 1),
		EndDate:      day(2026, 1, 31),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListDueInclusiveBoundaries(t *testing.T) {
	account := testAccount()
	repo := &fakeReminderRepo{}
	svc := NewService(repo, newFakeAccountRepo(account))

	reminder := &model.ReminderDefinition{
		AccountID:    account.ID,
		MedicineName: "Metformin",
		Dosage:       "500mg",
		Schedule:     "8:00 AM, 8:00 PM",
		StartDate:    day(2026, 3, 10),
		EndDate:      day(2026, 3, 20),
	}
	require.NoError(t, svc.CreateReminder(context.Background(), reminder))

	cases := []struct {
		ref time.Time
		due bool
	}{
		{day(2026, 3, 9), false},
		{day(2026, 3, 10), true},
		{day(2026, 3, 15), true},
		{day(2026, 3, 20), true},
		{day(2026, 3, 21), false},
	}
	for _, tc := range cases {
		due, err := svc.ListDue(context.Background(), account.ID, tc.ref)
		require.NoError(t, err)
		if tc.due {
			assert.Len(t, due, 1, "ref %s", tc.ref.Format("2006-01-02"))
		} else {
			assert.Empty(t, due, "ref %s", tc.ref.Format("2006-01-02"))
		}
	}
}

func TestListDueIgnoresTimeOfDay(t *testing.T) {
	account := testAccount()
	repo := &fakeReminderRepo{}
	svc := NewService(repo, newFakeAccountRepo(account))

	require.NoError(t, svc.CreateReminder(context.Background(), &model.ReminderDefinition{
		AccountID: account.ID,
		StartDate: day(2026, 5, 1),
		EndDate:   day(2026, 5, 1),
	}))

	// 23:59 on the end date is still inside the window.
	ref := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	due, err := svc.ListDue(context.Background(), account.ID, ref)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestListDueZeroRefMeansNow(t *testing.T) {
	account := testAccount()
	repo := &fakeReminderRepo{}
	svc := NewService(repo, newFakeAccountRepo(account))

	now := time.Now().UTC()
	require.NoError(t, svc.CreateReminder(context.Background(), &model.ReminderDefinition{
		AccountID: account.ID,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 0, 1),
	}))
	require.NoError(t, svc.CreateReminder(context.Background(), &model.ReminderDefinition{
		AccountID: account.ID,
		StartDate: now.AddDate(0, 0, -10),
		EndDate:   now.AddDate(0, 0, -5),
	}))

	due, err := svc.ListDue(context.Background(), account.ID, time.Time{})
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestListDueInvertedRangeNeverMatches(t *testing.T) {
	account := testAccount()
	repo := &fakeReminderRepo{}
	svc := NewService(repo, newFakeAccountRepo(account))

	// end before start is accepted on create but can never be due
	require.NoError(t, svc.CreateReminder(context.Background(), &model.ReminderDefinition{
		AccountID: account.ID,
		StartDate: day(2026, 6, 20),
		EndDate:   day(2026, 6, 10),
	}))

	for _, ref := range []time.Time{day(2026, 6, 5), day(2026, 6, 15), day(2026, 6, 25)} {
		due, err := svc.ListDue(context.Background(), account.ID, ref)
		require.NoError(t, err)
		assert.Empty(t, due)
	}
}

func TestListForOwnerIncludesExpired(t *testing.T) {
	account := testAccount()
	repo := &fakeReminderRepo{}
	svc := NewService(repo, newFakeAccountRepo(account))

	require.NoError(t, svc.CreateReminder(context.Background(), &model.ReminderDefinition{
		AccountID: account.ID,
		StartDate: day(2020, 1, 1),
		EndDate:   day(2020, 1, 31),
	}))

	all, err := svc.ListForOwner(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	due, err := svc.ListDue(context.Background(), account.ID, day(2026, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestUpdateReminderPatchesOnlyProvidedFields(t *testing.T) {
	account := testAccount()
	repo := &fakeReminderRepo{}
	svc := NewService(repo, newFakeAccountRepo(account))

	reminder := &model.ReminderDefinition{
		AccountID:    account.ID,
		MedicineName: "Lisinopril",
		Dosage:       "10mg",
		Schedule:     "9:00 AM",
		StartDate:    day(2026, 2, 1),
		EndDate:      day(2026, 2, 28),
	}
	require.NoError(t, svc.CreateReminder(context.Background(), reminder))

	newDosage := "20mg"
	require.NoError(t, svc.UpdateReminder(context.Background(), reminder.ID, &model.UpdateReminderRequest{
		Dosage: &newDosage,
	}))

	got, err := svc.GetReminder(context.Background(), reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, "20mg", got.Dosage)
	assert.Equal(t, "Lisinopril", got.MedicineName)
	assert.Equal(t, "9:00 AM", got.Schedule)
}

func TestDeleteReminderUnknownID(t *testing.T) {
	svc := NewService(&fakeReminderRepo{}, newFakeAccountRepo())

	err := svc.DeleteReminder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
