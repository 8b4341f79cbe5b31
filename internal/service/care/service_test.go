package care

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

type fakeCareRepo struct {
	rels []*model.CareRelationship
}

func (f *fakeCareRepo) Create(_ context.Context, rel *model.CareRelationship) error {
	f.rels = append(f.rels, rel)
	return nil
}

func (f *fakeCareRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.CareRelationship, error) {
	var out []*model.CareRelationship
	for _, r := range f.rels {
		if r.DoctorID == doctorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCareRepo) UpdateByPair(_ context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (int64, error) {
	var updated int64
	for _, r := range f.rels {
		if r.DoctorID == doctorID && r.PatientID == patientID {
			r.AppointmentAt = appointmentAt
			updated++
		}
	}
	return updated, nil
}

func (f *fakeCareRepo) DeleteByTriple(_ context.Context, doctorID, patientID uuid.UUID, appointmentAt time.Time) (int64, error) {
	var kept []*model.CareRelationship
	var deleted int64
	for _, r := range f.rels {
		if r.DoctorID == doctorID && r.PatientID == patientID && r.AppointmentAt.Equal(appointmentAt) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.rels = kept
	return deleted, nil
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

type fakeMetricRepo struct {
	snapshots []*model.MetricSnapshot
}

func (f *fakeMetricRepo) Create(_ context.Context, s *model.MetricSnapshot) error {
	f.snapshots = append(f.snapshots, s)
	return nil
}

func (f *fakeMetricRepo) Get(_ context.Context, id uuid.UUID) (*model.MetricSnapshot, error) {
	for _, s := range f.snapshots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("metric snapshot", nil)
}

func (f *fakeMetricRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*model.MetricSnapshot, error) {
	var out []*model.MetricSnapshot
	for _, s := range f.snapshots {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeMetricRepo) Update(_ context.Context, _ *model.MetricSnapshot) error { return nil }
func (f *fakeMetricRepo) Delete(_ context.Context, _ uuid.UUID) error             { return nil }

func newClinician() *model.Account {
	return &model.Account{
		Base:      model.Base{ID: uuid.New()},
		FirstName: "Dana",
		LastName:  "Reeves",
		Email:     "dana@example.com",
		Role:      model.RoleClinician,
		Clinician: &model.ClinicianProfile{
			LicenseNumber:  "MD-4821",
			Specialization: "Cardiology",
		},
	}
}

func newPatient(email string) *model.Account {
	return &model.Account{
		Base:  model.Base{ID: uuid.New()},
		Email: email,
		Role:  model.RolePatient,
	}
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestGetClinicianRoleMismatch(t *testing.T) {
	patient := newPatient("pat@example.com")
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(patient), &fakeMetricRepo{}, nil, nil)

	_, err := svc.GetClinician(context.Background(), patient.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRoleMismatch, apperrors.CodeOf(err))
}

func TestGetClinicianUnknownAccount(t *testing.T) {
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(), &fakeMetricRepo{}, nil, nil)

	_, err := svc.GetClinician(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetClinicianCachesLookup(t *testing.T) {
	doctor := newClinician()
	accounts := newFakeAccountRepo(doctor)
	svc := NewService(&fakeCareRepo{}, accounts, &fakeMetricRepo{}, nil, nil)

	first, err := svc.GetClinician(context.Background(), doctor.ID)
	require.NoError(t, err)

	// Remove the backing row; the cached entry still answers.
	require.NoError(t, accounts.Delete(context.Background(), doctor.ID))

	second, err := svc.GetClinician(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// After invalidation the miss surfaces.
	svc.InvalidateClinician(doctor.ID)
	_, err = svc.GetClinician(context.Background(), doctor.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBookAppointmentAllowsDuplicates(t *testing.T) {
	doctor := newClinician()
	patient := newPatient("pat@example.com")
	repo := &fakeCareRepo{}
	svc := NewService(repo, newFakeAccountRepo(doctor, patient), &fakeMetricRepo{}, nil, nil)

	when := at(2026, 9, 15, 10)
	_, err := svc.BookAppointment(context.Background(), doctor.ID, patient.ID, when)
	require.NoError(t, err)
	_, err = svc.BookAppointment(context.Background(), doctor.ID, patient.ID, when)
	require.NoError(t, err)

	assert.Len(t, repo.rels, 2)
}

func TestBookAppointmentRejectsNonClinicianDoctor(t *testing.T) {
	impostor := newPatient("fake@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(impostor, patient), &fakeMetricRepo{}, nil, nil)

	_, err := svc.BookAppointment(context.Background(), impostor.ID, patient.ID, at(2026, 9, 15, 10))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRoleMismatch, apperrors.CodeOf(err))
}

func TestBookAppointmentUnknownPatient(t *testing.T) {
	doctor := newClinician()
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(doctor), &fakeMetricRepo{}, nil, nil)

	_, err := svc.BookAppointment(context.Background(), doctor.ID, uuid.New(), at(2026, 9, 15, 10))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateAppointmentReschedulesEveryPairRow(t *testing.T) {
	doctor := newClinician()
	patient := newPatient("pat@example.com")
	other := newPatient("other@example.com")
	repo := &fakeCareRepo{}
	svc := NewService(repo, newFakeAccountRepo(doctor, patient, other), &fakeMetricRepo{}, nil, nil)

	_, err := svc.BookAppointment(context.Background(), doctor.ID, patient.ID, at(2026, 9, 15, 10))
	require.NoError(t, err)
	_, err = svc.BookAppointment(context.Background(), doctor.ID, patient.ID, at(2026, 9, 16, 11))
	require.NoError(t, err)
	_, err = svc.BookAppointment(context.Background(), doctor.ID, other.ID, at(2026, 9, 17, 12))
	require.NoError(t, err)

	newAt := at(2026, 10, 1, 9)
	require.NoError(t, svc.UpdateAppointment(context.Background(), doctor.ID, patient.ID, newAt))

	for _, r := range repo.rels {
		if r.PatientID == patient.ID {
			assert.True(t, r.AppointmentAt.Equal(newAt))
		} else {
			assert.True(t, r.AppointmentAt.Equal(at(2026, 9, 17, 12)))
		}
	}
}

func TestUpdateAppointmentNoMatchingPair(t *testing.T) {
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(), &fakeMetricRepo{}, nil, nil)

	err := svc.UpdateAppointment(context.Background(), uuid.New(), uuid.New(), at(2026, 10, 1, 9))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCancelAppointmentExactTripleOnly(t *testing.T) {
	doctor := newClinician()
	patient := newPatient("pat@example.com")
	repo := &fakeCareRepo{}
	svc := NewService(repo, newFakeAccountRepo(doctor, patient), &fakeMetricRepo{}, nil, nil)

	booked := at(2026, 9, 15, 10)
	_, err := svc.BookAppointment(context.Background(), doctor.ID, patient.ID, booked)
	require.NoError(t, err)

	// Wrong timestamp removes nothing.
	err = svc.CancelAppointment(context.Background(), doctor.ID, patient.ID, at(2026, 9, 15, 11))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Len(t, repo.rels, 1)

	require.NoError(t, svc.CancelAppointment(context.Background(), doctor.ID, patient.ID, booked))
	assert.Empty(t, repo.rels)
}

func TestListPatientsDeduplicatesAndSkipsUnresolvable(t *testing.T) {
	doctor := newClinician()
	patient := newPatient("pat@example.com")
	ghost := uuid.New()
	repo := &fakeCareRepo{}
	svc := NewService(repo, newFakeAccountRepo(doctor, patient), &fakeMetricRepo{}, nil, nil)

	// Two rows for the same patient plus one whose patient id resolves to nothing.
	_, err := svc.BookAppointment(context.Background(), doctor.ID, patient.ID, at(2026, 9, 15, 10))
	require.NoError(t, err)
	_, err = svc.BookAppointment(context.Background(), doctor.ID, patient.ID, at(2026, 9, 20, 10))
	require.NoError(t, err)
	repo.rels = append(repo.rels, &model.CareRelationship{
		ID:        uuid.New(),
		DoctorID:  doctor.ID,
		PatientID: ghost,
	})

	patients, err := svc.ListPatients(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, patient.ID, patients[0].ID)

	// A second call without intervening writes returns the same content.
	again, err := svc.ListPatients(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, patients, again)
}

func TestListPatientsRequiresClinician(t *testing.T) {
	patient := newPatient("pat@example.com")
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(patient), &fakeMetricRepo{}, nil, nil)

	_, err := svc.ListPatients(context.Background(), patient.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrRoleMismatch, apperrors.CodeOf(err))
}

func TestPatientMetrics(t *testing.T) {
	doctor := newClinician()
	patient := newPatient("pat@example.com")
	metricRepo := &fakeMetricRepo{}
	svc := NewService(&fakeCareRepo{}, newFakeAccountRepo(doctor, patient), metricRepo, nil, nil)

	require.NoError(t, metricRepo.Create(context.Background(), &model.MetricSnapshot{
		Base:      model.Base{ID: uuid.New()},
		AccountID: patient.ID,
		WeightLb:  150,
		HeightIn:  70,
	}))

	snapshots, err := svc.PatientMetrics(context.Background(), doctor.ID, patient.ID)
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}
