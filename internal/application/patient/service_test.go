package patient

import (
	"context"
	"testing"
	"time"

	"github.com/docucare-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, p *domain.Patient) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockStore) GetByUser(ctx context.Context, userID string) (*domain.Patient, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Scan(ctx context.Context) ([]domain.Patient, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockAppts struct{ mock.Mock }

func (m *mockAppts) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, userID)
	if a := args.Get(0); a != nil {
		return a.([]domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func validUpsert() *domain.UpsertPatientRequest {
	return &domain.UpsertPatientRequest{
		UserID:     "user-1",
		FullName:   "Asha Rao",
		Email:      "asha@example.com",
		MobileNo:   "+919876543210",
		Age:        34,
		Gender:     "Female",
		BloodGroup: "O+",
	}
}

func TestUpsert_CreatesWhenMissing(t *testing.T) {
	store, appts := &mockStore{}, &mockAppts{}
	svc := NewService(store, appts)
	ctx := context.Background()

	store.On("GetByUser", ctx, "user-1").Return(nil, domain.ErrNotFound)
	store.On("Put", ctx, mock.AnythingOfType("*domain.Patient")).Return(nil)

	p, created, err := svc.Upsert(ctx, validUpsert())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user-1", p.UserID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestUpsert_ReplacesButKeepsCreatedAt(t *testing.T) {
	store, appts := &mockStore{}, &mockAppts{}
	svc := NewService(store, appts)
	ctx := context.Background()
	origin := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	store.On("GetByUser", ctx, "user-1").Return(&domain.Patient{UserID: "user-1", CreatedAt: origin}, nil)
	store.On("Put", ctx, mock.AnythingOfType("*domain.Patient")).Return(nil)

	p, created, err := svc.Upsert(ctx, validUpsert())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, origin, p.CreatedAt)
	assert.True(t, p.UpdatedAt.After(origin))
}

func TestUpsert_InvalidBloodGroup(t *testing.T) {
	store, appts := &mockStore{}, &mockAppts{}
	svc := NewService(store, appts)

	req := validUpsert()
	req.BloodGroup = "Z+"
	_, _, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestMedicalHistory_OnlyCompletedNewestFirst(t *testing.T) {
	store, appts := &mockStore{}, &mockAppts{}
	svc := NewService(store, appts)
	ctx := context.Background()

	older := time.Now().Add(-72 * time.Hour)
	newer := time.Now().Add(-24 * time.Hour)
	store.On("GetByUser", ctx, "user-1").Return(&domain.Patient{UserID: "user-1"}, nil)
	appts.On("ListByUser", ctx, "user-1").Return([]domain.Appointment{
		{AppointmentID: "old-visit", Status: domain.AppointmentCompleted, AppointmentTime: older},
		{AppointmentID: "upcoming", Status: domain.AppointmentBooked, AppointmentTime: time.Now().Add(time.Hour)},
		{AppointmentID: "new-visit", Status: domain.AppointmentCompleted, AppointmentTime: newer},
		{AppointmentID: "skipped", Status: domain.AppointmentCancelled, AppointmentTime: older},
	}, nil)

	history, err := svc.MedicalHistory(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "new-visit", history[0].AppointmentID)
	assert.Equal(t, "old-visit", history[1].AppointmentID)
}

func TestMedicalHistory_UnknownPatient(t *testing.T) {
	store, appts := &mockStore{}, &mockAppts{}
	svc := NewService(store, appts)
	ctx := context.Background()

	store.On("GetByUser", ctx, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.MedicalHistory(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	appts.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestDelete_UnknownPatient(t *testing.T) {
	store, appts := &mockStore{}, &mockAppts{}
	svc := NewService(store, appts)
	ctx := context.Background()

	store.On("GetByUser", ctx, "ghost").Return(nil, domain.ErrNotFound)

	err := svc.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
