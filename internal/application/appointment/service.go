// Package appointment handles booking and lifecycle of clinic visits.
package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/pkg/id"
	"github.com/docucare-api/internal/pkg/validate"
)

// Store is the persistence surface for appointments.
type Store interface {
	Put(ctx context.Context, a *domain.Appointment) error
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error)
	Scan(ctx context.Context) ([]domain.Appointment, error)
	Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error
}

// DoctorGetter resolves the doctor a booking targets.
type DoctorGetter interface {
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
}

type Service struct {
	appts   Store
	doctors DoctorGetter
}

func NewService(appts Store, doctors DoctorGetter) *Service {
	return &Service{appts: appts, doctors: doctors}
}

// Book creates a booking for the calling patient. The doctor must exist and
// be approved, and the slot must lie in the future.
func (s *Service) Book(ctx context.Context, userID string, req *domain.BookAppointmentRequest) (*domain.Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	doc, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doc.IsApproved {
		return nil, fmt.Errorf("doctor is not accepting appointments: %w", domain.ErrConflict)
	}
	if !req.AppointmentTime.After(time.Now()) {
		return nil, fmt.Errorf("appointment time must be in the future: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	a := &domain.Appointment{
		AppointmentID:   id.New(),
		UserID:          userID,
		DoctorID:        req.DoctorID,
		AppointmentTime: req.AppointmentTime.UTC(),
		Status:          domain.AppointmentBooked,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.appts.Put(ctx, a); err != nil {
		return nil, fmt.Errorf("store appointment: %w", err)
	}
	return a, nil
}

// ListForCaller returns the appointments the caller may see: admins see every
// appointment, doctors their own schedule, patients their own bookings.
func (s *Service) ListForCaller(ctx context.Context, userID, role string) ([]domain.Appointment, error) {
	var (
		appts []domain.Appointment
		err   error
	)
	switch role {
	case domain.RoleAdmin:
		appts, err = s.appts.Scan(ctx)
	case domain.RoleDoctor:
		appts, err = s.appts.ListByDoctor(ctx, userID)
	case domain.RolePatient:
		appts, err = s.appts.ListByUser(ctx, userID)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].AppointmentTime.Before(appts[j].AppointmentTime)
	})
	return appts, nil
}

func (s *Service) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	return s.appts.Get(ctx, appointmentID)
}

// UpdateStatus moves an appointment through its lifecycle. Doctors may only
// touch their own schedule; a cancelled appointment is final.
func (s *Service) UpdateStatus(ctx context.Context, callerID, role, appointmentID string, req *domain.UpdateAppointmentStatusRequest) (*domain.Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	a, err := s.appts.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleDoctor && a.DoctorID != callerID {
		return nil, fmt.Errorf("appointment belongs to another doctor: %w", domain.ErrForbidden)
	}
	if a.Status == domain.AppointmentCancelled {
		return nil, fmt.Errorf("appointment is cancelled: %w", domain.ErrConflict)
	}

	if err := s.appts.Update(ctx, appointmentID, map[string]interface{}{"status": req.Status}); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	a.Status = req.Status
	return a, nil
}

// Cancel lets the booking patient (or an admin) cancel an upcoming visit.
func (s *Service) Cancel(ctx context.Context, callerID, role, appointmentID string) (*domain.Appointment, error) {
	a, err := s.appts.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && a.UserID != callerID {
		return nil, fmt.Errorf("appointment belongs to another patient: %w", domain.ErrForbidden)
	}
	switch a.Status {
	case domain.AppointmentCancelled:
		return nil, fmt.Errorf("appointment already cancelled: %w", domain.ErrConflict)
	case domain.AppointmentCompleted:
		return nil, fmt.Errorf("completed appointment cannot be cancelled: %w", domain.ErrConflict)
	}

	if err := s.appts.Update(ctx, appointmentID, map[string]interface{}{"status": domain.AppointmentCancelled}); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	a.Status = domain.AppointmentCancelled
	return a, nil
}
