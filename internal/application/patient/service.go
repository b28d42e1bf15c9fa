// Package patient manages medical profiles and their visit history.
package patient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/pkg/validate"
)

// Store is the persistence surface for patient profiles.
type Store interface {
	Put(ctx context.Context, p *domain.Patient) error
	GetByUser(ctx context.Context, userID string) (*domain.Patient, error)
	Scan(ctx context.Context) ([]domain.Patient, error)
	Delete(ctx context.Context, userID string) error
}

// AppointmentLister supplies the visits backing a patient's medical history.
type AppointmentLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
}

type Service struct {
	patients Store
	appts    AppointmentLister
}

func NewService(patients Store, appts AppointmentLister) *Service {
	return &Service{patients: patients, appts: appts}
}

// Upsert creates or replaces the profile for the owning user. The returned
// bool reports whether a new profile was created.
func (s *Service) Upsert(ctx context.Context, req *domain.UpsertPatientRequest) (*domain.Patient, bool, error) {
	if err := validate.Struct(req); err != nil {
		return nil, false, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	created := false
	now := time.Now().UTC()
	createdAt := now
	if existing, err := s.patients.GetByUser(ctx, req.UserID); err == nil {
		createdAt = existing.CreatedAt
	} else if errors.Is(err, domain.ErrNotFound) {
		created = true
	} else {
		return nil, false, fmt.Errorf("look up patient: %w", err)
	}

	p := &domain.Patient{
		UserID:         req.UserID,
		FullName:       req.FullName,
		Email:          req.Email,
		MobileNo:       req.MobileNo,
		Age:            req.Age,
		Gender:         req.Gender,
		BloodGroup:     req.BloodGroup,
		ProfilePicture: req.ProfilePicture,
		Allergies:      req.Allergies,
		CreatedAt:      createdAt,
		UpdatedAt:      now,
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if err := s.patients.Put(ctx, p); err != nil {
		return nil, false, fmt.Errorf("store patient: %w", err)
	}
	return p, created, nil
}

func (s *Service) GetByUser(ctx context.Context, userID string) (*domain.Patient, error) {
	return s.patients.GetByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]domain.Patient, error) {
	return s.patients.Scan(ctx)
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	if _, err := s.patients.GetByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.patients.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

// MedicalHistory returns the patient's completed visits, most recent first.
func (s *Service) MedicalHistory(ctx context.Context, userID string) ([]domain.Appointment, error) {
	if _, err := s.patients.GetByUser(ctx, userID); err != nil {
		return nil, err
	}
	appts, err := s.appts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	history := make([]domain.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Status == domain.AppointmentCompleted {
			history = append(history, a)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].AppointmentTime.After(history[j].AppointmentTime)
	})
	return history, nil
}
