// Package doctor manages the clinic's doctor roster.
package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/pkg/id"
	"github.com/docucare-api/internal/pkg/validate"
)

// Store is the persistence surface for doctor records.
type Store interface {
	Put(ctx context.Context, d *domain.Doctor) error
	Get(ctx context.Context, doctorID string) (*domain.Doctor, error)
	Scan(ctx context.Context) ([]domain.Doctor, error)
	Update(ctx context.Context, doctorID string, updates map[string]interface{}) error
	Delete(ctx context.Context, doctorID string) error
}

type Service struct {
	doctors Store
}

func NewService(doctors Store) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) Create(ctx context.Context, req *domain.CreateDoctorRequest) (*domain.Doctor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	d := &domain.Doctor{
		DoctorID:          id.New(),
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		ProfileImage:      req.ProfileImage,
		PhoneNumber:       req.PhoneNumber,
		Specialty:         req.Specialty,
		YearsOfExperience: req.YearsOfExperience,
		Availability:      req.Availability,
		Fees:              req.Fees,
		IsApproved:        req.IsApproved,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.doctors.Put(ctx, d); err != nil {
		return nil, fmt.Errorf("store doctor: %w", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.doctors.Scan(ctx)
}

func (s *Service) Get(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	return s.doctors.Get(ctx, doctorID)
}

// Update applies only the fields present in the request. An empty request is
// rejected rather than issuing a no-op write.
func (s *Service) Update(ctx context.Context, doctorID string, req *domain.UpdateDoctorRequest) (*domain.Doctor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.YearsOfExperience != nil {
		updates["years_of_experience"] = *req.YearsOfExperience
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}
	if req.Fees != nil {
		updates["fees"] = *req.Fees
	}
	if req.IsApproved != nil {
		updates["is_approved"] = *req.IsApproved
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.doctors.Update(ctx, doctorID, updates); err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return s.doctors.Get(ctx, doctorID)
}

func (s *Service) Delete(ctx context.Context, doctorID string) error {
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return err
	}
	if err := s.doctors.Delete(ctx, doctorID); err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}
