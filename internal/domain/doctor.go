package domain

import "time"

// AvailabilitySlot is one weekly consultation window.
type AvailabilitySlot struct {
	Day       string `json:"day" dynamodbav:"day"`
	StartTime string `json:"start_time" dynamodbav:"start_time"` // "09:00"
	EndTime   string `json:"end_time" dynamodbav:"end_time"`
}

type Doctor struct {
	DoctorID          string             `json:"id" dynamodbav:"doctor_id"`
	Name              string             `json:"name" dynamodbav:"name"`
	Age               int                `json:"age,omitempty" dynamodbav:"age"`
	Gender            string             `json:"gender,omitempty" dynamodbav:"gender"`
	ProfileImage      string             `json:"profile_image,omitempty" dynamodbav:"profile_image"` // URL only; upload storage is out of scope
	PhoneNumber       string             `json:"phone_number" dynamodbav:"phone_number"`
	Specialty         string             `json:"specialty" dynamodbav:"specialty"`
	YearsOfExperience int                `json:"years_of_experience" dynamodbav:"years_of_experience"`
	Availability      []AvailabilitySlot `json:"availability,omitempty" dynamodbav:"availability"`
	Fees              float64            `json:"fees" dynamodbav:"fees"`
	IsApproved        bool               `json:"is_approved" dynamodbav:"is_approved"`
	CreatedAt         time.Time          `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time          `json:"updated" dynamodbav:"updated_at"`
}

type CreateDoctorRequest struct {
	Name              string             `json:"name" validate:"required"`
	Age               int                `json:"age"`
	Gender            string             `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	ProfileImage      string             `json:"profile_image"`
	PhoneNumber       string             `json:"phone_number" validate:"required"`
	Specialty         string             `json:"specialty" validate:"required"`
	YearsOfExperience int                `json:"years_of_experience" validate:"required"`
	Availability      []AvailabilitySlot `json:"availability"`
	Fees              float64            `json:"fees" validate:"required,gt=0"`
	IsApproved        bool               `json:"is_approved"`
}

type UpdateDoctorRequest struct {
	Name              *string             `json:"name"`
	Age               *int                `json:"age"`
	Gender            *string             `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	ProfileImage      *string             `json:"profile_image"`
	PhoneNumber       *string             `json:"phone_number"`
	Specialty         *string             `json:"specialty"`
	YearsOfExperience *int                `json:"years_of_experience"`
	Availability      *[]AvailabilitySlot `json:"availability"`
	Fees              *float64            `json:"fees" validate:"omitempty,gt=0"`
	IsApproved        *bool               `json:"is_approved"`
}
