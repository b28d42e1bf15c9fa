package domain

import "time"

const (
	AppointmentBooked    = "booked"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	AppointmentID   string    `json:"id" dynamodbav:"appointment_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id"`     // patient account
	DoctorID        string    `json:"doctor_id" dynamodbav:"doctor_id"`
	AppointmentTime time.Time `json:"appointment_time" dynamodbav:"appointment_time"`
	Status          string    `json:"status" dynamodbav:"status"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`
}

type BookAppointmentRequest struct {
	DoctorID        string    `json:"doctor_id" validate:"required"`
	AppointmentTime time.Time `json:"appointment_time" validate:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=booked completed cancelled"`
}
