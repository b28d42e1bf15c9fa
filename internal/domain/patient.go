package domain

import "time"

type Address struct {
	Street  string `json:"street" dynamodbav:"street"`
	City    string `json:"city" dynamodbav:"city"`
	State   string `json:"state" dynamodbav:"state"`
	ZipCode string `json:"zip_code" dynamodbav:"zip_code"`
}

// Patient is the medical profile attached to a user account.
// There is at most one profile per user; the owning user id is the key.
type Patient struct {
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	FullName       string    `json:"full_name" dynamodbav:"full_name"`
	Email          string    `json:"email" dynamodbav:"email"`
	MobileNo       string    `json:"mobile_no" dynamodbav:"mobile_no"`
	Age            int       `json:"age" dynamodbav:"age"`
	Gender         string    `json:"gender" dynamodbav:"gender"`
	BloodGroup     string    `json:"blood_group" dynamodbav:"blood_group"`
	ProfilePicture string    `json:"profile_picture,omitempty" dynamodbav:"profile_picture"` // URL only
	Allergies      []string  `json:"allergies,omitempty" dynamodbav:"allergies"`
	Address        Address   `json:"address" dynamodbav:"address"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpsertPatientRequest struct {
	UserID         string   `json:"user_id" validate:"required"`
	FullName       string   `json:"full_name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	MobileNo       string   `json:"mobile_no" validate:"required,min=10,max=15"`
	Age            int      `json:"age" validate:"required,gt=0"`
	Gender         string   `json:"gender" validate:"required,oneof=Male Female Other"`
	BloodGroup     string   `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	ProfilePicture string   `json:"profile_picture"`
	Allergies      []string `json:"allergies"`
	Address        *Address `json:"address"`
}
