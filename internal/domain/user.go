package domain

import "time"

type User struct {
	UserID      string    `json:"id" dynamodbav:"user_id"`
	FullName    string    `json:"full_name" dynamodbav:"full_name"`
	Email       string    `json:"email" dynamodbav:"email"`
	MobileNo    string    `json:"mobile_no" dynamodbav:"mobile_no"`
	Role        string    `json:"role" dynamodbav:"role"`
	AccessToken string    `json:"-" dynamodbav:"access_token"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	MobileNo string `json:"mobile_no" validate:"required,min=10,max=15"`
	Role     string `json:"role" validate:"required,oneof=Patient Doctor Admin"`
}

// LoginRequest starts an OTP login. At least one contact field is required;
// when both are present the email is used as the OTP key.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	MobileNo string `json:"mobile_no"`
}

type VerifyOTPRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	MobileNo string `json:"mobile_no"`
	OTP      string `json:"otp" validate:"required"`
}
