// Package auth orchestrates registration and the OTP login handshake.
//
// Login is a two-step flow: RequestLogin resolves the identity, issues a code
// and hands it to the matching notification channel; SubmitOTP verifies the
// code and mints the session token. The code itself never leaves the server
// through an API response.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/docucare-api/internal/application/otp"
	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/pkg/id"
	"github.com/docucare-api/internal/pkg/validate"
)

// deliveryTimeout bounds a single OTP delivery attempt. A channel that cannot
// confirm within this window fails the login request.
const deliveryTimeout = 5 * time.Second

// UserStore is the persistence surface the auth flow needs.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Update(ctx context.Context, userID string, fields map[string]any) error
}

// Mailer delivers clinic email. SendOTPEmail failure fails the login request;
// SendWelcomeEmail failure never fails registration.
type Mailer interface {
	SendOTPEmail(to, name, code string) error
	SendWelcomeEmail(to, name string) error
}

// SMSSender delivers a text message. A nil sender means the deployment has no
// SMS channel; phone-keyed logins then fail with a delivery error.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TokenSigner mints session tokens.
type TokenSigner interface {
	Sign(userID, role string) (string, error)
}

// OTPManager is the issue/verify pair backing the login handshake.
type OTPManager interface {
	Issue(ctx context.Context, key string) (*domain.LoginOTP, error)
	Verify(ctx context.Context, key, submitted string) error
}

type Service struct {
	users  UserStore
	mailer Mailer
	sms    SMSSender
	signer TokenSigner
	otps   OTPManager
	log    *slog.Logger
}

func NewService(users UserStore, mailer Mailer, sms SMSSender, signer TokenSigner, otps OTPManager, log *slog.Logger) *Service {
	return &Service{users: users, mailer: mailer, sms: sms, signer: signer, otps: otps, log: log}
}

// Register creates a user account, mints its first token and stores it on the
// record. Email and mobile number must both be unclaimed.
func (s *Service) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, string, error) {
	if err := validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	email := normalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if _, err := s.users.GetByMobile(ctx, req.MobileNo); err == nil {
		return nil, "", fmt.Errorf("mobile number already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check mobile: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserID:    id.New(),
		FullName:  strings.TrimSpace(req.FullName),
		Email:     email,
		MobileNo:  req.MobileNo,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	token, err := s.signer.Sign(user.UserID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	user.AccessToken = token

	if err := s.users.Put(ctx, user); err != nil {
		return nil, "", fmt.Errorf("store user: %w", err)
	}

	if err := s.mailer.SendWelcomeEmail(user.Email, user.FullName); err != nil {
		s.log.Warn("welcome email failed", "user_id", user.UserID, "error", err)
	}
	return user, token, nil
}

// RequestLogin resolves the identity behind req, issues a fresh OTP and
// delivers it over the channel matching the key. An unknown identity is
// reported without a code ever being generated or sent.
func (s *Service) RequestLogin(ctx context.Context, req *domain.LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	key, byEmail, err := loginKey(req.Email, req.MobileNo)
	if err != nil {
		return err
	}

	var user *domain.User
	if byEmail {
		user, err = s.users.GetByEmail(ctx, key)
	} else {
		user, err = s.users.GetByMobile(ctx, key)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no account for the given contact: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("look up user: %w", err)
	}

	rec, err := s.otps.Issue(ctx, key)
	if err != nil {
		return fmt.Errorf("issue otp: %w", err)
	}

	if byEmail {
		err = s.deliver(ctx, func(context.Context) error {
			return s.mailer.SendOTPEmail(user.Email, user.FullName, rec.Code)
		})
	} else {
		if s.sms == nil {
			return fmt.Errorf("no SMS channel configured: %w", domain.ErrDelivery)
		}
		err = s.deliver(ctx, func(dctx context.Context) error {
			return s.sms.SendSMS(dctx, user.MobileNo, "Your DocuCare login code is "+rec.Code+". It expires in 5 minutes.")
		})
	}
	if err != nil {
		s.log.Error("otp delivery failed", "user_id", user.UserID, "by_email", byEmail, "error", err)
		return fmt.Errorf("otp delivery failed: %w", domain.ErrDelivery)
	}
	return nil
}

// SubmitOTP finishes the login handshake: on a valid code it mints and
// returns a session token for the resolved user. Every verification failure
// other than a malformed code collapses into one unauthorized answer so the
// response does not reveal whether a code was ever issued.
func (s *Service) SubmitOTP(ctx context.Context, req *domain.VerifyOTPRequest) (*domain.User, string, error) {
	if err := validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	key, byEmail, err := loginKey(req.Email, req.MobileNo)
	if err != nil {
		return nil, "", err
	}

	if err := s.otps.Verify(ctx, key, req.OTP); err != nil {
		switch {
		case errors.Is(err, domain.ErrBadRequest):
			return nil, "", err
		case errors.Is(err, otp.ErrNotFound), errors.Is(err, otp.ErrMismatch), errors.Is(err, otp.ErrExpired):
			s.log.Info("otp verification rejected", "by_email", byEmail, "reason", err)
			return nil, "", fmt.Errorf("invalid or expired OTP: %w", domain.ErrUnauthorized)
		default:
			return nil, "", fmt.Errorf("verify otp: %w", err)
		}
	}

	var user *domain.User
	if byEmail {
		user, err = s.users.GetByEmail(ctx, key)
	} else {
		user, err = s.users.GetByMobile(ctx, key)
	}
	if err != nil {
		return nil, "", fmt.Errorf("look up user after otp: %w", err)
	}

	token, err := s.signer.Sign(user.UserID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Logout clears the stored access token for the user.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return fmt.Errorf("look up user: %w", err)
	}
	if err := s.users.Update(ctx, userID, map[string]any{"access_token": ""}); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// deliver runs one delivery attempt under the delivery timeout. The attempt
// runs in its own goroutine because mail senders do not take a context.
func (s *Service) deliver(ctx context.Context, send func(context.Context) error) error {
	dctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- send(dctx) }()

	select {
	case err := <-done:
		return err
	case <-dctx.Done():
		return dctx.Err()
	}
}

// loginKey picks the OTP key from the contact fields, preferring email when
// both are present. Emails are lowercased so issue and verify agree.
func loginKey(email, mobile string) (key string, byEmail bool, err error) {
	if email != "" {
		return normalizeEmail(email), true, nil
	}
	if mobile != "" {
		return mobile, false, nil
	}
	return "", false, fmt.Errorf("email or mobile_no is required: %w", domain.ErrBadRequest)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
