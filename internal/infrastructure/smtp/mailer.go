package smtp

import (
	"fmt"

	"github.com/docucare-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional clinic mail.
type Mailer interface {
	SendOTPEmail(to, name, code string) error
	SendWelcomeEmail(to, name string) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *mailer) SendOTPEmail(to, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your DocuCare OTP Code")

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your one-time login code is <strong>%s</strong>.</p>
		<p>It expires in 5 minutes. If you did not request it, ignore this email.</p>
	`, name, code)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

func (m *mailer) SendWelcomeEmail(to, name string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to DocuCare")

	body := fmt.Sprintf(`
		<h2>Welcome to DocuCare, %s!</h2>
		<p>Your account has been created. You can now sign in with a one-time code
		sent to this address.</p>
	`, name)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}
