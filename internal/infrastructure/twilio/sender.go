package twilio

import (
	"context"
	"fmt"

	"github.com/docucare-api/internal/config"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender sends SMS messages via Twilio. Selected with SMS_PROVIDER=twilio.
type Sender struct {
	client *twilio.RestClient
	from   string
}

func NewSender(cfg *config.Config) (*Sender, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFrom == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &Sender{client: client, from: cfg.TwilioFrom}, nil
}

// SendSMS delivers a single message. The Twilio SDK does not take a context;
// the caller bounds the call with its own deadline.
func (s *Sender) SendSMS(_ context.Context, to, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(message)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
