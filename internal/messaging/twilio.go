package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-coverage-service/internal/config"
)

// messageCreator is the slice of the Twilio REST API the sender needs.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender sends messages through the Twilio REST API.
type TwilioSender struct {
	api     messageCreator
	from    string
	channel string
	logger  *zap.Logger
}

// NewTwilioSender builds a sender from account credentials.
func NewTwilioSender(cfg config.TwilioConfig, logger *zap.Logger) (*TwilioSender, error) {
	if !cfg.Enabled() {
		return nil, errors.New("missing Twilio configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(client.Api, cfg.FromNumber, cfg.Channel, logger), nil
}

func newTwilioSender(api messageCreator, from, channel string, logger *zap.Logger) *TwilioSender {
	return &TwilioSender{api: api, from: from, channel: channel, logger: logger}
}

// Send creates one outbound message. The Twilio client has no context support,
// so ctx is only checked before the call.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(s.address(to))
	params.SetFrom(s.address(s.from))
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message to %s: %w", to, err)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	s.logger.Debug("twilio message created", zap.String("to", to), zap.String("sid", sid))
	return nil
}

// address applies the channel prefix Twilio expects, e.g. "whatsapp:+1555...".
func (s *TwilioSender) address(number string) string {
	if s.channel == "" || s.channel == "sms" {
		return number
	}
	prefix := s.channel + ":"
	if strings.HasPrefix(strings.ToLower(number), prefix) {
		return number
	}
	return prefix + number
}
