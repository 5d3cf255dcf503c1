// Package sms sends operator notifications by text message and handles the
// operator's inbound reply commands.
package sms

import (
	"context"
	"errors"
	"fmt"

	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/phone"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Messenger delivers a single text message and returns the platform message id.
type Messenger interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// Client sends messages through the Twilio REST API.
type Client struct {
	rest *twilio.RestClient
	from string
	log  *logger.Logger
}

// NewMessenger returns a Twilio-backed Messenger, or a logging stand-in when
// no credentials are configured.
func NewMessenger(cfg config.TwilioConfig, log *logger.Logger) Messenger {
	if !cfg.IsTwilioEnabled() {
		log.Warn("TWILIO_ACCOUNT_SID not configured; outbound SMS will only be logged")
		return &LogMessenger{log: log}
	}
	return NewClient(cfg, log)
}

// NewClient creates a Twilio client from cfg.
func NewClient(cfg config.TwilioConfig, log *logger.Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.GetTwilioAccountSID(),
		Password: cfg.GetTwilioAuthToken(),
	})
	return &Client{
		rest: rest,
		from: phone.NormalizeE164(cfg.GetTwilioFromNumber()),
		log:  log,
	}
}

// Send delivers body to the given number. Local formats are normalized to E.164.
func (c *Client) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := phone.NormalizeE164(to)
	if normalized == "" {
		return "", errors.New("empty destination number")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(normalized)
	params.SetFrom(c.from)
	params.SetBody(body)

	resp, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	c.log.Debug("sms sent via twilio", "to", normalized, "sid", sid)
	return sid, nil
}

// LogMessenger logs messages instead of sending them. Used when the SMS
// platform is not configured.
type LogMessenger struct {
	log *logger.Logger
}

// NewLogMessenger creates a LogMessenger.
func NewLogMessenger(log *logger.Logger) *LogMessenger {
	return &LogMessenger{log: log}
}

// Send logs the message and returns a local id.
func (m *LogMessenger) Send(_ context.Context, to, body string) (string, error) {
	sid := "local-" + uuid.NewString()
	m.log.Info("sms not sent (twilio disabled)", "to", to, "sid", sid, "body", body)
	return sid, nil
}

var (
	_ Messenger = (*Client)(nil)
	_ Messenger = (*LogMessenger)(nil)
)
