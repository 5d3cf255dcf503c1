package sms

import (
	"context"

	"tradie_receptionist/internal/calls"
	"tradie_receptionist/internal/operators"
	"tradie_receptionist/platform/apperr"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"
)

// Message kinds, used for logs and metric labels.
const (
	KindJobLead    = "job_lead"
	KindEmergency  = "emergency"
	KindSpamDigest = "spam_digest"
	KindLastCaller = "last_caller"
)

// Result is the outcome of one delivery attempt. Failures are reported here,
// never returned as errors.
type Result struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"message_sid,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Notifier formats operator notifications and hands them to a Messenger.
type Notifier struct {
	messenger Messenger
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewNotifier creates a Notifier. met may be nil.
func NewNotifier(messenger Messenger, log *logger.Logger, met *metrics.Metrics) *Notifier {
	return &Notifier{messenger: messenger, log: log, metrics: met}
}

// SendJobLead texts a new lead to the operator's personal phone.
func (n *Notifier) SendJobLead(ctx context.Context, op operators.Operator, rec calls.Record) Result {
	return n.deliver(ctx, KindJobLead, op, FormatJobLead(op, rec))
}

// SendEmergencyAlert texts the emergency template to the operator.
func (n *Notifier) SendEmergencyAlert(ctx context.Context, op operators.Operator, rec calls.Record) Result {
	return n.deliver(ctx, KindEmergency, op, FormatEmergency(rec))
}

// SendSpamDigest texts the daily blocked-call count to the operator.
func (n *Notifier) SendSpamDigest(ctx context.Context, op operators.Operator, count int) Result {
	return n.deliver(ctx, KindSpamDigest, op, FormatSpamDigest(count))
}

// SendLastCaller answers the CALL command.
func (n *Notifier) SendLastCaller(ctx context.Context, op operators.Operator, caller calls.LastCaller) Result {
	return n.deliver(ctx, KindLastCaller, op, FormatLastCaller(caller))
}

func (n *Notifier) deliver(ctx context.Context, kind string, op operators.Operator, body string) Result {
	log := n.log.WithContext(ctx)

	sid, err := n.messenger.Send(ctx, op.PersonalPhone, body)
	if err != nil {
		derr := apperr.Delivery(err).WithOp(kind)
		log.SMSDelivery(kind, op.ID, "", derr)
		n.metrics.SMSDelivery(kind, false)
		return Result{Success: false, Error: derr.Error()}
	}

	log.SMSDelivery(kind, op.ID, sid, nil)
	n.metrics.SMSDelivery(kind, true)
	return Result{Success: true, MessageSID: sid}
}
