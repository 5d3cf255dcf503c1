package vapi

import (
	"context"
	"fmt"
	"time"

	"tradie_receptionist/internal/calls"
	"tradie_receptionist/internal/operators"
	"tradie_receptionist/internal/prompts"
	"tradie_receptionist/internal/sms"
	"tradie_receptionist/platform/apperr"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"
	"tradie_receptionist/platform/sanitize"
)

// Function-call replies read back to the assistant.
const (
	resultProcessed = "Report processed and SMS sent"
	resultReceived  = "Report received"
	resultOK        = "OK"

	summaryLogLimit = 200
)

// OperatorLookup resolves the operator behind a platform phone number.
type OperatorLookup interface {
	ByPhoneNumberID(phoneNumberID string) (operators.Operator, bool)
}

// FunctionResult answers a function-call event.
type FunctionResult struct {
	Result string `json:"result"`
}

// Empty is the bare acknowledgment body.
type Empty struct{}

// Service routes voice platform events.
type Service struct {
	operators OperatorLookup
	store     *calls.Store
	notifier  *sms.Notifier
	log       *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService creates a new webhook service. met may be nil.
func NewService(ops OperatorLookup, store *calls.Store, notifier *sms.Notifier, log *logger.Logger, met *metrics.Metrics) *Service {
	return &Service{
		operators: ops,
		store:     store,
		notifier:  notifier,
		log:       log,
		metrics:   met,
		now:       time.Now,
	}
}

// HandleEvent dispatches msg by type and returns the JSON body to respond with.
// Every outcome is a success from the platform's point of view.
func (s *Service) HandleEvent(ctx context.Context, msg *Message) any {
	if msg == nil {
		return Empty{}
	}

	event := ParseEventType(msg.Type)
	s.log.WithContext(ctx).WebhookEvent(msg.Type, msg.Call.ID)
	s.metrics.WebhookEvent(event.String())

	switch event {
	case EventAssistantRequest:
		return s.assistantRequest(ctx, msg)
	case EventFunctionCall:
		return s.functionCall(ctx, msg)
	case EventEndOfCallReport:
		s.endOfCallReport(ctx, msg)
		return Empty{}
	case EventUnknown:
		return Empty{}
	}
	return Empty{}
}

func (s *Service) assistantRequest(ctx context.Context, msg *Message) any {
	op, ok := s.operators.ByPhoneNumberID(msg.Call.PhoneNumberID)
	if !ok {
		s.log.WithContext(ctx).Warn("assistant not served", "error", operatorNotFound("assistant-request", msg.Call.PhoneNumberID))
		return Empty{}
	}
	return AssistantResponse{Assistant: BuildAssistant(op)}
}

func (s *Service) functionCall(ctx context.Context, msg *Message) any {
	if msg.FunctionCall == nil || msg.FunctionCall.Name != prompts.ReportFunctionName {
		return FunctionResult{Result: resultOK}
	}

	log := s.log.WithContext(ctx)

	op, ok := s.operators.ByPhoneNumberID(msg.Call.PhoneNumberID)
	if !ok {
		log.Error("call report dropped", "error", operatorNotFound(prompts.ReportFunctionName, msg.Call.PhoneNumberID))
		return FunctionResult{Result: resultReceived}
	}
	ctx = context.WithValue(ctx, logger.OperatorIDKey, op.ID)
	log = log.WithOperatorID(op.ID)

	report, err := DecodeReport(msg.FunctionCall.Parameters)
	if err != nil {
		log.Warn("malformed call report parameters", "error", err)
	}

	rec := calls.Record{
		OperatorID:      op.ID,
		Timestamp:       s.now().UTC(),
		CallID:          msg.Call.ID,
		CallerName:      sanitize.Line(report.CallerName),
		CallerPhone:     sanitize.Line(report.CallerPhone),
		Suburb:          sanitize.Line(report.Suburb),
		JobDescription:  sanitize.Line(report.JobDescription),
		Urgency:         calls.ParseUrgency(report.Urgency),
		PreferredTiming: sanitize.Line(report.PreferredTiming),
		Notes:           sanitize.Block(report.Notes),
		IsSpam:          report.IsSpam,
	}
	s.store.Append(rec)

	if rec.IsSpam {
		total := s.store.IncrementSpam(op.ID)
		s.metrics.SpamCall(op.ID)
		log.Info("spam blocked", "operator", op.Name, "total_today", total)
		return FunctionResult{Result: resultProcessed}
	}

	s.store.SetLastCaller(op.ID, calls.LastCaller{Name: rec.CallerName, Phone: rec.CallerPhone})

	var res sms.Result
	if rec.Urgency == calls.UrgencyEmergency {
		res = s.notifier.SendEmergencyAlert(ctx, op, rec)
	} else {
		res = s.notifier.SendJobLead(ctx, op, rec)
	}
	if !res.Success {
		log.Warn("lead stored but notification failed", "call_id", rec.CallID, "error", res.Error)
	}

	return FunctionResult{Result: resultProcessed}
}

func operatorNotFound(op, phoneNumberID string) error {
	return apperr.NotFound(fmt.Sprintf("no operator for phone number id %q", phoneNumberID)).WithOp(op)
}

func (s *Service) endOfCallReport(ctx context.Context, msg *Message) {
	log := s.log.WithContext(ctx)

	summary := msg.Summary
	if r := []rune(summary); len(r) > summaryLogLimit {
		summary = string(r[:summaryLogLimit])
	}
	var duration any = "n/a"
	if msg.Call.Duration != nil {
		duration = *msg.Call.Duration
	}
	log.Info("call completed", "call_id", msg.Call.ID, "duration_s", duration, "summary", summary)

	enriched := s.store.Enrich(msg.Call.ID, calls.Enrichment{
		Transcript: msg.Transcript,
		Duration:   msg.Call.Duration,
		Summary:    msg.Summary,
	})
	if !enriched {
		log.Debug("no call record to enrich", "call_id", msg.Call.ID)
	}
}
