package vapi

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tradie_receptionist/internal/calls"
	"tradie_receptionist/internal/operators"
	"tradie_receptionist/internal/sms"
	"tradie_receptionist/platform/apperr"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	To   string
	Body string
}

type recordingMessenger struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (m *recordingMessenger) Send(_ context.Context, to, body string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, sentMessage{To: to, Body: body})
	return "SMtest", nil
}

func (m *recordingMessenger) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}

type fixture struct {
	svc       *Service
	store     *calls.Store
	messenger *recordingMessenger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	registry, err := operators.NewRegistry([]operators.Operator{{
		ID:                "dave-plumbing",
		Name:              "Dave",
		BusinessName:      "Dave's Plumbing",
		TradeType:         "plumber",
		ServiceArea:       "Melbourne inner east",
		Services:          []string{"Leaking taps"},
		PersonalPhone:     "0400000000",
		VapiPhoneNumberID: "pn-dave",
	}}, validator.New())
	require.NoError(t, err)

	store := calls.NewStore()
	m := &recordingMessenger{}
	notifier := sms.NewNotifier(m, logger.Discard(), nil)
	svc := NewService(registry, store, notifier, logger.Discard(), nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 3, 5, 0, 0, time.UTC) }

	return fixture{svc: svc, store: store, messenger: m}
}

func reportMessage(callID, phoneNumberID string, params string) *Message {
	return &Message{
		Type: "function-call",
		Call: Call{ID: callID, PhoneNumberID: phoneNumberID},
		FunctionCall: &FunctionCall{
			Name:       "end_call_report",
			Parameters: json.RawMessage(params),
		},
	}
}

func TestParseEventType(t *testing.T) {
	assert.Equal(t, EventAssistantRequest, ParseEventType("assistant-request"))
	assert.Equal(t, EventFunctionCall, ParseEventType("function-call"))
	assert.Equal(t, EventEndOfCallReport, ParseEventType("end-of-call-report"))
	assert.Equal(t, EventUnknown, ParseEventType("status-update"))
	assert.Equal(t, EventUnknown, ParseEventType(""))
	assert.Equal(t, "function-call", EventFunctionCall.String())
}

func TestDecodeReport(t *testing.T) {
	r, err := DecodeReport(json.RawMessage(`{"caller_name":"Jo","is_spam":"true"}`))
	require.NoError(t, err)
	assert.Equal(t, "Jo", r.CallerName)
	assert.True(t, r.IsSpam)

	r, err = DecodeReport(json.RawMessage(`"{\"caller_name\":\"Kim\",\"is_spam\":false}"`))
	require.NoError(t, err)
	assert.Equal(t, "Kim", r.CallerName)
	assert.False(t, r.IsSpam)

	r, err = DecodeReport(nil)
	require.NoError(t, err)
	assert.Equal(t, Report{}, r)

	_, err = DecodeReport(json.RawMessage(`["not","an","object"]`))
	assert.Error(t, err)
}

func TestDecodeReportAcceptsNumericText(t *testing.T) {
	r, err := DecodeReport(json.RawMessage(`{"caller_name":"Jo","caller_phone":412345678,"suburb":3121,"is_spam":false}`))
	require.NoError(t, err)
	assert.Equal(t, "Jo", r.CallerName)
	assert.Equal(t, "412345678", r.CallerPhone)
	assert.Equal(t, "3121", r.Suburb)
	assert.False(t, r.IsSpam)
}

func TestDecodeReportSpamFlagForms(t *testing.T) {
	cases := map[string]bool{
		`true`: true, `false`: false, `null`: false, `1`: true, `0`: false,
		`"yes"`: true, `"Y"`: true, `"spam"`: true, `"TRUE"`: true,
		`"no"`: false, `"false"`: false, `""`: false, `"0"`: false,
	}
	for flag, want := range cases {
		r, err := DecodeReport(json.RawMessage(`{"is_spam":` + flag + `,"caller_name":"SEO Guy"}`))
		require.NoError(t, err, "flag %s", flag)
		assert.Equal(t, want, r.IsSpam, "flag %s", flag)
		assert.Equal(t, "SEO Guy", r.CallerName, "flag %s", flag)
	}
}

func TestAssistantRequestKnownOperator(t *testing.T) {
	f := newFixture(t)

	resp := f.svc.HandleEvent(context.Background(), &Message{
		Type: "assistant-request",
		Call: Call{ID: "call-1", PhoneNumberID: "pn-dave"},
	})

	ar, ok := resp.(AssistantResponse)
	require.True(t, ok)
	a := ar.Assistant
	assert.Equal(t, "openai", a.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", a.Model.Model)
	assert.Contains(t, a.Model.SystemMessage, "Dave's Plumbing")
	require.Len(t, a.Model.Functions, 1)
	fn := a.Model.Functions[0]
	assert.Equal(t, "end_call_report", fn.Name)
	assert.ElementsMatch(t,
		[]string{"caller_name", "caller_phone", "job_description", "urgency", "is_spam"},
		fn.Parameters.Required)
	assert.Equal(t, []string{"normal", "soon", "emergency"}, fn.Parameters.Properties["urgency"].Enum)
	assert.Equal(t, "boolean", fn.Parameters.Properties["is_spam"].Type)
	assert.Equal(t, "G'day, Dave's Plumbing, how can I help?", a.FirstMessage)
	assert.Equal(t, "No worries, have a good one!", a.EndCallMessage)
	assert.Equal(t, "en-AU", a.Transcriber.Language)
	assert.Equal(t, 15, a.SilenceTimeoutSeconds)
	assert.Equal(t, 300, a.MaxDurationSeconds)
	assert.True(t, a.EndCallFunctionEnabled)
}

func TestAssistantRequestUnknownOperator(t *testing.T) {
	f := newFixture(t)
	resp := f.svc.HandleEvent(context.Background(), &Message{
		Type: "assistant-request",
		Call: Call{PhoneNumberID: "pn-nobody"},
	})
	assert.Equal(t, Empty{}, resp)
}

func TestReportNormalLeadNotifiesOperator(t *testing.T) {
	f := newFixture(t)

	resp := f.svc.HandleEvent(context.Background(), reportMessage("call-1", "pn-dave",
		`{"caller_name":"Dave","caller_phone":"0412345678","suburb":"Richmond","job_description":"Leaking tap","urgency":"normal","is_spam":false}`))

	assert.Equal(t, FunctionResult{Result: "Report processed and SMS sent"}, resp)
	sent := f.messenger.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "0400000000", sent[0].To)
	for _, want := range []string{"Dave", "0412345678", "Richmond", "Leaking tap"} {
		assert.Contains(t, sent[0].Body, want)
	}
	assert.True(t, strings.HasPrefix(sent[0].Body, "📋 New Job Lead"))

	last, ok := f.store.LastCaller("dave-plumbing")
	require.True(t, ok)
	assert.Equal(t, calls.LastCaller{Name: "Dave", Phone: "0412345678"}, last)
	assert.Equal(t, 1, f.store.Len())
	assert.Equal(t, 0, f.store.SpamCount("dave-plumbing"))
}

func TestReportEmergencySendsAlert(t *testing.T) {
	f := newFixture(t)

	f.svc.HandleEvent(context.Background(), reportMessage("call-2", "pn-dave",
		`{"caller_name":"Kim","caller_phone":"0422222222","suburb":"Kew","job_description":"Burst pipe","urgency":"emergency","is_spam":false}`))

	sent := f.messenger.messages()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0].Body, "🚨🚨 EMERGENCY CALL 🚨🚨"))
	assert.Contains(t, sent[0].Body, "Burst pipe")

	last, ok := f.store.LastCaller("dave-plumbing")
	require.True(t, ok)
	assert.Equal(t, "Kim", last.Name)
}

func TestReportSpamCountsWithoutNotifying(t *testing.T) {
	f := newFixture(t)
	f.store.SetLastCaller("dave-plumbing", calls.LastCaller{Name: "Prev", Phone: "0433"})

	resp := f.svc.HandleEvent(context.Background(), reportMessage("call-3", "pn-dave",
		`{"caller_name":"SEO Guy","caller_phone":"0299999999","job_description":"Marketing","urgency":"normal","is_spam":true}`))

	assert.Equal(t, FunctionResult{Result: "Report processed and SMS sent"}, resp)
	assert.Empty(t, f.messenger.messages())
	assert.Equal(t, 1, f.store.SpamCount("dave-plumbing"))
	last, _ := f.store.LastCaller("dave-plumbing")
	assert.Equal(t, "Prev", last.Name)

	sum := f.store.Summarize("dave-plumbing", 0)
	assert.Equal(t, 1, sum.TotalCalls)
	assert.Equal(t, 1, sum.SpamBlocked)
}

func TestReportDeliveryFailureKeepsRecord(t *testing.T) {
	f := newFixture(t)
	f.messenger.err = errors.New("network down")

	resp := f.svc.HandleEvent(context.Background(), reportMessage("call-4", "pn-dave",
		`{"caller_name":"Jo","caller_phone":"0411","job_description":"Hot water","urgency":"soon","is_spam":false}`))

	assert.Equal(t, FunctionResult{Result: "Report processed and SMS sent"}, resp)
	assert.Equal(t, 1, f.store.Len())
	_, ok := f.store.LastCaller("dave-plumbing")
	assert.True(t, ok)
}

func TestReportUnknownOperator(t *testing.T) {
	f := newFixture(t)

	resp := f.svc.HandleEvent(context.Background(), reportMessage("call-5", "pn-nobody",
		`{"caller_name":"Jo","is_spam":false}`))

	assert.Equal(t, FunctionResult{Result: "Report received"}, resp)
	assert.Equal(t, 0, f.store.Len())
	assert.Empty(t, f.messenger.messages())
}

func TestOtherFunctionNames(t *testing.T) {
	f := newFixture(t)

	msg := reportMessage("call-6", "pn-dave", `{}`)
	msg.FunctionCall.Name = "check_availability"
	assert.Equal(t, FunctionResult{Result: "OK"}, f.svc.HandleEvent(context.Background(), msg))

	msg.FunctionCall = nil
	assert.Equal(t, FunctionResult{Result: "OK"}, f.svc.HandleEvent(context.Background(), msg))
	assert.Equal(t, 0, f.store.Len())
}

func TestEndOfCallReportEnrichesRecord(t *testing.T) {
	f := newFixture(t)
	f.svc.HandleEvent(context.Background(), reportMessage("call-7", "pn-dave",
		`{"caller_name":"Jo","caller_phone":"0411","job_description":"Tap","urgency":"normal","is_spam":false}`))

	d := 93.0
	resp := f.svc.HandleEvent(context.Background(), &Message{
		Type:       "end-of-call-report",
		Call:       Call{ID: "call-7", Duration: &d},
		Summary:    strings.Repeat("s", 500),
		Transcript: "AI: G'day",
	})

	assert.Equal(t, Empty{}, resp)
	rec := f.store.Summarize("dave-plumbing", 0).Calls[0]
	assert.Equal(t, "AI: G'day", rec.Transcript)
	assert.Len(t, rec.Summary, 500)
	require.NotNil(t, rec.Duration)
	assert.InDelta(t, 93.0, *rec.Duration, 0.001)
	assert.False(t, rec.IsSpam)
}

func TestEndOfCallReportUnknownCallIsNoop(t *testing.T) {
	f := newFixture(t)
	f.svc.HandleEvent(context.Background(), reportMessage("call-8", "pn-dave", `{"is_spam":true}`))

	resp := f.svc.HandleEvent(context.Background(), &Message{
		Type:    "end-of-call-report",
		Call:    Call{ID: "call-unknown"},
		Summary: "x",
	})

	assert.Equal(t, Empty{}, resp)
	assert.Equal(t, 1, f.store.Len())
}

func TestUnknownAndNilMessages(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Empty{}, f.svc.HandleEvent(context.Background(), nil))
	assert.Equal(t, Empty{}, f.svc.HandleEvent(context.Background(), &Message{Type: "status-update"}))
}

func TestReportFieldsAreSanitized(t *testing.T) {
	f := newFixture(t)

	f.svc.HandleEvent(context.Background(), reportMessage("call-9", "pn-dave",
		`{"caller_name":"  Jo\n","caller_phone":" 0411 ","job_description":"Blocked\ndrain","urgency":"normal","is_spam":false}`))

	rec := f.store.Summarize("dave-plumbing", 0).Calls[0]
	assert.Equal(t, "Jo", rec.CallerName)
	assert.Equal(t, "0411", rec.CallerPhone)
	assert.Equal(t, "Blocked drain", rec.JobDescription)
}

func TestReportKeepsAngleBracketsInJobDescription(t *testing.T) {
	f := newFixture(t)
	job := "Water pressure <20 psi upstairs, needs >50 psi for new shower"

	f.svc.HandleEvent(context.Background(), reportMessage("call-10", "pn-dave",
		`{"caller_name":"Jo","caller_phone":"0411","job_description":"`+job+`","urgency":"normal","is_spam":false}`))

	rec := f.store.Summarize("dave-plumbing", 0).Calls[0]
	assert.Equal(t, job, rec.JobDescription)
	sent := f.messenger.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "🔧 "+job)
}

func TestReportNumericPhoneReachesLeadAndLastCaller(t *testing.T) {
	f := newFixture(t)

	f.svc.HandleEvent(context.Background(), reportMessage("call-11", "pn-dave",
		`{"caller_name":"Jo","caller_phone":412345678,"job_description":"Tap","urgency":"normal","is_spam":false}`))

	sent := f.messenger.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "📞 412345678")
	last, ok := f.store.LastCaller("dave-plumbing")
	require.True(t, ok)
	assert.Equal(t, calls.LastCaller{Name: "Jo", Phone: "412345678"}, last)
}

func TestReportLooseSpamFlagIsCountedNotTexted(t *testing.T) {
	f := newFixture(t)

	resp := f.svc.HandleEvent(context.Background(), reportMessage("call-12", "pn-dave",
		`{"is_spam":"yes","caller_name":"SEO Guy","caller_phone":"0299999999","job_description":"Marketing","urgency":"normal"}`))

	assert.Equal(t, FunctionResult{Result: "Report processed and SMS sent"}, resp)
	assert.Empty(t, f.messenger.messages())
	assert.Equal(t, 1, f.store.SpamCount("dave-plumbing"))
	sum := f.store.Summarize("dave-plumbing", 0)
	assert.Equal(t, 0, sum.RealLeads)
	assert.Equal(t, 1, sum.SpamBlocked)
}

func TestOperatorNotFoundIsTyped(t *testing.T) {
	err := operatorNotFound("assistant-request", "pn-missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, `assistant-request: no operator for phone number id "pn-missing"`, err.Error())
}
