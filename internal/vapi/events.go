// Package vapi handles the voice platform's server webhook: it hands out the
// per-operator assistant at call start and turns end-of-call reports into
// call records and operator notifications.
package vapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// EventType is a recognised server message type.
type EventType int

const (
	EventUnknown EventType = iota
	EventAssistantRequest
	EventFunctionCall
	EventEndOfCallReport
)

// ParseEventType maps the wire name to an EventType.
func ParseEventType(s string) EventType {
	switch s {
	case "assistant-request":
		return EventAssistantRequest
	case "function-call":
		return EventFunctionCall
	case "end-of-call-report":
		return EventEndOfCallReport
	default:
		return EventUnknown
	}
}

// String returns the wire name.
func (e EventType) String() string {
	switch e {
	case EventAssistantRequest:
		return "assistant-request"
	case EventFunctionCall:
		return "function-call"
	case EventEndOfCallReport:
		return "end-of-call-report"
	default:
		return "unknown"
	}
}

// Envelope is the webhook request body.
type Envelope struct {
	Message *Message `json:"message"`
}

// Message is a single server event.
type Message struct {
	Type         string        `json:"type"`
	Call         Call          `json:"call"`
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
	Summary      string        `json:"summary"`
	Transcript   string        `json:"transcript"`
}

// Call identifies the call an event belongs to.
type Call struct {
	ID            string   `json:"id"`
	PhoneNumberID string   `json:"phoneNumberId"`
	Duration      *float64 `json:"duration,omitempty"`
}

// FunctionCall is a tool invocation made by the assistant mid-call.
type FunctionCall struct {
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters"`
}

// Report is the argument set of the end-of-call report function.
type Report struct {
	CallerName      string
	CallerPhone     string
	Suburb          string
	JobDescription  string
	Urgency         string
	PreferredTiming string
	Notes           string
	IsSpam          bool
}

// reportWire tolerates the loose typing of model-generated arguments: any
// scalar is accepted for a text field and no single field can fail the decode.
type reportWire struct {
	CallerName      flexString `json:"caller_name"`
	CallerPhone     flexString `json:"caller_phone"`
	Suburb          flexString `json:"suburb"`
	JobDescription  flexString `json:"job_description"`
	Urgency         flexString `json:"urgency"`
	PreferredTiming flexString `json:"preferred_timing"`
	Notes           flexString `json:"notes"`
	IsSpam          flexBool   `json:"is_spam"`
}

// DecodeReport parses function parameters. Missing or null parameters give an empty report.
// Some model outputs arrive as a JSON-encoded string; those are unwrapped first.
// Only a payload that is not a JSON object is an error.
func DecodeReport(raw json.RawMessage) (Report, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Report{}, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return Report{}, err
		}
		raw = []byte(inner)
	}

	var w reportWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Report{}, err
	}
	return Report{
		CallerName:      string(w.CallerName),
		CallerPhone:     string(w.CallerPhone),
		Suburb:          string(w.Suburb),
		JobDescription:  string(w.JobDescription),
		Urgency:         string(w.Urgency),
		PreferredTiming: string(w.PreferredTiming),
		Notes:           string(w.Notes),
		IsSpam:          bool(w.IsSpam),
	}, nil
}

// flexString accepts a JSON string or the literal text of any other value,
// so a phone number sent as a number keeps its digits.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			v = strings.Trim(string(data), `"`)
		}
		*s = flexString(v)
	default:
		*s = flexString(data)
	}
	return nil
}

// flexBool accepts a JSON boolean, number or string. Empty and explicitly
// negative values are false; any other non-empty value is true.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var raw flexString
	_ = raw.UnmarshalJSON(data)
	v := strings.ToLower(strings.TrimSpace(string(raw)))

	switch v {
	case "", "false", "f", "0", "no", "n", "off", "none", "null":
		*b = false
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*b = f != 0
		return nil
	}
	*b = true
	return nil
}
