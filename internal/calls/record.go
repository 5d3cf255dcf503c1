// Package calls keeps the in-process call log, spam counters and last-caller
// memory, and serves the read-only dashboard queries over them.
package calls

import (
	"strings"
	"time"
)

// Urgency is the caller-reported urgency tier of a job.
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencySoon      Urgency = "soon"
	UrgencyEmergency Urgency = "emergency"
)

// ParseUrgency maps free text to a tier. Anything unrecognised is normal.
func ParseUrgency(s string) Urgency {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyEmergency:
		return UrgencyEmergency
	case UrgencySoon:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// Record is one call outcome. IsSpam is fixed at creation; enrichment only
// fills Transcript, Duration and Summary.
type Record struct {
	OperatorID      string    `json:"tradie_id"`
	Timestamp       time.Time `json:"timestamp"`
	CallID          string    `json:"call_id"`
	CallerName      string    `json:"caller_name"`
	CallerPhone     string    `json:"caller_phone"`
	Suburb          string    `json:"suburb,omitempty"`
	JobDescription  string    `json:"job_description"`
	Urgency         Urgency   `json:"urgency"`
	PreferredTiming string    `json:"preferred_timing,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	IsSpam          bool      `json:"is_spam"`
	Transcript      string    `json:"transcript,omitempty"`
	Duration        *float64  `json:"duration,omitempty"`
	Summary         string    `json:"summary,omitempty"`
}

// Enrichment is the data attached when the call-ended event arrives.
type Enrichment struct {
	Transcript string
	Duration   *float64
	Summary    string
}

// LastCaller is the most recent genuine caller for an operator.
type LastCaller struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Summary is the dashboard view of one operator's calls.
type Summary struct {
	OperatorID  string   `json:"tradie_id"`
	TotalCalls  int      `json:"total_calls"`
	RealLeads   int      `json:"real_leads"`
	SpamBlocked int      `json:"spam_blocked"`
	Calls       []Record `json:"calls"`
}

// SpamStats is the dashboard view of an operator's pending spam counter.
type SpamStats struct {
	OperatorID       string `json:"tradie_id"`
	SpamBlockedToday int    `json:"spam_blocked_today"`
}
