package sms

import (
	"fmt"
	"strings"

	"tradie_receptionist/internal/calls"
	"tradie_receptionist/internal/operators"
)

const (
	receivedLayout = "3:04 PM, Mon 2 Jan"
	separator      = "━━━━━━━━━━━━━━━"
)

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func leadHeader(u calls.Urgency) string {
	switch u {
	case calls.UrgencySoon:
		return "⚡ URGENT-ISH"
	case calls.UrgencyEmergency:
		return "🚨 EMERGENCY"
	default:
		return "📋 New Job Lead"
	}
}

// FormatJobLead renders the standard lead notification. The receipt time is
// shown in the operator's business timezone.
func FormatJobLead(op operators.Operator, rec calls.Record) string {
	lines := []string{
		leadHeader(rec.Urgency),
		separator,
		"👤 " + orDefault(rec.CallerName, "Unknown"),
		"📞 " + orDefault(rec.CallerPhone, "No number"),
		"📍 " + orDefault(rec.Suburb, "Not provided"),
		"",
		"🔧 " + orDefault(rec.JobDescription, "No details"),
		"",
		"⏰ Timing: " + orDefault(rec.PreferredTiming, "Flexible"),
	}
	if strings.TrimSpace(rec.Notes) != "" {
		lines = append(lines, "📝 "+rec.Notes)
	}
	lines = append(lines,
		"",
		"Received: "+rec.Timestamp.In(op.Location()).Format(receivedLayout),
		"",
		"Reply CALL to get their number sent back.",
	)
	return strings.Join(lines, "\n")
}

// FormatEmergency renders the emergency alert.
func FormatEmergency(rec calls.Record) string {
	lines := []string{
		"🚨🚨 EMERGENCY CALL 🚨🚨",
		"",
		orDefault(rec.CallerName, "Unknown") + " — " + orDefault(rec.CallerPhone, "No number"),
		"📍 " + orDefault(rec.Suburb, "Unknown location"),
		"",
		orDefault(rec.JobDescription, "No details"),
		"",
		"CALL THEM ASAP",
	}
	return strings.Join(lines, "\n")
}

// FormatSpamDigest renders the daily blocked-call summary.
func FormatSpamDigest(count int) string {
	return fmt.Sprintf("🛡️ Daily Spam Report\n%d spam/sales calls blocked today. Your AI receptionist handled them all. 👍", count)
}

// FormatLastCaller renders the reply to the CALL command.
func FormatLastCaller(c calls.LastCaller) string {
	return fmt.Sprintf("📞 Last caller: %s\n%s", c.Name, c.Phone)
}
