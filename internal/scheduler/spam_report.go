// Package scheduler runs the daily spam digest.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tradie_receptionist/internal/operators"
	"tradie_receptionist/internal/sms"
	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"
)

const dateLayout = "2006-01-02"

// Roster lists the operators to report on.
type Roster interface {
	All() []operators.Operator
}

// SpamCounter hands over and clears an operator's pending spam count.
type SpamCounter interface {
	TakeSpamCount(operatorID string) int
}

// DigestSender delivers the spam digest.
type DigestSender interface {
	SendSpamDigest(ctx context.Context, op operators.Operator, count int) sms.Result
}

// DailySpamReport texts each operator their blocked-call count once a day at
// a fixed local time and resets the count.
type DailySpamReport struct {
	roster  Roster
	counter SpamCounter
	sender  DigestSender
	log     *logger.Logger
	metrics *metrics.Metrics

	loc    *time.Location
	hour   int
	minute int
	tick   time.Duration

	mu        sync.Mutex
	lastFired string
}

// NewDailySpamReport creates the report job from cfg.
func NewDailySpamReport(cfg config.SchedulerConfig, roster Roster, counter SpamCounter, sender DigestSender, log *logger.Logger, met *metrics.Metrics) (*DailySpamReport, error) {
	loc, err := time.LoadLocation(cfg.GetReportTimezone())
	if err != nil {
		return nil, fmt.Errorf("load report timezone: %w", err)
	}

	tick := cfg.GetReportTick()
	if tick <= 0 {
		tick = time.Minute
	}

	return &DailySpamReport{
		roster:  roster,
		counter: counter,
		sender:  sender,
		log:     log,
		metrics: met,
		loc:     loc,
		hour:    cfg.GetReportHour(),
		minute:  cfg.GetReportMinute(),
		tick:    tick,
	}, nil
}

// Run checks the clock every tick until ctx is cancelled.
func (r *DailySpamReport) Run(ctx context.Context) error {
	r.log.Info("spam report scheduled",
		"timezone", r.loc.String(), "at", fmt.Sprintf("%02d:%02d", r.hour, r.minute), "tick", r.tick.String())

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("spam report stopped")
			return nil
		case now := <-ticker.C:
			r.Tick(ctx, now)
		}
	}
}

// Tick sends the digests if now is at or past today's trigger time and they
// have not gone out yet today. It reports whether it fired.
func (r *DailySpamReport) Tick(ctx context.Context, now time.Time) bool {
	local := now.In(r.loc)
	trigger := time.Date(local.Year(), local.Month(), local.Day(), r.hour, r.minute, 0, 0, r.loc)
	if local.Before(trigger) {
		return false
	}

	today := local.Format(dateLayout)
	r.mu.Lock()
	if r.lastFired == today {
		r.mu.Unlock()
		return false
	}
	r.lastFired = today
	r.mu.Unlock()

	r.flush(ctx)
	r.metrics.ReportFlush()
	return true
}

func (r *DailySpamReport) flush(ctx context.Context) {
	sent := 0
	for _, op := range r.roster.All() {
		count := r.counter.TakeSpamCount(op.ID)
		if count == 0 {
			continue
		}
		res := r.sender.SendSpamDigest(ctx, op, count)
		if !res.Success {
			r.log.Warn("spam digest not delivered", "operator_id", op.ID, "count", count, "error", res.Error)
			continue
		}
		sent++
	}
	r.log.Info("spam report flushed", "digests_sent", sent)
}
