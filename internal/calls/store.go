package calls

import (
	"sync"
)

// DefaultRecentLimit caps the genuine calls returned by Summarize when no limit is given.
const DefaultRecentLimit = 50

// Store owns the call log, spam counters and last-caller map. All methods are
// safe for concurrent use by the webhook handlers and the daily report.
type Store struct {
	mu          sync.RWMutex
	records     []Record
	spamCounts  map[string]int
	lastCallers map[string]LastCaller
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		spamCounts:  make(map[string]int),
		lastCallers: make(map[string]LastCaller),
	}
}

// Append adds rec to the log.
func (s *Store) Append(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Len returns the number of logged calls.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Enrich attaches call-ended data to the first record with callID.
// It reports false, changing nothing, when no record matches.
func (s *Store) Enrich(callID string, e Enrichment) bool {
	if callID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].CallID != callID {
			continue
		}
		s.records[i].Transcript = e.Transcript
		s.records[i].Duration = e.Duration
		s.records[i].Summary = e.Summary
		return true
	}
	return false
}

// IncrementSpam bumps the operator's spam counter and returns the new value.
func (s *Store) IncrementSpam(operatorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spamCounts[operatorID]++
	return s.spamCounts[operatorID]
}

// SpamCount returns the operator's spam count since the last report.
func (s *Store) SpamCount(operatorID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spamCounts[operatorID]
}

// TakeSpamCount returns the operator's spam count and resets it to zero in one step.
func (s *Store) TakeSpamCount(operatorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.spamCounts[operatorID]
	delete(s.spamCounts, operatorID)
	return n
}

// SetLastCaller records the most recent genuine caller for the operator.
func (s *Store) SetLastCaller(operatorID string, caller LastCaller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCallers[operatorID] = caller
}

// LastCaller returns the most recent genuine caller for the operator.
func (s *Store) LastCaller(operatorID string) (LastCaller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.lastCallers[operatorID]
	return c, ok
}

// Summarize counts the operator's calls and returns up to limit genuine calls,
// newest first. limit <= 0 means DefaultRecentLimit.
func (s *Store) Summarize(operatorID string, limit int) Summary {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{OperatorID: operatorID, Calls: []Record{}}
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.OperatorID != operatorID {
			continue
		}
		sum.TotalCalls++
		if rec.IsSpam {
			sum.SpamBlocked++
			continue
		}
		sum.RealLeads++
		if len(sum.Calls) < limit {
			sum.Calls = append(sum.Calls, rec)
		}
	}
	return sum
}

// SpamStats returns the pending spam counter view for the operator.
func (s *Store) SpamStats(operatorID string) SpamStats {
	return SpamStats{OperatorID: operatorID, SpamBlockedToday: s.SpamCount(operatorID)}
}
