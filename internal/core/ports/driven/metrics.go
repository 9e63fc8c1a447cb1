package driven

import "time"

// ReviewMetrics records store activity. Implementations must be safe to
// call from any goroutine.
type ReviewMetrics interface {
	// ObserveLoad records a completed load of n records.
	ObserveLoad(n int, d time.Duration)

	// ObserveDecision records a decision attempt; outcome is "saved",
	// "not_found" or "persist_failed".
	ObserveDecision(decision, outcome string, d time.Duration)

	// SetStatusCount publishes the current number of records in a status.
	SetStatusCount(status string, n int)
}
