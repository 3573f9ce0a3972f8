package core

import "time"

// Mutation outcomes reported to MetricsRecorder
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeReplayed = "replayed"
)

// MetricsRecorder receives domain level measurements
type MetricsRecorder interface {
	// RecordMutation counts one balance mutation and observes how long it took
	RecordMutation(txType string, outcome string, duration time.Duration)
	// RecordLedgerCreated counts lazily or eagerly created ledgers
	RecordLedgerCreated()
	// SetQueueWorkers reports the number of live per-user queue workers
	SetQueueWorkers(n int)
	// RecordEventPublished counts published domain events by outcome
	RecordEventPublished(event string, outcome string)
}
