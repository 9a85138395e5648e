package jobscheduler

import "time"

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
	StatusSkipped   DispatchStatus = "skipped"
)

// Job names recorded on dispatch events.
const (
	JobScheduledGeneration = "scheduled_generation"
	JobManualGeneration    = "manual_generation"
	JobCatchUpGeneration   = "catchup_generation"
	JobTeamsPublished      = "teams_published_notification"
)

// DispatchEvent is one state change of a background run, keyed by DispatchID.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	MatchDate    string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorCode    string
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
