package postgres

import "time"

type jobDispatchInsertModel struct {
	DispatchID      string     `db:"dispatch_id"`
	JobName         string     `db:"job_name"`
	MatchDate       string     `db:"match_date"`
	Payload         string     `db:"payload"`
	Status          string     `db:"status"`
	SentAt          *time.Time `db:"sent_at"`
	FinishedAt      *time.Time `db:"finished_at"`
	ErrorCode       *string    `db:"error_code"`
	LastError       *string    `db:"last_error"`
	SentTraceID     *string    `db:"sent_trace_id"`
	SentSpanID      *string    `db:"sent_span_id"`
	FinishedTraceID *string    `db:"finished_trace_id"`
	FinishedSpanID  *string    `db:"finished_span_id"`
}

type jobDispatchTableModel struct {
	DispatchID      string     `db:"dispatch_id"`
	JobName         string     `db:"job_name"`
	MatchDate       string     `db:"match_date"`
	Payload         string     `db:"payload"`
	Status          string     `db:"status"`
	SentAt          *time.Time `db:"sent_at"`
	FinishedAt      *time.Time `db:"finished_at"`
	ErrorCode       *string    `db:"error_code"`
	LastError       *string    `db:"last_error"`
	SentTraceID     *string    `db:"sent_trace_id"`
	SentSpanID      *string    `db:"sent_span_id"`
	FinishedTraceID *string    `db:"finished_trace_id"`
	FinishedSpanID  *string    `db:"finished_span_id"`
	UpdatedAt       time.Time  `db:"updated_at"`
}
