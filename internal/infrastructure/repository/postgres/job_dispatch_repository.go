package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/matchday-teams/internal/platform/querybuilder"
)

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	dispatchID := strings.TrimSpace(event.DispatchID)
	if dispatchID == "" {
		return fmt.Errorf("dispatch id is required")
	}

	jobName := strings.TrimSpace(event.JobName)
	if jobName == "" {
		jobName = "unknown"
	}

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	model := jobDispatchInsertModel{
		DispatchID: dispatchID,
		JobName:    jobName,
		MatchDate:  strings.TrimSpace(event.MatchDate),
		Payload:    payloadJSON,
		Status:     string(event.Status),
	}

	switch event.Status {
	case jobscheduler.StatusSent:
		model.SentAt = &occurredAt
		model.SentTraceID = optionalString(event.TraceID)
		model.SentSpanID = optionalString(event.SpanID)
	case jobscheduler.StatusFailed:
		model.ErrorCode = optionalString(event.ErrorCode)
		model.LastError = optionalString(event.ErrorMessage)
		fallthrough
	case jobscheduler.StatusCompleted, jobscheduler.StatusSkipped:
		model.FinishedAt = &occurredAt
		model.FinishedTraceID = optionalString(event.TraceID)
		model.FinishedSpanID = optionalString(event.SpanID)
	}

	query, args, err := qb.InsertModel("job_dispatches", model, `ON CONFLICT (dispatch_id)
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    match_date = EXCLUDED.match_date,
    payload = CASE
        WHEN EXCLUDED.payload = '{}' THEN job_dispatches.payload
        ELSE EXCLUDED.payload
    END,
    status = CASE
        WHEN EXCLUDED.status = 'sent' AND job_dispatches.finished_at IS NOT NULL THEN job_dispatches.status
        ELSE EXCLUDED.status
    END,
    sent_at = COALESCE(job_dispatches.sent_at, EXCLUDED.sent_at),
    finished_at = COALESCE(EXCLUDED.finished_at, job_dispatches.finished_at),
    error_code = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.error_code
        WHEN EXCLUDED.status = 'sent' THEN job_dispatches.error_code
        ELSE NULL
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        WHEN EXCLUDED.status = 'sent' THEN job_dispatches.last_error
        ELSE NULL
    END,
    sent_trace_id = COALESCE(job_dispatches.sent_trace_id, EXCLUDED.sent_trace_id),
    sent_span_id = COALESCE(job_dispatches.sent_span_id, EXCLUDED.sent_span_id),
    finished_trace_id = COALESCE(EXCLUDED.finished_trace_id, job_dispatches.finished_trace_id),
    finished_span_id = COALESCE(EXCLUDED.finished_span_id, job_dispatches.finished_span_id),
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", dispatchID, event.Status, err)
	}

	return nil
}

func (r *JobDispatchRepository) ListByMatchDate(ctx context.Context, matchDate string) ([]jobscheduler.DispatchEvent, error) {
	query, args, err := qb.Select(
		"dispatch_id", "job_name", "match_date", "payload", "status",
		"sent_at", "finished_at", "error_code", "last_error",
		"sent_trace_id", "sent_span_id", "finished_trace_id", "finished_span_id", "updated_at",
	).
		From("job_dispatches").
		Where(qb.Eq("match_date", strings.TrimSpace(matchDate))).
		OrderBy("updated_at", "dispatch_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list job dispatches query: %w", err)
	}

	var rows []jobDispatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list job dispatches match_date=%s: %w", matchDate, err)
	}

	out := make([]jobscheduler.DispatchEvent, 0, len(rows))
	for _, row := range rows {
		event, err := dispatchEventFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, nil
}

func dispatchEventFromRow(row jobDispatchTableModel) (jobscheduler.DispatchEvent, error) {
	payload := map[string]any{}
	if row.Payload != "" {
		if err := jsoniter.UnmarshalFromString(row.Payload, &payload); err != nil {
			return jobscheduler.DispatchEvent{}, fmt.Errorf("decode job dispatch payload dispatch_id=%s: %w", row.DispatchID, err)
		}
	}

	event := jobscheduler.DispatchEvent{
		DispatchID:   row.DispatchID,
		JobName:      row.JobName,
		MatchDate:    row.MatchDate,
		Status:       jobscheduler.DispatchStatus(row.Status),
		Payload:      payload,
		ErrorCode:    derefString(row.ErrorCode),
		ErrorMessage: derefString(row.LastError),
		OccurredAt:   row.UpdatedAt,
		TraceID:      derefString(row.SentTraceID),
		SpanID:       derefString(row.SentSpanID),
	}
	if row.FinishedAt != nil {
		event.OccurredAt = *row.FinishedAt
		event.TraceID = derefString(row.FinishedTraceID)
		event.SpanID = derefString(row.FinishedSpanID)
	} else if row.SentAt != nil {
		event.OccurredAt = *row.SentAt
	}
	return event, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	return jsoniter.MarshalToString(payload)
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
