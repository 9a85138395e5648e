package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
)

func TestDispatchEventFromRow(t *testing.T) {
	sentAt := time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC)
	finishedAt := sentAt.Add(2 * time.Second)
	code := "INSUFFICIENT_PLAYERS"
	msg := "not enough players"
	finishedTrace := "trace-2"

	event, err := dispatchEventFromRow(jobDispatchTableModel{
		DispatchID:      "scheduled_generation-2026-10-20-abc",
		JobName:         jobscheduler.JobScheduledGeneration,
		MatchDate:       "2026-10-20",
		Payload:         `{"teams":0,"published":false}`,
		Status:          string(jobscheduler.StatusFailed),
		SentAt:          &sentAt,
		FinishedAt:      &finishedAt,
		ErrorCode:       &code,
		LastError:       &msg,
		FinishedTraceID: &finishedTrace,
	})
	if err != nil {
		t.Fatalf("decode row: %v", err)
	}
	if event.Status != jobscheduler.StatusFailed || event.ErrorCode != code || event.ErrorMessage != msg {
		t.Fatalf("unexpected event: %+v", event)
	}
	if !event.OccurredAt.Equal(finishedAt) || event.TraceID != finishedTrace {
		t.Fatalf("expected finished timestamp and trace, got %+v", event)
	}
	if event.Payload["published"] != false {
		t.Fatalf("unexpected payload: %v", event.Payload)
	}
}

func TestDispatchEventFromRow_BadPayload(t *testing.T) {
	if _, err := dispatchEventFromRow(jobDispatchTableModel{DispatchID: "d1", Payload: "{"}); err == nil {
		t.Fatalf("expected payload decode error")
	}
}

func TestMarshalPayload(t *testing.T) {
	raw, err := marshalPayload(nil)
	if err != nil || raw != "{}" {
		t.Fatalf("expected empty object, got %q err=%v", raw, err)
	}
	raw, err = marshalPayload(map[string]any{"teams": 2})
	if err != nil || raw != `{"teams":2}` {
		t.Fatalf("unexpected payload json %q err=%v", raw, err)
	}
}
