package availability

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
)

func TestRecord_Validate(t *testing.T) {
	ok := Record{PlayerID: "p1", MatchDate: matchday.NewDate(2026, time.October, 20), Available: true}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
	if err := (Record{MatchDate: ok.MatchDate}).Validate(); err == nil {
		t.Fatalf("expected error for missing player id")
	}
	if err := (Record{PlayerID: "p1"}).Validate(); err == nil {
		t.Fatalf("expected error for missing match date")
	}
}
