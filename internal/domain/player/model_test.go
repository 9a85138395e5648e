package player

import "testing"

func TestParsePosition(t *testing.T) {
	cases := map[string]Position{
		"goalkeeper": PositionGoalkeeper,
		" GK ":       PositionGoalkeeper,
		"def":        PositionDefender,
		"Midfielder": PositionMidfielder,
		"striker":    PositionForward,
	}
	for raw, want := range cases {
		got, err := ParsePosition(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %s want %s", raw, got, want)
		}
	}

	if _, err := ParsePosition("libero"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}

func TestPlayer_Validate(t *testing.T) {
	valid := Player{ID: "p-1", Name: "Ada", Position: PositionDefender}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid player: %v", err)
	}

	invalid := valid
	invalid.Position = "sweeper"
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected invalid position error")
	}
}
