package habit

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalZoneless(t *testing.T) {
	var in Insight
	body := `{"habit_id":1,"history":["2025-03-04T10:11:12.123456","2025-03-05T08:00:00Z"],"as_of":null}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(in.History) != 2 {
		t.Fatalf("got %d history entries want 2", len(in.History))
	}
	want := time.Date(2025, 3, 4, 10, 11, 12, 123456000, time.UTC)
	if !in.History[0].Equal(want) {
		t.Errorf("got %v want %v", in.History[0].Time, want)
	}
	if !in.AsOf.IsZero() {
		t.Errorf("null as_of should decode to zero time, got %v", in.AsOf.Time)
	}
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestInsight_CompletionsNil(t *testing.T) {
	var in *Insight
	if got := in.Completions(); got != nil {
		t.Fatalf("nil insight should have no completions, got %v", got)
	}
}
