package journal

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-01-15" {
		t.Fatalf("got %q, want 2025-01-15", d.String())
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	for _, s := range []string{
		"",
		"2025-1-15",
		"2025/01/15",
		"2025-02-30",
		"2025-13-01",
		"2025-01-15T00:00:00Z",
		"not-a-date",
	} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q): expected error", s)
		}
	}
}

func TestDateOfUsesInstantLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 00:30 in Tokyo is still 15:30 of the previous day in UTC, so the
	// calendar date depends on the instant's location.
	instant := time.Date(2025, time.March, 10, 0, 30, 0, 0, tokyo)
	if got := DateOf(instant).String(); got != "2025-03-10" {
		t.Fatalf("got %q, want 2025-03-10", got)
	}
	if got := DateOf(instant.UTC()).String(); got != "2025-03-09" {
		t.Fatalf("got %q, want 2025-03-09", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 1)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2025-06-01"` {
		t.Fatalf("got %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2025-06-01" {
		t.Fatalf("got %q", d.String())
	}

	if err := d.Scan("2025-07-02 00:00:00+00:00"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2025-07-02" {
		t.Fatalf("got %q", d.String())
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Fatal("expected zero date")
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2025, time.January, 1)
	b := NewDate(2025, time.January, 2)
	if !a.Before(b) || b.Before(a) {
		t.Fatal("ordering broken")
	}
}
