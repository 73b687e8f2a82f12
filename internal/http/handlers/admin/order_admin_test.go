package admin

import (
	"testing"
	"time"
)

func TestParseDateQuery(t *testing.T) {
	got, ok := parseDateQuery("", false)
	if !ok || got != nil {
		t.Fatalf("empty value should be skipped, got %v ok=%v", got, ok)
	}

	got, ok = parseDateQuery("2026-03-01T08:30:00Z", true)
	if !ok || got == nil || !got.Equal(time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 should be kept as is, got %v ok=%v", got, ok)
	}

	start, ok := parseDateQuery("2026-03-01", false)
	if !ok || start == nil || start.Hour() != 0 || start.Day() != 1 {
		t.Fatalf("date start should be midnight, got %v ok=%v", start, ok)
	}
	end, ok := parseDateQuery("2026-03-01", true)
	if !ok || end == nil || end.Day() != 1 || end.Hour() != 23 || end.Minute() != 59 {
		t.Fatalf("date end should be last moment of day, got %v ok=%v", end, ok)
	}

	if _, ok := parseDateQuery("03/01/2026", false); ok {
		t.Fatalf("unsupported format should fail")
	}
}
