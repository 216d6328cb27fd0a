package timezone_test

import (
	"testing"
	"time"

	"mehfil/shared/timezone"
)

func TestNowAndLocation(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Fatal("GetLocation() returned nil")
	}

	if now.Location().String() != loc.String() {
		t.Errorf("expected Now() to be in %s, got %s", loc, now.Location())
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location().String() != timezone.GetLocation().String() {
		t.Errorf("expected app location, got %s", appTime.Location())
	}

	if !appTime.Equal(utcTime) {
		t.Error("expected the converted time to represent the same instant")
	}
}

func TestFormatAndParse(t *testing.T) {
	eventDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	if formatted := timezone.Format(eventDate, "2006-01-02"); formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2026-03-14")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if parsed.Year() != 2026 || parsed.Month() != time.March || parsed.Day() != 14 {
		t.Errorf("Parse() returned unexpected date %v", parsed)
	}

	if _, err := timezone.Parse("2006-01-02", "14-03-2026"); err == nil {
		t.Error("expected Parse() to fail for a mismatched layout")
	}
}
