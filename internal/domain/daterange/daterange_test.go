package daterange_test

import (
	"errors"
	"testing"
	"time"

	"activityservice/internal/domain"
	"activityservice/internal/domain/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestResolve_ExplicitBoundsPassThrough(t *testing.T) {
	r, err := daterange.Resolve("2024-01-01", "2024-01-31", day(2025, time.March, 20))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-01-01" || r.End != "2024-01-31" {
		t.Fatalf("explicit bounds changed: %+v", r)
	}
}

func TestResolve_ExplicitBoundsNotReformatted(t *testing.T) {
	// Whatever the caller sent goes through untouched, even odd formats.
	r, err := daterange.Resolve("01/02/2024", "28/02/2024", day(2025, time.July, 1))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "01/02/2024" || r.End != "28/02/2024" {
		t.Fatalf("explicit bounds reformatted: %+v", r)
	}
}

func TestResolve_FallTrimester(t *testing.T) {
	for _, today := range []time.Time{
		day(2024, time.June, 15),
		day(2024, time.August, 1),
		day(2024, time.November, 14),
	} {
		r, err := daterange.Resolve("", "", today)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", today, err)
		}
		if r.Start != "2024-06-01" || r.End != "2024-11-14" {
			t.Fatalf("Resolve(%v) = %+v", today, r)
		}
	}
}

func TestResolve_WinterTrimesterBeforeNewYear(t *testing.T) {
	r, err := daterange.Resolve("", "", day(2024, time.December, 1))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-09-01" || r.End != "2025-03-14" {
		t.Fatalf("Resolve(Dec 1) = %+v", r)
	}
}

func TestResolve_WinterTrimesterAfterNewYear(t *testing.T) {
	r, err := daterange.Resolve("", "", day(2025, time.February, 1))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-09-01" || r.End != "2025-03-14" {
		t.Fatalf("Resolve(Feb 1) = %+v", r)
	}
}

func TestResolve_WinterTrimesterBoundaries(t *testing.T) {
	r, err := daterange.Resolve("", "", day(2024, time.November, 15))
	if err != nil {
		t.Fatalf("Resolve(Nov 15): %v", err)
	}
	if r.Start != "2024-09-01" || r.End != "2025-03-14" {
		t.Fatalf("Resolve(Nov 15) = %+v", r)
	}

	r, err = daterange.Resolve("", "", day(2025, time.March, 14))
	if err != nil {
		t.Fatalf("Resolve(Mar 14): %v", err)
	}
	if r.Start != "2024-09-01" || r.End != "2025-03-14" {
		t.Fatalf("Resolve(Mar 14) = %+v", r)
	}
}

func TestResolve_SpringTrimester(t *testing.T) {
	r, err := daterange.Resolve("", "", day(2024, time.May, 10))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-04-01" || r.End != "2024-06-14" {
		t.Fatalf("Resolve(May 10) = %+v", r)
	}
}

func TestResolve_GapBetweenTrimesters(t *testing.T) {
	for _, today := range []time.Time{
		day(2024, time.March, 15),
		day(2024, time.March, 20),
		day(2024, time.April, 14),
	} {
		_, err := daterange.Resolve("", "", today)
		var de *domain.DomainError
		if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeDateOutOfRange {
			t.Fatalf("Resolve(%v): expected DATE_OUT_OF_RANGE, got %v", today, err)
		}
	}
}

func TestResolve_OnlyOneExplicitBoundUsesDefaults(t *testing.T) {
	r, err := daterange.Resolve("2024-01-01", "", day(2024, time.July, 1))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-06-01" || r.End != "2024-11-14" {
		t.Fatalf("partial explicit bounds should fall back to defaults, got %+v", r)
	}
}
