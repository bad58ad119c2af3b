package services

import (
	"testing"

	"github.com/wrenbird/cycla/internal/models"
)

func TestSortedIntervalsDescendingRegardlessOfInputOrder(t *testing.T) {
	t.Parallel()

	profile := makeProfile(
		closedInterval("2025-02-26", "2025-03-02"),
		closedInterval("2025-01-01", "2025-01-05"),
		closedInterval("2025-01-29", "2025-02-02"),
	)

	sorted := SortedIntervals(profile)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(sorted))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.After(sorted[i-1].Start.Time) {
			t.Fatalf("intervals not descending at position %d: %s after %s",
				i, sorted[i].Start, sorted[i-1].Start)
		}
	}
	if sorted[0].Start.String() != "2025-02-26" {
		t.Fatalf("expected most recent start 2025-02-26, got %s", sorted[0].Start)
	}
}

func TestLatestIntervalEmptyProfile(t *testing.T) {
	t.Parallel()

	if _, ok := LatestInterval(makeProfile()); ok {
		t.Fatal("expected no latest interval for empty profile")
	}
}

func TestAverageCycleLengthDefaults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		intervals []models.CycleInterval
	}{
		{name: "no intervals"},
		{name: "single interval", intervals: []models.CycleInterval{openInterval("2025-01-01")}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := AverageCycleLength(makeProfile(testCase.intervals...))
			if got != models.DefaultCycleLength {
				t.Fatalf("expected default %d, got %d", models.DefaultCycleLength, got)
			}
		})
	}
}

func TestAverageCycleLengthRoundedMean(t *testing.T) {
	t.Parallel()

	profile := makeProfile(
		closedInterval("2025-01-01", "2025-01-05"),
		closedInterval("2025-01-30", "2025-02-03"),
		closedInterval("2025-02-26", "2025-03-02"),
	)

	// Gaps are 29 and 27 days, mean 28.
	if got := AverageCycleLength(profile); got != 28 {
		t.Fatalf("expected average 28, got %d", got)
	}
}

func TestAverageCycleLengthOrderIndependent(t *testing.T) {
	t.Parallel()

	forward := makeProfile(
		closedInterval("2025-01-01", "2025-01-05"),
		closedInterval("2025-01-31", "2025-02-04"),
		closedInterval("2025-02-26", "2025-03-02"),
	)
	reversed := makeProfile(
		closedInterval("2025-02-26", "2025-03-02"),
		closedInterval("2025-01-31", "2025-02-04"),
		closedInterval("2025-01-01", "2025-01-05"),
	)

	if AverageCycleLength(forward) != AverageCycleLength(reversed) {
		t.Fatalf("expected order-independent average, got %d and %d",
			AverageCycleLength(forward), AverageCycleLength(reversed))
	}
}

func TestAverageCycleLengthUsesFourMostRecentIntervals(t *testing.T) {
	t.Parallel()

	// The oldest gap (31 days) must be ignored: only the newest four
	// intervals feed the estimate, and their gaps are all 28.
	profile := makeProfile(
		closedInterval("2025-01-01", "2025-01-05"),
		closedInterval("2025-02-01", "2025-02-05"),
		closedInterval("2025-03-01", "2025-03-05"),
		closedInterval("2025-03-29", "2025-04-02"),
		closedInterval("2025-04-26", "2025-04-30"),
	)

	if got := AverageCycleLength(profile); got != 28 {
		t.Fatalf("expected average 28 from four most recent intervals, got %d", got)
	}
}

func TestIsPeriodActive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		intervals []models.CycleInterval
		want      bool
	}{
		{name: "no intervals", want: false},
		{name: "open interval", intervals: []models.CycleInterval{openInterval("2025-03-01")}, want: true},
		{name: "closed interval", intervals: []models.CycleInterval{closedInterval("2025-03-01", "2025-03-05")}, want: false},
		{
			name: "older open interval is not latest",
			intervals: []models.CycleInterval{
				openInterval("2025-02-01"),
				closedInterval("2025-03-01", "2025-03-05"),
			},
			want: false,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := IsPeriodActive(makeProfile(testCase.intervals...)); got != testCase.want {
				t.Fatalf("expected %v, got %v", testCase.want, got)
			}
		})
	}
}

func TestIntervalLengthDegenerateEndBeforeStart(t *testing.T) {
	t.Parallel()

	if got := intervalLength(closedInterval("2025-03-10", "2025-03-01")); got != 0 {
		t.Fatalf("expected degenerate interval length 0, got %d", got)
	}
}

func mustParseDay(t *testing.T, raw string) models.Day {
	t.Helper()
	day, err := models.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func makeProfile(intervals ...models.CycleInterval) models.Profile {
	return models.Profile{
		ID:        "test-profile",
		Name:      "Test",
		Color:     "#E91E63",
		Intervals: intervals,
		Logs:      map[string]models.DailyLog{},
	}
}

func openInterval(start string) models.CycleInterval {
	day, err := models.ParseDay(start)
	if err != nil {
		panic(err)
	}
	return models.CycleInterval{Start: day}
}

func closedInterval(start string, end string) models.CycleInterval {
	interval := openInterval(start)
	endDay, err := models.ParseDay(end)
	if err != nil {
		panic(err)
	}
	interval.End = &endDay
	return interval
}
