package services

import (
	"fmt"
	"time"

	"github.com/wrenbird/cycla/internal/models"
)

const (
	PredictionUpcoming = "upcoming"
	PredictionToday    = "today"
	PredictionLate     = "late"
)

// lutealOffsetDays separates the predicted next start from the estimated
// ovulation day.
const lutealOffsetDays = 14

// fertileWindowRadius extends the fertile window this many days on each
// side of the ovulation estimate.
const fertileWindowRadius = 2

// PeriodPrediction is the forward projection from the single most recent
// interval start. DaysUntil is negative once the prediction is overdue.
type PeriodPrediction struct {
	NextStart models.Day `json:"next_start"`
	DaysUntil int        `json:"days_until"`
	Status    string     `json:"status"`
	Sentence  string     `json:"sentence"`
}

// FertileWindowEstimate is the 5-day span centered 14 days before the
// predicted next start, day-aligned and inclusive on both ends.
type FertileWindowEstimate struct {
	Ovulation   models.Day `json:"ovulation"`
	WindowStart models.Day `json:"window_start"`
	WindowEnd   models.Day `json:"window_end"`
}

// PredictNextPeriod projects the next start from the latest interval and
// the rolling average length. Returns ok=false when the profile has no
// intervals; callers render that as "no data".
func PredictNextPeriod(profile models.Profile, today time.Time) (PeriodPrediction, bool) {
	latest, ok := LatestInterval(profile)
	if !ok {
		return PeriodPrediction{}, false
	}

	nextStart := latest.Start.AddDays(AverageCycleLength(profile))
	daysUntil := models.NewDay(today).DaysUntil(nextStart)

	prediction := PeriodPrediction{NextStart: nextStart, DaysUntil: daysUntil}
	switch {
	case daysUntil > 0:
		prediction.Status = PredictionUpcoming
		prediction.Sentence = fmt.Sprintf("predicted in %d %s", daysUntil, pluralDays(daysUntil))
	case daysUntil == 0:
		prediction.Status = PredictionToday
		prediction.Sentence = "expected today"
	default:
		prediction.Status = PredictionLate
		prediction.Sentence = fmt.Sprintf("late by %d %s", -daysUntil, pluralDays(-daysUntil))
	}
	return prediction, true
}

func FertileWindow(predictedNextStart models.Day) FertileWindowEstimate {
	ovulation := predictedNextStart.AddDays(-lutealOffsetDays)
	return FertileWindowEstimate{
		Ovulation:   ovulation,
		WindowStart: ovulation.AddDays(-fertileWindowRadius),
		WindowEnd:   ovulation.AddDays(fertileWindowRadius),
	}
}

// DateInPeriod reports whether the date falls inside any recorded
// interval, treating an open interval as running through today. Bounds are
// inclusive so same-day starts and ends both count.
func DateInPeriod(profile models.Profile, date models.Day, today time.Time) bool {
	todayDay := models.NewDay(today)
	for _, interval := range profile.Intervals {
		end := todayDay
		if interval.End != nil {
			end = *interval.End
		}
		if betweenDaysInclusive(date, interval.Start, end) {
			return true
		}
	}
	return false
}

func DateInFertileWindow(date models.Day, window FertileWindowEstimate) bool {
	return betweenDaysInclusive(date, window.WindowStart, window.WindowEnd)
}

func pluralDays(count int) string {
	if count == 1 {
		return "day"
	}
	return "days"
}
