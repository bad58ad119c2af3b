package services

import (
	"fmt"

	"github.com/wrenbird/cycla/internal/models"
)

// regularVarianceDays is the tolerance inside which a cycle still counts
// as regular.
const regularVarianceDays = 2

// VarianceLabelCurrent marks the most recent interval, whose true length
// is not known yet.
const VarianceLabelCurrent = "Current"

const VarianceLabelRegular = "Regular"

// CycleHistoryEntry is one analytics row: an interval's start, its
// observed cycle length (days until the next newer start), and how that
// length compares to the rolling average.
type CycleHistoryEntry struct {
	Start      models.Day `json:"start"`
	LengthDays int        `json:"length_days"`
	PeriodDays int        `json:"period_days"`
	Label      string     `json:"label"`
	Current    bool       `json:"current"`
}

// ClassifyVariance labels an observed cycle length against the average:
// within two days either way is regular, anything else reports the signed
// day delta.
func ClassifyVariance(lengthDays int, averageLength int) string {
	delta := lengthDays - averageLength
	if delta >= -regularVarianceDays && delta <= regularVarianceDays {
		return VarianceLabelRegular
	}
	return fmt.Sprintf("%+d days", delta)
}

// CycleHistory builds the variance list, most recent interval first. The
// head row is always the current one: its cycle length is still unknown,
// so it carries the current label instead of a variance.
func CycleHistory(profile models.Profile) []CycleHistoryEntry {
	sorted := SortedIntervals(profile)
	if len(sorted) == 0 {
		return nil
	}

	averageLength := AverageCycleLength(profile)
	entries := make([]CycleHistoryEntry, 0, len(sorted))
	for i, interval := range sorted {
		entry := CycleHistoryEntry{
			Start:      interval.Start,
			PeriodDays: intervalLength(interval),
		}
		if i == 0 {
			entry.Label = VarianceLabelCurrent
			entry.Current = true
		} else {
			length := daysApart(interval.Start, sorted[i-1].Start)
			entry.LengthDays = length
			entry.Label = ClassifyVariance(length, averageLength)
		}
		entries = append(entries, entry)
	}
	return entries
}
