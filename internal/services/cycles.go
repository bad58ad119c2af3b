package services

import (
	"sort"

	"github.com/wrenbird/cycla/internal/models"
)

// averagedIntervalCount caps how many recent intervals feed the rolling
// cycle-length estimate.
const averagedIntervalCount = 4

// SortedIntervals returns the profile's intervals ordered by start date
// descending (most recent first). The order is derived on every call
// instead of being maintained under mutation, so retroactive and
// out-of-order inserts self-correct. The sort is stable: duplicate start
// dates keep insertion order, which makes the later insert win once the
// list is read back.
func SortedIntervals(profile models.Profile) []models.CycleInterval {
	sorted := make([]models.CycleInterval, 0, len(profile.Intervals))
	sorted = append(sorted, profile.Intervals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.After(sorted[j].Start.Time)
	})
	return sorted
}

func LatestInterval(profile models.Profile) (models.CycleInterval, bool) {
	sorted := SortedIntervals(profile)
	if len(sorted) == 0 {
		return models.CycleInterval{}, false
	}
	return sorted[0], true
}

// AverageCycleLength estimates the cycle length from at most the four most
// recent intervals. With fewer than two intervals there is nothing to
// average and the default prior is returned. Gaps between consecutive
// starts are taken as absolute values, so the result does not depend on
// input order.
func AverageCycleLength(profile models.Profile) int {
	sorted := SortedIntervals(profile)
	if len(sorted) < 2 {
		return models.DefaultCycleLength
	}
	if len(sorted) > averagedIntervalCount {
		sorted = sorted[:averagedIntervalCount]
	}

	total := 0
	gaps := 0
	for i := 0; i+1 < len(sorted); i++ {
		total += daysApart(sorted[i].Start, sorted[i+1].Start)
		gaps++
	}
	return int(float64(total)/float64(gaps) + 0.5)
}

func IsPeriodActive(profile models.Profile) bool {
	latest, ok := LatestInterval(profile)
	return ok && latest.Open()
}

// intervalLength is the observed length of a closed interval in days. An
// end date before the start is degenerate data (import tampering) and
// clamps to zero rather than going negative.
func intervalLength(interval models.CycleInterval) int {
	if interval.End == nil {
		return 0
	}
	length := interval.Start.DaysUntil(*interval.End)
	if length < 0 {
		return 0
	}
	return length
}
