package services

import (
	"sort"
	"strings"

	"github.com/wrenbird/cycla/internal/models"
)

// daysApart is the absolute whole-day distance between two calendar days.
func daysApart(a models.Day, b models.Day) int {
	days := a.DaysUntil(b)
	if days < 0 {
		return -days
	}
	return days
}

func betweenDaysInclusive(day models.Day, start models.Day, end models.Day) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start.Time) && !day.After(end.Time)
}

// NormalizeSymptoms trims, drops empties, collapses duplicates and sorts,
// so saved entries and exports stay deterministic.
func NormalizeSymptoms(symptoms []string) []string {
	seen := make(map[string]struct{}, len(symptoms))
	normalized := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		cleaned := strings.TrimSpace(symptom)
		if cleaned == "" {
			continue
		}
		if _, exists := seen[cleaned]; exists {
			continue
		}
		seen[cleaned] = struct{}{}
		normalized = append(normalized, cleaned)
	}
	sort.Strings(normalized)
	return normalized
}

func NormalizeMood(mood string) string {
	cleaned := strings.ToLower(strings.TrimSpace(mood))
	for _, known := range models.Moods() {
		if cleaned == known {
			return cleaned
		}
	}
	return models.MoodUnset
}

func NormalizeFlow(flow string) string {
	cleaned := strings.ToLower(strings.TrimSpace(flow))
	for _, known := range models.Flows() {
		if cleaned == known {
			return cleaned
		}
	}
	return models.FlowNone
}
