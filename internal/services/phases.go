package services

import (
	"time"

	"github.com/wrenbird/cycla/internal/models"
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
	PhaseLate       = "late"
)

// lateGraceDays is how far past the average cycle length a period may run
// before the cycle is classified as late.
const lateGraceDays = 5

var phaseColors = map[string]string{
	PhaseMenstrual:  "#E53E5E",
	PhaseFollicular: "#F2A5C0",
	PhaseOvulation:  "#7C4DBE",
	PhaseLuteal:     "#4A90D9",
	PhaseLate:       "#E8A33D",
}

var phaseMessages = map[string]string{
	PhaseMenstrual:  "On my period today. Taking it easy. 🩸",
	PhaseFollicular: "Follicular phase: energy is coming back. ✨",
	PhaseOvulation:  "Ovulation window: feeling at my peak. 🌸",
	PhaseLuteal:     "Luteal phase: winding down this cycle. 🌙",
	PhaseLate:       "Period is running late this cycle. ⏳",
}

// PhaseAssessment is the classification of today within the estimated
// cycle, ready for badge and share rendering.
type PhaseAssessment struct {
	Phase    string `json:"phase"`
	Color    string `json:"color"`
	Message  string `json:"message"`
	CycleDay int    `json:"cycle_day"`
}

func PhaseColor(phase string) string {
	return phaseColors[phase]
}

// PhaseStatusMessage maps a phase to its share-ready status line.
func PhaseStatusMessage(phase string) string {
	return phaseMessages[phase]
}

// ClassifyPhase places today within the cycle anchored at the most recent
// interval start. Returns ok=false when the profile has no intervals at
// all; callers render that as "no data" instead of a phase.
//
// An open interval always reads as menstrual. A day count more than five
// days past the average length overrides everything else as late: a
// significantly overdue period outranks any phase estimate.
func ClassifyPhase(profile models.Profile, today time.Time) (PhaseAssessment, bool) {
	latest, ok := LatestInterval(profile)
	if !ok {
		return PhaseAssessment{}, false
	}

	day := models.NewDay(today)
	dayInCycle := daysApart(latest.Start, day)
	averageLength := AverageCycleLength(profile)

	phase := PhaseLuteal
	switch {
	case latest.Open():
		phase = PhaseMenstrual
	case dayInCycle < 12:
		phase = PhaseFollicular
	case dayInCycle >= 12 && dayInCycle <= 16:
		phase = PhaseOvulation
	}
	if dayInCycle > averageLength+lateGraceDays {
		phase = PhaseLate
	}

	return PhaseAssessment{
		Phase:    phase,
		Color:    PhaseColor(phase),
		Message:  PhaseStatusMessage(phase),
		CycleDay: dayInCycle + 1,
	}, true
}
