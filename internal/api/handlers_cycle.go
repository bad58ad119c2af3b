package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/services"
)

// CycleOverview bundles everything the dashboard renders for the active
// profile. HasData false means the profile has no intervals yet and the
// caller should show the onboarding "no data" state instead.
func (handler *Handler) CycleOverview(c *fiber.Ctx) error {
	profile, ok := handler.store.ActiveProfile()
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "no active profile")
	}

	today := handler.today()
	assessment, hasData := services.ClassifyPhase(profile, today)
	if !hasData {
		return c.JSON(fiber.Map{
			"has_data":    false,
			"affirmation": services.PickAffirmation(handler.rng),
		})
	}

	prediction, _ := services.PredictNextPeriod(profile, today)
	window := services.FertileWindow(prediction.NextStart)

	return c.JSON(fiber.Map{
		"has_data":             true,
		"cycle_day":            assessment.CycleDay,
		"phase":                assessment.Phase,
		"color":                assessment.Color,
		"share_message":        assessment.Message,
		"period_active":        services.IsPeriodActive(profile),
		"average_cycle_length": services.AverageCycleLength(profile),
		"prediction":           prediction,
		"fertile_window":       window,
		"affirmation":          services.PickAffirmation(handler.rng),
	})
}

func (handler *Handler) CycleHistory(c *fiber.Ctx) error {
	profile, ok := handler.store.ActiveProfile()
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "no active profile")
	}

	entries := services.CycleHistory(profile)
	if entries == nil {
		entries = []services.CycleHistoryEntry{}
	}
	return c.JSON(fiber.Map{
		"average_cycle_length": services.AverageCycleLength(profile),
		"entries":              entries,
	})
}
