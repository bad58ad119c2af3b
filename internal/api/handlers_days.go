package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/models"
	"github.com/wrenbird/cycla/internal/services"
)

// maxCalendarRangeDays bounds the calendar query so a bad client cannot
// ask for decades of cells.
const maxCalendarRangeDays = 366

// GetDays returns the calendar grid for a date range: per-day period and
// fertile booleans plus whether the day carries a saved log.
func (handler *Handler) GetDays(c *fiber.Ctx) error {
	profile, ok := handler.store.ActiveProfile()
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "no active profile")
	}

	from, err := parseDayParam(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDayParam(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if to.Before(from.Time) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}
	if from.DaysUntil(to) > maxCalendarRangeDays {
		return apiError(c, fiber.StatusBadRequest, "range too large")
	}

	today := handler.today()
	window := services.FertileWindowEstimate{}
	if prediction, hasPrediction := services.PredictNextPeriod(profile, today); hasPrediction {
		window = services.FertileWindow(prediction.NextStart)
	}

	days := make([]CalendarDay, 0, from.DaysUntil(to)+1)
	for day := from; !day.After(to.Time); day = day.AddDays(1) {
		_, hasLog := profile.Logs[day.String()]
		days = append(days, CalendarDay{
			Date:      day.String(),
			IsPeriod:  services.DateInPeriod(profile, day, today),
			IsFertile: services.DateInFertileWindow(day, window),
			HasData:   hasLog,
		})
	}
	return c.JSON(fiber.Map{"days": days})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	profile, ok := handler.store.ActiveProfile()
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "no active profile")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found := profile.Logs[day.String()]
	if !found {
		entry = models.DailyLog{Mood: models.MoodUnset, Flow: models.FlowNone, Symptoms: []string{}}
	}
	return c.JSON(fiber.Map{
		"date":      day.String(),
		"log":       entry,
		"is_period": services.DateInPeriod(profile, day, handler.today()),
	})
}

// SaveDay upserts the daily log for a date, replacing any prior entry.
func (handler *Handler) SaveDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input := services.DailyLogInput{
		Mood:     payload.Mood,
		Flow:     payload.Flow,
		Symptoms: payload.Symptoms,
	}
	if err := handler.store.SaveDailyLog(day, input); err != nil {
		if errors.Is(err, services.ErrNoActiveProfile) {
			return apiError(c, fiber.StatusBadRequest, "no active profile")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save day")
	}
	return c.JSON(fiber.Map{"ok": true})
}
