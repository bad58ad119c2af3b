package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/services"
)

func (handler *Handler) StartPeriod(c *fiber.Ctx) error {
	input := periodEventInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	date, err := parseDayParam(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.store.LogPeriodStart(date); err != nil {
		if errors.Is(err, services.ErrNoActiveProfile) {
			return apiError(c, fiber.StatusBadRequest, "no active profile")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to log period start")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) EndPeriod(c *fiber.Ctx) error {
	input := periodEventInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	date, err := parseDayParam(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.store.LogPeriodEnd(date); err != nil {
		if errors.Is(err, services.ErrNoActiveProfile) {
			return apiError(c, fiber.StatusBadRequest, "no active profile")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to log period end")
	}
	return c.JSON(fiber.Map{"ok": true})
}
