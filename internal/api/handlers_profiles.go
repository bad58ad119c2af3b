package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/models"
)

type profileView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	IntervalCount int    `json:"interval_count"`
	Active        bool   `json:"active"`
}

func (handler *Handler) ListProfiles(c *fiber.Ctx) error {
	profiles := handler.store.Profiles()
	activeIndex, hasActive := handler.store.ActiveIndex()

	views := make([]profileView, 0, len(profiles))
	for index, profile := range profiles {
		views = append(views, profileView{
			ID:            profile.ID,
			Name:          profile.Name,
			Color:         profile.Color,
			IntervalCount: len(profile.Intervals),
			Active:        hasActive && index == activeIndex,
		})
	}
	return c.JSON(fiber.Map{"profiles": views})
}

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Name) == "" {
		return apiError(c, fiber.StatusBadRequest, "name is required")
	}

	var lastPeriodStart *models.Day
	if strings.TrimSpace(input.LastPeriodStart) != "" {
		parsed, err := parseDayParam(input.LastPeriodStart)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid last period start")
		}
		lastPeriodStart = &parsed
	}

	created, err := handler.store.AddProfile(input.Name, lastPeriodStart)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}
	if !created {
		return apiError(c, fiber.StatusBadRequest, "name is required")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) SwitchActiveProfile(c *fiber.Ctx) error {
	input := activeProfileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	switched, err := handler.store.SwitchActive(input.Index)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to switch profile")
	}
	if !switched {
		return apiError(c, fiber.StatusBadRequest, "profile index out of range")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteProfile(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid profile index")
	}

	deleted, err := handler.store.DeleteProfile(index)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete profile")
	}
	if !deleted {
		return apiError(c, fiber.StatusBadRequest, "profile index out of range")
	}
	return c.JSON(fiber.Map{"ok": true})
}
