package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/models"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(raw string) (models.Day, error) {
	return models.ParseDay(raw)
}
