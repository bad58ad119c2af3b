package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw := c.Cookies(authCookieName)
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := handler.parseToken(raw); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}
