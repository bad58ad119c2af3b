package api

import (
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/db"
	"github.com/wrenbird/cycla/internal/services"
)

func NewHandler(
	store *services.StoreService,
	settings *db.SettingsRepository,
	secretKey []byte,
	location *time.Location,
	cookieSecure bool,
) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		store:        store,
		settings:     settings,
		secretKey:    secretKey,
		location:     location,
		cookieSecure: cookieSecure,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) today() time.Time {
	return time.Now().In(handler.location)
}
