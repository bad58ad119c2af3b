package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/services"
)

// ExportStore returns the persisted document verbatim: no transformation,
// no redaction.
func (handler *Handler) ExportStore(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cycla-export.json"`)
	return c.JSON(handler.store.Snapshot())
}

// ImportStore validates the uploaded document and atomically replaces the
// whole store. A malformed document leaves the prior state untouched.
func (handler *Handler) ImportStore(c *fiber.Ctx) error {
	document, err := services.DecodeImportDocument(c.Body())
	if err != nil {
		if errors.Is(err, services.ErrImportUnsupportedVersion) {
			return apiError(c, fiber.StatusBadRequest, "unsupported document version")
		}
		return apiError(c, fiber.StatusBadRequest, "invalid document")
	}

	if err := handler.store.ReplaceAll(document); err != nil {
		if errors.Is(err, services.ErrImportInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid document")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to import")
	}
	return c.JSON(fiber.Map{"ok": true})
}
