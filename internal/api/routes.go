package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/setup", handler.Setup)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	profiles := api.Group("/profiles", handler.AuthRequired)
	profiles.Get("", handler.ListProfiles)
	profiles.Post("", handler.CreateProfile)
	profiles.Post("/active", handler.SwitchActiveProfile)
	profiles.Delete("/:index", handler.DeleteProfile)

	period := api.Group("/period", handler.AuthRequired)
	period.Post("/start", handler.StartPeriod)
	period.Post("/end", handler.EndPeriod)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.SaveDay)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/overview", handler.CycleOverview)
	cycle.Get("/history", handler.CycleHistory)

	api.Get("/export", handler.AuthRequired, handler.ExportStore)
	api.Post("/import", handler.AuthRequired, handler.ImportStore)
}
