package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wrenbird/cycla/internal/api"
	"github.com/wrenbird/cycla/internal/db"
	"github.com/wrenbird/cycla/internal/services"
)

type config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DBPath       string `env:"DB_PATH"`
	Timezone     string `env:"TZ" envDefault:"UTC"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config parse failed: %v", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "cycla.db")
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	settings := db.NewSettingsRepository(database)
	appSettings, err := settings.Ensure()
	if err != nil {
		log.Fatalf("settings init failed: %v", err)
	}

	storeRepo := db.NewStoreRepository(database)
	document, found, err := storeRepo.Load()
	if err != nil {
		log.Fatalf("store load failed: %v", err)
	}
	if !found {
		log.Print("no store snapshot found, starting empty")
	}

	store := services.NewStoreService(document, storeRepo)
	handler := api.NewHandler(store, settings, []byte(appSettings.SigningSecret), location, cfg.CookieSecure)

	app := fiber.New(fiber.Config{
		AppName:               "Cycla",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Cycla listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
