package api

import (
	"math/rand"
	"time"

	"github.com/wrenbird/cycla/internal/db"
	"github.com/wrenbird/cycla/internal/services"
)

type Handler struct {
	store        *services.StoreService
	settings     *db.SettingsRepository
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	rng          *rand.Rand
}

const authCookieName = "cycla_session"

const authTokenTTL = 30 * 24 * time.Hour

type passcodeInput struct {
	Passcode string `json:"passcode" form:"passcode"`
}

type profileInput struct {
	Name            string `json:"name" form:"name"`
	LastPeriodStart string `json:"last_period_start" form:"last_period_start"`
}

type activeProfileInput struct {
	Index int `json:"index" form:"index"`
}

type periodEventInput struct {
	Date string `json:"date" form:"date"`
}

type dayPayload struct {
	Mood     string   `json:"mood"`
	Flow     string   `json:"flow"`
	Symptoms []string `json:"symptoms"`
}

// CalendarDay is one calendar-grid cell: the booleans the front end needs
// to paint period and fertile days.
type CalendarDay struct {
	Date      string `json:"date"`
	IsPeriod  bool   `json:"is_period"`
	IsFertile bool   `json:"is_fertile"`
	HasData   bool   `json:"has_data"`
}
