package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wrenbird/cycla/internal/db"
	"github.com/wrenbird/cycla/internal/models"
	"github.com/wrenbird/cycla/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "cycla-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	settings := db.NewSettingsRepository(database)
	appSettings, err := settings.Ensure()
	if err != nil {
		t.Fatalf("ensure settings: %v", err)
	}

	storeRepo := db.NewStoreRepository(database)
	document, _, err := storeRepo.Load()
	if err != nil {
		t.Fatalf("load store: %v", err)
	}

	store := services.NewStoreService(document, storeRepo)
	handler := NewHandler(store, settings, []byte(appSettings.SigningSecret), time.UTC, false)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, body any, session *http.Cookie) *http.Request {
	t.Helper()

	var request *http.Request
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		request = httptest.NewRequest(method, path, bytes.NewReader(encoded))
		request.Header.Set("Content-Type", "application/json")
	} else {
		request = httptest.NewRequest(method, path, nil)
	}
	if session != nil {
		request.AddCookie(session)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d", request.Method, request.URL.Path, wantStatus, response.StatusCode)
	}

	payload := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func setupSession(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/setup", map[string]string{"passcode": "orchid-garden"}, nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("setup request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected setup status 201, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName {
			return cookie
		}
	}
	t.Fatal("expected a session cookie from setup")
	return nil
}

func TestSetupStatusBeforeAndAfterSetup(t *testing.T) {
	app := newTestApp(t)

	status := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/auth/setup-status", nil, nil), http.StatusOK)
	if status["configured"] != false {
		t.Fatalf("expected configured false, got %v", status["configured"])
	}

	setupSession(t, app)

	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/auth/setup-status", nil, nil), http.StatusOK)
	if status["configured"] != true {
		t.Fatalf("expected configured true, got %v", status["configured"])
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)
	setupSession(t, app)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/profiles", nil, nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", response.StatusCode)
	}
}

func TestLoginRejectsWrongPasscode(t *testing.T) {
	app := newTestApp(t)
	setupSession(t, app)

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"passcode": "wrong"}, nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestCycleTrackingWorkflow(t *testing.T) {
	app := newTestApp(t)
	session := setupSession(t, app)

	today := models.NewDay(time.Now().UTC())
	periodStart := today.AddDays(-1)

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/profiles", map[string]string{
		"name":              "Ana",
		"last_period_start": periodStart.String(),
	}, session), http.StatusCreated)

	profiles := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/profiles", nil, session), http.StatusOK)
	listed, ok := profiles["profiles"].([]any)
	if !ok || len(listed) != 1 {
		t.Fatalf("expected one profile, got %v", profiles["profiles"])
	}

	overview := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/cycle/overview", nil, session), http.StatusOK)
	if overview["has_data"] != true {
		t.Fatalf("expected has_data true, got %v", overview["has_data"])
	}
	if overview["phase"] != services.PhaseMenstrual {
		t.Fatalf("expected menstrual phase for an open interval, got %v", overview["phase"])
	}
	if overview["period_active"] != true {
		t.Fatalf("expected period_active true, got %v", overview["period_active"])
	}
	if overview["affirmation"] == "" {
		t.Fatal("expected an affirmation")
	}

	doJSON(t, app, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/days/%s", today), dayPayload{
		Mood:     models.MoodTired,
		Flow:     models.FlowMedium,
		Symptoms: []string{"Cramps"},
	}, session), http.StatusOK)

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/period/end", map[string]string{
		"date": today.String(),
	}, session), http.StatusOK)

	dayView := doJSON(t, app, jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/days/%s", today), nil, session), http.StatusOK)
	if dayView["is_period"] != true {
		t.Fatalf("expected today to be a period day, got %v", dayView["is_period"])
	}

	history := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/cycle/history", nil, session), http.StatusOK)
	entries, ok := history["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one history entry, got %v", history["entries"])
	}

	export := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/export", nil, session), http.StatusOK)
	exportedProfiles, ok := export["profiles"].([]any)
	if !ok || len(exportedProfiles) != 1 {
		t.Fatalf("expected exported profile list, got %v", export["profiles"])
	}
}

func TestImportRejectsDocumentWithoutProfiles(t *testing.T) {
	app := newTestApp(t)
	session := setupSession(t, app)

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/profiles", map[string]string{"name": "Ana"}, session), http.StatusCreated)

	before := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/export", nil, session), http.StatusOK)

	request := jsonRequest(t, http.MethodPost, "/api/import", map[string]any{"active_index": 0}, session)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed import, got %d", response.StatusCode)
	}

	after := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/export", nil, session), http.StatusOK)
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	if string(beforeJSON) != string(afterJSON) {
		t.Fatal("expected store unchanged after rejected import")
	}
}

func TestCalendarGridBooleans(t *testing.T) {
	app := newTestApp(t)
	session := setupSession(t, app)

	today := models.NewDay(time.Now().UTC())
	periodStart := today.AddDays(-2)

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/profiles", map[string]string{
		"name":              "Ana",
		"last_period_start": periodStart.String(),
	}, session), http.StatusCreated)

	from := periodStart.AddDays(-1)
	to := today.AddDays(1)
	path := fmt.Sprintf("/api/days?from=%s&to=%s", from, to)
	grid := doJSON(t, app, jsonRequest(t, http.MethodGet, path, nil, session), http.StatusOK)

	days, ok := grid["days"].([]any)
	if !ok || len(days) != 5 {
		t.Fatalf("expected 5 calendar days, got %v", grid["days"])
	}

	first, ok := days[0].(map[string]any)
	if !ok || first["is_period"] != false {
		t.Fatalf("expected day before the period to be outside it, got %v", days[0])
	}
	second, ok := days[1].(map[string]any)
	if !ok || second["is_period"] != true {
		t.Fatalf("expected the period start day to be inside it, got %v", days[1])
	}
}
