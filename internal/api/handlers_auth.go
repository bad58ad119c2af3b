package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasscodeLength = 6

type authClaims struct {
	jwt.RegisteredClaims
}

// SetupStatus tells the front end whether the one-time passcode setup has
// happened yet.
func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	settings, err := handler.settings.Load()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(fiber.Map{"configured": settings.PasscodeHash != ""})
}

// Setup stores the access passcode. Only allowed while no passcode exists;
// recovery on a self-hosted box is wiping the settings row and running
// setup again.
func (handler *Handler) Setup(c *fiber.Ctx) error {
	input := passcodeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	passcode := strings.TrimSpace(input.Passcode)
	if len(passcode) < minPasscodeLength {
		return apiError(c, fiber.StatusBadRequest, "passcode too short")
	}

	settings, err := handler.settings.Load()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	if settings.PasscodeHash != "" {
		return apiError(c, fiber.StatusConflict, "already configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure passcode")
	}
	if err := handler.settings.SavePasscodeHash(string(hash)); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save passcode")
	}

	if err := handler.setAuthCookie(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := passcodeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	settings, err := handler.settings.Load()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	if settings.PasscodeHash == "" {
		return apiError(c, fiber.StatusForbidden, "setup required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(settings.PasscodeHash), []byte(input.Passcode)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid passcode")
	}

	if err := handler.setAuthCookie(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx) error {
	token, err := handler.buildToken(authTokenTTL)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(authTokenTTL),
	})
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) buildToken(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "owner",
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(raw string) error {
	token, err := jwt.ParseWithClaims(raw, &authClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return handler.secretKey, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}
