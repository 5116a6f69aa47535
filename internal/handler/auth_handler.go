package handler

import (
	"github.com/fitstack/fitstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler serves the public auth endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
}

func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// Login POST /v1/auth/login
// The identity provider token arrives in the Authorization header; the user
// is created on first login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	providerToken := bearerToken(c)
	if providerToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing identity token",
		})
	}

	result, err := h.authService.LoginOrRegister(c.Context(), providerToken, c.Get("User-Agent"), c.IP())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	status := fiber.StatusOK
	if result.IsNewUser {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{
			"user":          result.User,
			"access_token":  result.Tokens.AccessToken,
			"refresh_token": result.Tokens.RefreshToken,
			"expires_in":    result.Tokens.ExpiresIn,
			"is_new_user":   result.IsNewUser,
		},
	})
}

// Refresh POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid body"})
	}

	pair, err := h.tokenService.RefreshAccessToken(c.Context(), req.RefreshToken, c.Get("User-Agent"), c.IP())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid refresh token"})
	}

	return c.JSON(fiber.Map{"data": pair})
}

// Logout POST /v1/auth/logout
// Revokes the presented refresh token; the access token simply expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid body"})
	}

	if err := h.tokenService.RevokeRefreshToken(c.Context(), req.RefreshToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to log out"})
	}
	return c.JSON(fiber.Map{})
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return authHeader
}
