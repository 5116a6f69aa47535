package handler

import (
	"github.com/fitstack/fitstack/internal/domain"
	"github.com/fitstack/fitstack/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	userRepo domain.UserRepository
}

func NewProfileHandler(userRepo domain.UserRepository) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo}
}

// Get GET /v1/me/profile
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "failed to fetch profile")
	}
	return c.JSON(fiber.Map{"data": user})
}

// Update PUT /v1/me/profile
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req domain.Profile
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid body"})
	}

	user, err := h.userRepo.UpdateProfile(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "failed to update profile")
	}
	return c.JSON(fiber.Map{"data": user})
}
