package handler

import (
	"fmt"
	"io"

	"github.com/fitstack/fitstack/internal/domain"
	"github.com/fitstack/fitstack/internal/middleware"
	"github.com/fitstack/fitstack/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

// ProgressHandler adds photo upload on top of the generic progress CRUD.
type ProgressHandler struct {
	repo  domain.ListRepository[domain.ProgressRecord]
	media *repository.S3MediaRepository
}

func NewProgressHandler(repo domain.ListRepository[domain.ProgressRecord], media *repository.S3MediaRepository) *ProgressHandler {
	return &ProgressHandler{repo: repo, media: media}
}

// UploadPhoto POST /v1/progress/:id/photos
// Multipart field "photo"; the stored object key is appended to the record.
func (h *ProgressHandler) UploadPhoto(c *fiber.Ctx) error {
	if h.media == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "media storage unavailable"})
	}

	record, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch progress record")
	}
	if record.UserID != middleware.UserID(c) {
		return respondError(c, domain.ErrForbidden, "")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing photo file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unreadable photo file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unreadable photo file"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("progress/%s/%s", record.ID, ulid.Make().String())
	if _, err := h.media.Upload(c.Context(), data, key, contentType); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to store photo"})
	}

	record.PhotoKeys = append(record.PhotoKeys, key)
	updated, err := h.repo.Update(c.Context(), record.ID, record)
	if err != nil {
		return respondError(c, err, "failed to update progress record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"record":    updated,
			"photo_key": key,
			"photo_url": h.media.PublicURL(key),
		},
	})
}
