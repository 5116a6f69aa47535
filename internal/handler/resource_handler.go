package handler

import (
	"github.com/fitstack/fitstack/internal/domain"
	"github.com/fitstack/fitstack/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// ResourceConfig parameterizes the generic CRUD handler for one resource.
// SetOwner/OwnerOf are nil for global resources (exercise/food libraries);
// for user-owned resources they stamp and enforce ownership.
type ResourceConfig[T any] struct {
	Name     string // singular, used in fallback error messages
	Plural   string // json key wrapping the list payload
	Repo     domain.ListRepository[T]
	SetOwner func(e *T, userID string)
	OwnerOf  func(e *T) string
}

// Resource serves the five conventional routes for one resource type:
//
//	GET    /         -> {"data": {"<plural>": [...], "total": n}}
//	GET    /:id      -> {"data": {...}}
//	POST   /         -> 201 {"data": {...}}
//	PUT    /:id      -> {"data": {...}}
//	DELETE /:id      -> {}
type Resource[T any] struct {
	cfg ResourceConfig[T]
}

func NewResource[T any](cfg ResourceConfig[T]) *Resource[T] {
	return &Resource[T]{cfg: cfg}
}

// Register mounts the CRUD routes. writeMW guards the mutating routes only,
// so global libraries can stay public-read, admin-write.
func (h *Resource[T]) Register(r fiber.Router, writeMW ...fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)

	post := append(append([]fiber.Handler{}, writeMW...), h.Create)
	put := append(append([]fiber.Handler{}, writeMW...), h.Update)
	del := append(append([]fiber.Handler{}, writeMW...), h.Delete)
	r.Post("/", post...)
	r.Put("/:id", put...)
	r.Delete("/:id", del...)
}

func (h *Resource[T]) List(c *fiber.Ctx) error {
	q := domain.ListQuery{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
	if h.cfg.OwnerOf != nil {
		q.Owner = middleware.UserID(c)
	}

	res, err := h.cfg.Repo.List(c.Context(), q)
	if err != nil {
		return respondError(c, err, "failed to fetch "+h.cfg.Plural)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			h.cfg.Plural: res.Items,
			"total":      res.Total,
		},
	})
}

func (h *Resource[T]) Get(c *fiber.Ctx) error {
	e, err := h.loadOwned(c)
	if err != nil {
		return respondError(c, err, "failed to fetch "+h.cfg.Name)
	}
	return c.JSON(fiber.Map{"data": e})
}

func (h *Resource[T]) Create(c *fiber.Ctx) error {
	var req T
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid body"})
	}
	if h.cfg.SetOwner != nil {
		h.cfg.SetOwner(&req, middleware.UserID(c))
	}
	if err := h.cfg.Repo.Create(c.Context(), &req); err != nil {
		return respondError(c, err, "failed to create "+h.cfg.Name)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": req})
}

func (h *Resource[T]) Update(c *fiber.Ctx) error {
	// Ownership check happens against the stored record, not the payload.
	if _, err := h.loadOwned(c); err != nil {
		return respondError(c, err, "failed to fetch "+h.cfg.Name)
	}

	var req T
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid body"})
	}
	if h.cfg.SetOwner != nil {
		h.cfg.SetOwner(&req, middleware.UserID(c))
	}

	updated, err := h.cfg.Repo.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err, "failed to update "+h.cfg.Name)
	}
	return c.JSON(fiber.Map{"data": updated})
}

func (h *Resource[T]) Delete(c *fiber.Ctx) error {
	if _, err := h.loadOwned(c); err != nil {
		return respondError(c, err, "failed to fetch "+h.cfg.Name)
	}
	if err := h.cfg.Repo.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "failed to delete "+h.cfg.Name)
	}
	return c.JSON(fiber.Map{})
}

// loadOwned fetches the record and enforces ownership for owner-scoped
// resources.
func (h *Resource[T]) loadOwned(c *fiber.Ctx) (*T, error) {
	e, err := h.cfg.Repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if h.cfg.OwnerOf != nil {
		if owner := h.cfg.OwnerOf(e); owner != "" && owner != middleware.UserID(c) {
			return nil, domain.ErrForbidden
		}
	}
	return e, nil
}

// respondError maps domain sentinels to HTTP statuses with the wire error
// shape {"message": "..."}.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := fiber.StatusInternalServerError
	message := err.Error()

	switch err {
	case domain.ErrNotFound:
		status = fiber.StatusNotFound
	case domain.ErrInvalidID:
		status = fiber.StatusBadRequest
	case domain.ErrDuplicate, domain.ErrDuplicateExercise, domain.ErrDuplicateEmail:
		status = fiber.StatusConflict
	case domain.ErrForbidden:
		status = fiber.StatusForbidden
	default:
		message = fallback
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}
