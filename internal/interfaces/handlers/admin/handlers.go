package admin

import (
	"context"
	"errors"

	"vibemarket-backend/internal/application/access"
	modsvc "vibemarket-backend/internal/application/moderation"
	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/middleware"
	"vibemarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *modsvc.Service
}

// GET /api/v1/admin/vibes/pending
func (h *Handlers) Pending(c *fiber.Ctx) error {
	vibes, err := h.Service.Pending(c.UserContext(), middleware.GetIdentity(c))
	if err != nil {
		return h.fail(c, err)
	}
	return response.List(c, "Pending vibes fetched successfully", vibes)
}

// PUT /api/v1/admin/vibes/:id/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.Service.Approve, "Vibe approved")
}

// PUT /api/v1/admin/vibes/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.Service.Reject, "Vibe rejected")
}

type decision func(ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error)

func (h *Handlers) decide(c *fiber.Ctx, do decision, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Vibe not found")
	}
	vibe, err := do(c.UserContext(), middleware.GetIdentity(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, message, vibe, nil)
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, modsvc.ErrUnauthorized):
		return response.Forbidden(c, "Unauthorized")
	case errors.Is(err, modsvc.ErrNotFound):
		return response.NotFound(c, "Vibe not found")
	case errors.Is(err, modsvc.ErrNotPending):
		return response.Conflict(c, "Vibe is not pending review")
	default:
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("moderation failed")
		return response.Internal(c)
	}
}
