package submissions

import (
	"errors"

	subsvc "vibemarket-backend/internal/application/submission"
	"vibemarket-backend/internal/middleware"
	"vibemarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *subsvc.Service
}

// POST /api/v1/vibes (identity required): 201 with the pending vibe, next step and payment link.
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var req subsvc.Request
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	res, err := h.Service.Submit(c.UserContext(), middleware.GetIdentity(c), req)
	if err != nil {
		var verr *subsvc.ValidationError
		switch {
		case errors.As(err, &verr):
			return response.Error(c, "Validation failed", fiber.StatusBadRequest, fiber.Map{"fields": verr.Fields})
		case errors.Is(err, subsvc.ErrUnauthorized):
			return response.Unauthorized(c, "Unauthorized")
		default:
			log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("submit failed")
			return response.Internal(c)
		}
	}
	return response.SuccessCreated(c, "Vibe submitted for review", res, nil)
}
