package logos

import (
	"errors"

	logosvc "vibemarket-backend/internal/application/logos"
	"vibemarket-backend/internal/middleware"
	"vibemarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *logosvc.Service
}

type signRequest struct {
	FileName string `json:"file_name"`
}

// POST /api/v1/vibes/logo-upload (identity required)
func (h *Handlers) Sign(c *fiber.Ctx) error {
	var req signRequest
	if err := c.BodyParser(&req); err != nil || req.FileName == "" {
		return response.Error(c, "file_name is required", fiber.StatusBadRequest, nil)
	}

	up, err := h.Service.Sign(c.UserContext(), middleware.GetIdentity(c), req.FileName)
	switch {
	case err == nil:
		return response.Success(c, "Upload URL generated", up, nil)
	case errors.Is(err, logosvc.ErrInvalidFileName):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, logosvc.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	default:
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("logo upload: failed to sign URL")
		return response.Error(c, "Failed to generate upload URL", fiber.StatusInternalServerError, nil)
	}
}
