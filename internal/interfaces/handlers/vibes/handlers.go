package vibes

import (
	"errors"
	"strings"

	"vibemarket-backend/internal/application/ranking"
	vibesvc "vibemarket-backend/internal/application/vibes"
	votesvc "vibemarket-backend/internal/application/votes"
	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/middleware"
	"vibemarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *vibesvc.Service
	Votes   *votesvc.Service
}

// GET /api/v1/vibes?tool=&country=&tag=&category=&use_case=
func (h *Handlers) Feed(c *fiber.Ctx) error {
	f := ranking.Filter{
		Tool:     strings.TrimSpace(c.Query("tool")),
		Country:  strings.ToUpper(strings.TrimSpace(c.Query("country"))),
		Tag:      strings.TrimSpace(c.Query("tag")),
		Category: strings.TrimSpace(c.Query("category")),
		UseCase:  strings.TrimSpace(c.Query("use_case")),
	}
	vibes, err := h.Service.Feed(c.UserContext(), f)
	if err != nil {
		return emptyList(c, err, "Vibes fetched successfully")
	}
	return response.List(c, "Vibes fetched successfully", vibes)
}

// GET /api/v1/vibes/featured
func (h *Handlers) Featured(c *fiber.Ctx) error {
	vibes, err := h.Service.Featured(c.UserContext())
	if err != nil {
		return emptyList(c, err, "Featured vibes fetched successfully")
	}
	return response.List(c, "Featured vibes fetched successfully", vibes)
}

// GET /api/v1/vibes/trending?limit=3
func (h *Handlers) Trending(c *fiber.Ctx) error {
	vibes, err := h.Service.Trending(c.UserContext(), c.QueryInt("limit", ranking.DefaultTrendingLimit))
	if err != nil {
		return emptyList(c, err, "Trending vibes fetched successfully")
	}
	return response.List(c, "Trending vibes fetched successfully", vibes)
}

// GET /api/v1/vibes/tags
func (h *Handlers) Tags(c *fiber.Ctx) error {
	tags, err := h.Service.Tags(c.UserContext())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("tags read failed")
		return response.List(c, "Tags fetched successfully", []string{})
	}
	return response.List(c, "Tags fetched successfully", tags)
}

// GET /api/v1/vibes/mine (identity required)
func (h *Handlers) Mine(c *fiber.Ctx) error {
	vibes, err := h.Service.Mine(c.UserContext(), middleware.GetIdentity(c))
	if errors.Is(err, vibesvc.ErrUnauthorized) {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err != nil {
		return emptyList(c, err, "Your vibes fetched successfully")
	}
	return response.List(c, "Your vibes fetched successfully", vibes)
}

// GET /api/v1/vibes/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Vibe not found")
	}
	vibe, err := h.Service.Get(c.UserContext(), middleware.GetIdentity(c), id)
	if errors.Is(err, vibesvc.ErrNotFound) {
		return response.NotFound(c, "Vibe not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return response.Success(c, "Vibe fetched successfully", vibe, nil)
}

// POST /api/v1/vibes/:id/vote
func (h *Handlers) Vote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Vibe not found")
	}
	if err := h.Votes.Increment(c.UserContext(), id); err != nil {
		if errors.Is(err, votesvc.ErrNotFound) {
			return response.NotFound(c, "Vibe not found")
		}
		return internalError(c, err)
	}
	data := fiber.Map{"id": id}
	if n, err := h.Votes.Count(c.UserContext(), id); err == nil {
		data["votes"] = n
	}
	return response.Success(c, "Vote recorded", data, nil)
}

func emptyList(c *fiber.Ctx, err error, message string) error {
	log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Str("path", c.Path()).Msg("vibe read failed")
	return response.List(c, message, []domain.Vibe{})
}

func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
	return response.Internal(c)
}
