package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vibemarket-backend/internal/application/access"
	"vibemarket-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Publisher broadcasts lifecycle events to other services.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

type Service struct {
	DB          *gorm.DB
	Publisher   Publisher
	PaymentLink string
}

// Result is what the caller sees after submitting: the stored record, the
// step the form moves to, and for paid submissions the payment link.
type Result struct {
	Vibe       *domain.Vibe `json:"vibe"`
	NextStep   Step         `json:"next_step"`
	PaymentURL string       `json:"payment_url,omitempty"`
}

// Submit validates the request and stores it as a pending vibe owned by caller.
func (s *Service) Submit(ctx context.Context, caller *access.Identity, req Request) (*Result, error) {
	if caller == nil || caller.ID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vibe := &domain.Vibe{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		LiveURL:      strings.TrimSpace(req.LiveURL),
		Tool:         domain.Tool(req.Tool),
		Tags:         datatypes.JSONSlice[string](cleanList(req.Tags)),
		KeyFeatures:  datatypes.JSONSlice[string](cleanList(req.KeyFeatures)),
		Country:      optional(strings.ToUpper(req.Country)),
		Category:     optional(req.Category),
		UseCase:      optional(req.UseCase),
		LogoURL:      optional(req.LogoURL),
		Plan:         req.plan(),
		Status:       domain.StatusPending,
		Votes:        0,
		UserID:       caller.ID,
		CreatorName:  caller.CreatorName(),
		CreatorEmail: caller.Email,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vibe).Error; err != nil {
			return err
		}
		eventData, err := json.Marshal(map[string]interface{}{
			"plan": vibe.Plan,
			"tool": vibe.Tool,
		})
		if err != nil {
			return err
		}
		return tx.Create(&domain.VibeEvent{
			VibeID:    vibe.ID,
			EventType: domain.EventSubmitted,
			ActorID:   caller.ID,
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to submit vibe: %w", err)
	}
	log.Info().Str("vibe_id", vibe.ID.String()).Str("user_id", caller.ID).Str("plan", string(vibe.Plan)).Msg("vibe submitted")

	if s.Publisher != nil {
		msg := map[string]interface{}{
			"vibe_id":    vibe.ID,
			"event_type": domain.EventSubmitted,
			"title":      vibe.Title,
			"plan":       vibe.Plan,
			"user_id":    vibe.UserID,
		}
		if err := s.Publisher.Publish(ctx, domain.EventSubject(domain.EventSubmitted), msg); err != nil {
			log.Warn().Err(err).Str("vibe_id", vibe.ID.String()).Msg("event publish failed")
		}
	}

	w := &Workflow{Current: StepPlan}
	res := &Result{Vibe: vibe}
	next := StepReceived
	if vibe.Plan == domain.PlanPaid {
		next = StepPayment
		res.PaymentURL = s.PaymentLink
	}
	if err := w.Advance(next); err != nil {
		return nil, err
	}
	res.NextStep = w.Current
	return res, nil
}
