package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibemarket-backend/internal/application/access"
	"vibemarket-backend/internal/application/notifications"
	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invalidator drops cached feed reads after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Publisher broadcasts lifecycle events to other services.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

type Service struct {
	DB          *gorm.DB
	Gate        *access.Gate
	Cache       Invalidator
	Publisher   Publisher
	Notifier    notifications.Sender
	SiteBaseURL string
}

func (s *Service) Approve(ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error) {
	return s.transition(ctx, caller, id, ActionApprove)
}

func (s *Service) Reject(ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error) {
	return s.transition(ctx, caller, id, ActionReject)
}

// Pending returns the review queue, newest first.
func (s *Service) Pending(ctx context.Context, caller *access.Identity) ([]domain.Vibe, error) {
	if !s.Gate.IsAdmin(caller) {
		return nil, ErrUnauthorized
	}
	vibes := []domain.Vibe{}
	if err := s.DB.WithContext(ctx).
		Where("status = ?", domain.StatusPending).
		Order("created_at DESC").Order("seq DESC").
		Find(&vibes).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch pending vibes: %w", err)
	}
	return vibes, nil
}

func (s *Service) transition(ctx context.Context, caller *access.Identity, id uuid.UUID, action Action) (*domain.Vibe, error) {
	if !s.Gate.IsAdmin(caller) {
		return nil, ErrUnauthorized
	}
	to, ok := Next(domain.StatusPending, action)
	if !ok {
		return nil, ErrNotPending
	}

	var vibe domain.Vibe
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Vibe{}).
			Where("id = ? AND status = ?", id, domain.StatusPending).
			Updates(map[string]interface{}{"status": to, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Vibe{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrNotPending
		}
		if err := tx.Where("id = ?", id).First(&vibe).Error; err != nil {
			return err
		}
		eventData, err := json.Marshal(map[string]interface{}{
			"from":        domain.StatusPending,
			"to":          to,
			"admin_email": caller.Email,
		})
		if err != nil {
			return err
		}
		return tx.Create(&domain.VibeEvent{
			VibeID:    vibe.ID,
			EventType: action.eventType(),
			ActorID:   caller.ID,
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("Failed to %s vibe: %w", action, err)
	}

	log.Info().Str("vibe_id", vibe.ID.String()).Str("status", string(vibe.Status)).Str("admin", caller.Email).Msg("vibe moderated")
	s.afterTransition(ctx, &vibe, action)
	return &vibe, nil
}

// afterTransition runs the best-effort side effects of a committed decision.
// The cache is invalidated before returning so the next feed read sees the change.
func (s *Service) afterTransition(ctx context.Context, vibe *domain.Vibe, action Action) {
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("feed cache invalidate failed")
		}
	}
	eventType := action.eventType()
	if s.Publisher != nil {
		msg := map[string]interface{}{
			"vibe_id":    vibe.ID,
			"event_type": eventType,
			"status":     vibe.Status,
			"title":      vibe.Title,
			"user_id":    vibe.UserID,
		}
		if err := s.Publisher.Publish(ctx, domain.EventSubject(eventType), msg); err != nil {
			log.Warn().Err(err).Str("vibe_id", vibe.ID.String()).Msg("event publish failed")
		}
	}
	if s.Notifier != nil && validation.IsValidEmail(vibe.CreatorEmail) {
		var err error
		if action == ActionApprove {
			err = s.Notifier.SendVibeApproved(ctx, vibe.CreatorEmail, vibe.CreatorName, vibe.Title, s.vibeURL(vibe.ID))
		} else {
			err = s.Notifier.SendVibeRejected(ctx, vibe.CreatorEmail, vibe.CreatorName, vibe.Title)
		}
		if err != nil {
			log.Warn().Err(err).Str("vibe_id", vibe.ID.String()).Msg("moderation email failed")
		}
	}
}

func (s *Service) vibeURL(id uuid.UUID) string {
	return strings.TrimRight(s.SiteBaseURL, "/") + "/vibe/" + id.String()
}
