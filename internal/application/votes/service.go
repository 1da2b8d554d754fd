package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibemarket-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("Vibe not found")

// Invalidator drops cached feed reads after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	DB    *gorm.DB
	Cache Invalidator
}

// Increment adds one vote to an approved vibe. The increment is a single
// UPDATE evaluated by the store, so concurrent calls never lose a vote.
func (s *Service) Increment(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&domain.Vibe{}).
		Where("id = ? AND status = ?", id, domain.StatusApproved).
		UpdateColumns(map[string]interface{}{
			"votes":      gorm.Expr("votes + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("Failed to record vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("feed cache invalidate failed")
		}
	}
	return nil
}

// Count returns the current vote total of an approved vibe.
func (s *Service) Count(ctx context.Context, id uuid.UUID) (int64, error) {
	var v domain.Vibe
	err := s.DB.WithContext(ctx).Select("votes").
		Where("id = ? AND status = ?", id, domain.StatusApproved).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return v.Votes, nil
}
