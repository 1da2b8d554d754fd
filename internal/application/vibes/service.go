package vibes

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vibemarket-backend/internal/application/access"
	"vibemarket-backend/internal/application/ranking"
	"vibemarket-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("Vibe not found")
	ErrUnauthorized = errors.New("Unauthorized")
)

// FeedCache holds ranked read results between writes.
type FeedCache interface {
	// Get reports the cache generation it read from; Set writes into that
	// generation so results loaded before an invalidation are never served.
	Get(ctx context.Context, key string, dst interface{}) (gen string, ok bool, err error)
	Set(ctx context.Context, gen, key string, v interface{}) error
}

type Service struct {
	DB    *gorm.DB
	Gate  *access.Gate
	Cache FeedCache
}

// Feed returns approved vibes matching f in feed order.
func (s *Service) Feed(ctx context.Context, f ranking.Filter) ([]domain.Vibe, error) {
	key := "feed:all"
	if !f.IsEmpty() {
		key = "feed:" + f.Key()
	}
	return cachedRead(ctx, s, key, func(all []domain.Vibe) []domain.Vibe {
		return ranking.Apply(all, f)
	})
}

func (s *Service) Featured(ctx context.Context) ([]domain.Vibe, error) {
	return cachedRead(ctx, s, "featured", func(all []domain.Vibe) []domain.Vibe {
		return ranking.Featured(all, ranking.FeaturedLimit)
	})
}

// Trending returns the most voted approved vibes; limit is clamped to the allowed range.
func (s *Service) Trending(ctx context.Context, limit int) ([]domain.Vibe, error) {
	limit = ranking.ClampTrendingLimit(limit)
	return cachedRead(ctx, s, "trending:"+strconv.Itoa(limit), func(all []domain.Vibe) []domain.Vibe {
		return ranking.Trending(all, limit)
	})
}

func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return cachedRead(ctx, s, "tags", ranking.Tags)
}

// Mine returns every vibe the caller submitted, any status, newest first.
func (s *Service) Mine(ctx context.Context, caller *access.Identity) ([]domain.Vibe, error) {
	if caller == nil || caller.ID == "" {
		return nil, ErrUnauthorized
	}
	vibes := []domain.Vibe{}
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", caller.ID).
		Order("created_at DESC").Order("seq DESC").
		Find(&vibes).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch vibes: %w", err)
	}
	return vibes, nil
}

// Get returns one vibe if the caller may see it. Hidden vibes are reported as not found.
func (s *Service) Get(ctx context.Context, caller *access.Identity, id uuid.UUID) (*domain.Vibe, error) {
	var v domain.Vibe
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !s.Gate.CanView(caller, &v) {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (s *Service) approved(ctx context.Context) ([]domain.Vibe, error) {
	vibes := []domain.Vibe{}
	if err := s.DB.WithContext(ctx).
		Where("status = ?", domain.StatusApproved).
		Order("seq ASC").
		Find(&vibes).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch vibes: %w", err)
	}
	return vibes, nil
}

// cachedRead serves key from the cache, or loads approved vibes, computes and stores
// the result in the generation the miss was seen in. Cache failures are logged and
// the store is used directly.
func cachedRead[T any](ctx context.Context, s *Service, key string, compute func([]domain.Vibe) T) (T, error) {
	var out T
	gen, cacheable := "", false
	if s.Cache != nil {
		g, ok, err := s.Cache.Get(ctx, key, &out)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("key", key).Msg("feed cache read failed")
		case ok:
			return out, nil
		default:
			gen, cacheable = g, true
		}
	}
	all, err := s.approved(ctx)
	if err != nil {
		return out, err
	}
	out = compute(all)
	if cacheable {
		if err := s.Cache.Set(ctx, gen, key, out); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("feed cache write failed")
		}
	}
	return out, nil
}
