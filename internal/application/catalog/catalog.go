// Package catalog loads the demo catalog used to populate a fresh database.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"vibemarket-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedUserID owns every seeded vibe.
const SeedUserID = "seed"

//go:embed catalog.json
var catalogJSON []byte

// Entry is one catalog record.
type Entry struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LiveURL     string    `json:"live_url"`
	Tool        string    `json:"tool"`
	Tags        []string  `json:"tags"`
	KeyFeatures []string  `json:"key_features"`
	Country     string    `json:"country"`
	UseCase     string    `json:"use_case"`
	Category    string    `json:"category"`
	Plan        string    `json:"plan"`
	CreatorName string    `json:"creator_name"`
	Votes       int64     `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Entries returns the embedded catalog.
func Entries() ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return entries, nil
}

// Seed inserts entries as approved vibes. Entries whose title already exists are
// skipped, so running it twice is harmless. It returns how many rows were inserted.
func Seed(ctx context.Context, db *gorm.DB, entries []Entry) (int, error) {
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			var count int64
			if err := tx.Model(&domain.Vibe{}).Where("title = ?", e.Title).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			v := e.vibe()
			if err := tx.Create(&v).Error; err != nil {
				return fmt.Errorf("seed %q: %w", e.Title, err)
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

func (e Entry) vibe() domain.Vibe {
	return domain.Vibe{
		Title:       e.Title,
		Description: e.Description,
		LiveURL:     e.LiveURL,
		Tool:        domain.Tool(e.Tool),
		Tags:        datatypes.JSONSlice[string](e.Tags),
		KeyFeatures: datatypes.JSONSlice[string](e.KeyFeatures),
		Country:     strPtr(e.Country),
		UseCase:     strPtr(e.UseCase),
		Category:    strPtr(e.Category),
		Plan:        domain.Plan(e.Plan),
		Status:      domain.StatusApproved,
		Votes:       e.Votes,
		CreatorName: e.CreatorName,
		UserID:      SeedUserID,
		CreatedAt:   e.CreatedAt,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
