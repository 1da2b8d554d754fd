// Package ranking decides which vibes the public sees and in what order.
// Every function here is pure: inputs are never mutated and "no match" is an
// empty slice, not an error. Inputs are expected in storage order; all sorts
// are stable so that order is the final tie-break.
package ranking

import (
	"sort"
	"strconv"
	"strings"

	"vibemarket-backend/internal/domain"
)

const (
	DefaultTrendingLimit = 3
	MaxTrendingLimit     = 50
	FeaturedLimit        = 5
)

// Filter holds the optional feed predicates. An empty field does not filter.
type Filter struct {
	Tool     string `json:"tool,omitempty"`
	Country  string `json:"country,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Category string `json:"category,omitempty"`
	UseCase  string `json:"use_case,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Key is a canonical string for the filter, used as a cache key. Fields are
// quoted so free text containing the separator cannot collide with another filter.
func (f Filter) Key() string {
	parts := []string{f.Tool, f.Country, f.Tag, f.Category, f.UseCase}
	for i, p := range parts {
		parts[i] = strconv.Quote(p)
	}
	return strings.Join(parts, "|")
}

// Match reports whether an approved vibe satisfies every set predicate.
func (f Filter) Match(v *domain.Vibe) bool {
	if v.Status != domain.StatusApproved {
		return false
	}
	if f.Tool != "" && string(v.Tool) != f.Tool {
		return false
	}
	if f.Country != "" && !strings.EqualFold(f.Country, domain.CountryGlobal) {
		if !v.IsGlobal() && *v.Country != f.Country {
			return false
		}
	}
	if f.Tag != "" && !v.HasTag(f.Tag) {
		return false
	}
	if f.Category != "" && (v.Category == nil || *v.Category != f.Category) {
		return false
	}
	if f.UseCase != "" && (v.UseCase == nil || *v.UseCase != f.UseCase) {
		return false
	}
	return true
}

// Apply returns the approved vibes matching f, paid first then newest first.
func Apply(vibes []domain.Vibe, f Filter) []domain.Vibe {
	out := make([]domain.Vibe, 0, len(vibes))
	for i := range vibes {
		if f.Match(&vibes[i]) {
			out = append(out, vibes[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if pi, pj := out[i].Plan.Rank(), out[j].Plan.Rank(); pi != pj {
			return pi > pj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Trending returns at most limit approved vibes by votes, highest first.
// Equal vote counts keep storage order.
func Trending(vibes []domain.Vibe, limit int) []domain.Vibe {
	out := approved(vibes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Votes > out[j].Votes
	})
	return capped(out, limit)
}

// Featured returns at most limit approved paid vibes in storage order.
func Featured(vibes []domain.Vibe, limit int) []domain.Vibe {
	out := make([]domain.Vibe, 0)
	for i := range vibes {
		if vibes[i].Status == domain.StatusApproved && vibes[i].Plan == domain.PlanPaid {
			out = append(out, vibes[i])
		}
	}
	return capped(out, limit)
}

// Tags returns the sorted set of tags used by approved vibes.
func Tags(vibes []domain.Vibe) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range vibes {
		if vibes[i].Status != domain.StatusApproved {
			continue
		}
		for _, t := range vibes[i].Tags {
			if _, ok := seen[t]; ok || t == "" {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// ClampTrendingLimit maps a requested limit into [1, MaxTrendingLimit].
func ClampTrendingLimit(n int) int {
	if n <= 0 {
		return DefaultTrendingLimit
	}
	if n > MaxTrendingLimit {
		return MaxTrendingLimit
	}
	return n
}

func approved(vibes []domain.Vibe) []domain.Vibe {
	out := make([]domain.Vibe, 0, len(vibes))
	for i := range vibes {
		if vibes[i].Status == domain.StatusApproved {
			out = append(out, vibes[i])
		}
	}
	return out
}

func capped(vibes []domain.Vibe, limit int) []domain.Vibe {
	if limit >= 0 && len(vibes) > limit {
		return vibes[:limit]
	}
	return vibes
}
