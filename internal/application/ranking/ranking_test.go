package ranking

import (
	"testing"
	"time"

	"vibemarket-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func vibe(title string, status domain.Status, plan domain.Plan, age time.Duration, tags ...string) domain.Vibe {
	return domain.Vibe{
		ID:        uuid.New(),
		Title:     title,
		Tool:      domain.ToolV0,
		Plan:      plan,
		Status:    status,
		Tags:      tags,
		CreatedAt: base.Add(-age),
	}
}

func strPtr(s string) *string { return &s }

func titles(vibes []domain.Vibe) []string {
	out := make([]string, len(vibes))
	for i, v := range vibes {
		out[i] = v.Title
	}
	return out
}

func fixture() []domain.Vibe {
	return []domain.Vibe{
		vibe("old-free", domain.StatusApproved, domain.PlanFree, 72*time.Hour, "ai"),
		vibe("new-free", domain.StatusApproved, domain.PlanFree, time.Hour, "design"),
		vibe("pending-paid", domain.StatusPending, domain.PlanPaid, 0, "ai"),
		vibe("old-paid", domain.StatusApproved, domain.PlanPaid, 48*time.Hour, "ai", "design"),
		vibe("rejected", domain.StatusRejected, domain.PlanFree, 0, "ai"),
		vibe("new-paid", domain.StatusApproved, domain.PlanPaid, 2*time.Hour),
	}
}

func TestApply_EmptyFilterReturnsAllApprovedInOrder(t *testing.T) {
	got := Apply(fixture(), Filter{})
	assert.Equal(t, []string{"new-paid", "old-paid", "new-free", "old-free"}, titles(got))
}

func TestApply_NeverReturnsUnapproved(t *testing.T) {
	filters := []Filter{{}, {Tag: "ai"}, {Tool: "v0"}, {Country: "IN"}, {Tag: "ai", Tool: "v0"}}
	for _, f := range filters {
		for _, v := range Apply(fixture(), f) {
			assert.Equal(t, domain.StatusApproved, v.Status, "filter %+v returned %s", f, v.Title)
		}
	}
}

func TestApply_TagIsMembership(t *testing.T) {
	got := Apply(fixture(), Filter{Tag: "design"})
	assert.Equal(t, []string{"old-paid", "new-free"}, titles(got))
	for _, v := range got {
		assert.True(t, v.HasTag("design"))
	}
}

func TestApply_StableForEqualPlanAndTimestamp(t *testing.T) {
	in := []domain.Vibe{
		vibe("a", domain.StatusApproved, domain.PlanFree, time.Hour),
		vibe("b", domain.StatusApproved, domain.PlanFree, time.Hour),
		vibe("c", domain.StatusApproved, domain.PlanFree, time.Hour),
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, []string{"a", "b", "c"}, titles(Apply(in, Filter{})))
	}
}

func TestApply_IdempotentAndDoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := titles(in)
	first := Apply(in, Filter{Tag: "ai"})
	second := Apply(in, Filter{Tag: "ai"})
	assert.Equal(t, first, second)
	assert.Equal(t, before, titles(in))
}

func TestApply_CountryMatchesExactOrGlobal(t *testing.T) {
	in := []domain.Vibe{
		vibe("india", domain.StatusApproved, domain.PlanFree, time.Hour),
		vibe("us", domain.StatusApproved, domain.PlanFree, 2*time.Hour),
		vibe("global", domain.StatusApproved, domain.PlanFree, 3*time.Hour),
		vibe("unset", domain.StatusApproved, domain.PlanFree, 4*time.Hour),
	}
	in[0].Country = strPtr("IN")
	in[1].Country = strPtr("US")
	in[2].Country = strPtr(domain.CountryGlobal)

	assert.Equal(t, []string{"india", "global", "unset"}, titles(Apply(in, Filter{Country: "IN"})))
	assert.Len(t, Apply(in, Filter{Country: domain.CountryGlobal}), 4)
}

func TestApply_CategoryAndUseCaseExact(t *testing.T) {
	in := fixture()
	in[0].Category = strPtr("invoicing")
	in[0].UseCase = strPtr("finance")
	in[1].UseCase = strPtr("design")

	assert.Equal(t, []string{"old-free"}, titles(Apply(in, Filter{Category: "invoicing"})))
	assert.Equal(t, []string{"old-free"}, titles(Apply(in, Filter{UseCase: "finance", Tag: "ai"})))
	assert.Empty(t, Apply(in, Filter{UseCase: "finance", Tag: "design"}))
}

func TestApply_UnknownValueYieldsEmptyNotNil(t *testing.T) {
	got := Apply(fixture(), Filter{Tool: "notepad"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTrending_ByVotesCappedAndStableOnTies(t *testing.T) {
	in := fixture()
	in[0].Votes = 5  // old-free
	in[1].Votes = 9  // new-free
	in[2].Votes = 99 // pending, never visible
	in[3].Votes = 5  // old-paid, ties with old-free which comes first in storage
	in[5].Votes = 1

	got := Trending(in, 3)
	assert.Equal(t, []string{"new-free", "old-free", "old-paid"}, titles(got))
	assert.Len(t, Trending(in, 10), 4)
}

func TestFeatured_PaidApprovedOnly(t *testing.T) {
	got := Featured(fixture(), FeaturedLimit)
	assert.Equal(t, []string{"old-paid", "new-paid"}, titles(got))
	assert.Len(t, Featured(fixture(), 1), 1)
}

func TestTags_SortedUniqueApprovedOnly(t *testing.T) {
	in := fixture()
	in[4].Tags = []string{"zzz-hidden"}
	assert.Equal(t, []string{"ai", "design"}, Tags(in))
}

func TestClampTrendingLimit(t *testing.T) {
	assert.Equal(t, DefaultTrendingLimit, ClampTrendingLimit(0))
	assert.Equal(t, 7, ClampTrendingLimit(7))
	assert.Equal(t, MaxTrendingLimit, ClampTrendingLimit(500))
}

func TestFilterKey_SeparatorInFreeTextDoesNotCollide(t *testing.T) {
	a := Filter{Tag: "x|", Category: "y"}
	b := Filter{Tag: "x", Category: "|y"}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, Filter{Tool: "v0"}.Key(), Filter{Tool: "v0"}.Key())
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, a.IsEmpty())
}
