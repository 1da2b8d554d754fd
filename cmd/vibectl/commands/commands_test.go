package commands

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"vibemarket-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVibes() []domain.Vibe {
	return []domain.Vibe{{
		ID:          uuid.MustParse("7b0d5c1e-3f1a-4c52-9d7e-2a8f3b6c9e01"),
		Title:       "ChaiBreak",
		Plan:        domain.PlanFree,
		Status:      domain.StatusPending,
		CreatorName: "rahul",
		CreatedAt:   time.Date(2024, 12, 20, 9, 30, 0, 0, time.UTC),
	}}
}

func TestPrintVibes_Table(t *testing.T) {
	jsonOutput = false
	var buf bytes.Buffer
	require.NoError(t, printVibes(&buf, sampleVibes()))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ChaiBreak")
	assert.Contains(t, out, "7b0d5c1e-3f1a-4c52-9d7e-2a8f3b6c9e01")
	assert.Contains(t, out, "2024-12-20 09:30")
}

func TestPrintVibes_JSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	require.NoError(t, printVibes(&buf, sampleVibes()))

	var got []domain.Vibe
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ChaiBreak", got[0].Title)
}

func TestDecide_RejectsMalformedID(t *testing.T) {
	err := decide(approveCmd, "not-a-uuid", nil)
	assert.EqualError(t, err, `invalid vibe id "not-a-uuid"`)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "seed", "pending", "approve", "reject"} {
		assert.True(t, names[want], want)
	}
}
