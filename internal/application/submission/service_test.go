package submission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"vibemarket-backend/internal/application/access"
	"vibemarket-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePublisher struct {
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	f.subjects = append(f.subjects, subject)
	return f.err
}

func setupSubmissionTest(t *testing.T) (*Service, *gorm.DB, *fakePublisher) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Vibe{}, &domain.VibeEvent{}))
	p := &fakePublisher{}
	return &Service{DB: db, Publisher: p, PaymentLink: "https://buy.stripe.com/test_123"}, db, p
}

func validRequest() Request {
	return Request{
		Title:       "Invoice Ninja",
		Description: "Invoices for freelancers",
		LiveURL:     "https://invoice-ninja.vercel.app",
		Tool:        "v0",
		Tags:        []string{"finance", " ", "saas"},
		KeyFeatures: []string{"PDF export"},
		Country:     "us",
	}
}

var priya = &access.Identity{ID: "user-priya", Email: "priya@example.com"}

func TestSubmit_StoresPendingOwnedByCaller(t *testing.T) {
	svc, db, p := setupSubmissionTest(t)

	res, err := svc.Submit(context.Background(), priya, validRequest())
	require.NoError(t, err)
	assert.Equal(t, StepReceived, res.NextStep)
	assert.Empty(t, res.PaymentURL)

	var stored domain.Vibe
	require.NoError(t, db.Where("id = ?", res.Vibe.ID).First(&stored).Error)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, int64(0), stored.Votes)
	assert.Equal(t, "user-priya", stored.UserID)
	assert.Equal(t, "priya", stored.CreatorName)
	assert.Equal(t, "priya@example.com", stored.CreatorEmail)
	assert.Equal(t, domain.PlanFree, stored.Plan)
	assert.Equal(t, []string{"finance", "saas"}, []string(stored.Tags))
	require.NotNil(t, stored.Country)
	assert.Equal(t, "US", *stored.Country)
	assert.Nil(t, stored.Category)

	var events []domain.VibeEvent
	require.NoError(t, db.Where("vibe_id = ?", stored.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventSubmitted, events[0].EventType)
	var data map[string]string
	require.NoError(t, json.Unmarshal(events[0].EventData, &data))
	assert.Equal(t, string(domain.PlanFree), data["plan"])
	assert.Equal(t, "v0", data["tool"])
	assert.Equal(t, []string{"vibes.submitted"}, p.subjects)
}

func TestSubmit_PaidReturnsPaymentLink(t *testing.T) {
	svc, _, _ := setupSubmissionTest(t)
	req := validRequest()
	req.Plan = "paid"

	res, err := svc.Submit(context.Background(), priya, req)
	require.NoError(t, err)
	assert.Equal(t, StepPayment, res.NextStep)
	assert.Equal(t, "https://buy.stripe.com/test_123", res.PaymentURL)
	assert.Equal(t, domain.PlanPaid, res.Vibe.Plan)
	assert.Equal(t, domain.StatusPending, res.Vibe.Status)
}

func TestSubmit_RequiresIdentity(t *testing.T) {
	svc, db, _ := setupSubmissionTest(t)
	_, err := svc.Submit(context.Background(), nil, validRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)

	var count int64
	db.Model(&domain.Vibe{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmit_EmptyTitleCreatesNothing(t *testing.T) {
	svc, db, p := setupSubmissionTest(t)
	req := validRequest()
	req.Title = "   "

	_, err := svc.Submit(context.Background(), priya, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "title", verr.Fields[0].Field)

	var count int64
	db.Model(&domain.Vibe{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&domain.VibeEvent{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, p.subjects)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	req := Request{LiveURL: "not a url", Tool: "photoshop", Plan: "gold", Country: "Narnia", LogoURL: "ftp://x"}
	err := req.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	var names []string
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	assert.Equal(t, []string{"title", "description", "live_url", "tool", "plan", "country", "logo_url"}, names)
}

func TestSubmit_IdentityWithoutEmailIsAnonymousCreator(t *testing.T) {
	svc, _, _ := setupSubmissionTest(t)
	res, err := svc.Submit(context.Background(), &access.Identity{ID: "u-9"}, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", res.Vibe.CreatorName)
}

func TestSubmit_PublishFailureStillSucceeds(t *testing.T) {
	svc, _, p := setupSubmissionTest(t)
	p.err = errors.New("nats down")
	_, err := svc.Submit(context.Background(), priya, validRequest())
	assert.NoError(t, err)
}
