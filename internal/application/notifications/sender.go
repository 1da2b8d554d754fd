package notifications

import "context"

// Sender notifies a submitter about the outcome of moderation. Nil = no-op.
type Sender interface {
	SendVibeApproved(ctx context.Context, toEmail, creatorName, title, vibeURL string) error
	SendVibeRejected(ctx context.Context, toEmail, creatorName, title string) error
}

const (
	subjectApproved = "Your vibe is live on VibeMarket"
	subjectRejected = "Your VibeMarket submission was not approved"
	defaultFrom     = "noreply@vibemarket.tech"
)
