package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Vibe event types, written in the same transaction as the mutation they record.
const (
	EventSubmitted = "SUBMITTED"
	EventApproved  = "APPROVED"
	EventRejected  = "REJECTED"
)

// VibeEvent is the audit trail of a vibe's lifecycle.
type VibeEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	VibeID    uuid.UUID      `gorm:"column:vibe_id;type:uuid;not null;index" json:"vibe_id"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	ActorID   string         `gorm:"column:actor_id" json:"actor_id"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (VibeEvent) TableName() string {
	return "vibe_events"
}

func (e *VibeEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}

// EventSubject is the messaging subject an event type is published on, e.g. "vibes.approved".
func EventSubject(eventType string) string {
	return "vibes." + strings.ToLower(eventType)
}
