package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status is the moderation lifecycle state of a vibe.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Plan is the submission tier. It only affects ordering and visual treatment.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

// Tool is the builder a vibe was made with.
type Tool string

const (
	ToolV0      Tool = "v0"
	ToolCursor  Tool = "cursor"
	ToolLovable Tool = "lovable"
	ToolBolt    Tool = "bolt"
	ToolReplit  Tool = "replit"
	ToolOther   Tool = "other"
)

// Tools lists every accepted tool in display order.
var Tools = []Tool{ToolV0, ToolLovable, ToolCursor, ToolBolt, ToolReplit, ToolOther}

// CountryGlobal marks a vibe (or a filter) as relevant everywhere.
const CountryGlobal = "GLOBAL"

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPaid
}

// Rank orders plans for the feed: paid before free.
func (p Plan) Rank() int {
	if p == PlanPaid {
		return 1
	}
	return 0
}

func (t Tool) Valid() bool {
	for _, v := range Tools {
		if v == t {
			return true
		}
	}
	return false
}

// Vibe is a submitted project listing (table "vibes").
// Seq is the storage order and the final tie-break for every ordering.
type Vibe struct {
	Seq          int64                       `gorm:"column:seq;primaryKey;autoIncrement" json:"-"`
	ID           uuid.UUID                   `gorm:"column:id;type:uuid;uniqueIndex;not null" json:"id"`
	Title        string                      `gorm:"column:title;not null" json:"title"`
	Description  string                      `gorm:"column:description;not null" json:"description"`
	LiveURL      string                      `gorm:"column:live_url;not null" json:"live_url"`
	Tags         datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	KeyFeatures  datatypes.JSONSlice[string] `gorm:"column:key_features" json:"key_features"`
	Tool         Tool                        `gorm:"column:tool;type:varchar(20);not null" json:"tool"`
	Country      *string                     `gorm:"column:country;type:varchar(16)" json:"country"`
	Category     *string                     `gorm:"column:category" json:"category"`
	UseCase      *string                     `gorm:"column:use_case" json:"use_case"`
	LogoURL      *string                     `gorm:"column:logo_url" json:"logo_url"`
	Plan         Plan                        `gorm:"column:plan;type:varchar(10);not null;default:'free'" json:"plan"`
	Status       Status                      `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	Votes        int64                       `gorm:"column:votes;not null;default:0" json:"votes"`
	CreatorName  string                      `gorm:"column:creator_name" json:"creator_name"`
	CreatorEmail string                      `gorm:"column:creator_email" json:"-"`
	UserID       string                      `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt    time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (Vibe) TableName() string {
	return "vibes"
}

// BeforeCreate sets id if not already set (DBs without default uuid).
func (v *Vibe) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// IsGlobal reports whether the vibe has no country or is explicitly global.
func (v *Vibe) IsGlobal() bool {
	return v.Country == nil || *v.Country == "" || strings.EqualFold(*v.Country, CountryGlobal)
}

// HasTag reports tag membership.
func (v *Vibe) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
