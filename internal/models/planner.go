package models

import (
	"time"

	"gorm.io/datatypes"
)

type CalendarEvent struct {
	Base
	UserID      string            `gorm:"type:uuid;index;not null" json:"userId"`
	User        *User             `json:"user,omitempty"`
	Title       string            `gorm:"not null" json:"title" validate:"required"`
	Description string            `json:"description"`
	Type        CalendarEventType `gorm:"not null;default:'custom'" json:"type" validate:"omitempty,oneof=custom post campaign"`
	PostID      string            `gorm:"type:uuid;default:NULL" json:"postId,omitempty" validate:"omitempty,uuid"`
	CampaignID  string            `gorm:"type:uuid;default:NULL" json:"campaignId,omitempty" validate:"omitempty,uuid"`
	StartDate   time.Time         `gorm:"not null;index" json:"startDate" validate:"required"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	IsRecurring bool              `gorm:"default:false" json:"isRecurring"`
}

type GrowthExperiment struct {
	Base
	UserID     string           `gorm:"type:uuid;index;not null" json:"userId"`
	User       *User            `json:"user,omitempty"`
	Name       string           `gorm:"not null" json:"name" validate:"required"`
	Hypothesis string           `json:"hypothesis"`
	Status     ExperimentStatus `gorm:"not null;default:'idea'" json:"status" validate:"omitempty,experiment_status"`
	Metrics    datatypes.JSON   `gorm:"type:jsonb" json:"metrics,omitempty"`
}

// AiSettings is one-per-user, like BrandProfile. The provider API key is
// stored RSA-encrypted (see utils/crypto) and never returned to the client.
type AiSettings struct {
	Base
	UserID          string  `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User            *User   `json:"user,omitempty"`
	Provider        string  `gorm:"not null;default:'openai'" json:"provider" validate:"omitempty,oneof=openai anthropic google mock"`
	Model           string  `json:"model"`
	Temperature     float64 `gorm:"default:0.7" json:"temperature" validate:"omitempty,min=0,max=2"`
	APIKey          string  `gorm:"-" json:"apiKey,omitempty"` // Virtual, write-only
	EncryptedAPIKey string  `json:"-"`
	ContentAssist   bool    `gorm:"default:true" json:"contentAssist"`
	AutoHashtags    bool    `gorm:"default:false" json:"autoHashtags"`
	WeeklyReports   bool    `gorm:"default:false" json:"weeklyReports"`
}
