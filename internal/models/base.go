package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

type Tier string

const (
	TierBasic      Tier = "basic"
	TierGold       Tier = "gold"
	TierEnterprise Tier = "enterprise"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

type ContactStatus string

const (
	ContactStatusLead     ContactStatus = "lead"
	ContactStatusProspect ContactStatus = "prospect"
	ContactStatusCustomer ContactStatus = "customer"
	ContactStatusVIP      ContactStatus = "vip"
	ContactStatusChurned  ContactStatus = "churned"
)

type ExperimentStatus string

const (
	ExperimentStatusIdea      ExperimentStatus = "idea"
	ExperimentStatusActive    ExperimentStatus = "active"
	ExperimentStatusPaused    ExperimentStatus = "paused"
	ExperimentStatusCompleted ExperimentStatus = "completed"
)

type CalendarEventType string

const (
	CalendarEventCustom   CalendarEventType = "custom"
	CalendarEventPost     CalendarEventType = "post"
	CalendarEventCampaign CalendarEventType = "campaign"
	CalendarEventSpecial  CalendarEventType = "special"
)

// IsValidTier checks if a given tier is valid
func IsValidTier(tier Tier) bool {
	switch tier {
	case TierBasic, TierGold, TierEnterprise:
		return true
	default:
		return false
	}
}

// IsValidUserRole checks if a given role is valid
func IsValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleUser, UserRoleAdmin:
		return true
	default:
		return false
	}
}
