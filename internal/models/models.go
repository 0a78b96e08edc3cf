package models

import (
	"time"

	"brandbase/internal/events"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BrandProfile is the one-per-user brand description. Writes go through the
// singleton (upsert) service so there is never more than one row per user.
type BrandProfile struct {
	Base
	UserID         string         `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User           *User          `json:"user,omitempty"`
	Name           string         `gorm:"not null" json:"name" validate:"required,min=2"`
	Industry       string         `json:"industry"`
	PrimaryColor   string         `json:"primaryColor"`
	SecondaryColor string         `json:"secondaryColor"`
	Personality    datatypes.JSON `gorm:"type:jsonb" json:"personality,omitempty"` // slider values keyed by trait
	Voice          string         `json:"voice"`
	TargetAudience string         `json:"targetAudience"`
	Competitors    datatypes.JSON `gorm:"type:jsonb" json:"competitors,omitempty"`
}

type Channel struct {
	Base
	UserID        string `gorm:"type:uuid;index;not null" json:"userId"`
	User          *User  `json:"user,omitempty"`
	Platform      string `gorm:"not null" json:"platform" validate:"required,platform"`
	Handle        string `gorm:"not null" json:"handle" validate:"required"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`
	FollowerCount int64  `gorm:"default:0" json:"followerCount"`
}

type Post struct {
	Base
	UserID      string     `gorm:"type:uuid;index;not null" json:"userId"`
	User        *User      `json:"user,omitempty"`
	ChannelID   string     `gorm:"type:uuid;default:NULL" json:"channelId,omitempty" validate:"omitempty,uuid"`
	Channel     *Channel   `json:"channel,omitempty"`
	CampaignID  string     `gorm:"type:uuid;default:NULL" json:"campaignId,omitempty" validate:"omitempty,uuid"`
	Campaign    *Campaign  `json:"campaign,omitempty"`
	Title       string     `gorm:"not null" json:"title" validate:"required"`
	Content     string     `json:"content"`
	Status      PostStatus `gorm:"not null;default:'draft'" json:"status" validate:"omitempty,post_status"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Likes       int64      `gorm:"default:0" json:"likes"`
	Comments    int64      `gorm:"default:0" json:"comments"`
	Shares      int64      `gorm:"default:0" json:"shares"`
	Impressions int64      `gorm:"default:0" json:"impressions"`
}

type Campaign struct {
	Base
	UserID         string         `gorm:"type:uuid;index;not null" json:"userId"`
	User           *User          `json:"user,omitempty"`
	Name           string         `gorm:"not null" json:"name" validate:"required"`
	Description    string         `json:"description"`
	Status         CampaignStatus `gorm:"not null;default:'draft'" json:"status" validate:"omitempty,campaign_status"`
	Budget         float64        `gorm:"default:0" json:"budget"`
	Spent          float64        `gorm:"default:0" json:"spent"`
	StartDate      *time.Time     `json:"startDate,omitempty"`
	EndDate        *time.Time     `json:"endDate,omitempty"`
	TargetChannels datatypes.JSON `gorm:"type:jsonb" json:"targetChannels,omitempty"`
}

func (p *Post) AfterCreate(tx *gorm.DB) error {
	if p.Status == PostStatusScheduled {
		events.Emit("post.scheduled", p)
	}
	return nil
}
