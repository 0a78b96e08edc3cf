package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	Base
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Password     string         `json:"-"` // empty for OAuth-provisioned users
	Name         string         `json:"name"`
	Role         UserRole       `gorm:"not null;default:'user'" json:"role"`
	Tier         Tier           `gorm:"not null;default:'basic'" json:"tier"`
	Provider     string         `gorm:"default:'local'" json:"provider"` // 'local', 'google'
	ProviderID   string         `gorm:"index" json:"providerId,omitempty"`
	ProviderData datatypes.JSON `gorm:"type:jsonb" json:"providerData,omitempty"`
}

type PasswordReset struct {
	Base
	User      *User     `json:"user,omitempty"`
	UserID    string    `gorm:"type:uuid;not null" json:"userId"`
	Code      string    `gorm:"not null" json:"code"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthTransaction struct {
	Base
	UserID    string    `gorm:"type:uuid;not null" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Token     string    `gorm:"not null" json:"token"`
	Refresh   string    `gorm:"not null" json:"refresh"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
