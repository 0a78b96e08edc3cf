package models

import (
	"time"

	"brandbase/internal/events"

	"gorm.io/gorm"
)

// Voucher rows are never hard-deleted; delete soft-deactivates by flipping
// IsActive so past redemptions keep a valid reference.
type Voucher struct {
	Base
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	User   *User  `json:"user,omitempty"`
	// An empty code on create is replaced with a generated one.
	Code        string     `gorm:"not null;index" json:"code" validate:"omitempty,min=3"`
	Description string     `json:"description"`
	DiscountPct float64    `gorm:"default:0" json:"discountPct" validate:"omitempty,min=0,max=100"`
	UsageLimit  int        `gorm:"default:0" json:"usageLimit"` // 0 means unlimited
	UsedCount   int        `gorm:"default:0" json:"usedCount"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// VoucherRedemption is append-only.
type VoucherRedemption struct {
	Base
	UserID     string   `gorm:"type:uuid;index;not null" json:"userId"`
	VoucherID  string   `gorm:"type:uuid;index;not null" json:"voucherId"`
	Voucher    *Voucher `json:"voucher,omitempty"`
	ContactID  string   `gorm:"index" json:"contactId,omitempty"`
	Contact    *Contact `json:"contact,omitempty"`
	RedeemedBy string   `json:"redeemedBy"` // free-form identifier from the storefront
}

func (r *VoucherRedemption) AfterCreate(tx *gorm.DB) error {
	events.Emit("voucher.redeemed", r)
	return nil
}
