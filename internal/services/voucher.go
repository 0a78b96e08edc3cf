package services

import (
	"context"
	"errors"
	"time"

	"brandbase/internal/models"
	"brandbase/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrVoucherInactive  = errors.New("voucher is not active")
	ErrVoucherExpired   = errors.New("voucher has expired")
	ErrVoucherExhausted = errors.New("voucher usage limit reached")
)

// VoucherService wraps the generic owned CRUD (with soft-deactivation on
// delete) and adds the redemption path.
type VoucherService struct {
	*OwnedServiceImpl[models.Voucher]
	db *gorm.DB
}

func NewVoucherService(db *gorm.DB) *VoucherService {
	base := NewOwnedService(db, models.Voucher{})
	base.DeactivateOnDelete = true
	return &VoucherService{OwnedServiceImpl: base, db: db}
}

// Create fills in a random code when the request left it empty.
func (s *VoucherService) Create(ctx context.Context, userID string, voucher *models.Voucher) error {
	if voucher.Code == "" {
		code, err := utils.GenerateVoucherCode("", 8)
		if err != nil {
			return err
		}
		voucher.Code = code
	}
	return s.OwnedServiceImpl.Create(ctx, userID, voucher)
}

// Redeem records one use of a voucher. The usage counter increment and the
// redemption row are written in a single transaction; the guarded UPDATE keeps
// the cap honest under concurrent redemptions.
func (s *VoucherService) Redeem(ctx context.Context, userID, code, redeemedBy, contactID string) (*models.VoucherRedemption, error) {
	voucher, err := models.GetVoucherByCode(code, userID, s.db.WithContext(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !voucher.IsActive {
		return nil, ErrVoucherInactive
	}
	if voucher.ExpiresAt != nil && voucher.ExpiresAt.Before(time.Now()) {
		return nil, ErrVoucherExpired
	}
	if voucher.UsageLimit > 0 && voucher.UsedCount >= voucher.UsageLimit {
		return nil, ErrVoucherExhausted
	}

	redemption := &models.VoucherRedemption{
		UserID:     userID,
		VoucherID:  voucher.ID,
		ContactID:  contactID,
		RedeemedBy: redeemedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Voucher{}).
			Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", voucher.ID).
			Update("used_count", gorm.Expr("used_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVoucherExhausted
		}

		return tx.Create(redemption).Error
	})
	if err != nil {
		return nil, err
	}

	return redemption, nil
}
