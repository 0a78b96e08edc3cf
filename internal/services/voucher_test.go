package services

import (
	"context"
	"testing"
	"time"

	"brandbase/internal/models"

	"github.com/stretchr/testify/require"
)

func TestVoucherService_RedeemHappyPath(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewVoucherService(gdb)

	ctx := context.Background()
	voucher := &models.Voucher{Code: "SPRING20", DiscountPct: 20, UsageLimit: 2}
	require.NoError(t, svc.Create(ctx, owner.ID, voucher))

	redemption, err := svc.Redeem(ctx, owner.ID, "SPRING20", "walk-in", "")
	require.NoError(t, err)
	require.Equal(t, voucher.ID, redemption.VoucherID)
	require.Equal(t, "walk-in", redemption.RedeemedBy)

	var stored models.Voucher
	require.NoError(t, gdb.Where("id = ?", voucher.ID).First(&stored).Error)
	require.Equal(t, 1, stored.UsedCount)
}

func TestVoucherService_RedeemEnforcesUsageLimit(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewVoucherService(gdb)

	ctx := context.Background()
	voucher := &models.Voucher{Code: "ONCE", UsageLimit: 1}
	require.NoError(t, svc.Create(ctx, owner.ID, voucher))

	_, err := svc.Redeem(ctx, owner.ID, "ONCE", "first", "")
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, owner.ID, "ONCE", "second", "")
	require.ErrorIs(t, err, ErrVoucherExhausted)

	var count int64
	gdb.Model(&models.VoucherRedemption{}).Where("voucher_id = ?", voucher.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestVoucherService_ZeroLimitMeansUnlimited(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewVoucherService(gdb)

	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, owner.ID, &models.Voucher{Code: "FOREVER"}))

	for i := 0; i < 5; i++ {
		_, err := svc.Redeem(ctx, owner.ID, "FOREVER", "anyone", "")
		require.NoError(t, err)
	}
}

func TestVoucherService_RedeemRejectsExpired(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewVoucherService(gdb)

	ctx := context.Background()
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, svc.Create(ctx, owner.ID, &models.Voucher{Code: "LASTYEAR", ExpiresAt: &past}))

	_, err := svc.Redeem(ctx, owner.ID, "LASTYEAR", "late", "")
	require.ErrorIs(t, err, ErrVoucherExpired)
}

func TestVoucherService_RedeemScopedToOwner(t *testing.T) {
	gdb := newTestDB(t)
	alice := newTestUser(t, gdb, "alice@example.com")
	bob := newTestUser(t, gdb, "bob@example.com")
	svc := NewVoucherService(gdb)

	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, alice.ID, &models.Voucher{Code: "ALICEONLY"}))

	_, err := svc.Redeem(ctx, bob.ID, "ALICEONLY", "bob", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVoucherService_DeleteDeactivatesInsteadOfRemoving(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewVoucherService(gdb)

	ctx := context.Background()
	voucher := &models.Voucher{Code: "KEEPME"}
	require.NoError(t, svc.Create(ctx, owner.ID, voucher))

	require.NoError(t, svc.Delete(ctx, owner.ID, voucher.ID))

	var stored models.Voucher
	require.NoError(t, gdb.Where("id = ?", voucher.ID).First(&stored).Error)
	require.False(t, stored.IsActive)

	_, err := svc.Redeem(ctx, owner.ID, "KEEPME", "anyone", "")
	require.ErrorIs(t, err, ErrVoucherInactive)
}
