package services

import (
	"context"
	"testing"

	"brandbase/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSingletonService_GetMissingReturnsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewSingletonService(gdb, models.BrandProfile{})

	_, err := svc.Get(context.Background(), owner.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSingletonService_UpsertTwiceKeepsOneRow(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewSingletonService(gdb, models.BrandProfile{})

	ctx := context.Background()
	first, err := svc.Upsert(ctx, owner.ID, &models.BrandProfile{Name: "Acme", Industry: "retail"})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, owner.ID, &models.BrandProfile{Name: "Acme Studios"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Acme Studios", second.Name)

	var count int64
	gdb.Model(&models.BrandProfile{}).Where("user_id = ?", owner.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestSingletonService_RowsIsolatedPerUser(t *testing.T) {
	gdb := newTestDB(t)
	alice := newTestUser(t, gdb, "alice@example.com")
	bob := newTestUser(t, gdb, "bob@example.com")
	svc := NewSingletonService(gdb, models.BrandProfile{})

	ctx := context.Background()
	_, err := svc.Upsert(ctx, alice.ID, &models.BrandProfile{Name: "Alice Co"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, bob.ID, &models.BrandProfile{Name: "Bob Co"})
	require.NoError(t, err)

	aliceProfile, err := svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Co", aliceProfile.Name)

	bobProfile, err := svc.Get(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob Co", bobProfile.Name)
}
