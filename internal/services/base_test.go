package services

import (
	"context"
	"testing"

	"brandbase/internal/models"

	"github.com/stretchr/testify/require"
)

func TestOwnedService_CreateForcesOwner(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewOwnedService(gdb, models.Channel{})

	channel := &models.Channel{
		UserID:   "someone-else",
		Platform: "instagram",
		Handle:   "@brand",
	}
	require.NoError(t, svc.Create(context.Background(), owner.ID, channel))
	require.Equal(t, owner.ID, channel.UserID)
	require.NotEmpty(t, channel.ID)
}

func TestOwnedService_ListScopedToOwner(t *testing.T) {
	gdb := newTestDB(t)
	alice := newTestUser(t, gdb, "alice@example.com")
	bob := newTestUser(t, gdb, "bob@example.com")
	svc := NewOwnedService(gdb, models.Channel{})

	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, alice.ID, &models.Channel{Platform: "instagram", Handle: "@alice"}))
	require.NoError(t, svc.Create(ctx, alice.ID, &models.Channel{Platform: "twitter", Handle: "@alice"}))
	require.NoError(t, svc.Create(ctx, bob.ID, &models.Channel{Platform: "instagram", Handle: "@bob"}))

	channels, err := svc.List(ctx, alice.ID, nil, "")
	require.NoError(t, err)
	require.Len(t, channels, 2)
	for _, ch := range channels {
		require.Equal(t, alice.ID, ch.UserID)
	}
}

func TestOwnedService_ListEmptyForNewAccount(t *testing.T) {
	gdb := newTestDB(t)
	fresh := newTestUser(t, gdb, "fresh@example.com")
	svc := NewOwnedService(gdb, models.Channel{})

	channels, err := svc.List(context.Background(), fresh.ID, nil, "")
	require.NoError(t, err)
	require.NotNil(t, channels)
	require.Empty(t, channels)
}

func TestOwnedService_ListFilters(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewOwnedService(gdb, models.Post{})

	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, owner.ID, &models.Post{Title: "a", Status: models.PostStatusDraft}))
	require.NoError(t, svc.Create(ctx, owner.ID, &models.Post{Title: "b", Status: models.PostStatusPublished}))

	published, err := svc.List(ctx, owner.ID, map[string]interface{}{"status": "published"}, "")
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, "b", published[0].Title)
}

func TestOwnedService_SearchMatchesCaseInsensitive(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewOwnedService(gdb, models.Contact{})
	svc.SearchColumns = []string{"name", "email"}

	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, owner.ID, &models.Contact{Name: "Jane Cooper", Email: "jane@corp.com"}))
	require.NoError(t, svc.Create(ctx, owner.ID, &models.Contact{Name: "Max Miller", Email: "max@corp.com"}))

	found, err := svc.List(ctx, owner.ID, nil, "JANE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Jane Cooper", found[0].Name)

	byEmail, err := svc.List(ctx, owner.ID, nil, "max@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
}

func TestOwnedService_GetForeignRowReadsAsMissing(t *testing.T) {
	gdb := newTestDB(t)
	alice := newTestUser(t, gdb, "alice@example.com")
	bob := newTestUser(t, gdb, "bob@example.com")
	svc := NewOwnedService(gdb, models.Campaign{})

	ctx := context.Background()
	campaign := &models.Campaign{Name: "Spring Launch"}
	require.NoError(t, svc.Create(ctx, alice.ID, campaign))

	_, err := svc.Get(ctx, bob.ID, campaign.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Identical to a genuinely absent id.
	_, err = svc.Get(ctx, bob.ID, "2a7e8a3e-0000-4000-8000-000000000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOwnedService_UpdateForeignRowFails(t *testing.T) {
	gdb := newTestDB(t)
	alice := newTestUser(t, gdb, "alice@example.com")
	bob := newTestUser(t, gdb, "bob@example.com")
	svc := NewOwnedService(gdb, models.Campaign{})

	ctx := context.Background()
	campaign := &models.Campaign{Name: "Spring Launch"}
	require.NoError(t, svc.Create(ctx, alice.ID, campaign))

	_, err := svc.Update(ctx, bob.ID, campaign.ID, &models.Campaign{Name: "Hijacked"})
	require.ErrorIs(t, err, ErrNotFound)

	var kept models.Campaign
	require.NoError(t, gdb.Where("id = ?", campaign.ID).First(&kept).Error)
	require.Equal(t, "Spring Launch", kept.Name)
}

func TestOwnedService_UpdateKeepsOwnerAndID(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewOwnedService(gdb, models.Campaign{})

	ctx := context.Background()
	campaign := &models.Campaign{Name: "Spring Launch"}
	require.NoError(t, svc.Create(ctx, owner.ID, campaign))

	patch := &models.Campaign{Name: "Summer Launch"}
	patch.ID = "ffffffff-ffff-4fff-8fff-ffffffffffff"
	patch.UserID = "not-the-owner"

	updated, err := svc.Update(ctx, owner.ID, campaign.ID, patch)
	require.NoError(t, err)
	require.Equal(t, campaign.ID, updated.ID)
	require.Equal(t, owner.ID, updated.UserID)
	require.Equal(t, "Summer Launch", updated.Name)
}

func TestOwnedService_DeleteForeignRowFails(t *testing.T) {
	gdb := newTestDB(t)
	alice := newTestUser(t, gdb, "alice@example.com")
	bob := newTestUser(t, gdb, "bob@example.com")
	svc := NewOwnedService(gdb, models.Channel{})

	ctx := context.Background()
	channel := &models.Channel{Platform: "instagram", Handle: "@alice"}
	require.NoError(t, svc.Create(ctx, alice.ID, channel))

	require.ErrorIs(t, svc.Delete(ctx, bob.ID, channel.ID), ErrNotFound)

	var count int64
	gdb.Model(&models.Channel{}).Where("id = ?", channel.ID).Count(&count)
	require.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(ctx, alice.ID, channel.ID))
	gdb.Model(&models.Channel{}).Where("id = ?", channel.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestOwnedService_PostDefaultsToDraft(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")
	svc := NewOwnedService(gdb, models.Post{})

	ctx := context.Background()
	post := &models.Post{Title: "Untitled"}
	require.NoError(t, svc.Create(ctx, owner.ID, post))

	stored, err := svc.Get(ctx, owner.ID, post.ID)
	require.NoError(t, err)
	require.Equal(t, models.PostStatusDraft, stored.Status)
}
