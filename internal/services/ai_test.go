package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"

	"brandbase/internal/config"
	"brandbase/internal/models"
	"brandbase/internal/utils/crypto"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMockProvider_KeywordRouting(t *testing.T) {
	p := &MockProvider{}
	ctx := context.Background()

	hashtags, err := p.Complete(ctx, "Give me hashtag ideas for a product launch", 0.7)
	require.NoError(t, err)
	require.Contains(t, hashtags, "#")

	report, err := p.Complete(ctx, "Build me a weekly REPORT", 0.7)
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(report), "engagement")
}

func TestMockProvider_FallsBackToDefault(t *testing.T) {
	p := &MockProvider{}

	out, err := p.Complete(context.Background(), "something entirely unrelated", 0.7)
	require.NoError(t, err)
	require.Equal(t, defaultCannedResponse, out)
}

func TestAIService_UsesMockWithoutAPIKey(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")

	svc := NewAIService(gdb, config.LoadTestConfig())

	out, err := svc.GenerateContent(context.Background(), owner.ID, "hashtag suggestions", "instagram")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestAIService_StoredSettingsSelectProvider(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	prevPriv, prevPub := crypto.PrivateKey, crypto.PublicKey
	crypto.PrivateKey, crypto.PublicKey = key, &key.PublicKey
	t.Cleanup(func() { crypto.PrivateKey, crypto.PublicKey = prevPriv, prevPub })

	encrypted, err := crypto.Encrypt("sk-user-key")
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&models.AiSettings{
		UserID:          owner.ID,
		Provider:        "openai",
		Model:           "gpt-4o-mini",
		Temperature:     0.3,
		EncryptedAPIKey: encrypted,
	}).Error)

	svc := NewAIService(gdb, config.LoadTestConfig())

	provider, temperature := svc.providerFor(context.Background(), owner.ID)
	require.InDelta(t, 0.3, temperature, 0.001)

	httpProvider, ok := provider.(*HTTPProvider)
	require.True(t, ok, "stored settings with a key should select the HTTP provider")
	require.Equal(t, "sk-user-key", httpProvider.apiKey)
	require.Equal(t, "gpt-4o-mini", httpProvider.model)
}

func TestAIService_MockSettingForcesCannedAnswers(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")

	require.NoError(t, gdb.Create(&models.AiSettings{
		UserID:      owner.ID,
		Provider:    "mock",
		Temperature: 0.9,
	}).Error)

	svc := NewAIService(gdb, config.LoadTestConfig())

	provider, temperature := svc.providerFor(context.Background(), owner.ID)
	require.InDelta(t, 0.9, temperature, 0.001)
	require.Same(t, svc.fallback, provider)
}

func TestAIService_PromptIncludesBrandContext(t *testing.T) {
	gdb := newTestDB(t)
	owner := newTestUser(t, gdb, "owner@example.com")

	require.NoError(t, gdb.Create(&models.BrandProfile{
		UserID:      owner.ID,
		Name:        "Acme Coffee",
		Industry:    "food and beverage",
		Voice:       "warm and playful",
		Competitors: datatypes.JSON(`["Bean There","Grind House"]`),
	}).Error)
	require.NoError(t, gdb.Create(&models.Post{
		UserID: owner.ID,
		Title:  "Cold brew season is here",
		Status: models.PostStatusPublished,
	}).Error)

	svc := NewAIService(gdb, config.LoadTestConfig())
	prompt := svc.buildPrompt(context.Background(), owner.ID, "autumn menu", "instagram")

	require.Contains(t, prompt, "Acme Coffee")
	require.Contains(t, prompt, "warm and playful")
	require.Contains(t, prompt, "Cold brew season is here")
	require.Contains(t, prompt, "Bean There, Grind House")
	require.Contains(t, prompt, "instagram")
}
