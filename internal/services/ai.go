package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"brandbase/internal/config"
	"brandbase/internal/models"
	"brandbase/internal/utils"
	"brandbase/internal/utils/crypto"
	"brandbase/internal/utils/logger"

	"gorm.io/gorm"
)

// CompletionProvider is the narrow seam to the LLM vendor. The HTTP provider
// is used when an API key is configured; otherwise the mock provider answers
// with canned keyword-matched copy. The mock is deliberately dumb pattern
// matching, not an intent classifier.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

type AIService struct {
	db       *gorm.DB
	cfg      *config.Config
	provider CompletionProvider
	fallback CompletionProvider
	client   *http.Client
	log      *logger.Logger
}

func NewAIService(db *gorm.DB, cfg *config.Config) *AIService {
	log := logger.New("ai_service")
	client := &http.Client{Timeout: 60 * time.Second}

	mock := &MockProvider{}
	var provider CompletionProvider = mock
	if cfg.AI.APIKey != "" {
		provider = &HTTPProvider{
			apiKey:  cfg.AI.APIKey,
			baseURL: cfg.AI.BaseURL,
			model:   cfg.AI.Model,
			client:  client,
		}
	} else {
		log.Warn("No AI API key configured, using mock provider")
	}

	return &AIService{db: db, cfg: cfg, provider: provider, fallback: mock, client: client, log: log}
}

// providerFor resolves the completion provider for one caller. Stored
// per-user settings win over the server-wide config: the stored key is
// decrypted and the stored provider/model honored, falling back to the
// shared provider when no usable settings exist.
func (s *AIService) providerFor(ctx context.Context, userID string) (CompletionProvider, float64) {
	temperature := 0.7

	var settings models.AiSettings
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return s.provider, temperature
	}
	temperature = settings.Temperature

	if settings.Provider == "mock" {
		return s.fallback, temperature
	}
	if settings.EncryptedAPIKey == "" {
		return s.provider, temperature
	}

	apiKey, err := crypto.Decrypt(settings.EncryptedAPIKey)
	if err != nil {
		s.log.Warn("Could not decrypt stored API key, using server provider: %v", err)
		return s.provider, temperature
	}

	model := settings.Model
	if model == "" {
		model = s.cfg.AI.Model
	}
	return &HTTPProvider{
		apiKey:  apiKey,
		baseURL: s.cfg.AI.BaseURL,
		model:   model,
		client:  s.client,
	}, temperature
}

// GenerateContent formats a prompt from the caller's brand profile and
// recent posts plus the supplied topic, and asks the provider for post copy.
func (s *AIService) GenerateContent(ctx context.Context, userID, topic, platform string) (string, error) {
	prompt := s.buildPrompt(ctx, userID, topic, platform)

	provider, temperature := s.providerFor(ctx, userID)
	result, err := provider.Complete(ctx, prompt, temperature)
	if err != nil {
		s.log.Warn("Provider call failed, falling back to canned response: %v", err)
		return s.fallback.Complete(ctx, topic, temperature)
	}
	return result, nil
}

// EditContent rewrites existing copy following a user instruction.
func (s *AIService) EditContent(ctx context.Context, userID, content, instruction string) (string, error) {
	prompt := fmt.Sprintf(
		"Rewrite the following marketing copy. Instruction: %s\n\n---\n%s",
		instruction, content,
	)

	provider, temperature := s.providerFor(ctx, userID)
	result, err := provider.Complete(ctx, prompt, temperature)
	if err != nil {
		s.log.Warn("Provider call failed, falling back to canned response: %v", err)
		return s.fallback.Complete(ctx, instruction, temperature)
	}
	return result, nil
}

func (s *AIService) buildPrompt(ctx context.Context, userID, topic, platform string) string {
	var b strings.Builder

	b.WriteString("Write a social media post")
	if platform != "" {
		b.WriteString(" for " + platform)
	}
	b.WriteString(fmt.Sprintf(" about: %s\n", topic))

	var brand models.BrandProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&brand).Error; err == nil {
		b.WriteString(fmt.Sprintf("\nBrand: %s (%s)\n", brand.Name, brand.Industry))
		if brand.Voice != "" {
			b.WriteString(fmt.Sprintf("Voice: %s\n", brand.Voice))
		}
		if brand.TargetAudience != "" {
			b.WriteString(fmt.Sprintf("Target audience: %s\n", brand.TargetAudience))
		}
		if competitors, err := utils.JSONToSlice(brand.Competitors); err == nil && len(competitors) > 0 {
			b.WriteString(fmt.Sprintf("Competitors to differentiate from: %s\n", strings.Join(competitors, ", ")))
		}
		if traits, err := utils.JSONToMap(brand.Personality); err == nil && len(traits) > 0 {
			b.WriteString("Personality: ")
			first := true
			for trait, value := range traits {
				if !first {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s=%s", trait, value))
				first = false
			}
			b.WriteString("\n")
		}
	}

	var recent []models.Post
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.PostStatusPublished).
		Order("created_at DESC").Limit(3).Find(&recent).Error; err == nil && len(recent) > 0 {
		b.WriteString("\nRecent posts for tone reference:\n")
		for _, p := range recent {
			b.WriteString(fmt.Sprintf("- %s\n", p.Title))
		}
	}

	return b.String()
}

// HTTPProvider calls an OpenAI-compatible chat completions endpoint. One
// attempt, no retries; failures surface to the caller which substitutes the
// canned fallback.
type HTTPProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *HTTPProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// MockProvider answers from a canned-response table keyed by substrings of
// the user's message.
type MockProvider struct{}

var cannedResponses = []struct {
	keyword  string
	response string
}{
	{"report", "Here's a quick analytics summary: engagement is up 12% week over week, with your Tuesday posts performing best. Consider doubling down on short-form video."},
	{"hashtag", "Suggested hashtags: #BrandGrowth #MarketingTips #SmallBusiness #ContentStrategy #SocialMediaMarketing"},
	{"caption", "Ready to level up? Our latest drop is everything you didn't know you needed. Link in bio."},
	{"email", "Subject: You're going to want to open this one\n\nHi there! We've got something special for you this week. Read on for an offer we only share with subscribers."},
	{"campaign", "Campaign idea: run a 2-week user-generated content challenge. Ask followers to share how they use your product and feature the best entries."},
	{"schedule", "Best posting windows for your audience: Tue/Thu 9-11am and Sun 7-9pm. Queue your top content there first."},
}

const defaultCannedResponse = "Here's a draft to get you started: share a behind-the-scenes look at your brand this week. Authenticity consistently outperforms polished promo content."

func (p *MockProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	lower := strings.ToLower(prompt)
	for _, c := range cannedResponses {
		if strings.Contains(lower, c.keyword) {
			return c.response, nil
		}
	}
	return defaultCannedResponse, nil
}
