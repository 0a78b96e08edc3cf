package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brandbase/internal/config"
	"brandbase/internal/models"
	"brandbase/internal/utils/logger"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeService makes the two narrow calls the app needs: create a checkout
// session and interpret webhook payloads. No SDK, no retries; a failed call
// surfaces as a generic 500 to the client.
type StripeService struct {
	secretKey string
	publicURL string
	prices    map[models.Tier]string
	client    *http.Client
	log       *logger.Logger
}

func NewStripeService(cfg *config.Config) *StripeService {
	return &StripeService{
		secretKey: cfg.Stripe.SecretKey,
		publicURL: cfg.Server.PublicURL,
		prices: map[models.Tier]string{
			models.TierGold:       cfg.Stripe.PriceGold,
			models.TierEnterprise: cfg.Stripe.PriceEnt,
		},
		client: &http.Client{Timeout: 30 * time.Second},
		log:    logger.New("stripe_service"),
	}
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession starts a subscription checkout for the given tier.
// The user id and target tier ride along as session metadata so the webhook
// can apply the upgrade.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID string, tier models.Tier) (*CheckoutSession, error) {
	price, ok := s.prices[tier]
	if !ok || price == "" {
		return nil, fmt.Errorf("no price configured for tier %s", tier)
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", price)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", s.publicURL+"/dashboard?checkout=success")
	form.Set("cancel_url", s.publicURL+"/pricing?checkout=cancelled")
	form.Set("metadata[userId]", userID)
	form.Set("metadata[tier]", string(tier))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		stripeAPIBase+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.secretKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout session request failed with status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

// WebhookEvent is the subset of a Stripe event the app cares about.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent decodes a verified webhook payload.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}
