package handlers

import (
	"io"
	"net/http"
	"time"

	"brandbase/internal/api/middleware"
	"brandbase/internal/config"
	"brandbase/internal/events"
	"brandbase/internal/models"
	"brandbase/internal/services"
	"brandbase/internal/utils/crypto"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type StripeHandler struct {
	db      *gorm.DB
	service *services.StripeService
	cfg     *config.Config
	log     *logger.Logger
}

func NewStripeHandler(db *gorm.DB, service *services.StripeService, cfg *config.Config) *StripeHandler {
	return &StripeHandler{db: db, service: service, cfg: cfg, log: logger.New("StripeHandler")}
}

type checkoutRequest struct {
	Tier string `json:"tier" validate:"required,oneof=gold enterprise"`
}

// CreateCheckout starts a checkout session for a paid tier and returns the
// hosted payment page URL.
// @Summary Create a checkout session
// @Tags payments
// @Accept json
// @Produce json
// @Param request body checkoutRequest true "Target tier"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /stripe/checkout [post]
func (h *StripeHandler) CreateCheckout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	session, err := h.service.CreateCheckoutSession(c.Request().Context(), userID, models.Tier(req.Tier))
	if err != nil {
		_ = h.log.Error("Failed to create checkout session", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create checkout session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": session.URL})
}

// Webhook receives signed payment events. A completed checkout upgrades the
// user named in the session metadata.
// @Summary Stripe webhook receiver
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /stripe/webhook [post]
func (h *StripeHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read payload"})
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if err := crypto.VerifyStripeSignature(sigHeader, payload, h.cfg.Stripe.WebhookSecret, 5*time.Minute); err != nil {
		_ = h.log.Error("Webhook signature verification failed", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid signature"})
	}

	event, err := services.ParseWebhookEvent(payload)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
	}

	switch event.Type {
	case "checkout.session.completed":
		userID := event.Data.Object.Metadata["userId"]
		tier := models.Tier(event.Data.Object.Metadata["tier"])

		if userID == "" || !models.IsValidTier(tier) {
			h.log.Warn("Checkout session missing metadata")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid metadata"})
		}

		var user models.User
		if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown user"})
		}

		if err := h.db.Model(&user).Update("tier", tier).Error; err != nil {
			_ = h.log.Error("Failed to apply tier upgrade", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		user.Tier = tier
		events.Emit("users.tier_changed", &user)
		h.log.Success("Upgraded %s to %s", user.Email, tier)

	default:
		// Other event types are acknowledged and dropped.
	}

	return c.JSON(http.StatusOK, map[string]string{"received": "true"})
}
