package handlers

import (
	"errors"
	"net/http"

	"brandbase/internal/api/middleware"
	"brandbase/internal/models"
	"brandbase/internal/services"
	"brandbase/internal/tasks"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type VoucherHandler struct {
	db      *gorm.DB
	service *services.VoucherService
	log     *logger.Logger
}

func NewVoucherHandler(db *gorm.DB, service *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{db: db, service: service, log: logger.New("VoucherHandler")}
}

type sendVoucherRequest struct {
	VoucherID  string   `json:"voucherId" validate:"required,uuid"`
	ContactIDs []string `json:"contactIds" validate:"required,min=1,dive,uuid"`
}

// Send queues a voucher email for each of the caller's listed contacts.
// Contacts the caller does not own are skipped silently.
func (h *VoucherHandler) Send(c echo.Context) error {
	var req sendVoucherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	voucher, err := h.service.Get(c.Request().Context(), userID, req.VoucherID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		_ = h.log.Error("Failed to load voucher", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	var contacts []models.Contact
	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ? AND id IN ?", userID, req.ContactIDs).
		Find(&contacts).Error; err != nil {
		_ = h.log.Error("Failed to load contacts", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	queued := 0
	for _, contact := range contacts {
		if contact.Email == "" {
			continue
		}
		if err := tasks.EnqueueVoucherEmail(voucher.ID, contact.ID); err != nil {
			_ = h.log.Error("Failed to queue voucher email", err)
			continue
		}
		queued++
	}

	h.log.Success("Queued %d voucher emails for %s", queued, voucher.Code)
	return c.JSON(http.StatusOK, map[string]interface{}{"queued": queued})
}

type redeemVoucherRequest struct {
	Code       string `json:"code" validate:"required"`
	ContactID  string `json:"contactId" validate:"omitempty,uuid"`
	RedeemedBy string `json:"redeemedBy"`
}

// Redeem applies a voucher code once, enforcing expiry and usage limits.
func (h *VoucherHandler) Redeem(c echo.Context) error {
	var req redeemVoucherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	redemption, err := h.service.Redeem(c.Request().Context(), userID, req.Code, req.RedeemedBy, req.ContactID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		case errors.Is(err, services.ErrVoucherInactive):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Voucher is no longer active"})
		case errors.Is(err, services.ErrVoucherExpired):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Voucher has expired"})
		case errors.Is(err, services.ErrVoucherExhausted):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Voucher usage limit reached"})
		default:
			_ = h.log.Error("Failed to redeem voucher", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"redemption": redemption})
}
