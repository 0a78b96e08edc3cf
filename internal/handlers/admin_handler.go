package handlers

import (
	"net/http"

	"brandbase/internal/events"
	"brandbase/internal/models"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db, log: logger.New("AdminHandler")}
}

// ListUsers returns every account (admin only).
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]models.User
// @Failure 403 {object} map[string]string
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch users"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

type updateUserRequest struct {
	ID   string `json:"id" validate:"required,uuid"`
	Name string `json:"name"`
	Role string `json:"role" validate:"omitempty,user_role"`
	Tier string `json:"tier" validate:"omitempty,tier"`
}

// UpdateUser lets an admin change another account's name, role or tier.
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body updateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Router /admin/users [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	if err := h.db.Where("id = ?", req.ID).First(&user).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != "" {
		updates["role"] = models.UserRole(req.Role)
	}
	if req.Tier != "" {
		updates["tier"] = models.Tier(req.Tier)
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user"})
		}
	}

	if tier, ok := updates["tier"]; ok {
		user.Tier = tier.(models.Tier)
		events.Emit("users.tier_changed", &user)
	}

	if err := h.db.Where("id = ?", req.ID).First(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}

	return c.JSON(http.StatusOK, user)
}

type deleteUserRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// DeleteUser removes an account (admin only).
// @Summary Delete a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body deleteUserRequest true "User id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	if err := h.db.Where("id = ?", req.ID).First(&user).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}

	h.log.Warn("Deleted user %s", user.Email)
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
