package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"brandbase/internal/api/middleware"
	"brandbase/internal/config"
	"brandbase/internal/events"
	"brandbase/internal/models"
	"brandbase/internal/tasks"
	"brandbase/internal/utils"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, log: logger.New("AuthHandler")}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2"`
	Tier     string `json:"tier" validate:"omitempty,tier"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"new_password" validate:"required,min=8"`
}

type SelectTierRequest struct {
	Tier string `json:"tier" validate:"required,tier"`
}

// Register creates a local account. The tier is optional and defaults to
// basic.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Role:     models.UserRoleUser,
		Tier:     models.TierBasic,
	}
	if req.Tier != "" {
		user.Tier = models.Tier(req.Tier)
	}

	if err := h.db.Create(&user).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	events.Emit("users.created", &user)

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login authenticates the credentials and returns a token pair.
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := models.GetUserByEmail(req.Email, h.db)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	// OAuth-provisioned rows have no password hash; those accounts can only
	// come back through their provider.
	if user.Password == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	return h.issueTokens(c, *user)
}

func (h *AuthHandler) issueTokens(c echo.Context, user models.User) error {
	token, err := utils.GenerateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	authtransaction := &models.AuthTransaction{
		UserID:    user.ID,
		Token:     token,
		Refresh:   refreshToken,
		IPAddress: utils.GetIPAddress(c.Request()),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}

	if err := h.db.Create(authtransaction).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create auth transaction"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// RefreshToken exchanges a valid refresh token for a fresh access token. The
// user row is re-read so tier changes since login show up in the new claims.
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input"})
	}

	claims, err := utils.ParseRefreshToken(input.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var authTransaction models.AuthTransaction
	if err := h.db.Where("refresh = ? AND expires_at > ?", input.RefreshToken, time.Now()).First(&authTransaction).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var user models.User
	if err := h.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}

	accessToken, err := utils.GenerateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate access token"})
	}

	authTransaction.Token = accessToken
	if err := h.db.Save(&authTransaction).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save access token"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": accessToken, "exp": "24h"})
}

// GetMe returns the current user.
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":     user,
		"features": models.FeaturesFor(user.Tier),
	})
}

// SelectTier records the plan the user picked during onboarding. Checkout
// webhooks can move the tier again later; both are ordinary tier mutations.
// @Summary Select account tier
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SelectTierRequest true "Chosen tier"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /auth/select-tier [post]
func (h *AuthHandler) SelectTier(c echo.Context) error {
	var req SelectTierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	tier := models.Tier(req.Tier)
	userID := middleware.GetUserID(c)

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	if err := h.db.Model(&user).Update("tier", tier).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update tier"})
	}

	user.Tier = tier
	events.Emit("users.tier_changed", &user)

	return c.JSON(http.StatusOK, user)
}

// RequestPasswordReset always answers the same way so the endpoint cannot
// be used to probe which emails exist.
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email for password reset"
// @Success 200 {object} map[string]string
// @Router /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	neutral := map[string]string{"message": "If the email exists, a reset code will be sent"}

	user, err := models.GetUserByEmail(req.Email, h.db)
	if err != nil {
		return c.JSON(http.StatusOK, neutral)
	}

	code, err := utils.GenerateRandomString(10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate reset code"})
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := h.db.Create(&reset).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create reset code"})
	}

	if err := tasks.EnqueuePasswordResetEmail(user.ID, code); err != nil {
		_ = h.log.Error("Failed to queue password reset email", err)
	}

	events.Emit("password.reset", &reset)

	return c.JSON(http.StatusOK, neutral)
}

// VerifyResetCode burns a reset code and sets the new password.
// @Summary Verify reset code and set new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "Reset code and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/password-reset/verify [post]
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req VerifyResetCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var reset models.PasswordReset
	if err := h.db.Where("code = ? AND used = ? AND expires_at > ?",
		req.Code, false, time.Now()).First(&reset).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset code"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	var user models.User
	if err := h.db.Where("id = ?", reset.UserID).First(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get user"})
	}

	h.db.Model(&user).Update("password", string(hashedPassword))
	h.db.Model(&reset).Update("used", true)

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// GoogleAuthCallback signs a user in with a Google access token, provisioning
// an account on first sight.
// @Summary Authenticate with Google
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleAuthCallback(c echo.Context) error {
	accessToken := c.Request().Header.Get("Authorization")
	if accessToken == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No access token provided"})
	}
	accessToken = strings.TrimPrefix(accessToken, "Bearer ")

	userDataBytes, err := utils.GetUserDataFromGoogle(accessToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to get user data from Google"})
	}

	var userData map[string]interface{}
	if err := json.Unmarshal(userDataBytes, &userData); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to parse user data from Google"})
	}

	email, _ := userData["email"].(string)
	providerID, _ := userData["id"].(string)
	if email == "" || providerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to parse user data from Google"})
	}

	var user models.User
	err = h.db.Where("email = ? OR (provider = ? AND provider_id = ?)",
		email, "google", providerID).First(&user).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check user existence"})
		}

		name, _ := userData["name"].(string)
		if name == "" {
			name, _ = userData["given_name"].(string)
		}

		user = models.User{
			Email:        email,
			Name:         name,
			Role:         models.UserRoleUser,
			Tier:         models.Tier(config.GetConfig().Auth.DefaultOAuthTier),
			Provider:     "google",
			ProviderID:   providerID,
			Password:     "",
			ProviderData: datatypes.JSON(userDataBytes),
		}

		if err := h.db.Create(&user).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
		}

		events.Emit("users.created", &user)
	} else if user.Provider == "local" {
		// Link the accounts on first provider sign-in.
		user.Provider = "google"
		user.ProviderID = providerID
		if err := h.db.Save(&user).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user"})
		}
	}

	events.Emit("users.google_auth", &user)

	return h.issueTokens(c, user)
}
