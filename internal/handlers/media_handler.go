package handlers

import (
	"io"
	"net/http"
	"strings"

	"brandbase/internal/api/middleware"
	"brandbase/internal/models"
	"brandbase/internal/utils"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const maxMediaSize = 25 << 20 // 25 MiB

type MediaHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaHandler(db *gorm.DB) *MediaHandler {
	return &MediaHandler{db: db, log: logger.New("MediaHandler")}
}

// List returns the caller's media library, newest first.
// @Summary List media assets
// @Tags media
// @Produce json
// @Success 200 {object} map[string][]models.MediaAsset
// @Router /media [get]
func (h *MediaHandler) List(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var assets []models.MediaAsset
	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		_ = h.log.Error("Failed to list media", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"media": assets})
}

// Upload stores a multipart file in the object store and records it.
// @Summary Upload a media asset
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /media [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Content-Type must be multipart/form-data",
		})
	}

	storage := GetStorageHandler()
	if storage == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Storage handler not configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}
	if file.Size > maxMediaSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "File too large"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to open file"})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read file"})
	}

	key, err := storage.UploadFile(c.Request().Context(), content, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload file"})
	}

	asset := &models.MediaAsset{
		UserID: middleware.GetUserID(c),
		Path:   key,
		Name:   file.Filename,
		Size:   file.Size,
		Type:   file.Header.Get("Content-Type"),
	}

	if err := h.db.Create(asset).Error; err != nil {
		_ = h.log.Error("Failed to record media asset", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save media asset"})
	}

	h.log.Success("Media uploaded: %s", key)
	return c.JSON(http.StatusCreated, map[string]interface{}{"media": asset})
}

type importMediaRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name"`
}

// Import fetches a remote file by URL into the media library.
// @Summary Import a media asset from a URL
// @Tags media
// @Accept json
// @Produce json
// @Param request body importMediaRequest true "Remote file"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /media/import [post]
func (h *MediaHandler) Import(c echo.Context) error {
	var req importMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	storage := GetStorageHandler()
	if storage == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Storage handler not configured",
		})
	}

	content, contentType, err := utils.DownloadFile(req.URL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to download file"})
	}
	if len(content) > maxMediaSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "File too large"})
	}

	name := req.Name
	if name == "" {
		name = req.URL[strings.LastIndex(req.URL, "/")+1:]
	}

	key, err := storage.UploadFile(c.Request().Context(), content, name, contentType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload file"})
	}

	asset := &models.MediaAsset{
		UserID: middleware.GetUserID(c),
		Path:   key,
		Name:   name,
		Size:   int64(len(content)),
		Type:   contentType,
	}

	if err := h.db.Create(asset).Error; err != nil {
		_ = h.log.Error("Failed to record media asset", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save media asset"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"media": asset})
}

type deleteMediaRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// Delete removes an asset the caller owns, from both the store and the
// database. An asset owned by someone else reads as absent.
// @Summary Delete a media asset
// @Tags media
// @Accept json
// @Produce json
// @Param request body deleteMediaRequest true "Asset id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /media [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	var req deleteMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	var asset models.MediaAsset
	if err := h.db.Where("id = ? AND user_id = ?", req.ID, userID).First(&asset).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	if storage := GetStorageHandler(); storage != nil {
		if err := storage.DeleteFile(c.Request().Context(), asset.Path); err != nil {
			// Keep going; an orphaned object is better than a dangling row.
			_ = h.log.Error("Failed to delete stored object", err)
		}
	}

	if err := h.db.Delete(&asset).Error; err != nil {
		_ = h.log.Error("Failed to delete media asset", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Media deleted successfully"})
}
