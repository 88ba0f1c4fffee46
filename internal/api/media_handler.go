package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitflow/schedule-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves progress photo endpoints for clients.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// --- Request/Response Structs ---

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"` // Must be image/*
}

type ConfirmPhotoRequest struct {
	ObjectKey   string     `json:"objectKey" binding:"required"`
	FileName    string     `json:"fileName" binding:"required"`
	ContentType string     `json:"contentType" binding:"required"`
	Size        int64      `json:"size" binding:"required,min=1"`
	TakenAt     *time.Time `json:"takenAt"`
}

// --- Handler Methods ---

// RequestUploadURL godoc
// @Summary Get a presigned URL for uploading a progress photo
// @Tags Client
// @Router /client/photos/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	clientID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.mediaService.RequestPhotoUploadURL(c.Request.Context(), clientID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload godoc
// @Summary Confirm a completed photo upload and record its metadata
// @Tags Client
// @Router /client/photos [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	clientID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	photo, err := h.mediaService.ConfirmPhotoUpload(c.Request.Context(), clientID, req.ObjectKey, req.FileName, req.Size, req.ContentType, req.TakenAt)
	if err != nil {
		if errors.Is(err, service.ErrPhotoAccessDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		}
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// GetPhotos godoc
// @Summary List the client's progress photos with download URLs
// @Tags Client
// @Router /client/photos [get]
func (h *MediaHandler) GetPhotos(c *gin.Context) {
	clientID, ok := mustUserObjectID(c)
	if !ok {
		return
	}

	photos, err := h.mediaService.GetMyPhotos(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}
