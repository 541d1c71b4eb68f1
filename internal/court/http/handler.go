package http

import (
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mattsff/courte-rental/internal/auth"
	"github.com/mattsff/courte-rental/internal/court"
	"github.com/mattsff/courte-rental/internal/pkg/request"
	"github.com/mattsff/courte-rental/internal/pkg/response"
	"github.com/mattsff/courte-rental/internal/pkg/storage"
)

// maxImageSizeBytes bounds court photo uploads.
const maxImageSizeBytes = 5 << 20

type Handler struct {
	service   court.Service
	files     storage.Storage
	processor *storage.ImageProcessor
}

func NewHandler(service court.Service, files storage.Storage, processor *storage.ImageProcessor) *Handler {
	return &Handler{
		service:   service,
		files:     files,
		processor: processor,
	}
}

func (h *Handler) List(c *gin.Context) {
	courts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ct, err := h.service.Create(c.Request.Context(), court.CreateRequest{
		Name:         body.Name,
		Type:         body.Type,
		PricePerHour: body.PricePerHour,
		Description:  body.Description,
		Amenities:    body.Amenities,
	}, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCourtResponse(ct))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	var body UpdateCourtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ct, err := h.service.Update(c.Request.Context(), uri.ID, court.UpdateRequest{
		Name:         body.Name,
		Type:         body.Type,
		PricePerHour: body.PricePerHour,
		IsAvailable:  body.IsAvailable,
		Description:  body.Description,
		Amenities:    body.Amenities,
	}, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetActor(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /courts/:id/images: multipart photo upload,
// normalized to JPEG, stored locally and appended to the court's images.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds maximum size"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer src.Close()

	normalized, err := h.processor.NormalizeJPEG(src, 1600, 1600)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a valid image"})
		return
	}

	relPath := path.Join("courts", uri.ID, fmt.Sprintf("%s.jpg", uuid.NewString()))
	if err := h.files.Save(c.Request.Context(), relPath, normalized); err != nil {
		response.Error(c, err)
		return
	}

	url := "/uploads/" + relPath
	ct, err := h.service.AddImage(c.Request.Context(), uri.ID, url, auth.GetActor(c))
	if err != nil {
		// Roll back the stored file so a failed append leaves no orphan.
		_ = h.files.Delete(c.Request.Context(), relPath)
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

// UpsertMaintenance handles PUT /courts/:id/maintenance.
func (h *Handler) UpsertMaintenance(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	var body MaintenanceWindowBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ct, err := h.service.UpsertMaintenanceWindow(c.Request.Context(), uri.ID, court.MaintenanceWindow{
		ID:          body.ID,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		Description: body.Description,
		Status:      court.MaintenanceStatus(body.Status),
	}, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(ct))
}
