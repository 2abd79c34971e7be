package handlers

import (
	"context"
	"net/http"

	"github.com/eventease/eventease/internal/helpers"
	"github.com/eventease/eventease/internal/middleware"
	"github.com/eventease/eventease/internal/models"
	"github.com/eventease/eventease/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LostItemService interface {
	Report(ctx context.Context, in services.ReportItemInput) (models.LostItem, error)
	List(ctx context.Context, status string) ([]models.LostItem, error)
	Claim(ctx context.Context, id, userID uuid.UUID) (models.LostItem, error)
}

type LostItemHandler struct {
	svc LostItemService
}

func NewLostItemHandler(svc LostItemService) *LostItemHandler {
	return &LostItemHandler{svc: svc}
}

func (h *LostItemHandler) ReportItem(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	location := c.PostForm("location")

	if name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var photoPath string
	photoFile, err := c.FormFile("photo")
	if err == nil {
		photoPath, err = helpers.UploadFile(c, photoFile, "lost_items")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	item, err := h.svc.Report(c.Request.Context(), services.ReportItemInput{
		Name:        name,
		Description: description,
		Location:    location,
		PhotoPath:   photoPath,
		ReporterID:  userID,
	})
	if err != nil {
		if photoPath != "" {
			helpers.DeleteFile(photoPath)
		}
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *LostItemHandler) ListItems(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *LostItemHandler) ClaimItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid item ID.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	item, err := h.svc.Claim(c.Request.Context(), id, userID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item claimed successfully.",
		"item":    item,
	})
}
