package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/eventease/eventease/internal/helpers"
	"github.com/eventease/eventease/internal/middleware"
	"github.com/eventease/eventease/internal/models"
	"github.com/eventease/eventease/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnnouncementService interface {
	Create(ctx context.Context, in services.CreateAnnouncementInput) (models.Announcement, error)
	List(ctx context.Context) ([]models.Announcement, error)
	Delete(ctx context.Context, id, callerID uuid.UUID, callerRole string) error
}

type ProfileService interface {
	Profile(ctx context.Context, id uuid.UUID) (models.User, error)
}

type AnnouncementHandler struct {
	svc      AnnouncementService
	profiles ProfileService
}

func NewAnnouncementHandler(svc AnnouncementService, profiles ProfileService) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc, profiles: profiles}
}

type CreateAnnouncementRequest struct {
	Title     string     `json:"title" binding:"required"`
	Content   string     `json:"content" binding:"required"`
	Priority  string     `json:"priority" binding:"omitempty,oneof=normal important urgent"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	author := "Event Team"
	if user, err := h.profiles.Profile(c.Request.Context(), userID); err == nil {
		author = user.DisplayName
	}

	announcement, err := h.svc.Create(c.Request.Context(), services.CreateAnnouncementInput{
		Title:     req.Title,
		Content:   req.Content,
		Priority:  req.Priority,
		AuthorID:  userID,
		Author:    author,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.svc.List(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid announcement ID.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID, middleware.CurrentRole(c)); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully."})
}
