package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eventease/eventease/internal/helpers"
	"github.com/eventease/eventease/internal/middleware"
	"github.com/eventease/eventease/internal/models"
	"github.com/eventease/eventease/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventService interface {
	Create(ctx context.Context, in services.CreateEventInput) (models.Event, error)
	Get(ctx context.Context, id uuid.UUID) (models.Event, error)
	List(ctx context.Context, page, limit int) ([]models.Event, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch services.UpdateEventPatch, callerID uuid.UUID, callerRole string) (models.Event, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string) error
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	RemoveAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	RotateEntryToken(ctx context.Context, eventID, callerID uuid.UUID, callerRole string) (models.Event, string, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" binding:"omitempty,gt=0"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	event, err := h.svc.Create(c.Request.Context(), services.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		OrganizerID: userID,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.svc.Get(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := helpers.StringToInt(page)
	if err != nil || pageNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(limit)
	if err != nil || limitNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	events, totalCount, err := h.svc.List(c.Request.Context(), pageNum, limitNum)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Capacity    *int       `json:"capacity"`
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	event, err := h.svc.Update(c.Request.Context(), eventID, services.UpdateEventPatch{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
	}, userID, middleware.CurrentRole(c))
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), eventID, userID, middleware.CurrentRole(c)); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}

type ManageAttendeesRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Action string    `json:"action" binding:"required,oneof=add remove"`
}

func (h *EventHandler) ManageAttendees(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req ManageAttendeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "user_id and action (add|remove) are required.")
		return
	}

	if req.Action == "add" {
		err = h.svc.AddAttendee(c.Request.Context(), eventID, req.UserID)
	} else {
		err = h.svc.RemoveAttendee(c.Request.Context(), eventID, req.UserID)
	}
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	event, err := h.svc.Get(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// EventEntryQR rotates the event-level entry code and renders it as a QR
// image for the door staff.
func (h *EventHandler) EventEntryQR(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	event, token, err := h.svc.RotateEntryToken(c.Request.Context(), eventID, userID, middleware.CurrentRole(c))
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	payload, err := json.Marshal(gin.H{"event_id": event.ID, "token": token})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to build QR payload.")
		return
	}

	qrImage, err := helpers.RenderQRDataURL(string(payload))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id": event.ID,
		"qr_image": qrImage,
	})
}
