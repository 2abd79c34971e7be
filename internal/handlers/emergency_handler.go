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

type EmergencyService interface {
	Raise(ctx context.Context, in services.RaiseEmergencyInput) (models.Emergency, error)
	List(ctx context.Context, status string) ([]models.Emergency, error)
	Resolve(ctx context.Context, id, resolverID uuid.UUID) (models.Emergency, error)
}

type EmergencyHandler struct {
	svc EmergencyService
}

func NewEmergencyHandler(svc EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{svc: svc}
}

type RaiseEmergencyRequest struct {
	Kind      string  `json:"kind" binding:"required"`
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *EmergencyHandler) RaiseEmergency(c *gin.Context) {
	var req RaiseEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "kind is required.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	emergency, err := h.svc.Raise(c.Request.Context(), services.RaiseEmergencyInput{
		UserID:    userID,
		Kind:      req.Kind,
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, emergency)
}

func (h *EmergencyHandler) ListEmergencies(c *gin.Context) {
	status := c.DefaultQuery("status", models.EmergencyActive)

	emergencies, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emergencies": emergencies})
}

func (h *EmergencyHandler) ResolveEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid emergency ID.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	emergency, err := h.svc.Resolve(c.Request.Context(), id, userID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Emergency resolved.",
		"emergency": emergency,
	})
}
