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

type ParkingService interface {
	Status(ctx context.Context) ([]services.LotStatus, error)
	Book(ctx context.Context, kind string, userID uuid.UUID) (models.ParkingBooking, error)
	Release(ctx context.Context, kind string, userID uuid.UUID) error
}

type ParkingHandler struct {
	svc ParkingService
}

func NewParkingHandler(svc ParkingService) *ParkingHandler {
	return &ParkingHandler{svc: svc}
}

func (h *ParkingHandler) ParkingStatus(c *gin.Context) {
	statuses, err := h.svc.Status(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	lots := make([]gin.H, 0, len(statuses))
	for _, status := range statuses {
		lots = append(lots, gin.H{
			"kind":      status.Kind,
			"total":     status.Total,
			"booked":    status.Booked,
			"available": status.Available,
		})
	}

	c.JSON(http.StatusOK, gin.H{"lots": lots})
}

type ParkingRequest struct {
	Kind string `json:"kind" binding:"required,oneof=two_wheeler four_wheeler"`
}

func (h *ParkingHandler) BookSlot(c *gin.Context) {
	var req ParkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "kind (two_wheeler|four_wheeler) is required.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	booking, err := h.svc.Book(c.Request.Context(), req.Kind, userID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Parking slot booked successfully.",
		"booking_id": booking.ID,
		"kind":       booking.Kind,
	})
}

func (h *ParkingHandler) ReleaseSlot(c *gin.Context) {
	var req ParkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "kind (two_wheeler|four_wheeler) is required.")
		return
	}

	userID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	if err := h.svc.Release(c.Request.Context(), req.Kind, userID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parking slot released successfully."})
}
