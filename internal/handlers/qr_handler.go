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

type TicketService interface {
	Issue(ctx context.Context, eventID, userID uuid.UUID) (models.Ticket, error)
	Validate(ctx context.Context, token string, eventID uuid.UUID) (services.ValidateResult, error)
}

type QRHandler struct {
	svc    TicketService
	secret string
}

func NewQRHandler(svc TicketService, secret string) *QRHandler {
	return &QRHandler{svc: svc, secret: secret}
}

type GenerateQRRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	UserID  uuid.UUID `json:"user_id"`
}

func (h *QRHandler) GenerateQR(c *gin.Context) {
	var req GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "event_id is required.")
		return
	}

	callerID, exists := middleware.CurrentUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	userID := req.UserID
	if userID == uuid.Nil {
		userID = callerID
	}

	// Plain users only issue for themselves; staff may issue on behalf
	// of any attendee.
	if userID != callerID {
		role := middleware.CurrentRole(c)
		if role != models.RoleVolunteer && role != models.RoleAdmin {
			helpers.RespondWithError(c, http.StatusForbidden, "You can only generate a ticket for yourself.")
			return
		}
	}

	ticket, err := h.svc.Issue(c.Request.Context(), req.EventID, userID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	payload, err := helpers.BuildQRPayload(h.secret, ticket)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to build QR payload.")
		return
	}

	qrImage, err := helpers.RenderQRDataURL(payload)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    ticket.Token,
		"qr_image": qrImage,
	})
}

type ValidateQRRequest struct {
	Token     string    `json:"token" binding:"required"`
	EventID   uuid.UUID `json:"event_id" binding:"required"`
	UserID    string    `json:"user_id"`
	IssuedAt  int64     `json:"issued_at"`
	Signature string    `json:"signature"`
}

func (h *QRHandler) ValidateQR(c *gin.Context) {
	var req ValidateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "token and event_id are required.")
		return
	}

	// Scanners that post the full decoded payload get the signature
	// checked before any store work; a tampered payload never reaches
	// the token lookup.
	if req.Signature != "" {
		payload := helpers.QRPayload{
			Token:     req.Token,
			EventID:   req.EventID.String(),
			UserID:    req.UserID,
			IssuedAt:  req.IssuedAt,
			Signature: req.Signature,
		}
		if !helpers.VerifyQRSignature(h.secret, payload) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid ticket signature.")
			return
		}
	}

	result, err := h.svc.Validate(c.Request.Context(), req.Token, req.EventID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"message": "Ticket validated successfully.",
		"user_id": result.UserID,
	})
}
