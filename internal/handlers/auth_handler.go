package handlers

import (
	"context"
	"net/http"

	"github.com/eventease/eventease/internal/helpers"
	"github.com/eventease/eventease/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (services.LoginResult, error)
	VerifyToken(token string) (services.TokenClaims, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name" binding:"required"`
	AccessCode  string `json:"access_code"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	uid, err := h.svc.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		AccessCode:  req.AccessCode,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"uid":     uid,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user": gin.H{
			"uid":          result.UserID,
			"email":        result.Email,
			"display_name": result.DisplayName,
			"role":         result.Role,
		},
	})
}

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Token is required.")
		return
	}

	claims, err := h.svc.VerifyToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"valid":   false,
			"message": "Invalid or expired token.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"uid":   claims.UserID,
		"role":  claims.Role,
	})
}
