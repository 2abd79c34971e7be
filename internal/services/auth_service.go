package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	RoleByName(ctx context.Context, name string) (models.Role, error)
}

// AuthService is the credential gateway: it registers accounts, issues
// bearer tokens and verifies them. Roles travel only as verified claims.
type AuthService struct {
	users         AuthUserStore
	clock         clock.Clock
	secret        []byte
	tokenTTL      time.Duration
	volunteerCode string
}

func NewAuthService(users AuthUserStore, clk clock.Clock, secret string, tokenTTL time.Duration, volunteerCode string) *AuthService {
	return &AuthService{
		users:         users,
		clock:         clk,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		volunteerCode: volunteerCode,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	AccessCode  string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	if in.Email == "" || in.Password == "" || in.DisplayName == "" {
		return uuid.Nil, models.ErrValidation
	}

	roleName := models.RoleUser
	if in.AccessCode != "" && in.AccessCode == s.volunteerCode {
		roleName = models.RoleVolunteer
	}

	role, err := s.users.RoleByName(ctx, roleName)
	if err != nil {
		return uuid.Nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       in.Email,
		Password:    string(hashedPassword),
		DisplayName: in.DisplayName,
		RoleID:      role.ID,
	}

	if err := s.users.CreateUser(ctx, &user); err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

type LoginResult struct {
	Token       string
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Role        string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return LoginResult{}, models.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return LoginResult{}, models.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role.Name,
		"exp":     s.clock.Now().Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResult{
		Token:       tokenString,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role.Name,
	}, nil
}

// Profile fetches the stored account for a verified identity.
func (s *AuthService) Profile(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.users.UserByID(ctx, id)
}

type TokenClaims struct {
	UserID uuid.UUID
	Role   string
}

// VerifyToken checks signature and expiry. Pure verification, no side
// effects.
func (s *AuthService) VerifyToken(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return TokenClaims{}, models.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, models.ErrInvalidToken
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return TokenClaims{}, models.ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return TokenClaims{UserID: userID, Role: role}, nil
}
