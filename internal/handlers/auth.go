package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnotex/devnotex/internal/auth"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/services"
	"github.com/devnotex/devnotex/internal/types"
	"github.com/devnotex/devnotex/internal/utils"
)

type AuthHandler struct {
	Identity *services.IdentityService
	Tokens   *auth.TokenManager
}

func NewAuthHandler(identity *services.IdentityService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{Identity: identity, Tokens: tokens}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Identity.Register(req.Email, req.Password, req.FullName)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := h.Tokens.Generate(user.ID)

	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, types.TokenResponse{
		AccessToken: token,
		User:        userResponse(user),
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Identity.Authenticate(req.Email, req.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := h.Tokens.Generate(user.ID)

	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken: token,
		User:        userResponse(user),
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.Identity.UserByID(currentUser.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}
