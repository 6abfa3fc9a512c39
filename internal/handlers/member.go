package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnotex/devnotex/internal/services"
	"github.com/devnotex/devnotex/internal/types"
	"github.com/devnotex/devnotex/internal/utils"
)

type MemberHandler struct {
	Projects *services.ProjectService
}

func NewMemberHandler(projects *services.ProjectService) *MemberHandler {
	return &MemberHandler{Projects: projects}
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func (h *MemberHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	members, err := h.Projects.Members(ctx.Param("project_id"), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}

func (h *MemberHandler) Add(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AddMemberRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role, err := types.ParseRole(req.Role)

	if err != nil {
		respondError(ctx, err)
		return
	}

	member, err := h.Projects.AddMember(ctx.Param("project_id"), userID, req.UserID, role)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

func (h *MemberHandler) Remove(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.Projects.RemoveMember(ctx.Param("project_id"), ctx.Param("member_id"), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
