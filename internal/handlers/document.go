package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnotex/devnotex/internal/services"
	"github.com/devnotex/devnotex/internal/types"
	"github.com/devnotex/devnotex/internal/utils"
)

type DocumentHandler struct {
	Documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Documents: documents}
}

type CreateDocumentRequest struct {
	Title   string  `json:"title" binding:"required"`
	Content string  `json:"content"`
	Type    *string `json:"type"`
}

// Type uses Optional so an explicit null in the payload clears the
// classification instead of being dropped as an omitted key.
type UpdateDocumentRequest struct {
	Title   *string                `json:"title"`
	Content *string                `json:"content"`
	Type    types.Optional[string] `json:"type"`
}

func (h *DocumentHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	documents, err := h.Documents.List(ctx.Param("project_id"), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, documents)
}

func (h *DocumentHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateDocumentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	in := services.DocumentInput{
		Title:   req.Title,
		Content: req.Content,
	}

	if req.Type != nil {
		docType, err := types.ParseDocumentType(*req.Type)

		if err != nil {
			respondError(ctx, err)
			return
		}

		in.Type = &docType
	}

	document, err := h.Documents.Create(ctx.Param("project_id"), userID, in)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, document)
}

func (h *DocumentHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	document, err := h.Documents.Get(ctx.Param("project_id"), ctx.Param("doc_id"), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, document)
}

func (h *DocumentHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateDocumentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := services.DocumentPatch{
		Title:   req.Title,
		Content: req.Content,
	}

	if req.Type.Set {
		patch.Type.Set = true

		if req.Type.Value != nil {
			docType, err := types.ParseDocumentType(*req.Type.Value)

			if err != nil {
				respondError(ctx, err)
				return
			}

			patch.Type.Value = &docType
		}
	}

	document, err := h.Documents.Update(ctx.Param("project_id"), ctx.Param("doc_id"), userID, patch)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, document)
}

func (h *DocumentHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.Documents.Delete(ctx.Param("project_id"), ctx.Param("doc_id"), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
