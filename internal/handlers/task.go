package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devnotex/devnotex/internal/services"
	"github.com/devnotex/devnotex/internal/types"
	"github.com/devnotex/devnotex/internal/utils"
)

type TaskHandler struct {
	Tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    *string    `json:"priority"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

// The nullable fields use Optional so an explicit null in the payload clears
// the column instead of being dropped as an omitted key.
type UpdateTaskRequest struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Status      *string                   `json:"status"`
	Priority    types.Optional[string]    `json:"priority"`
	AssignedTo  types.Optional[string]    `json:"assigned_to"`
	DueDate     types.Optional[time.Time] `json:"due_date"`
}

func (h *TaskHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := h.Tasks.List(ctx.Param("project_id"), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	in := services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}

	// Omitted status defaults to backlog.
	if req.Status != "" {
		status, err := types.ParseTaskStatus(req.Status)

		if err != nil {
			respondError(ctx, err)
			return
		}

		in.Status = status
	}

	if req.Priority != nil {
		priority, err := types.ParseTaskPriority(*req.Priority)

		if err != nil {
			respondError(ctx, err)
			return
		}

		in.Priority = &priority
	}

	task, err := h.Tasks.Create(ctx.Param("project_id"), userID, in)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	task, err := h.Tasks.Get(ctx.Param("project_id"), ctx.Param("task_id"), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}

	if req.Status != nil {
		status, err := types.ParseTaskStatus(*req.Status)

		if err != nil {
			respondError(ctx, err)
			return
		}

		patch.Status = &status
	}

	if req.Priority.Set {
		patch.Priority.Set = true

		if req.Priority.Value != nil {
			priority, err := types.ParseTaskPriority(*req.Priority.Value)

			if err != nil {
				respondError(ctx, err)
				return
			}

			patch.Priority.Value = &priority
		}
	}

	task, err := h.Tasks.Update(ctx.Param("project_id"), ctx.Param("task_id"), userID, patch)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.Tasks.Delete(ctx.Param("project_id"), ctx.Param("task_id"), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
