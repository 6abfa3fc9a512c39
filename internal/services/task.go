package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/membership"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/types"
)

type TaskService struct {
	db      *gorm.DB
	members *membership.Authority
}

func NewTaskService(db *gorm.DB, members *membership.Authority) *TaskService {
	return &TaskService{db: db, members: members}
}

type TaskInput struct {
	Title       string
	Description string
	Status      types.TaskStatus // empty means backlog
	Priority    *types.TaskPriority
	AssignedTo  *string
	DueDate     *time.Time
}

// TaskPatch applies only the fields present in the payload. The nullable
// columns use Optional so an explicit null clears them, e.g. unassigning a
// task, while an omitted key leaves them alone.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *types.TaskStatus
	Priority    types.Optional[types.TaskPriority]
	AssignedTo  types.Optional[string]
	DueDate     types.Optional[time.Time]
}

func (s *TaskService) List(projectID, callerID string) ([]models.Task, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	var tasks []models.Task

	if err := s.db.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve tasks", err)
	}

	return tasks, nil
}

func (s *TaskService) Create(projectID, callerID string, in TaskInput) (*models.Task, error) {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return nil, err
	}

	// AssignedTo is deliberately not validated against project membership.
	task := models.Task{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
		CreatedBy:   callerID,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create task", err)
	}

	return &task, nil
}

func (s *TaskService) Get(projectID, taskID, callerID string) (*models.Task, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	return s.fetch(projectID, taskID)
}

func (s *TaskService) Update(projectID, taskID, callerID string, patch TaskPatch) (*models.Task, error) {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return nil, err
	}

	task, err := s.fetch(projectID, taskID)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.Title != nil {
		updates["title"] = *patch.Title
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if patch.Status != nil {
		updates["status"] = *patch.Status
	}

	if patch.Priority.Set {
		updates["priority"] = nullable(patch.Priority.Value)
	}

	if patch.AssignedTo.Set {
		updates["assigned_to"] = nullable(patch.AssignedTo.Value)
	}

	if patch.DueDate.Set {
		updates["due_date"] = nullable(patch.DueDate.Value)
	}

	if len(updates) == 0 {
		return task, nil
	}

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update task", err)
	}

	return s.fetch(projectID, taskID)
}

func (s *TaskService) Delete(projectID, taskID, callerID string) error {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return err
	}

	task, err := s.fetch(projectID, taskID)

	if err != nil {
		return err
	}

	if err := s.db.Delete(task).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete task", err)
	}

	return nil
}

// nullable turns an optional value into something the update map can carry:
// the value itself, or SQL NULL when cleared.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}

	return *v
}

func (s *TaskService) fetch(projectID, taskID string) (*models.Task, error) {
	var task models.Task

	err := s.db.Where("id = ? AND project_id = ?", taskID, projectID).First(&task).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Task not found")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve task", err)
	}

	return &task, nil
}
