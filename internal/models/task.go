package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/types"
)

type Task struct {
	ID          string              `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID   string              `gorm:"type:char(36);not null;index" json:"project_id"`
	Title       string              `gorm:"size:255;not null" json:"title"`
	Description string              `gorm:"type:text" json:"description"`
	Status      types.TaskStatus    `gorm:"size:16;not null;default:backlog" json:"status"`
	Priority    *types.TaskPriority `gorm:"size:16" json:"priority"`
	AssignedTo  *string             `gorm:"type:char(36)" json:"assigned_to"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedBy   string              `gorm:"type:char(36);not null" json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = types.StatusBacklog
	}
	return nil
}
