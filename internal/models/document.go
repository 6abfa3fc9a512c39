package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/types"
)

type Document struct {
	ID        string              `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID string              `gorm:"type:char(36);not null;index" json:"project_id"`
	Title     string              `gorm:"size:255;not null" json:"title"`
	Content   string              `gorm:"type:text" json:"content"`
	Type      *types.DocumentType `gorm:"size:16" json:"type"`
	CreatedBy string              `gorm:"type:char(36);not null" json:"created_by"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
