package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/types"
)

type ProjectMember struct {
	ID        string     `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID string     `gorm:"type:char(36);not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    string     `gorm:"type:char(36);not null;uniqueIndex:idx_project_user" json:"user_id"`
	Role      types.Role `gorm:"size:16;not null" json:"role"`
	JoinedAt  time.Time  `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
