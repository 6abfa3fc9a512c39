// Package membership is the single source of truth for project authorization.
// Every resource service gates through it; no handler or service queries
// project_members directly.
package membership

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/types"
)

type Authority struct {
	db *gorm.DB
}

func NewAuthority(db *gorm.DB) *Authority {
	return &Authority{db: db}
}

// MembershipOf returns the membership row for (projectID, userID), or nil if
// the user is not a member.
func (a *Authority) MembershipOf(projectID, userID string) (*models.ProjectMember, error) {
	var member models.ProjectMember

	err := a.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to look up membership", err)
	}

	return &member, nil
}

// RequireAnyRole admits any member regardless of role. Used for reads.
func (a *Authority) RequireAnyRole(projectID, userID string) (*models.ProjectMember, error) {
	member, err := a.MembershipOf(projectID, userID)

	if err != nil {
		return nil, err
	}

	if member == nil {
		return nil, apperr.New(apperr.Forbidden, "You don't have access to this project")
	}

	return member, nil
}

// RequireWriteRole admits admins and members. Used for mutating notes, tasks
// and documents.
func (a *Authority) RequireWriteRole(projectID, userID string) (*models.ProjectMember, error) {
	member, err := a.RequireAnyRole(projectID, userID)

	if err != nil {
		return nil, err
	}

	if !member.Role.CanWrite() {
		return nil, apperr.New(apperr.Forbidden, "You don't have permission to modify this project")
	}

	return member, nil
}

// RequireRole admits only an exact role match. Project update and delete
// require exactly admin.
func (a *Authority) RequireRole(projectID, userID string, role types.Role) (*models.ProjectMember, error) {
	member, err := a.RequireAnyRole(projectID, userID)

	if err != nil {
		return nil, err
	}

	if member.Role != role {
		return nil, apperr.New(apperr.Forbidden, "You need "+string(role)+" role for this action")
	}

	return member, nil
}

// Enroll adds userID to projectID with role. At most one membership row may
// exist per (project, user) pair; a second enrollment is a Conflict.
func (a *Authority) Enroll(projectID, userID string, role types.Role) (*models.ProjectMember, error) {
	return a.enroll(a.db, projectID, userID, role)
}

// EnrollTx is Enroll inside an existing transaction, for callers that create
// the project and its first admin atomically.
func (a *Authority) EnrollTx(tx *gorm.DB, projectID, userID string, role types.Role) (*models.ProjectMember, error) {
	return a.enroll(tx, projectID, userID, role)
}

// enroll inserts directly and lets the idx_project_user unique index arbitrate
// duplicates, so two concurrent enrollments of the same pair both resolve to
// Conflict rather than the loser surfacing a raw driver error.
func (a *Authority) enroll(db *gorm.DB, projectID, userID string, role types.Role) (*models.ProjectMember, error) {
	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}

	if err := db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isMember(db, projectID, userID) {
			return nil, apperr.New(apperr.Conflict, "User is already a member of this project")
		}

		return nil, apperr.Wrap(apperr.Internal, "Failed to enroll member", err)
	}

	return &member, nil
}

func isMember(db *gorm.DB, projectID, userID string) bool {
	var count int64

	db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count)

	return count > 0
}
