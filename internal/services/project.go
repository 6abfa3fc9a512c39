package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/membership"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/types"
)

type ProjectService struct {
	db      *gorm.DB
	members *membership.Authority
}

func NewProjectService(db *gorm.DB, members *membership.Authority) *ProjectService {
	return &ProjectService{db: db, members: members}
}

type ProjectInput struct {
	Name        string
	Description string
	RepoURL     string
}

type ProjectPatch struct {
	Name        *string
	Description *string
	RepoURL     *string
}

// Create makes the project and enrolls the creator as admin in one
// transaction. Either both rows land or neither does.
func (s *ProjectService) Create(callerID string, in ProjectInput) (*models.Project, error) {
	project := models.Project{
		Name:        in.Name,
		Description: in.Description,
		RepoURL:     in.RepoURL,
		CreatedBy:   callerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create project", err)
		}

		if _, err := s.members.EnrollTx(tx, project.ID, callerID, types.RoleAdmin); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns every project the caller has any membership in.
func (s *ProjectService) List(callerID string) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", callerID).
		Find(&projects).Error

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve projects", err)
	}

	return projects, nil
}

func (s *ProjectService) Get(projectID, callerID string) (*models.Project, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	return s.fetch(projectID)
}

func (s *ProjectService) Update(projectID, callerID string, patch ProjectPatch) (*models.Project, error) {
	if _, err := s.members.RequireRole(projectID, callerID, types.RoleAdmin); err != nil {
		return nil, err
	}

	project, err := s.fetch(projectID)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if patch.RepoURL != nil {
		updates["repo_url"] = *patch.RepoURL
	}

	// An empty patch is a no-op: nothing written, updated_at untouched.
	if len(updates) == 0 {
		return project, nil
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update project", err)
	}

	return s.fetch(projectID)
}

// Delete removes the project and its memberships, notes, tasks and documents
// in one transaction, so the whole subtree disappears atomically.
func (s *ProjectService) Delete(projectID, callerID string) error {
	if _, err := s.members.RequireRole(projectID, callerID, types.RoleAdmin); err != nil {
		return err
	}

	project, err := s.fetch(projectID)

	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&models.Note{},
			&models.Task{},
			&models.Document{},
			&models.ProjectMember{},
		} {
			if err := tx.Where("project_id = ?", projectID).Delete(dependent).Error; err != nil {
				return err
			}
		}

		return tx.Delete(project).Error
	})

	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete project", err)
	}

	return nil
}

// Stats counts the project's tasks and how many of them are done.
func (s *ProjectService) Stats(projectID, callerID string) (types.ProjectStats, error) {
	var stats types.ProjectStats

	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return stats, err
	}

	err := s.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&stats.TasksTotal).Error

	if err != nil {
		return stats, apperr.Wrap(apperr.Internal, "Failed to count tasks", err)
	}

	err = s.db.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, types.StatusDone).
		Count(&stats.TasksCompleted).Error

	if err != nil {
		return stats, apperr.Wrap(apperr.Internal, "Failed to count completed tasks", err)
	}

	return stats, nil
}

// Members lists the project's membership rows. Any role may read them.
func (s *ProjectService) Members(projectID, callerID string) ([]models.ProjectMember, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	var rows []models.ProjectMember

	if err := s.db.Where("project_id = ?", projectID).Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve members", err)
	}

	return rows, nil
}

// AddMember enrolls an existing user into the project. Admin only; enrolling
// an existing member is a Conflict.
func (s *ProjectService) AddMember(projectID, callerID, userID string, role types.Role) (*models.ProjectMember, error) {
	if _, err := s.members.RequireRole(projectID, callerID, types.RoleAdmin); err != nil {
		return nil, err
	}

	var user models.User

	err := s.db.Where("id = ?", userID).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch user", err)
	}

	return s.members.Enroll(projectID, userID, role)
}

// RemoveMember deletes a membership row by id. Admin only.
func (s *ProjectService) RemoveMember(projectID, memberID, callerID string) error {
	if _, err := s.members.RequireRole(projectID, callerID, types.RoleAdmin); err != nil {
		return err
	}

	var member models.ProjectMember

	err := s.db.Where("id = ? AND project_id = ?", memberID, projectID).First(&member).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "Member not found")
	}

	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to fetch member", err)
	}

	if err := s.db.Delete(&member).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to remove member", err)
	}

	return nil
}

func (s *ProjectService) fetch(projectID string) (*models.Project, error) {
	var project models.Project

	err := s.db.Where("id = ?", projectID).First(&project).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Project not found")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve project", err)
	}

	return &project, nil
}
