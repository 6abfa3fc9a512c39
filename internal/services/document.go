package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/membership"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/types"
)

type DocumentService struct {
	db      *gorm.DB
	members *membership.Authority
}

func NewDocumentService(db *gorm.DB, members *membership.Authority) *DocumentService {
	return &DocumentService{db: db, members: members}
}

type DocumentInput struct {
	Title   string
	Content string
	Type    *types.DocumentType
}

// DocumentPatch applies only the fields present in the payload. Type uses
// Optional so an explicit null clears the classification.
type DocumentPatch struct {
	Title   *string
	Content *string
	Type    types.Optional[types.DocumentType]
}

func (s *DocumentService) List(projectID, callerID string) ([]models.Document, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	var documents []models.Document

	if err := s.db.Where("project_id = ?", projectID).Find(&documents).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve documents", err)
	}

	return documents, nil
}

func (s *DocumentService) Create(projectID, callerID string, in DocumentInput) (*models.Document, error) {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return nil, err
	}

	document := models.Document{
		ProjectID: projectID,
		Title:     in.Title,
		Content:   in.Content,
		Type:      in.Type,
		CreatedBy: callerID,
	}

	if err := s.db.Create(&document).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create document", err)
	}

	return &document, nil
}

func (s *DocumentService) Get(projectID, docID, callerID string) (*models.Document, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	return s.fetch(projectID, docID)
}

func (s *DocumentService) Update(projectID, docID, callerID string, patch DocumentPatch) (*models.Document, error) {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return nil, err
	}

	document, err := s.fetch(projectID, docID)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.Title != nil {
		updates["title"] = *patch.Title
	}

	if patch.Content != nil {
		updates["content"] = *patch.Content
	}

	if patch.Type.Set {
		updates["type"] = nullable(patch.Type.Value)
	}

	if len(updates) == 0 {
		return document, nil
	}

	if err := s.db.Model(document).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update document", err)
	}

	return s.fetch(projectID, docID)
}

func (s *DocumentService) Delete(projectID, docID, callerID string) error {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return err
	}

	document, err := s.fetch(projectID, docID)

	if err != nil {
		return err
	}

	if err := s.db.Delete(document).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete document", err)
	}

	return nil
}

func (s *DocumentService) fetch(projectID, docID string) (*models.Document, error) {
	var document models.Document

	err := s.db.Where("id = ? AND project_id = ?", docID, projectID).First(&document).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Document not found")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve document", err)
	}

	return &document, nil
}
