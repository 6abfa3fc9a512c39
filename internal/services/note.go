package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/membership"
	"github.com/devnotex/devnotex/internal/models"
)

type NoteService struct {
	db      *gorm.DB
	members *membership.Authority
}

func NewNoteService(db *gorm.DB, members *membership.Authority) *NoteService {
	return &NoteService{db: db, members: members}
}

type NoteInput struct {
	Title   string
	Content string
}

type NotePatch struct {
	Title   *string
	Content *string
}

func (s *NoteService) List(projectID, callerID string) ([]models.Note, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	var notes []models.Note

	if err := s.db.Where("project_id = ?", projectID).Find(&notes).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve notes", err)
	}

	return notes, nil
}

func (s *NoteService) Create(projectID, callerID string, in NoteInput) (*models.Note, error) {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return nil, err
	}

	note := models.Note{
		ProjectID: projectID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedBy: callerID,
	}

	if err := s.db.Create(&note).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create note", err)
	}

	return &note, nil
}

func (s *NoteService) Get(projectID, noteID, callerID string) (*models.Note, error) {
	if _, err := s.members.RequireAnyRole(projectID, callerID); err != nil {
		return nil, err
	}

	return s.fetch(projectID, noteID)
}

func (s *NoteService) Update(projectID, noteID, callerID string, patch NotePatch) (*models.Note, error) {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return nil, err
	}

	note, err := s.fetch(projectID, noteID)

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

	if len(updates) == 0 {
		return note, nil
	}

	if err := s.db.Model(note).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update note", err)
	}

	return s.fetch(projectID, noteID)
}

func (s *NoteService) Delete(projectID, noteID, callerID string) error {
	if _, err := s.members.RequireWriteRole(projectID, callerID); err != nil {
		return err
	}

	note, err := s.fetch(projectID, noteID)

	if err != nil {
		return err
	}

	if err := s.db.Delete(note).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete note", err)
	}

	return nil
}

// fetch requires both the note id and the claimed project to match, so a note
// id from another project reads as absent rather than leaking existence.
func (s *NoteService) fetch(projectID, noteID string) (*models.Note, error) {
	var note models.Note

	err := s.db.Where("id = ? AND project_id = ?", noteID, projectID).First(&note).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Note not found")
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to retrieve note", err)
	}

	return &note, nil
}
