package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/membership"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/testutil"
)

type fixture struct {
	db        *gorm.DB
	members   *membership.Authority
	identity  *IdentityService
	projects  *ProjectService
	notes     *NoteService
	tasks     *TaskService
	documents *DocumentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.OpenTestDB(t)
	members := membership.NewAuthority(gdb)

	return &fixture{
		db:        gdb,
		members:   members,
		identity:  NewIdentityService(gdb),
		projects:  NewProjectService(gdb, members),
		notes:     NewNoteService(gdb, members),
		tasks:     NewTaskService(gdb, members),
		documents: NewDocumentService(gdb, members),
	}
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := f.identity.Register(email, "password123", "Test User")

	if err != nil {
		t.Fatalf("Register(%q) error = %v", email, err)
	}

	return user
}

func (f *fixture) project(t *testing.T, owner *models.User) *models.Project {
	t.Helper()

	project, err := f.projects.Create(owner.ID, ProjectInput{Name: "Workspace"})

	if err != nil {
		t.Fatalf("Create project error = %v", err)
	}

	return project
}

func strPtr(s string) *string { return &s }
