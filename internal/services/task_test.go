package services

import (
	"testing"
	"time"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/types"
)

func TestCreateTaskDefaultsToBacklog(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	project := f.project(t, alice)

	task, err := f.tasks.Create(project.ID, alice.ID, TaskInput{Title: "Untriaged"})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if task.Status != types.StatusBacklog {
		t.Errorf("Create() status = %q, want backlog", task.Status)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	project := f.project(t, alice)

	due := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	priority := types.PriorityHigh
	assignee := "someone-not-a-member"

	created, err := f.tasks.Create(project.ID, alice.ID, TaskInput{
		Title:       "Write the migration",
		Description: "All six tables",
		Status:      types.StatusTodo,
		Priority:    &priority,
		AssignedTo:  &assignee,
		DueDate:     &due,
	})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := f.tasks.Get(project.ID, created.ID, alice.ID)

	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Title != "Write the migration" || got.Description != "All six tables" {
		t.Errorf("Get() = %+v, fields do not round-trip", got)
	}

	if got.Status != types.StatusTodo || got.Priority == nil || *got.Priority != types.PriorityHigh {
		t.Errorf("Get() status/priority = %v/%v", got.Status, got.Priority)
	}

	// Assignee is stored as given, even for non-members.
	if got.AssignedTo == nil || *got.AssignedTo != assignee {
		t.Errorf("Get() assigned_to = %v, want %q", got.AssignedTo, assignee)
	}

	if got.CreatedBy != alice.ID {
		t.Errorf("Get() created_by = %q, want caller", got.CreatedBy)
	}

	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("Get() due_date = %v, want %v", got.DueDate, due)
	}
}

func TestTaskAccessGates(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	eve := f.user(t, "eve@example.com")

	project := f.project(t, alice)

	if _, err := f.projects.AddMember(project.ID, alice.ID, bob.ID, types.RoleViewer); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	task, err := f.tasks.Create(project.ID, alice.ID, TaskInput{Title: "t"})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Non-member: every operation is Forbidden, nothing leaks.
	if _, err := f.tasks.List(project.ID, eve.ID); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("List() by outsider kind = %v, want Forbidden", apperr.KindOf(err))
	}

	if _, err := f.tasks.Get(project.ID, task.ID, eve.ID); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("Get() by outsider kind = %v, want Forbidden", apperr.KindOf(err))
	}

	if _, err := f.tasks.Create(project.ID, eve.ID, TaskInput{Title: "x"}); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("Create() by outsider kind = %v, want Forbidden", apperr.KindOf(err))
	}

	if _, err := f.tasks.Update(project.ID, task.ID, eve.ID, TaskPatch{Title: strPtr("x")}); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("Update() by outsider kind = %v, want Forbidden", apperr.KindOf(err))
	}

	if err := f.tasks.Delete(project.ID, task.ID, eve.ID); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("Delete() by outsider kind = %v, want Forbidden", apperr.KindOf(err))
	}

	// Viewer: reads pass, writes fail.
	if _, err := f.tasks.Get(project.ID, task.ID, bob.ID); err != nil {
		t.Errorf("Get() by viewer error = %v", err)
	}

	if _, err := f.tasks.Create(project.ID, bob.ID, TaskInput{Title: "x"}); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("Create() by viewer kind = %v, want Forbidden", apperr.KindOf(err))
	}
}

func TestTaskScopeMismatchIsNotFound(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")

	projectA := f.project(t, alice)
	projectB := f.project(t, alice)

	task, err := f.tasks.Create(projectA.ID, alice.ID, TaskInput{Title: "t"})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The task exists, but not under project B: its id must read as absent.
	_, err = f.tasks.Get(projectB.ID, task.ID, alice.ID)

	if kind := apperr.KindOf(err); kind != apperr.NotFound {
		t.Errorf("cross-scope Get() kind = %v, want NotFound", kind)
	}
}

func TestTaskPartialUpdate(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	project := f.project(t, alice)

	task, err := f.tasks.Create(project.ID, alice.ID, TaskInput{
		Title:       "Original",
		Description: "Keep me",
	})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	status := types.StatusInProgress

	updated, err := f.tasks.Update(project.ID, task.ID, alice.ID, TaskPatch{Status: &status})

	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != types.StatusInProgress {
		t.Errorf("status = %q, want in_progress", updated.Status)
	}

	if updated.Title != "Original" || updated.Description != "Keep me" {
		t.Errorf("omitted fields changed: %+v", updated)
	}
}

func TestTaskExplicitNullClearsFields(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	project := f.project(t, alice)

	due := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	priority := types.PriorityHigh
	assignee := "bob"

	task, err := f.tasks.Create(project.ID, alice.ID, TaskInput{
		Title:      "Assigned",
		Priority:   &priority,
		AssignedTo: &assignee,
		DueDate:    &due,
	})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Set with a nil Value is the explicit null: clear the column.
	updated, err := f.tasks.Update(project.ID, task.ID, alice.ID, TaskPatch{
		Priority:   types.Optional[types.TaskPriority]{Set: true},
		AssignedTo: types.Optional[string]{Set: true},
		DueDate:    types.Optional[time.Time]{Set: true},
	})

	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Priority != nil {
		t.Errorf("priority = %v, want cleared", *updated.Priority)
	}

	if updated.AssignedTo != nil {
		t.Errorf("assigned_to = %q, want cleared", *updated.AssignedTo)
	}

	if updated.DueDate != nil {
		t.Errorf("due_date = %v, want cleared", updated.DueDate)
	}

	if updated.Title != "Assigned" {
		t.Errorf("title = %q, omitted field changed", updated.Title)
	}
}

func TestTaskEmptyPatchIsNoOp(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	project := f.project(t, alice)

	task, err := f.tasks.Create(project.ID, alice.ID, TaskInput{Title: "t"})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	before, err := f.tasks.Get(project.ID, task.ID, alice.ID)

	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	after, err := f.tasks.Update(project.ID, task.ID, alice.ID, TaskPatch{})

	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("empty patch advanced updated_at from %v to %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestTaskDelete(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	project := f.project(t, alice)

	task, err := f.tasks.Create(project.ID, alice.ID, TaskInput{Title: "t"})

	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := f.tasks.Delete(project.ID, task.ID, alice.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = f.tasks.Get(project.ID, task.ID, alice.ID)

	if kind := apperr.KindOf(err); kind != apperr.NotFound {
		t.Errorf("Get() after delete kind = %v, want NotFound", kind)
	}
}
