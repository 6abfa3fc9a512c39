package types

import (
	"github.com/devnotex/devnotex/internal/apperr"
)

// Role is a project-scoped membership role. The set is closed; anything else
// is rejected at the API boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMember, RoleViewer:
		return Role(s), nil
	}
	return "", apperr.New(apperr.Validation, "Invalid role: "+s)
}

// CanWrite reports whether the role may create, edit or delete project
// sub-resources. Viewers are read-only.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleMember
}

type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return TaskStatus(s), nil
	}
	return "", apperr.New(apperr.Validation, "Invalid task status: "+s)
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return TaskPriority(s), nil
	}
	return "", apperr.New(apperr.Validation, "Invalid task priority: "+s)
}

type DocumentType string

const (
	DocSetup       DocumentType = "setup"
	DocEnvironment DocumentType = "environment"
	DocDeployment  DocumentType = "deployment"
	DocGeneral     DocumentType = "general"
)

func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocSetup, DocEnvironment, DocDeployment, DocGeneral:
		return DocumentType(s), nil
	}
	return "", apperr.New(apperr.Validation, "Invalid document type: "+s)
}
