package membership

import (
	"testing"

	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/apperr"
	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/testutil"
	"github.com/devnotex/devnotex/internal/types"
)

func setup(t *testing.T) (*gorm.DB, *Authority, *models.User, *models.Project) {
	t.Helper()

	gdb := testutil.OpenTestDB(t)

	user := models.User{Email: "alice@example.com", PasswordHash: "x", FullName: "Alice"}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	project := models.Project{Name: "P", CreatedBy: user.ID}

	if err := gdb.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	return gdb, NewAuthority(gdb), &user, &project
}

func TestMembershipOfAbsent(t *testing.T) {
	_, authority, user, project := setup(t)

	member, err := authority.MembershipOf(project.ID, user.ID)

	if err != nil {
		t.Fatalf("MembershipOf() error = %v", err)
	}

	if member != nil {
		t.Errorf("MembershipOf() = %+v, want nil for non-member", member)
	}
}

func TestEnrollAndLookup(t *testing.T) {
	_, authority, user, project := setup(t)

	enrolled, err := authority.Enroll(project.ID, user.ID, types.RoleViewer)

	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	if enrolled.Role != types.RoleViewer {
		t.Errorf("Enroll() role = %q, want viewer", enrolled.Role)
	}

	member, err := authority.MembershipOf(project.ID, user.ID)

	if err != nil {
		t.Fatalf("MembershipOf() error = %v", err)
	}

	if member == nil || member.ID != enrolled.ID {
		t.Errorf("MembershipOf() = %+v, want row %s", member, enrolled.ID)
	}
}

func TestEnrollTwiceIsConflict(t *testing.T) {
	gdb, authority, user, project := setup(t)

	if _, err := authority.Enroll(project.ID, user.ID, types.RoleMember); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	_, err := authority.Enroll(project.ID, user.ID, types.RoleAdmin)

	if kind := apperr.KindOf(err); kind != apperr.Conflict {
		t.Fatalf("second Enroll() error kind = %v, want Conflict", kind)
	}

	var count int64

	gdb.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Count(&count)

	if count != 1 {
		t.Errorf("membership rows = %d, want 1", count)
	}
}

// A membership row inserted outside the authority, as a concurrent request
// would, must still surface as Conflict rather than a raw driver error.
func TestEnrollAgainstExistingRow(t *testing.T) {
	gdb, authority, user, project := setup(t)

	row := models.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: types.RoleMember}

	if err := gdb.Create(&row).Error; err != nil {
		t.Fatalf("Failed to create membership row: %v", err)
	}

	_, err := authority.Enroll(project.ID, user.ID, types.RoleViewer)

	if kind := apperr.KindOf(err); kind != apperr.Conflict {
		t.Fatalf("Enroll() error kind = %v, want Conflict", kind)
	}
}

func TestRequireGates(t *testing.T) {
	tests := []struct {
		name     string
		role     types.Role
		enrolled bool
		check    func(a *Authority, projectID, userID string) error
		wantKind apperr.Kind // 0 means success
	}{
		{
			name:     "any role rejects non-member",
			enrolled: false,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireAnyRole(p, u)
				return err
			},
			wantKind: apperr.Forbidden,
		},
		{
			name:     "any role admits viewer",
			role:     types.RoleViewer,
			enrolled: true,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireAnyRole(p, u)
				return err
			},
		},
		{
			name:     "write role rejects viewer",
			role:     types.RoleViewer,
			enrolled: true,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireWriteRole(p, u)
				return err
			},
			wantKind: apperr.Forbidden,
		},
		{
			name:     "write role admits member",
			role:     types.RoleMember,
			enrolled: true,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireWriteRole(p, u)
				return err
			},
		},
		{
			name:     "write role admits admin",
			role:     types.RoleAdmin,
			enrolled: true,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireWriteRole(p, u)
				return err
			},
		},
		{
			name:     "exact role rejects member for admin check",
			role:     types.RoleMember,
			enrolled: true,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireRole(p, u, types.RoleAdmin)
				return err
			},
			wantKind: apperr.Forbidden,
		},
		{
			name:     "exact role admits matching role",
			role:     types.RoleAdmin,
			enrolled: true,
			check: func(a *Authority, p, u string) error {
				_, err := a.RequireRole(p, u, types.RoleAdmin)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, authority, user, project := setup(t)

			if tt.enrolled {
				if _, err := authority.Enroll(project.ID, user.ID, tt.role); err != nil {
					t.Fatalf("Enroll() error = %v", err)
				}
			}

			err := tt.check(authority, project.ID, user.ID)

			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("check error = %v, want success", err)
				}
				return
			}

			if kind := apperr.KindOf(err); kind != tt.wantKind {
				t.Errorf("check error kind = %v, want %v", kind, tt.wantKind)
			}
		})
	}
}
