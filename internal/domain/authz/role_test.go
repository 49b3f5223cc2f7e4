package authz

import (
	"testing"
)

func TestRole_Rename(t *testing.T) {
	role := NewRole("EDITOR", "Editor", RoleTypeUser)

	if err := role.Rename("Senior Editor"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.Name != "Senior Editor" {
		t.Errorf("got %q, want %q", role.Name, "Senior Editor")
	}
}

func TestRole_SystemRoleCannotBeModified(t *testing.T) {
	role := NewSystemRole(RoleCodeAdmin, "Administrator", RoleTypeAdmin)

	if err := role.Rename("Other"); err != ErrSystemRoleProtected {
		t.Errorf("Rename: expected ErrSystemRoleProtected, got %v", err)
	}
	if err := role.SetEnabled(false); err != ErrSystemRoleProtected {
		t.Errorf("SetEnabled(false): expected ErrSystemRoleProtected, got %v", err)
	}
	if err := role.Delete(); err != ErrSystemRoleProtected {
		t.Errorf("Delete: expected ErrSystemRoleProtected, got %v", err)
	}
	if !role.IsAvailable() {
		t.Error("protected role should remain available after rejected operations")
	}
}

func TestRole_SystemRoleCanBeEnabled(t *testing.T) {
	role := NewSystemRole(RoleCodeAdmin, "Administrator", RoleTypeAdmin)

	// 有効化はシステムロールでも許される
	if err := role.SetEnabled(true); err != nil {
		t.Errorf("enabling a system role should be allowed, got %v", err)
	}
}

func TestRole_Delete(t *testing.T) {
	role := NewRole("EDITOR", "Editor", RoleTypeUser)

	if err := role.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.IsAvailable() {
		t.Error("deleted role must not be available")
	}
}

func TestRole_IsProtected(t *testing.T) {
	cases := []struct {
		name string
		role *Role
		want bool
	}{
		{"system admin", NewSystemRole(RoleCodeAdmin, "Admin", RoleTypeAdmin), true},
		{"system super admin", NewSystemRole(RoleCodeSuperAdmin, "Super", RoleTypeSuperAdmin), true},
		{"system user", NewSystemRole(RoleCodeUser, "User", RoleTypeUser), false},
		{"custom admin", NewRole("OPS_ADMIN", "Ops", RoleTypeAdmin), false},
	}
	for _, tc := range cases {
		if got := tc.role.IsProtected(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRole_HasPermissionCode(t *testing.T) {
	role := NewRole("EDITOR", "Editor", RoleTypeUser)
	usable := newTestPermission(t, "file.write", ResourceTypeFile, "write", 60)
	disabled := newTestPermission(t, "file.admin", ResourceTypeFile, "admin", 100)
	disabled.Enabled = false
	role.Permissions = []*Permission{usable, disabled}

	if !role.HasPermissionCode("file.write") {
		t.Error("usable permission code should be reported")
	}
	if role.HasPermissionCode("file.admin") {
		t.Error("disabled permission code must not be reported")
	}
	if role.HasPermissionCode("file.unknown") {
		t.Error("unknown permission code must not be reported")
	}
}

func TestRole_UsablePermissions(t *testing.T) {
	role := NewRole("EDITOR", "Editor", RoleTypeUser)
	usable := newTestPermission(t, "file.write", ResourceTypeFile, "write", 60)
	deleted := newTestPermission(t, "file.read", ResourceTypeFile, "read", 30)
	deleted.Audit.MarkDeleted()
	role.Permissions = []*Permission{usable, deleted}

	perms := role.UsablePermissions()
	if len(perms) != 1 {
		t.Fatalf("got %d permissions, want 1", len(perms))
	}
	if perms[0].Code != "file.write" {
		t.Errorf("got %q, want %q", perms[0].Code, "file.write")
	}
}
