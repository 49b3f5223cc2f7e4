package authz

import (
	"testing"
)

func newTestPermission(t *testing.T, code string, resourceType ResourceType, category string, level int) *Permission {
	t.Helper()
	p, err := NewPermission(code, code, resourceType, category, level)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestPermissionSet_HigherLevelReplacesWinner(t *testing.T) {
	low := newTestPermission(t, "file.read", ResourceTypeFile, "read", 30)
	high := newTestPermission(t, "file.read_all", ResourceTypeFile, "read", 80)

	set := NewPermissionSet(low, high)

	if set.Size() != 1 {
		t.Fatalf("same group should keep one winner, got %d", set.Size())
	}
	if got := set.Get(ResourceTypeFile, "read"); got.Code != high.Code {
		t.Errorf("got %q, want %q", got.Code, high.Code)
	}
}

func TestPermissionSet_EqualLevelFirstAddedWins(t *testing.T) {
	first := newTestPermission(t, "file.read", ResourceTypeFile, "read", 50)
	second := newTestPermission(t, "file.read_other", ResourceTypeFile, "read", 50)

	set := NewPermissionSet(first, second)

	if got := set.Get(ResourceTypeFile, "read"); got.Code != first.Code {
		t.Errorf("equal level should keep first added, got %q", got.Code)
	}

	// 逆順で追加すれば逆の勝者になる（先着優先の確認）
	reversed := NewPermissionSet(second, first)
	if got := reversed.Get(ResourceTypeFile, "read"); got.Code != second.Code {
		t.Errorf("equal level should keep first added, got %q", got.Code)
	}
}

func TestPermissionSet_DifferentGroupsKeptSeparately(t *testing.T) {
	read := newTestPermission(t, "file.read", ResourceTypeFile, "read", 50)
	write := newTestPermission(t, "file.write", ResourceTypeFile, "write", 50)
	folderRead := newTestPermission(t, "folder.read", ResourceTypeFolder, "read", 50)

	set := NewPermissionSet(read, write, folderRead)

	if set.Size() != 3 {
		t.Errorf("distinct groups should all be kept, got %d", set.Size())
	}
}

func TestPermissionSet_IgnoresUnusable(t *testing.T) {
	disabled := newTestPermission(t, "file.read", ResourceTypeFile, "read", 90)
	disabled.Enabled = false

	deleted := newTestPermission(t, "file.write", ResourceTypeFile, "write", 90)
	deleted.Audit.MarkDeleted()

	set := NewPermissionSet(disabled, deleted)

	if !set.IsEmpty() {
		t.Error("unusable permissions must not enter the set")
	}
	if set.HasCode("file.read") {
		t.Error("disabled permission must not be reported")
	}
}

func TestPermissionSet_HighestLevel(t *testing.T) {
	set := NewPermissionSet(
		newTestPermission(t, "file.read", ResourceTypeFile, "read", 40),
		newTestPermission(t, "file.write", ResourceTypeFile, "write", 70),
		newTestPermission(t, "folder.manage", ResourceTypeFolder, "manage", 90),
	)

	if got := set.HighestLevel(ResourceTypeFile); got != 70 {
		t.Errorf("got %d, want 70", got)
	}
	if got := set.HighestLevel(ResourceTypeSpace); got != 0 {
		t.Errorf("no matching type should report 0, got %d", got)
	}
}

func TestPermissionSet_ListIsSortedByGroupKey(t *testing.T) {
	set := NewPermissionSet(
		newTestPermission(t, "space.manage", ResourceTypeSpace, "manage", 50),
		newTestPermission(t, "file.read", ResourceTypeFile, "read", 50),
		newTestPermission(t, "folder.read", ResourceTypeFolder, "read", 50),
	)

	list := set.List()
	if len(list) != 3 {
		t.Fatalf("got %d permissions, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].GroupKey() > list[i].GroupKey() {
			t.Error("List should be ordered by group key")
		}
	}
}

func TestPermissionSet_AddFromRole(t *testing.T) {
	role := NewRole("EDITOR", "Editor", RoleTypeUser)
	usable := newTestPermission(t, "file.write", ResourceTypeFile, "write", 60)
	disabled := newTestPermission(t, "file.admin", ResourceTypeFile, "admin", 100)
	disabled.Enabled = false
	role.Permissions = []*Permission{usable, disabled}

	set := EmptyPermissionSet()
	set.AddFromRole(role)

	if !set.HasCode("file.write") {
		t.Error("usable role permission should be added")
	}
	if set.HasCode("file.admin") {
		t.Error("disabled role permission must be skipped")
	}
}
