package authz

import (
	"testing"

	"github.com/google/uuid"
)

func TestBuildPermissionPath_SpaceOnly(t *testing.T) {
	spaceID := uuid.New()

	path := BuildPermissionPath(spaceID, "", nil)

	if path != SpacePath(spaceID) {
		t.Errorf("got %q, want %q", path, SpacePath(spaceID))
	}
	if path.Depth() != 1 {
		t.Errorf("space path depth should be 1, got %d", path.Depth())
	}
}

func TestBuildPermissionPath_WithParentAndResource(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()

	path := BuildPermissionPath(spaceID, folderID.String(), &fileID)

	want := "/" + spaceID.String() + "/" + folderID.String() + "/" + fileID.String()
	if path.String() != want {
		t.Errorf("got %q, want %q", path, want)
	}
	if path.Depth() != 3 {
		t.Errorf("got depth %d, want 3", path.Depth())
	}
}

func TestBuildPermissionPath_TrimsParentSlashes(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()

	plain := BuildPermissionPath(spaceID, folderID.String(), &fileID)
	slashed := BuildPermissionPath(spaceID, "/"+folderID.String()+"/", &fileID)

	if plain != slashed {
		t.Errorf("parent path slashes should be normalized: %q vs %q", plain, slashed)
	}
}

func TestNewPermissionPath_Validation(t *testing.T) {
	valid := []string{"/a", "/a/b", "/a/b/c"}
	for _, s := range valid {
		if _, err := NewPermissionPath(s); err != nil {
			t.Errorf("NewPermissionPath(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "/", "a/b", "/a/", "/a//b"}
	for _, s := range invalid {
		if _, err := NewPermissionPath(s); err != ErrInvalidResourcePath {
			t.Errorf("NewPermissionPath(%q) expected ErrInvalidResourcePath, got %v", s, err)
		}
	}
}

func TestPermissionPath_IsAncestorOf(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()

	space := SpacePath(spaceID)
	folder := BuildPermissionPath(spaceID, "", &folderID)
	file := BuildPermissionPath(spaceID, folderID.String(), &fileID)

	if !space.IsAncestorOf(folder) {
		t.Error("space should be ancestor of folder")
	}
	if !space.IsAncestorOf(file) {
		t.Error("space should be ancestor of file")
	}
	if !folder.IsAncestorOf(file) {
		t.Error("folder should be ancestor of file")
	}
	if !folder.IsAncestorOf(folder) {
		t.Error("a path should be ancestor of itself")
	}
	if folder.IsAncestorOf(space) {
		t.Error("descendant must not be ancestor of its parent")
	}
}

func TestPermissionPath_IsAncestorOf_NoPartialSegmentMatch(t *testing.T) {
	// プレフィックスが一致してもセグメント境界でなければ祖先ではない
	a := PermissionPath("/space/ab")
	b := PermissionPath("/space/abc")

	if a.IsAncestorOf(b) {
		t.Error("partial segment prefix must not count as ancestry")
	}
}

func TestPermissionPath_Parent(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()

	folder := BuildPermissionPath(spaceID, "", &folderID)
	if folder.Parent() != SpacePath(spaceID) {
		t.Errorf("got %q, want %q", folder.Parent(), SpacePath(spaceID))
	}

	if SpacePath(spaceID).Parent() != "" {
		t.Error("space root should have empty parent")
	}
}

func TestPermissionPath_SpaceID(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()

	path := BuildPermissionPath(spaceID, "", &fileID)
	got, err := path.SpaceID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != spaceID {
		t.Errorf("got %v, want %v", got, spaceID)
	}

	if _, err := PermissionPath("/not-a-uuid").SpaceID(); err != ErrInvalidResourcePath {
		t.Errorf("expected ErrInvalidResourcePath, got %v", err)
	}
}
