package authz

import (
	"strings"

	"github.com/google/uuid"
)

// PermissionPath は権限継承計算に使う階層パスを表す型
// 形式: /<space_id>[/<ancestor_id>...][/<resource_id>]
// 階層は実体ツリーを構築せず、プレフィックス一致のみで比較する
type PermissionPath string

// BuildPermissionPath は空間ID・親パス・リソースIDから権限パスを構築します
// parentPathは空間ID以降の中間セグメント（空でもよい）
func BuildPermissionPath(spaceID uuid.UUID, parentPath string, resourceID *uuid.UUID) PermissionPath {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(spaceID.String())

	trimmed := strings.Trim(parentPath, "/")
	if trimmed != "" {
		b.WriteString("/")
		b.WriteString(trimmed)
	}

	if resourceID != nil {
		b.WriteString("/")
		b.WriteString(resourceID.String())
	}

	return PermissionPath(b.String())
}

// SpacePath は空間全体を指すパスを返します
func SpacePath(spaceID uuid.UUID) PermissionPath {
	return PermissionPath("/" + spaceID.String())
}

// NewPermissionPath は文字列からPermissionPathを生成します
func NewPermissionPath(p string) (PermissionPath, error) {
	path := PermissionPath(p)
	if !path.IsValid() {
		return "", ErrInvalidResourcePath
	}
	return path, nil
}

// IsValid はパスが有効かを判定します
func (p PermissionPath) IsValid() bool {
	s := string(p)
	if !strings.HasPrefix(s, "/") || s == "/" {
		return false
	}
	if strings.HasSuffix(s, "/") || strings.Contains(s, "//") {
		return false
	}
	return true
}

// String は文字列を返します
func (p PermissionPath) String() string {
	return string(p)
}

// Depth はパスのセグメント数を返します
func (p PermissionPath) Depth() int {
	s := strings.Trim(string(p), "/")
	if s == "" {
		return 0
	}
	return strings.Count(s, "/") + 1
}

// IsAncestorOf は自身がchildの祖先（または同一）かを判定します
// childがpと等しいか、p+"/"で始まる場合に真となる
func (p PermissionPath) IsAncestorOf(child PermissionPath) bool {
	if p == "" || child == "" {
		return false
	}
	if p == child {
		return true
	}
	return strings.HasPrefix(string(child), string(p)+"/")
}

// Parent は親パスを返します
// 空間ルート（深さ1）の場合は空文字列を返す
func (p PermissionPath) Parent() PermissionPath {
	idx := strings.LastIndex(string(p), "/")
	if idx <= 0 {
		return ""
	}
	return p[:idx]
}

// SpaceID はパスの先頭セグメントから空間IDを取り出します
func (p PermissionPath) SpaceID() (uuid.UUID, error) {
	segments := strings.Split(strings.Trim(string(p), "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return uuid.Nil, ErrInvalidResourcePath
	}
	id, err := uuid.Parse(segments[0])
	if err != nil {
		return uuid.Nil, ErrInvalidResourcePath
	}
	return id, nil
}
