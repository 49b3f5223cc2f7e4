package authz

import "sort"

// PermissionSet は(リソースタイプ, カテゴリ)ごとに勝者1件を保持する有効権限の集合
// 同じグループに複数の権限が追加された場合はレベルの高い方が残り、
// 同レベルでは先に追加された方が残る（先着優先の固定的なタイブレーク）
type PermissionSet struct {
	winners map[string]*Permission
}

// NewPermissionSet は新しいPermissionSetを生成します
func NewPermissionSet(perms ...*Permission) *PermissionSet {
	ps := &PermissionSet{
		winners: make(map[string]*Permission),
	}
	for _, p := range perms {
		ps.Add(p)
	}
	return ps
}

// EmptyPermissionSet は空のPermissionSetを生成します
func EmptyPermissionSet() *PermissionSet {
	return &PermissionSet{
		winners: make(map[string]*Permission),
	}
}

// Add は権限を追加します
// 使用不可（無効・削除済み）の権限は無視される
func (ps *PermissionSet) Add(perm *Permission) {
	if perm == nil || !perm.IsUsable() {
		return
	}
	key := perm.GroupKey()
	existing, ok := ps.winners[key]
	if !ok {
		ps.winners[key] = perm
		return
	}
	// 同レベルは先着優先のため、より高いレベルのみ置き換える
	if perm.CompareLevel(existing) > 0 {
		ps.winners[key] = perm
	}
}

// AddFromRole はロールの使用可能な権限を全て追加します
func (ps *PermissionSet) AddFromRole(role *Role) {
	for _, p := range role.UsablePermissions() {
		ps.Add(p)
	}
}

// HasCode は指定された権限コードを持つかを判定します
func (ps *PermissionSet) HasCode(code string) bool {
	for _, p := range ps.winners {
		if p.Code == code {
			return true
		}
	}
	return false
}

// HasCompatible は指定されたリソースタイプとカテゴリの権限を持つかを判定します
func (ps *PermissionSet) HasCompatible(resourceType ResourceType, category string) bool {
	_, ok := ps.winners[resourceType.String()+":"+category]
	return ok
}

// Get は指定されたグループの勝者権限を返します
func (ps *PermissionSet) Get(resourceType ResourceType, category string) *Permission {
	return ps.winners[resourceType.String()+":"+category]
}

// HighestLevel は指定されたリソースタイプにおける最高権限レベルを返します
// 該当する権限がなければ0を返す
func (ps *PermissionSet) HighestLevel(resourceType ResourceType) int {
	highest := 0
	for _, p := range ps.winners {
		if p.ResourceType == resourceType && p.Level > highest {
			highest = p.Level
		}
	}
	return highest
}

// List はグループキー順に並べた権限の一覧を返します
func (ps *PermissionSet) List() []*Permission {
	keys := make([]string, 0, len(ps.winners))
	for k := range ps.winners {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	perms := make([]*Permission, 0, len(keys))
	for _, k := range keys {
		perms = append(perms, ps.winners[k])
	}
	return perms
}

// Codes は権限コードの一覧を返します
func (ps *PermissionSet) Codes() []string {
	codes := make([]string, 0, len(ps.winners))
	for _, p := range ps.List() {
		codes = append(codes, p.Code)
	}
	return codes
}

// IsEmpty は空かどうかを判定します
func (ps *PermissionSet) IsEmpty() bool {
	return len(ps.winners) == 0
}

// Size は保持している権限の数を返します
func (ps *PermissionSet) Size() int {
	return len(ps.winners)
}
