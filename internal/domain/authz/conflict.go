package authz

import (
	"sort"
	"strings"
	"time"
)

// CompareGrants は候補授権の全順序を定義する比較関数です
// 負数はaがbより優先されることを示す
//
// 優先順位:
//  1. より深いパス（より具体的なリソース）が浅いパスに優先する
//  2. 同じ深さではdeniedがgranted/inheritedに優先する（明示的拒否が同着を制す）
//  3. 同じ深さ・状態では権限レベルが高い方が優先する
//  4. 同着は授権タイプ direct > role_based > inherited の順
//  5. なお同着なら授権日時が新しい方
//  6. 最後はIDの辞書順で順序を固定する
//
// 同一の授権集合に対して常に同一の勝者を返すことが正しさの中核であり、
// 順序のどの段も実行ごとに変わる要素を含まない
func CompareGrants(a, b *Grant) int {
	if d := b.Path.Depth() - a.Path.Depth(); d != 0 {
		return d
	}

	if a.IsDenied() != b.IsDenied() {
		if a.IsDenied() {
			return -1
		}
		return 1
	}

	if d := b.Level - a.Level; d != 0 {
		return d
	}

	if d := b.GrantType.Specificity() - a.GrantType.Specificity(); d != 0 {
		return d
	}

	if !a.GrantedAt.Equal(b.GrantedAt) {
		if a.GrantedAt.After(b.GrantedAt) {
			return -1
		}
		return 1
	}

	return strings.Compare(a.ID.String(), b.ID.String())
}

// SortGrants は授権を優先順に並べ替えた新しいスライスを返します
func SortGrants(grants []*Grant) []*Grant {
	sorted := make([]*Grant, len(grants))
	copy(sorted, grants)
	sort.Slice(sorted, func(i, j int) bool {
		return CompareGrants(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// ResolveEffective は候補授権から有効な1件を選びます
// 期限切れ・削除済みの授権は寄与しない
// inheritedステータスのレコードは祖先授権の写しに過ぎず結論を下さないため、
// 優先順で最初に現れる決定的な候補（grantedまたはdenied）が勝者となる
// 決定的な候補がなければnilを返す
func ResolveEffective(grants []*Grant, now time.Time) *Grant {
	candidates := make([]*Grant, 0, len(grants))
	for _, g := range grants {
		if g.Audit.IsDeleted() || g.IsExpired(now) {
			continue
		}
		candidates = append(candidates, g)
	}
	if len(candidates) == 0 {
		return nil
	}

	for _, g := range SortGrants(candidates) {
		if g.IsDecisive(now) {
			return g
		}
	}
	return nil
}
