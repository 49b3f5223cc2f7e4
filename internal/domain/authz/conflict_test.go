package authz

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type grantOption func(*Grant)

func withStatus(s GrantStatus) grantOption {
	return func(g *Grant) { g.Status = s }
}

func withLevel(level int) grantOption {
	return func(g *Grant) { g.Level = level }
}

func withGrantType(t GrantType) grantOption {
	return func(g *Grant) { g.GrantType = t }
}

func withGrantedAt(at time.Time) grantOption {
	return func(g *Grant) { g.GrantedAt = at }
}

func withExpiresAt(at time.Time) grantOption {
	return func(g *Grant) { g.ExpiresAt = &at }
}

func withDeleted() grantOption {
	return func(g *Grant) { g.Audit.MarkDeleted() }
}

func newTestGrant(path PermissionPath, opts ...grantOption) *Grant {
	g := &Grant{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		SpaceID:           uuid.New(),
		PermissionID:      uuid.New(),
		ResourceType:      ResourceTypeFile,
		Status:            GrantStatusGranted,
		GrantType:         GrantTypeDirect,
		InheritFromParent: true,
		Path:              path,
		Level:             DefaultPermissionLevel,
		GrantedAt:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Audit:             NewAudit(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func TestCompareGrants_DeeperPathWins(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()
	shallow := newTestGrant(SpacePath(spaceID))
	deep := newTestGrant(BuildPermissionPath(spaceID, "", &folderID))

	if CompareGrants(deep, shallow) >= 0 {
		t.Error("deeper path should take precedence over shallower path")
	}
	if CompareGrants(shallow, deep) <= 0 {
		t.Error("comparison should be antisymmetric")
	}
}

func TestCompareGrants_DeniedWinsAtEqualDepth(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)

	granted := newTestGrant(path, withLevel(100))
	denied := newTestGrant(path, withStatus(GrantStatusDenied), withLevel(1))

	// 拒否は同深度であればレベルに関係なく許可に優先する
	if CompareGrants(denied, granted) >= 0 {
		t.Error("denied grant should take precedence at equal depth regardless of level")
	}
}

func TestCompareGrants_ShallowDenyLosesToDeepGrant(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()

	spaceDeny := newTestGrant(SpacePath(spaceID), withStatus(GrantStatusDenied))
	fileGrant := newTestGrant(BuildPermissionPath(spaceID, "", &fileID))

	// 深度が違う場合は拒否優先より深度優先が先に効く
	if CompareGrants(fileGrant, spaceDeny) >= 0 {
		t.Error("deeper grant should take precedence over shallower deny")
	}
}

func TestCompareGrants_HigherLevelWins(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)

	low := newTestGrant(path, withLevel(30))
	high := newTestGrant(path, withLevel(80))

	if CompareGrants(high, low) >= 0 {
		t.Error("higher level should take precedence at equal depth and status")
	}
}

func TestCompareGrants_SpecificityBreaksLevelTie(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	direct := newTestGrant(path, withLevel(80), withGrantType(GrantTypeDirect), withGrantedAt(at))
	roleBased := newTestGrant(path, withLevel(80), withGrantType(GrantTypeRoleBased), withGrantedAt(at))
	inherited := newTestGrant(path, withLevel(80), withGrantType(GrantTypeInherited), withGrantedAt(at))

	if CompareGrants(direct, roleBased) >= 0 {
		t.Error("direct should take precedence over role_based")
	}
	if CompareGrants(roleBased, inherited) >= 0 {
		t.Error("role_based should take precedence over inherited")
	}
}

func TestCompareGrants_NewerGrantWinsFullTie(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)

	older := newTestGrant(path, withGrantedAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	newer := newTestGrant(path, withGrantedAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	if CompareGrants(newer, older) >= 0 {
		t.Error("newer grant should take precedence when otherwise tied")
	}
}

func TestCompareGrants_IDFixesCompleteTie(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a := newTestGrant(path, withGrantedAt(at))
	b := newTestGrant(path, withGrantedAt(at))

	if CompareGrants(a, b) == 0 {
		t.Error("distinct grants should never compare equal")
	}
	if CompareGrants(a, b) != -CompareGrants(b, a) {
		t.Error("ID tie-break should be antisymmetric")
	}
}

func TestSortGrants_DeterministicAcrossInputOrder(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()

	grants := []*Grant{
		newTestGrant(SpacePath(spaceID), withLevel(90)),
		newTestGrant(BuildPermissionPath(spaceID, "", &folderID), withLevel(40)),
		newTestGrant(BuildPermissionPath(spaceID, folderID.String(), &fileID), withLevel(10)),
		newTestGrant(BuildPermissionPath(spaceID, "", &folderID), withStatus(GrantStatusDenied)),
	}

	sorted := SortGrants(grants)

	reversed := make([]*Grant, len(grants))
	for i, g := range grants {
		reversed[len(grants)-1-i] = g
	}
	sortedReversed := SortGrants(reversed)

	for i := range sorted {
		if sorted[i].ID != sortedReversed[i].ID {
			t.Fatalf("order at %d differs depending on input order", i)
		}
	}

	// 最深のファイル授権が先頭に来る
	if sorted[0].Path.Depth() != 3 {
		t.Errorf("expected deepest grant first, got depth %d", sorted[0].Path.Depth())
	}
}

func TestResolveEffective_NoGrants_ReturnsNil(t *testing.T) {
	if got := ResolveEffective(nil, time.Now()); got != nil {
		t.Errorf("expected nil winner, got %v", got)
	}
}

func TestResolveEffective_SkipsExpiredAndDeleted(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	expired := newTestGrant(path, withLevel(100), withExpiresAt(now.Add(-time.Hour)))
	deleted := newTestGrant(path, withLevel(90), withDeleted())
	alive := newTestGrant(path, withLevel(10))

	winner := ResolveEffective([]*Grant{expired, deleted, alive}, now)

	if winner == nil {
		t.Fatal("expected a winner")
	}
	if winner.ID != alive.ID {
		t.Error("expired and deleted grants must not contribute to resolution")
	}
}

func TestResolveEffective_InheritedStatusIsNotDecisive(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	deepPath := BuildPermissionPath(spaceID, "", &fileID)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	// 深いinheritedステータスの写しより浅い決定的なgrantedが勝つ
	inheritedCopy := newTestGrant(deepPath, withStatus(GrantStatusInherited))
	spaceGrant := newTestGrant(SpacePath(spaceID))

	winner := ResolveEffective([]*Grant{inheritedCopy, spaceGrant}, now)

	if winner == nil {
		t.Fatal("expected a winner")
	}
	if winner.ID != spaceGrant.ID {
		t.Error("inherited-status record must not decide the outcome")
	}
}

func TestResolveEffective_OnlyInheritedStatus_ReturnsNil(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)

	inheritedCopy := newTestGrant(path, withStatus(GrantStatusInherited))

	if got := ResolveEffective([]*Grant{inheritedCopy}, time.Now()); got != nil {
		t.Error("a set with no decisive candidates should resolve to nil")
	}
}

func TestResolveEffective_FolderDenyBeatsSpaceGrant(t *testing.T) {
	spaceID := uuid.New()
	folderID := uuid.New()
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	spaceGrant := newTestGrant(SpacePath(spaceID), withLevel(100))
	folderDeny := newTestGrant(BuildPermissionPath(spaceID, "", &folderID), withStatus(GrantStatusDenied), withLevel(1))

	winner := ResolveEffective([]*Grant{spaceGrant, folderDeny}, now)

	if winner == nil {
		t.Fatal("expected a winner")
	}
	if !winner.IsDenied() {
		t.Error("folder-level deny should override space-wide grant")
	}
}

func TestResolveEffective_ExpiredDenyUncoversGrant(t *testing.T) {
	spaceID := uuid.New()
	fileID := uuid.New()
	path := BuildPermissionPath(spaceID, "", &fileID)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	expiredDeny := newTestGrant(path, withStatus(GrantStatusDenied), withExpiresAt(now.Add(-time.Minute)))
	grant := newTestGrant(SpacePath(spaceID))

	winner := ResolveEffective([]*Grant{expiredDeny, grant}, now)

	if winner == nil {
		t.Fatal("expected a winner")
	}
	if winner.IsDenied() {
		t.Error("expired deny must not contribute to resolution")
	}
}
