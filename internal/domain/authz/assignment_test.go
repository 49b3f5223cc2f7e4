package authz

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestAssignment(expiresAt *time.Time) *RoleAssignment {
	return NewRoleAssignment(uuid.New(), uuid.New(), uuid.New(), "test", expiresAt)
}

func TestRoleAssignment_IsValid(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	t.Run("active unlimited is valid", func(t *testing.T) {
		a := newTestAssignment(nil)
		if !a.IsValid(now.Add(time.Second)) {
			t.Error("active assignment without expiration should be valid")
		}
	})

	t.Run("suspended is invalid", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.Suspend("on leave")
		if a.IsValid(now) {
			t.Error("suspended assignment must not be valid")
		}
	})

	t.Run("pending is invalid", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.Status = AssignmentStatusPending
		if a.IsValid(now) {
			t.Error("pending assignment must not be valid")
		}
	})

	t.Run("not yet effective is invalid", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.EffectiveAt = future
		if a.IsValid(now) {
			t.Error("assignment before effectiveAt must not be valid")
		}
	})

	t.Run("expired is invalid without status transition", func(t *testing.T) {
		a := newTestAssignment(&past)
		if a.IsValid(now) {
			t.Error("expired assignment must be invalid even while status is still active")
		}
		if !a.IsActive() {
			t.Error("expiry check must not mutate status")
		}
	})

	t.Run("deleted is invalid", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.Audit.MarkDeleted()
		if a.IsValid(now.Add(time.Second)) {
			t.Error("deleted assignment must not be valid")
		}
	})
}

func TestRoleAssignment_IsExpired_BoundaryIsExpired(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAssignment(&at)

	if a.IsExpired(at.Add(-time.Nanosecond)) {
		t.Error("just before the deadline should not be expired")
	}
	if !a.IsExpired(at) {
		t.Error("the deadline instant itself should count as expired")
	}
}

func TestRoleAssignment_Activate(t *testing.T) {
	t.Run("from suspended", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.Suspend("pause")
		a.Activate()
		if !a.IsActive() {
			t.Error("suspended assignment should become active")
		}
	})

	t.Run("from pending", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.Status = AssignmentStatusPending
		a.Activate()
		if !a.IsActive() {
			t.Error("pending assignment should become active")
		}
	})

	t.Run("revoked stays revoked", func(t *testing.T) {
		a := newTestAssignment(nil)
		a.Revoke("gone")
		a.Activate()
		if a.Status != AssignmentStatusRevoked {
			t.Errorf("got %v, want revoked", a.Status)
		}
	})

	t.Run("expired stays expired", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		a := newTestAssignment(&past)
		a.MarkExpired(time.Now())
		a.Activate()
		if a.Status != AssignmentStatusExpired {
			t.Errorf("got %v, want expired", a.Status)
		}
	})
}

func TestRoleAssignment_MarkExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	now := time.Now()

	a := newTestAssignment(&past)
	if !a.MarkExpired(now) {
		t.Error("first MarkExpired on an overdue assignment should report a transition")
	}
	if a.Status != AssignmentStatusExpired {
		t.Errorf("got %v, want expired", a.Status)
	}
	if a.MarkExpired(now) {
		t.Error("MarkExpired must be idempotent")
	}

	unlimited := newTestAssignment(nil)
	if unlimited.MarkExpired(now) {
		t.Error("assignment without expiration must not be marked expired")
	}
}

func TestRoleAssignment_Reactivate(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	a := newTestAssignment(&past)
	a.MarkExpired(time.Now())

	newExpiry := time.Now().Add(24 * time.Hour)
	assignedBy := uuid.New()
	a.Reactivate(assignedBy, "renewed", &newExpiry)

	if !a.IsValid(time.Now()) {
		t.Error("reactivated assignment should be valid again")
	}
	if a.AssignedBy != assignedBy {
		t.Error("reactivation should record the new assigner")
	}
	if a.ExpiresAt == nil || !a.ExpiresAt.Equal(newExpiry) {
		t.Error("reactivation should replace the expiration")
	}
}

func TestRoleAssignment_UpdateExpiration(t *testing.T) {
	at := time.Now().Add(time.Hour)
	a := newTestAssignment(&at)

	a.UpdateExpiration(nil)
	if a.ExpiresAt != nil {
		t.Error("nil expiration should mean unlimited")
	}
}
