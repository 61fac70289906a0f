package authz

import (
	"context"
	"testing"
	"time"
)

// A cache without a Redis client must be inert: every lookup is a miss and
// writes vanish, so the engine's answer always wins.
func TestDecisionCacheDisabled(t *testing.T) {
	cache := NewDecisionCache(nil, "", 0)
	ctx := context.Background()
	actor := &Actor{RoleID: RoleDriver, SubjectID: 10}
	target := TargetScope{VehicleID: 42}

	if _, hit := cache.Get(ctx, actor, ActionView, ResourceShipments, target); hit {
		t.Error("disabled cache reported a hit")
	}
	cache.Set(ctx, actor, ActionView, ResourceShipments, target, true)
	if _, hit := cache.Get(ctx, actor, ActionView, ResourceShipments, target); hit {
		t.Error("disabled cache stored a value")
	}
	if err := cache.Clear(ctx); err != nil {
		t.Errorf("Clear on disabled cache returned %v", err)
	}
}

func TestDecisionCacheKeySeparatesTargets(t *testing.T) {
	cache := NewDecisionCache(nil, "authz:", time.Minute)
	actor := &Actor{RoleID: RoleBranchManager, SubjectID: 10}

	a := cache.key(actor, ActionCreate, ResourceOrders, TargetScope{BranchID: 3})
	b := cache.key(actor, ActionCreate, ResourceOrders, TargetScope{BranchID: 5})
	c := cache.key(actor, ActionCreate, ResourceOrders, TargetScope{VehicleID: 3})
	if a == b {
		t.Error("different branch targets share a cache key")
	}
	if a == c {
		t.Error("different scope fields with equal ids share a cache key")
	}

	again := cache.key(actor, ActionCreate, ResourceOrders, TargetScope{BranchID: 3})
	if a != again {
		t.Error("identical arguments produced different cache keys")
	}
}
