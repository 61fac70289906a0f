package authz

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DecisionCache memoizes evaluation results in Redis for the HTTP face. The
// in-process evaluator never touches it: decisions are O(1) lookups, the
// cache only saves network hops for remote Evaluate callers. A nil client
// disables the cache entirely.
type DecisionCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDecisionCache creates a cache. prefix defaults to "authz:", ttl to 30m.
func NewDecisionCache(client *redis.Client, prefix string, ttl time.Duration) *DecisionCache {
	if prefix == "" {
		prefix = "authz:"
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &DecisionCache{client: client, prefix: prefix, ttl: ttl}
}

// key builds the cache key for one decision. The target scope participates
// field by field so distinct targets never collide.
func (c *DecisionCache) key(actor *Actor, action Action, res Resource, target TargetScope) string {
	return fmt.Sprintf("%sdecision:%s:%d:%s:%s:%d-%d-%d-%d-%d-%d",
		c.prefix, actor.RoleID, actor.SubjectID, action, res,
		target.OrganizationID, target.FacilityID, target.BranchID,
		target.VehicleID, target.MerchantID, target.SubjectID,
	)
}

// Get returns the cached decision and whether one was present. Any Redis
// error reads as a miss.
func (c *DecisionCache) Get(ctx context.Context, actor *Actor, action Action, res Resource, target TargetScope) (allowed, hit bool) {
	if c == nil || c.client == nil || !actor.Valid() {
		return false, false
	}
	val, err := c.client.Get(ctx, c.key(actor, action, res, target)).Result()
	if err != nil {
		return false, false
	}
	return val == "true", true
}

// Set stores a decision. Failures are ignored; the cache is best-effort.
func (c *DecisionCache) Set(ctx context.Context, actor *Actor, action Action, res Resource, target TargetScope, allowed bool) {
	if c == nil || c.client == nil || !actor.Valid() {
		return
	}
	val := "false"
	if allowed {
		val = "true"
	}
	c.client.Set(ctx, c.key(actor, action, res, target), val, c.ttl)
}

// Clear drops every cached decision. Called after a snapshot swap so stale
// generations cannot answer.
func (c *DecisionCache) Clear(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"decision:*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
