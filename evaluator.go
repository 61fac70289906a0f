package authz

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Engine is the policy evaluator. It holds the current Snapshot behind an
// atomic pointer: evaluation is lock-free table lookups, and a reload swaps
// the whole generation at once.
//
// Every Can* method fails closed. Unknown role, unknown resource, unknown
// action, nil actor, ambiguous target scope: all of them return false, none
// of them ever surface an error to the caller.
type Engine struct {
	snap    atomic.Pointer[Snapshot]
	log     *zap.SugaredLogger
	metrics *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger used for debug-level deny diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics attaches decision counters.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an Engine evaluating against snap.
func New(snap *Snapshot, opts ...Option) *Engine {
	e := &Engine{}
	e.snap.Store(snap)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Swap replaces the current snapshot atomically. In-flight evaluations keep
// the generation they started with.
func (e *Engine) Swap(snap *Snapshot) {
	e.snap.Store(snap)
}

// Snapshot returns the current snapshot generation.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot()
}

func (e *Engine) snapshot() *Snapshot {
	return e.snap.Load()
}

// CanView answers the role-level view question for the actor.
func (e *Engine) CanView(actor *Actor, res Resource) bool {
	return e.CanPerform(actor, ActionView, res, TargetScope{})
}

// CanCreate answers the role-level create question for the actor.
func (e *Engine) CanCreate(actor *Actor, res Resource) bool {
	return e.CanPerform(actor, ActionCreate, res, TargetScope{})
}

// CanEdit answers the role-level edit question for the actor.
func (e *Engine) CanEdit(actor *Actor, res Resource) bool {
	return e.CanPerform(actor, ActionEdit, res, TargetScope{})
}

// CanDelete answers the role-level delete question for the actor.
func (e *Engine) CanDelete(actor *Actor, res Resource) bool {
	return e.CanPerform(actor, ActionDelete, res, TargetScope{})
}

// CanPerform is the compound entry point: matrix first, then the read-only
// gate, then scope containment when a target scope is supplied. An empty
// target asks the role-level question only.
func (e *Engine) CanPerform(actor *Actor, action Action, res Resource, target TargetScope) bool {
	allowed := e.evaluate(actor, action, res, target)
	e.observeDecision(action, allowed)
	return allowed
}

func (e *Engine) evaluate(actor *Actor, action Action, res Resource, target TargetScope) bool {
	if !actor.Valid() {
		e.deny(ErrInvalidActor, actor, action, res)
		return false
	}

	snap := e.snapshot()

	role, err := snap.Registry.Get(actor.RoleID)
	if err != nil {
		e.deny(err, actor, action, res)
		return false
	}

	if !snap.Matrix.Lookup(actor.RoleID, res).Allows(action) {
		if !KnownResource(res) {
			e.deny(ErrUnknownResource, actor, action, res)
		}
		return false
	}

	// Read-only roles never mutate, even when a matrix entry mistakenly says
	// otherwise.
	if role.ReadOnly && action != ActionView {
		return false
	}

	if target.IsZero() {
		return true
	}

	ok, err := scopeSatisfies(role.DataScope, ResolveScope(actor), target)
	if err != nil {
		e.deny(err, actor, action, res)
		return false
	}
	return ok
}

// Permissions returns the effective entry for the actor on a resource, with
// the read-only gate already applied. Meant for clients rendering action
// controls; the server-side Can* calls stay authoritative.
func (e *Engine) Permissions(actor *Actor, res Resource) PermissionEntry {
	if !actor.Valid() {
		return PermissionEntry{}
	}
	snap := e.snapshot()
	role, err := snap.Registry.Get(actor.RoleID)
	if err != nil {
		return PermissionEntry{}
	}
	entry := snap.Matrix.Lookup(actor.RoleID, res)
	if role.ReadOnly {
		entry.Create = false
		entry.Edit = false
		entry.Delete = false
	}
	return entry
}

// ReadOnly reports whether the actor's role is flagged read-only, for
// clients that render a read-only indicator. Unknown roles read as false;
// they are already denied everything.
func (e *Engine) ReadOnly(actor *Actor) bool {
	if !actor.Valid() {
		return false
	}
	role, err := e.snapshot().Registry.Get(actor.RoleID)
	if err != nil {
		return false
	}
	return role.ReadOnly
}

func (e *Engine) deny(cause error, actor *Actor, action Action, res Resource) {
	if e.log == nil {
		return
	}
	roleID := RoleID("")
	if actor != nil {
		roleID = actor.RoleID
	}
	e.log.Debugw("authorization denied",
		"cause", cause,
		"role", roleID,
		"action", action,
		"resource", res,
	)
}

func (e *Engine) observeDecision(action Action, allowed bool) {
	if e.metrics != nil {
		e.metrics.observeDecision(action, allowed)
	}
}

func (e *Engine) observeMenu(size int) {
	if e.metrics != nil {
		e.metrics.observeMenu(size)
	}
}
