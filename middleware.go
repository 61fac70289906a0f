package authz

import "github.com/gofiber/fiber/v2"

// actorLocal is the fiber Locals key the identity layer stores the actor
// under.
const actorLocal = "authz_actor"

// WithActor stores the actor on the request for downstream guards.
func WithActor(c *fiber.Ctx, actor *Actor) {
	c.Locals(actorLocal, actor)
}

// ActorFromCtx returns the actor the identity layer attached, or nil.
func ActorFromCtx(c *fiber.Ctx) *Actor {
	actor, _ := c.Locals(actorLocal).(*Actor)
	return actor
}

// Guard adapts the engine into fiber middleware. Denials answer 403 and emit
// a fire-and-forget audit event; the decision itself never waits on the sink.
type Guard struct {
	engine *Engine
	audit  Sink
}

// NewGuard creates a guard. sink may be nil when no audit trail is wanted.
func NewGuard(engine *Engine, sink Sink) *Guard {
	return &Guard{engine: engine, audit: sink}
}

// RequireView gates a navigable route on the view permission.
func (g *Guard) RequireView(res Resource) fiber.Handler {
	return g.require(EventRouteAccess, ActionView, res)
}

// Require gates an API operation on an action permission.
func (g *Guard) Require(action Action, res Resource) fiber.Handler {
	return g.require(EventAPIAccess, action, res)
}

func (g *Guard) require(eventType EventType, action Action, res Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)
		if actor == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "no actor in request context")
		}
		if !g.engine.CanPerform(actor, action, res, TargetScope{}) {
			g.record(NewEvent(eventType, actor, action, res, c.Path()))
			return fiber.NewError(fiber.StatusForbidden, "action not permitted")
		}
		return c.Next()
	}
}

func (g *Guard) record(ev Event) {
	if g.audit != nil {
		g.audit.Record(ev)
	}
}
