package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bohemiyan/authz"
	"github.com/bohemiyan/authz/internal/db"
)

// Deps bundles what the HTTP face needs.
type Deps struct {
	Engine *authz.Engine
	Guard  *authz.Guard
	Cache  *authz.DecisionCache
	Audit  authz.Sink
	DB     *db.PostgresDB
	Log    *zap.SugaredLogger
}

// Setup registers all routes on the fiber app.
func Setup(app *fiber.App, deps *Deps) {
	h := newHandlers(deps)

	app.Get("/healthz", h.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Evaluate authenticates by payload: it is the backend-to-backend RPC
	// and carries the full actor descriptor in the request body.
	api.Post("/evaluate", h.evaluate)

	// The remaining endpoints expect the identity layer to have attached an
	// actor. The header decoder stands in for that layer here, the same way
	// the identity middleware would in the composed application.
	actor := api.Group("/", actorFromHeaders)
	actor.Get("/menu", h.menu)
	actor.Get("/roles", h.roles)
	actor.Get("/permissions", h.permissions)
	actor.Post("/reload", deps.Guard.Require(authz.ActionEdit, authz.ResourceUsers), h.reload)

	// Example guarded resource route.
	actor.Get("/orders", deps.Guard.RequireView(authz.ResourceOrders), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"orders": []string{}})
	})
}
