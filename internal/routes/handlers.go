package routes

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bohemiyan/authz"
)

var validate = validator.New()

type handlers struct {
	deps *Deps
}

func newHandlers(deps *Deps) *handlers {
	return &handlers{deps: deps}
}

// actorFromHeaders decodes the actor descriptor the identity layer supplies.
// The engine itself never reads ambient state; the actor travels through
// request locals from here on.
func actorFromHeaders(c *fiber.Ctx) error {
	role := c.Get("X-Authz-Role")
	if role == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing X-Authz-Role header")
	}
	actor := &authz.Actor{
		RoleID:         authz.RoleID(role),
		SubjectID:      headerID(c, "X-Authz-Subject"),
		OrganizationID: headerID(c, "X-Authz-Organization"),
		FacilityID:     headerID(c, "X-Authz-Facility"),
		BranchID:       headerID(c, "X-Authz-Branch"),
		VehicleID:      headerID(c, "X-Authz-Vehicle"),
		MerchantID:     headerID(c, "X-Authz-Merchant"),
		Department:     c.Get("X-Authz-Department"),
		JobTitle:       c.Get("X-Authz-Job-Title"),
		IsDistributor:  c.Get("X-Authz-Distributor") == "true",
	}
	authz.WithActor(c, actor)
	return c.Next()
}

func headerID(c *fiber.Ctx, key string) uint64 {
	id, _ := strconv.ParseUint(c.Get(key), 10, 64)
	return id
}

type targetPayload struct {
	OrganizationID uint64 `json:"organization_id"`
	FacilityID     uint64 `json:"facility_id"`
	BranchID       uint64 `json:"branch_id"`
	VehicleID      uint64 `json:"vehicle_id"`
	MerchantID     uint64 `json:"merchant_id"`
	SubjectID      uint64 `json:"subject_id"`
}

type evaluateRequest struct {
	Role           string        `json:"role" validate:"required"`
	SubjectID      uint64        `json:"subject_id"`
	OrganizationID uint64        `json:"organization_id"`
	FacilityID     uint64        `json:"facility_id"`
	BranchID       uint64        `json:"branch_id"`
	VehicleID      uint64        `json:"vehicle_id"`
	MerchantID     uint64        `json:"merchant_id"`
	IsDistributor  bool          `json:"is_distributor"`
	Action         string        `json:"action" validate:"required,oneof=view create edit delete"`
	Resource       string        `json:"resource" validate:"required"`
	Target         targetPayload `json:"target"`
}

// evaluate is the single RPC of the engine: idempotent, side-effect free for
// the caller, answering allow/deny only. Denials are audited through the
// sink, classified by action kind.
func (h *handlers) evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	actor := &authz.Actor{
		RoleID:         authz.RoleID(req.Role),
		SubjectID:      req.SubjectID,
		OrganizationID: req.OrganizationID,
		FacilityID:     req.FacilityID,
		BranchID:       req.BranchID,
		VehicleID:      req.VehicleID,
		MerchantID:     req.MerchantID,
		IsDistributor:  req.IsDistributor,
	}
	action := authz.Action(req.Action)
	resource := authz.Resource(req.Resource)
	target := authz.TargetScope{
		OrganizationID: req.Target.OrganizationID,
		FacilityID:     req.Target.FacilityID,
		BranchID:       req.Target.BranchID,
		VehicleID:      req.Target.VehicleID,
		MerchantID:     req.Target.MerchantID,
		SubjectID:      req.Target.SubjectID,
	}

	ctx := c.Context()
	allowed, hit := h.deps.Cache.Get(ctx, actor, action, resource, target)
	if !hit {
		allowed = h.deps.Engine.CanPerform(actor, action, resource, target)
		h.deps.Cache.Set(ctx, actor, action, resource, target, allowed)
	}

	if !allowed && h.deps.Audit != nil {
		h.deps.Audit.Record(authz.NewEvent(authz.EventAPIAccess, actor, action, resource, "evaluate"))
	}

	return c.JSON(fiber.Map{"allowed": allowed})
}

type roleResponse struct {
	ID           string            `json:"id"`
	DisplayNames map[string]string `json:"display_names"`
	DataScope    string            `json:"data_scope"`
	ReadOnly     bool              `json:"read_only"`
	Layout       string            `json:"layout"`
}

func (h *handlers) roles(c *fiber.Ctx) error {
	roles := h.deps.Engine.Snapshot().Registry.List()
	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleResponse{
			ID:           string(role.ID),
			DisplayNames: role.DisplayNames,
			DataScope:    role.DataScope.String(),
			ReadOnly:     role.ReadOnly,
			Layout:       string(role.Layout),
		})
	}
	return c.JSON(out)
}

func (h *handlers) menu(c *fiber.Ctx) error {
	actor := authz.ActorFromCtx(c)
	items := h.deps.Engine.ProjectMenu(actor)
	return c.JSON(items)
}

// permissions returns the effective entry for one resource, the read-only
// mirror clients use to render action controls. Never authoritative: the
// guarded routes re-check server-side.
func (h *handlers) permissions(c *fiber.Ctx) error {
	res := authz.Resource(c.Query("resource"))
	if !authz.KnownResource(res) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown resource")
	}
	actor := authz.ActorFromCtx(c)
	entry := h.deps.Engine.Permissions(actor, res)
	return c.JSON(fiber.Map{
		"resource":   res,
		"can_view":   entry.View,
		"can_create": entry.Create,
		"can_edit":   entry.Edit,
		"can_delete": entry.Delete,
		"read_only":  h.deps.Engine.ReadOnly(actor),
	})
}

// reload rebuilds the snapshot from the database and swaps it in atomically,
// then drops the decision cache so no stale generation answers.
func (h *handlers) reload(c *fiber.Ctx) error {
	snap, err := authz.LoadSnapshot(h.deps.DB.GormDB)
	if err != nil {
		h.deps.Log.Errorw("snapshot reload failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "reload failed")
	}
	h.deps.Engine.Swap(snap)
	if err := h.deps.Cache.Clear(c.Context()); err != nil {
		h.deps.Log.Warnw("failed to clear decision cache", "error", err)
	}
	return c.JSON(fiber.Map{"reloaded": true})
}

func (h *handlers) health(c *fiber.Ctx) error {
	if err := h.deps.DB.Ping(); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
