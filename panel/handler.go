package panel

import (
	"github.com/gofiber/fiber/v2"

	"pkg.world.dev/world-engine/logevents/snapshot"
)

type GetHealthResponse struct {
	IsServerRunning bool `json:"isServerRunning"`
}

func GetHealth() func(c *fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(GetHealthResponse{IsServerRunning: true})
	}
}

func GetSettings(svc *Service) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		state, err := svc.State(ctx.UserContext())
		if err != nil {
			return serviceError(err)
		}
		return ctx.JSON(state)
	}
}

func PatchSettings(svc *Service) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		var patch StatePatch
		if err := ctx.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		state, err := svc.SetPlugin(ctx.UserContext(), patch)
		if err != nil {
			return serviceError(err)
		}
		return ctx.JSON(state)
	}
}

// GetEvents lists logged types. Query parameters: name, regex, case, enabled and level.
func GetEvents(svc *Service) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		filter, err := parseFilter(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		list, err := svc.List(ctx.UserContext(), filter)
		if err != nil {
			return serviceError(err)
		}
		return ctx.JSON(list)
	}
}

func PatchEvent(svc *Service) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Params("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "logged type id is required")
		}
		var patch EventPatch
		if err := ctx.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		entry, err := svc.Update(ctx.UserContext(), id, patch)
		if err != nil {
			return serviceError(err)
		}
		return ctx.JSON(entry)
	}
}

func PostSave(svc *Service) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		if err := svc.Save(ctx.UserContext()); err != nil {
			return serviceError(err)
		}
		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func GetSchema() func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		schema, err := snapshot.Schema()
		if err != nil {
			return err
		}
		ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return ctx.Send(schema)
	}
}

func parseFilter(ctx *fiber.Ctx) (Filter, error) {
	enabled, err := ParseEnabledFilter(ctx.Query("enabled"))
	if err != nil {
		return Filter{}, err
	}
	level, err := ParseLevelFilter(ctx.Query("level"))
	if err != nil {
		return Filter{}, err
	}
	return Filter{
		Name:          ctx.Query("name"),
		Regex:         ctx.QueryBool("regex", false),
		CaseSensitive: ctx.QueryBool("case", false),
		Enabled:       enabled,
		Level:         level,
	}, nil
}
