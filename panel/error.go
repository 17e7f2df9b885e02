package panel

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/logevents"
	"pkg.world.dev/world-engine/logevents/settings"
)

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Message string `json:"message"`
}

var ErrorHandler = func(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	c.Set(fiber.HeaderContentType, "application/json")

	return c.Status(code).JSON(ErrorResponse{Error: Error{Message: err.Error()}})
}

// serviceError maps service errors to their HTTP status.
func serviceError(err error) error {
	switch {
	case eris.Is(err, logevents.ErrNotLogged):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case eris.Is(err, settings.ErrInvalidLevel):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
