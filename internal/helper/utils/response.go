package utils

import (
	"log"

	"github.com/einkreativername/brightmiss/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(data)
}

// ResponseAppError maps a service failure onto the error taxonomy. Unknown
// errors are logged and surfaced as a bare 500.
func ResponseAppError(ctx *fiber.Ctx, err error) error {
	if appErr, ok := helper.AsAppError(err); ok {
		if appErr.Err != nil {
			log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), appErr.Err)
		}
		return ResponseError(ctx, appErr.Status, appErr.Message)
	}
	log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	return ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
}
