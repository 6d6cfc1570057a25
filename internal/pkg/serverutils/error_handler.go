package serverutils

import (
	"errors"

	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler builds the app-level Fiber error handler. AppErrors carry
// their own status and stable code; anything else becomes a 500 with the
// detail kept in the log, not the response.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if appErr, ok := apperror.As(err); ok {
			if appErr.Status >= fiber.StatusInternalServerError {
				log.Error("http", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"code":  appErr.Code,
					"error": appErr.Error(),
				})
			}
			return ctx.Status(appErr.Status).JSON(fiber.Map{
				"success": false,
				"code":    appErr.Code,
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    apperror.CodeInternal,
				"message": fiberErr.Message,
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    apperror.CodeInternal,
			"message": "internal server error",
		})
	}
}
