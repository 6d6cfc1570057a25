package serverutils

import "github.com/gofiber/fiber/v2"

func SuccessResponse(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusOK,
		"message": message,
		"data":    data,
	})
}

func CreatedResponse(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusCreated,
		"message": message,
		"data":    data,
	})
}
