package controller

import (
	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/serverutils"
	"winetour-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/payments")
	h.Post("/checkout", jwtMiddleware, c.Checkout)
	// Midtrans calls this server-to-server; auth is the signature check.
	h.Post("/notification", c.Notification)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Checkout session created", res)
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "OK", nil)
}
