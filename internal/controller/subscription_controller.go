package controller

import (
	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/serverutils"
	"winetour-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
}

type subscriptionController struct {
	service service.IAccessService
}

func NewSubscriptionController(service service.IAccessService) ISubscriptionController {
	return &subscriptionController{service: service}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	// Tier table is public so the pricing page renders before login.
	r.Get("/tiers", c.ListTiers)

	h := r.Group("/subscription", jwtMiddleware)
	h.Post("/select-tier", c.SelectTier)
	h.Get("/access", c.CheckAccess)
}

func (c *subscriptionController) ListTiers(ctx *fiber.Ctx) error {
	return serverutils.SuccessResponse(ctx, "Tiers retrieved", c.service.ListTiers())
}

func (c *subscriptionController) SelectTier(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectTierRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SelectTier(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Tier selected", res)
}

func (c *subscriptionController) CheckAccess(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CheckAccess(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Access evaluated", res)
}
