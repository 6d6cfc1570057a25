package controller

import (
	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/serverutils"
	"winetour-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware, adminOnly fiber.Handler)
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router, jwtMiddleware, adminOnly fiber.Handler) {
	h := r.Group("/admin", jwtMiddleware, adminOnly)

	h.Post("/vineyards", c.CreateVineyard)
	h.Put("/vineyards/:id", c.UpdateVineyard)
	h.Delete("/vineyards/:id", c.DeleteVineyard)

	h.Post("/restaurants", c.CreateRestaurant)
	h.Put("/restaurants/:id", c.UpdateRestaurant)
	h.Delete("/restaurants/:id", c.DeleteRestaurant)

	h.Get("/users", c.ListUsers)
	h.Patch("/users/:id/status", c.UpdateUserStatus)

	h.Get("/logs", c.GetLogs)
}

func idFromParams(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid id")
	}
	return id, nil
}

func (c *adminController) CreateVineyard(ctx *fiber.Ctx) error {
	var req dto.CreateVineyardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateVineyard(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.CreatedResponse(ctx, "Vineyard created", res)
}

func (c *adminController) UpdateVineyard(ctx *fiber.Ctx) error {
	id, err := idFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateVineyardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateVineyard(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Vineyard updated", res)
}

func (c *adminController) DeleteVineyard(ctx *fiber.Ctx) error {
	id, err := idFromParams(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeleteVineyard(ctx.Context(), id); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Vineyard deleted", nil)
}

func (c *adminController) CreateRestaurant(ctx *fiber.Ctx) error {
	var req dto.CreateRestaurantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateRestaurant(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.CreatedResponse(ctx, "Restaurant created", res)
}

func (c *adminController) UpdateRestaurant(ctx *fiber.Ctx) error {
	id, err := idFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateRestaurantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateRestaurant(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Restaurant updated", res)
}

func (c *adminController) DeleteRestaurant(ctx *fiber.Ctx) error {
	id, err := idFromParams(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeleteRestaurant(ctx.Context(), id); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Restaurant deleted", nil)
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.service.ListUsers(ctx.Context(),
		ctx.Query("search"),
		ctx.QueryInt("limit"),
		ctx.QueryInt("offset"),
	)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Users retrieved", res)
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	id, err := idFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	if err := c.service.UpdateUserStatus(ctx.Context(), &req); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "User status updated", nil)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	logs, err := c.service.GetLogs(
		ctx.Query("level"),
		ctx.QueryInt("limit"),
		ctx.QueryInt("offset"),
	)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Logs retrieved", logs)
}
