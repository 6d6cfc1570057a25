package controller

import (
	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/serverutils"
	"winetour-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITripController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware, accessGate fiber.Handler)
}

type tripController struct {
	service service.ITripService
}

func NewTripController(service service.ITripService) ITripController {
	return &tripController{service: service}
}

func (c *tripController) RegisterRoutes(r fiber.Router, jwtMiddleware, accessGate fiber.Handler) {
	h := r.Group("/trips", jwtMiddleware, accessGate)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/confirm", c.Confirm)
	h.Put("/:id/order", c.Reorder)
	h.Delete("/:id/items/:itemId", c.RemoveItem)
	h.Patch("/:id/items/:itemId/time", c.UpdateItemTime)
}

func tripIdFromParams(ctx *fiber.Ctx) (uuid.UUID, error) {
	tripId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid trip id")
	}
	return tripId, nil
}

func (c *tripController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTripRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateTrip(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.CreatedResponse(ctx, "Trip created", res)
}

func (c *tripController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListTrips(ctx.Context(), userId, ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Trips retrieved", res)
}

func (c *tripController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetTrip(ctx.Context(), userId, tripId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Trip retrieved", res)
}

func (c *tripController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateTripRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = tripId
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateTrip(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Trip updated", res)
}

func (c *tripController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteTrip(ctx.Context(), userId, tripId); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Trip deleted", nil)
}

func (c *tripController) Confirm(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ConfirmTrip(ctx.Context(), userId, tripId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Trip confirmed", res)
}

func (c *tripController) Reorder(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.ReorderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = tripId
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Reorder(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Order updated", res)
}

func (c *tripController) RemoveItem(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.RemoveItem(ctx.Context(), userId, tripId, ctx.Params("itemId"))
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Item removed", res)
}

func (c *tripController) UpdateItemTime(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	tripId, err := tripIdFromParams(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateItemTimeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = tripId
	req.ItemId = ctx.Params("itemId")
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateItemTime(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Visit time updated", res)
}
