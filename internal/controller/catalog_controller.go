package controller

import (
	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/serverutils"
	"winetour-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware, accessGate fiber.Handler)
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router, jwtMiddleware, accessGate fiber.Handler) {
	h := r.Group("/explore", jwtMiddleware, accessGate)
	h.Get("/vineyards", c.ListVineyards)
	h.Get("/vineyards/:id", c.GetVineyard)
	h.Get("/restaurants", c.ListRestaurants)
	h.Get("/restaurants/:id", c.GetRestaurant)
}

func exploreQuery(ctx *fiber.Ctx) (*dto.ExploreQuery, error) {
	var query dto.ExploreQuery
	if err := ctx.QueryParser(&query); err != nil {
		return nil, apperror.Validation("invalid query parameters")
	}
	return &query, nil
}

func (c *catalogController) ListVineyards(ctx *fiber.Ctx) error {
	query, err := exploreQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.ListVineyards(ctx.Context(), query)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Vineyards retrieved", res)
}

func (c *catalogController) GetVineyard(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid vineyard id")
	}
	res, err := c.service.GetVineyard(ctx.Context(), id)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Vineyard retrieved", res)
}

func (c *catalogController) ListRestaurants(ctx *fiber.Ctx) error {
	query, err := exploreQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.ListRestaurants(ctx.Context(), query)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Restaurants retrieved", res)
}

func (c *catalogController) GetRestaurant(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid restaurant id")
	}
	res, err := c.service.GetRestaurant(ctx.Context(), id)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Restaurant retrieved", res)
}
