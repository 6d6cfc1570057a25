package server

import (
	"log"

	"winetour-be/internal/bootstrap"
	"winetour-be/internal/config"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: serverutils.NewErrorHandler(container.Logger),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

	return &Server{app: app, cfg: cfg}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	accessGate := serverutils.AccessGateMiddleware(c.AccessService.HasAccess)
	adminOnly := serverutils.RoleMiddleware(string(entity.UserRoleAdmin))

	c.AuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.SubscriptionController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.TripController.RegisterRoutes(api, serverutils.JwtMiddleware, accessGate)
	c.CatalogController.RegisterRoutes(api, serverutils.JwtMiddleware, accessGate)
	c.PaymentController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.AdminController.RegisterRoutes(api, serverutils.JwtMiddleware, adminOnly)
}
