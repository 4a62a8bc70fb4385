package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logichain/backend/auth"
	"github.com/logichain/backend/repository"
)

// Server owns the fiber app and its wiring
type Server struct {
	app    *fiber.App
	logger auth.Logger
}

// Deps is everything the route surface needs
type Deps struct {
	Tokens  auth.TokenService
	Auther  *auth.Authenticator
	Reset   *auth.PasswordResetFlow
	Repos   repository.Manager
	Logger  auth.Logger
	AppName string
}

// New builds the app and registers every route
func New(deps Deps) *Server {
	name := deps.AppName
	if name == "" {
		name = "logichain"
	}

	app := fiber.New(fiber.Config{
		AppName: name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// fiber-level failures (no route, body limits) still use
			// the shared envelope
			if fe, ok := err.(*fiber.Error); ok {
				return respond(c, fe.Code, fe.Message, nil)
			}
			return RespondError(c, err)
		},
	})

	s := &Server{app: app, logger: deps.Logger}
	s.registerRoutes(deps)
	return s
}

// App exposes the underlying fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on addr
func (s *Server) Listen(addr string) error {
	if s.logger != nil {
		s.logger.Info("http server listening", "addr", addr)
	}
	return s.app.Listen(addr)
}

// Shutdown drains connections and stops the listener
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes(deps Deps) {
	authHandlers := NewAuthHandlers(deps.Auther, deps.Reset, deps.Logger)
	profileHandlers := NewProfileHandlers(deps.Repos.Accounts(), deps.Logger)
	userHandlers := NewUserHandlers(deps.Repos.Accounts(), deps.Repos.ActivityLogs(), deps.Logger)
	logistics := NewLogisticsHandlers(deps.Repos)

	s.app.Use(Authenticate(deps.Tokens, deps.Logger))

	api := s.app.Group("/api")

	// public auth surface
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Post("/forgot-password", authHandlers.ForgotPassword)
	authGroup.Post("/verify-otp", authHandlers.VerifyOTP)
	authGroup.Post("/reset-password", authHandlers.ResetPassword)

	// self service
	profile := api.Group("/profile")
	profile.Get("/", RequireOperation(auth.OpProfileGet), profileHandlers.Get)
	profile.Put("/", RequireOperation(auth.OpProfileUpdate), profileHandlers.Update)
	profile.Post("/change-password", RequireOperation(auth.OpProfileChangePassword), profileHandlers.ChangePassword)

	// administration
	users := api.Group("/users")
	users.Get("/", RequireOperation(auth.OpUsersList), userHandlers.List)
	users.Get("/:id", RequireOperation(auth.OpUsersGet), userHandlers.Get)
	users.Put("/:id/approval", RequireOperation(auth.OpUsersApproval), userHandlers.UpdateApproval)
	users.Delete("/:id", RequireOperation(auth.OpUsersDelete), userHandlers.Delete)

	api.Get("/logs", RequireOperation(auth.OpLogsList), userHandlers.ListLogs)

	// catalog (read side)
	products := api.Group("/products")
	products.Get("/", RequireOperation(auth.OpProductsList), logistics.ListProducts)
	products.Get("/mine", RequireOperation(auth.OpProductsMine), logistics.ListMyProducts)
	products.Get("/:id", RequireOperation(auth.OpProductsGet), logistics.GetProduct)

	warehouses := api.Group("/warehouses")
	warehouses.Get("/", RequireOperation(auth.OpWarehousesList), logistics.ListWarehouses)
	warehouses.Get("/:id", RequireOperation(auth.OpWarehousesGet), logistics.GetWarehouse)

	inventory := api.Group("/inventory")
	inventory.Get("/", RequireOperation(auth.OpInventoryList), logistics.ListInventory)
	inventory.Get("/:id", RequireOperation(auth.OpInventoryGet), logistics.GetInventory)

	orders := api.Group("/orders")
	orders.Get("/", RequireOperation(auth.OpOrdersList), logistics.ListOrders)
	orders.Get("/customer/:id", RequireOperation(auth.OpOrdersByCustomer), logistics.ListOrdersByCustomer)
	orders.Get("/:id", RequireOperation(auth.OpOrdersGet), logistics.GetOrder)

	shipments := api.Group("/shipments")
	shipments.Get("/", RequireOperation(auth.OpShipmentsList), logistics.ListShipments)
	shipments.Get("/track/:tracking", RequireOperation(auth.OpShipmentsTrack), logistics.TrackShipment)
	shipments.Get("/:id", RequireOperation(auth.OpShipmentsGet), logistics.GetShipment)

	returns := api.Group("/returns")
	returns.Get("/", RequireOperation(auth.OpReturnsList), logistics.ListReturns)
	returns.Get("/:id", RequireOperation(auth.OpReturnsGet), logistics.GetReturn)

	api.Get("/notifications", RequireOperation(auth.OpNotificationsList), logistics.ListNotifications)

	carriers := api.Group("/carriers")
	carriers.Get("/", RequireOperation(auth.OpCarriersList), logistics.ListCarriers)
	carriers.Get("/:id", RequireOperation(auth.OpCarriersGet), logistics.GetCarrier)
}
