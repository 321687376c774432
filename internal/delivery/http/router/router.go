// Package router contains routing setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"hailer/internal/delivery/http/middleware"
	"hailer/internal/delivery/http/router/handler"
	"hailer/internal/domain/entity"
)

// RouterParams holds the handlers and middleware Fx injects into the router.
type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	DispatchHandler *handler.DispatchHandler
	TripHandler     *handler.TripHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	dispatchHandler *handler.DispatchHandler
	tripHandler     *handler.TripHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		dispatchHandler: params.DispatchHandler,
		tripHandler:     params.TripHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.accountHandler.SignUp)
		authGroup.POST("/signin", r.accountHandler.SignIn)
	}

	// Account routes for any authenticated participant
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.PUT("/name", r.accountHandler.ChangeName)
		accountGroup.PUT("/password", r.accountHandler.ChangePassword)
	}

	// Rider-facing dispatch routes
	dispatchGroup := e.Group("/dispatch")
	dispatchGroup.Use(r.authMiddleware.Authenticate)
	dispatchGroup.Use(r.authMiddleware.RequireRole(entity.RoleRider.String()))
	{
		dispatchGroup.GET("/drivers", r.dispatchHandler.FindDrivers)
		dispatchGroup.POST("/request", r.dispatchHandler.RequestDriver)
		dispatchGroup.GET("/orders/:id/requested", r.dispatchHandler.DriverRequested)
	}

	// Driver-facing trip lifecycle routes
	tripGroup := e.Group("/trip")
	tripGroup.Use(r.authMiddleware.Authenticate)
	tripGroup.Use(r.authMiddleware.RequireRole(entity.RoleDriver.String()))
	{
		tripGroup.POST("/orders/:id/accept", r.tripHandler.AcceptOrder)
		tripGroup.POST("/orders/:id/start", r.tripHandler.StartTrip)
		tripGroup.POST("/orders/:id/complete", r.tripHandler.CompleteTrip)
	}

	// Driver state routes
	driverGroup := e.Group("/driver")
	driverGroup.Use(r.authMiddleware.Authenticate)
	driverGroup.Use(r.authMiddleware.RequireRole(entity.RoleDriver.String()))
	{
		driverGroup.PUT("/availability", r.tripHandler.SetAvailability)
		driverGroup.PUT("/location", r.tripHandler.UpdateLocation)
		driverGroup.PUT("/device", r.tripHandler.RegisterDevice)
	}
}
