// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"checker/internal/delivery/http/middleware"
	"checker/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	RouteHandler   *handler.RouteHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	routeHandler   *handler.RouteHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		routeHandler:   params.RouteHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
	}

	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.POST("/password", r.userHandler.ChangePassword)
	}

	routesGroup := e.Group("/routes")
	routesGroup.Use(r.authMiddleware.Authenticate)
	{
		routesGroup.GET("", r.routeHandler.CalculateRoute)
	}
}
