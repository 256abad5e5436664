package handler

import (
	"net/http"

	"checker/internal/delivery/http/response"
	"checker/internal/errors"
	"checker/internal/usecase"

	"github.com/labstack/echo/v4"
)

type routeRequest struct {
	FromLat float64 `query:"fromLat" validate:"latitude"`
	FromLng float64 `query:"fromLng" validate:"longitude"`
	ToLat   float64 `query:"toLat" validate:"latitude"`
	ToLng   float64 `query:"toLng" validate:"longitude"`
}

// RouteHandler serves route calculations.
type RouteHandler struct {
	uc usecase.RoutingUsecase
}

// NewRouteHandler is the constructor for RouteHandler, injected by Fx.
func NewRouteHandler(uc usecase.RoutingUsecase) *RouteHandler {
	return &RouteHandler{uc: uc}
}

// CalculateRoute handles GET /routes?fromLat=&fromLng=&toLat=&toLng=.
func (h *RouteHandler) CalculateRoute(c echo.Context) error {
	var req routeRequest
	err := echo.QueryParamsBinder(c).
		MustFloat64("fromLat", &req.FromLat).
		MustFloat64("fromLng", &req.FromLng).
		MustFloat64("toLat", &req.ToLat).
		MustFloat64("toLng", &req.ToLng).
		BindError()
	if err != nil {
		return response.BindingError(c, "fromLat, fromLng, toLat and toLng are required numbers")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.uc.CalculateRoute(c.Request().Context(),
		usecase.Coordinate{Lat: req.FromLat, Lng: req.FromLng},
		usecase.Coordinate{Lat: req.ToLat, Lng: req.ToLng},
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "")
}
