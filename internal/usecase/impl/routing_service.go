package impl

import (
	"context"
	"log/slog"
	"math"

	"checker/config"
	deliverycontext "checker/internal/delivery/context"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/errors"
	"checker/internal/infra/routing/tomtom"
	"checker/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

const (
	// defaultSpeedKmh estimates travel time when no provider answers.
	defaultSpeedKmh = 30.0
	metersPerKm     = 1000.0
	secondsPerMin   = 60.0
)

// RouteProvider is the subset of the TomTom client used by routing.
type RouteProvider interface {
	CalculateRoute(ctx context.Context, from, to orb.Point) (*tomtom.CalculateRouteResponse, error)
}

type routingService struct {
	provider        RouteProvider
	defaultSpeedKmh float64
	logger          *slog.Logger
}

// RoutingServiceParams holds dependencies for RoutingService, injected by Fx.
type RoutingServiceParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewRoutingService uses TomTom when it is enabled in config and falls back
// to great-circle estimates otherwise.
func NewRoutingService(params RoutingServiceParams) (usecase.RoutingUsecase, error) {
	cfg := params.Config.TomTom
	if cfg == nil || !cfg.Enabled {
		return newRoutingService(nil, params.Logger), nil
	}

	client, err := tomtom.NewClient(cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	return newRoutingService(client, params.Logger), nil
}

func newRoutingService(provider RouteProvider, logger *slog.Logger) *routingService {
	return &routingService{
		provider:        provider,
		defaultSpeedKmh: defaultSpeedKmh,
		logger:          logger,
	}
}

func (s *routingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// CalculateRoute returns distance and duration between source and target.
func (s *routingService) CalculateRoute(ctx context.Context, source, target usecase.Coordinate) (*usecase.RouteResult, error) {
	if !isValidCoordinate(source) || !isValidCoordinate(target) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("coordinate is outside valid bounds")
	}

	if s.provider == nil {
		return s.haversineRoute(source, target), nil
	}

	resp, err := s.provider.CalculateRoute(ctx, source.Point(), target.Point())
	if err != nil {
		s.log(ctx).Warn("Route provider failed", slog.Any("error", err))

		var statusErr *tomtom.StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(statusErr.Description), "route rejected by provider")
		}

		return nil, errors.Wrap(domainerrors.ErrUpstreamUnavailable, err.Error())
	}

	if len(resp.Routes) == 0 {
		return &usecase.RouteResult{
			Source:      source,
			Target:      target,
			IsReachable: false,
			Provider:    usecase.RouteProviderTomTom,
		}, nil
	}

	route := resp.Routes[0]

	return &usecase.RouteResult{
		Source:      source,
		Target:      target,
		DistanceKm:  float64(route.Summary.LengthInMeters) / metersPerKm,
		DurationMin: float64(route.Summary.TravelTimeInSeconds) / secondsPerMin,
		IsReachable: true,
		Provider:    usecase.RouteProviderTomTom,
		Path:        route.LineString(),
	}, nil
}

// haversineRoute assumes every valid point is reachable on a straight line.
func (s *routingService) haversineRoute(source, target usecase.Coordinate) *usecase.RouteResult {
	distanceKm := geo.DistanceHaversine(source.Point(), target.Point()) / metersPerKm

	return &usecase.RouteResult{
		Source:      source,
		Target:      target,
		DistanceKm:  distanceKm,
		DurationMin: distanceKm / s.defaultSpeedKmh * secondsPerMin,
		IsReachable: true,
		Provider:    usecase.RouteProviderHaversine,
		Path:        orb.LineString{source.Point(), target.Point()},
	}
}

func isValidCoordinate(coord usecase.Coordinate) bool {
	if math.IsNaN(coord.Lat) || math.IsNaN(coord.Lng) ||
		math.IsInf(coord.Lat, 0) || math.IsInf(coord.Lng, 0) {
		return false
	}

	return coord.Lat >= -90 && coord.Lat <= 90 &&
		coord.Lng >= -180 && coord.Lng <= 180
}
