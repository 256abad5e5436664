package usecase

import (
	"context"

	"github.com/paulmach/orb"
)

// Route providers reported in RouteResult.Provider.
const (
	RouteProviderTomTom    = "tomtom"
	RouteProviderHaversine = "haversine"
)

// Coordinate represents a geographic coordinate
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point returns the coordinate in orb's (lon, lat) order.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// RouteResult represents the result of a routing calculation
type RouteResult struct {
	Source      Coordinate     `json:"source"`
	Target      Coordinate     `json:"target"`
	DistanceKm  float64        `json:"distance_km"`
	DurationMin float64        `json:"duration_min"`
	IsReachable bool           `json:"is_reachable"`
	Provider    string         `json:"provider"`
	Path        orb.LineString `json:"path,omitempty"`
}

// RoutingUsecase calculates travel distance and time between two points.
type RoutingUsecase interface {
	CalculateRoute(ctx context.Context, source, target Coordinate) (*RouteResult, error)
}
