// Package tomtom is a client for the TomTom Routing API calculateRoute endpoint.
package tomtom

import (
	"time"

	"github.com/paulmach/orb"
)

// CalculateRouteResponse is the JSON body returned by calculateRoute.
type CalculateRouteResponse struct {
	FormatVersion string  `json:"formatVersion"`
	Routes        []Route `json:"routes"`
}

// Route is one alternative returned by the provider.
type Route struct {
	Summary  Summary   `json:"summary"`
	Legs     []Leg     `json:"legs"`
	Sections []Section `json:"sections"`
	Guidance *Guidance `json:"guidance,omitempty"`
}

// Summary holds the totals of a route or leg.
type Summary struct {
	LengthInMeters        int       `json:"lengthInMeters"`
	TravelTimeInSeconds   int       `json:"travelTimeInSeconds"`
	TrafficDelayInSeconds int       `json:"trafficDelayInSeconds"`
	DepartureTime         time.Time `json:"departureTime"`
	ArrivalTime           time.Time `json:"arrivalTime"`
}

// Leg is the part of a route between two consecutive waypoints.
type Leg struct {
	Summary Summary `json:"summary"`
	Points  []Point `json:"points"`
}

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Section marks a range of route points sharing a property such as travel mode.
type Section struct {
	StartPointIndex int    `json:"startPointIndex"`
	EndPointIndex   int    `json:"endPointIndex"`
	SectionType     string `json:"sectionType"`
	TravelMode      string `json:"travelMode,omitempty"`
}

// Guidance is only present when instructions were requested.
type Guidance struct {
	Instructions []Instruction `json:"instructions"`
}

type Instruction struct {
	RouteOffsetInMeters   int    `json:"routeOffsetInMeters"`
	TravelTimeInSeconds   int    `json:"travelTimeInSeconds"`
	Point                 Point  `json:"point"`
	InstructionType       string `json:"instructionType"`
	Maneuver              string `json:"maneuver"`
	Message               string `json:"message,omitempty"`
	DrivingSide           string `json:"drivingSide,omitempty"`
	TurnAngleInDecimalDeg int    `json:"turnAngleInDecimalDegrees"`
}

// ErrorResponse is the body of a non-2xx answer.
type ErrorResponse struct {
	FormatVersion string `json:"formatVersion"`
	Error         struct {
		Description string `json:"description"`
	} `json:"error"`
	DetailedError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"detailedError,omitempty"`
}

// OrbPoint converts to orb's (lon, lat) order.
func (p Point) OrbPoint() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// LineString concatenates the points of every leg. Leg boundaries share a
// point, which is kept only once.
func (r Route) LineString() orb.LineString {
	ls := make(orb.LineString, 0)
	for _, leg := range r.Legs {
		for _, p := range leg.Points {
			pt := p.OrbPoint()
			if n := len(ls); n > 0 && ls[n-1].Equal(pt) {
				continue
			}
			ls = append(ls, pt)
		}
	}

	return ls
}
