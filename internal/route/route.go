package route

import (
	"fmt"

	"github.com/ajsalasa/AirNavKML/internal/geo"
)

// Route is an ordered sequence of waypoints; the order defines the legs.
type Route struct {
	Name   string
	Points []Waypoint
}

// NavMode selects the navigation model for leg distance and correction.
type NavMode int

const (
	GreatCircle NavMode = iota
	Rhumb
)

// Leg is the pair of consecutive route points starting at index i.
type Leg struct {
	From *Waypoint
	To   *Waypoint
}

func (r *Route) Leg(i int) (Leg, error) {
	if i < 0 || i >= len(r.Points)-1 {
		return Leg{}, fmt.Errorf("route '%s' has no leg %d", r.Name, i)
	}
	return Leg{From: &r.Points[i], To: &r.Points[i+1]}, nil
}

// Bearing is the initial true course of the leg; undefined for absent
// endpoints or coincident points.
func (l Leg) Bearing() (float64, error) {
	return geo.InitialBearing(l.From.Pos, l.To.Pos)
}

// Distance returns the leg length in meters in the given navigation mode.
func (l Leg) Distance(mode NavMode) (float64, error) {
	if !l.From.Pos.IsValid() || !l.To.Pos.IsValid() {
		return 0, fmt.Errorf("cannot measure leg with absent endpoint")
	}
	if mode == Rhumb {
		return geo.RhumbDistance(l.From.Pos, l.To.Pos), nil
	}
	return geo.GreatCircleDistance(l.From.Pos, l.To.Pos), nil
}

// CorrectLeg recomputes the position of point i+1 so that the leg from point
// i matches the requested bearing. A distanceM <= 0 keeps the current leg
// length (measured in the same mode). The point's altitude is untouched and
// lat/lon are replaced together: on error the route is unchanged.
func (r *Route) CorrectLeg(i int, mode NavMode, bearingDeg, distanceM float64) error {
	leg, err := r.Leg(i)
	if err != nil {
		return err
	}
	if !leg.From.Pos.IsValid() {
		return fmt.Errorf("route '%s' leg %d: origin position is absent", r.Name, i)
	}

	if distanceM <= 0 {
		distanceM, err = leg.Distance(mode)
		if err != nil {
			return fmt.Errorf("route '%s' leg %d: %w", r.Name, i, err)
		}
		if distanceM == 0 {
			return fmt.Errorf("route '%s' leg %d: zero-length leg, distance required", r.Name, i)
		}
	}

	var dest geo.LatLon
	if mode == Rhumb {
		dest = geo.DestinationRhumb(leg.From.Pos, bearingDeg, distanceM)
	} else {
		dest = geo.DestinationGreatCircle(leg.From.Pos, bearingDeg, distanceM)
	}

	leg.To.Pos = dest
	return nil
}
