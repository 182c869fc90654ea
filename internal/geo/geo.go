package geo

import (
	"fmt"
	"math"
)

// EarthRadiusM is the mean spherical Earth radius used by all navigation
// functions. No ellipsoidal correction is applied.
const EarthRadiusM = 6371000.0

type LatLon struct {
	Lat float64
	Lon float64
}

// Absent is the sentinel for a missing/unparseable position.
func Absent() LatLon {
	return LatLon{1000, 1000}
}

func (ll LatLon) IsValid() bool {
	return ll.Lat >= -90 && ll.Lat <= 90 && ll.Lon >= -180 && ll.Lon <= 180
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func rad2deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// NormalizeLon maps a longitude to [-180, 180). Idempotent.
func NormalizeLon(deg float64) float64 {
	l := math.Mod(deg+180.0, 360.0)
	if l < 0 {
		l += 360.0
	}
	return l - 180.0
}

// GreatCircleDistance returns the haversine distance in meters.
func GreatCircleDistance(a, b LatLon) float64 {
	lat1 := deg2rad(a.Lat)
	lat2 := deg2rad(b.Lat)
	dlat := lat2 - lat1
	dlon := deg2rad(b.Lon) - deg2rad(a.Lon)

	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)) * EarthRadiusM
}

// RhumbDistance returns the constant-bearing (loxodromic) distance in meters.
func RhumbDistance(a, b LatLon) float64 {
	lat1 := deg2rad(a.Lat)
	lat2 := deg2rad(b.Lat)
	dlat := lat2 - lat1
	dlon := deg2rad(b.Lon) - deg2rad(a.Lon)

	// shorter way round past the antimeridian
	if math.Abs(dlon) > math.Pi {
		dlon = dlon - math.Copysign(2*math.Pi, dlon)
	}

	dpsi := 0.0
	if lat2 != lat1 {
		dpsi = math.Log(math.Tan(math.Pi/4+lat2/2) / math.Tan(math.Pi/4+lat1/2))
	}
	q := math.Cos(lat1)
	if math.Abs(dpsi) > 1e-12 {
		q = dlat / dpsi
	}

	return math.Sqrt(dlat*dlat+(q*dlon)*(q*dlon)) * EarthRadiusM
}

// InitialBearing returns the initial true course from a to b in [0, 360).
// The bearing is undefined (error) for absent endpoints or coincident points.
func InitialBearing(a, b LatLon) (float64, error) {
	if !a.IsValid() || !b.IsValid() {
		return 0, fmt.Errorf("cannot compute bearing for invalid latlons")
	}
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0, fmt.Errorf("bearing undefined for coincident points")
	}

	lat1 := deg2rad(a.Lat)
	lat2 := deg2rad(b.Lat)
	dlon := deg2rad(b.Lon) - deg2rad(a.Lon)

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)

	return normalizeAngle(rad2deg(math.Atan2(y, x))), nil
}

// DistanceBearing returns the great-circle distance in meters and the initial
// bearing in degrees from a to b.
func (a LatLon) DistanceBearing(b LatLon) (float64, float64, error) {
	if !a.IsValid() || !b.IsValid() {
		return 0, 0, fmt.Errorf("cannot compute distance/bearing for invalid latlons")
	}
	bearing, err := InitialBearing(a, b)
	if err != nil {
		return 0, 0, err
	}
	return GreatCircleDistance(a, b), bearing, nil
}

// DestinationGreatCircle solves the direct geodesic problem on the sphere:
// the point reached from origin after distanceM meters on an initial true
// course of bearingDeg.
func DestinationGreatCircle(origin LatLon, bearingDeg, distanceM float64) LatLon {
	theta := deg2rad(bearingDeg)
	delta := distanceM / EarthRadiusM
	lat1 := deg2rad(origin.Lat)
	lon1 := deg2rad(origin.Lon)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	return LatLon{Lat: rad2deg(lat2), Lon: NormalizeLon(rad2deg(lon2))}
}

// DestinationRhumb is the direct loxodrome problem: the point reached from
// origin holding a constant course of bearingDeg for distanceM meters.
func DestinationRhumb(origin LatLon, bearingDeg, distanceM float64) LatLon {
	theta := deg2rad(bearingDeg)
	lat1 := deg2rad(origin.Lat)
	lon1 := deg2rad(origin.Lon)
	delta := distanceM / EarthRadiusM

	dlat := delta * math.Cos(theta)
	lat2 := lat1 + dlat

	// keep clear of the isometric-latitude singularity at the poles
	if math.Abs(lat2) > math.Pi/2 {
		lat2 = math.Copysign(math.Pi/2-1e-12, lat2)
	}

	dpsi := 0.0
	if lat2 != lat1 {
		dpsi = math.Log(math.Tan(math.Pi/4+lat2/2) / math.Tan(math.Pi/4+lat1/2))
	}
	q := math.Cos(lat1)
	if math.Abs(dpsi) > 1e-12 {
		q = dlat / dpsi
	}

	lon2 := lon1 + delta*math.Sin(theta)/q

	return LatLon{Lat: rad2deg(lat2), Lon: NormalizeLon(rad2deg(lon2))}
}
