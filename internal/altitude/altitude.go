// Package altitude converts between meters, feet and flight levels. Input is
// noisy field data ("7500 ft", "FL180", "650,5"), so parsing is lenient and
// reports absence instead of failing.
package altitude

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit selects the interpretation of a raw altitude value.
type Unit string

const (
	Meters      Unit = "m"
	Feet        Unit = "ft"
	FlightLevel Unit = "fl" // hundreds of feet: FL180 = 18000 ft
)

const metersPerFoot = 0.3048

func toFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToMeters converts a textual altitude to meters. A "FT" suffix or "FL"
// prefix wins over the declared unit. Absent/unparseable input reports
// ok == false; callers must not fold that into zero.
func ToMeters(raw string, unit Unit) (float64, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	if unit == FlightLevel {
		n, ok := toFloat(strings.TrimSpace(strings.ReplaceAll(s, "FL", "")))
		if !ok {
			return 0, false
		}
		return n * 100.0 * metersPerFoot, true
	}

	if n, ok := toFloat(s); ok {
		if unit == Feet {
			return n * metersPerFoot, true
		}
		return n, true
	}

	// affixed unit markers: "6000 FT", "FL120"
	if strings.HasSuffix(s, "FT") {
		n, ok := toFloat(strings.TrimSuffix(s, "FT"))
		if !ok {
			return 0, false
		}
		return n * metersPerFoot, true
	}
	if strings.HasPrefix(s, "FL") {
		n, ok := toFloat(strings.TrimPrefix(s, "FL"))
		if !ok {
			return 0, false
		}
		return n * 100.0 * metersPerFoot, true
	}

	return 0, false
}

// FromMeters converts meters into the requested unit, rounded the way the
// export layer presents values: meters to 2 decimals, feet to 1, flight
// levels to the nearest whole level.
func FromMeters(m float64, unit Unit) float64 {
	switch unit {
	case Feet:
		return math.Round(m/metersPerFoot*10) / 10
	case FlightLevel:
		return math.Round(m / metersPerFoot / 100.0)
	default:
		return math.Round(m*100) / 100
	}
}

// Label formats meters as a flight-level label, e.g. 2590.8m -> "FL085".
// Flight levels are quantized to 100 ft, so the round trip is lossy.
func Label(m float64) string {
	return fmt.Sprintf("FL%03d", int(FromMeters(m, FlightLevel)))
}
