package route

import (
	"strings"

	"github.com/ajsalasa/AirNavKML/internal/altitude"
	"github.com/ajsalasa/AirNavKML/internal/columns"
	"github.com/ajsalasa/AirNavKML/internal/coords"
	"github.com/ajsalasa/AirNavKML/internal/geo"
)

// Waypoint is one named fix of an airway. Pos is the absent sentinel when
// the source row had no parseable coordinates; HasAlt distinguishes a
// missing altitude from a genuine zero.
type Waypoint struct {
	Name   string
	Type   string
	Pos    geo.LatLon
	AltM   float64
	HasAlt bool
	Extra  map[string]string
}

// CreateWaypointFromCsvData builds a waypoint from one CSV row using the
// detected column mapping. Coordinate and altitude parsing is lenient: bad
// cells degrade to the absent sentinel instead of failing the row.
func CreateWaypointFromCsvData(headers, row []string, mapping columns.Mapping, altUnit altitude.Unit) Waypoint {
	cells := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			cells[h] = strings.TrimSpace(row[i])
		}
	}

	wpt := Waypoint{Name: "WPT", Pos: geo.Absent(), Extra: make(map[string]string)}

	if mapping.Lat != "" && mapping.Lon != "" {
		lat, lat_ok := coords.ParseAngle(cells[mapping.Lat], coords.AxisLat)
		lon, lon_ok := coords.ParseAngle(cells[mapping.Lon], coords.AxisLon)
		if lat_ok && lon_ok {
			wpt.Pos = geo.LatLon{Lat: lat, Lon: lon}
		}
	} else if mapping.Combined != "" {
		if v, ok := coords.Parse(cells[mapping.Combined], coords.AxisLat); ok && v.IsPair {
			wpt.Pos = geo.LatLon{Lat: v.Lat, Lon: v.Lon}
		}
	}

	if mapping.Name != "" && cells[mapping.Name] != "" {
		wpt.Name = cells[mapping.Name]
	}
	if mapping.Type != "" {
		wpt.Type = cells[mapping.Type]
	}
	if mapping.Altitude != "" {
		if m, ok := altitude.ToMeters(cells[mapping.Altitude], altUnit); ok {
			wpt.AltM = m
			wpt.HasAlt = true
		}
	}

	for h, v := range cells {
		if v != "" {
			wpt.Extra[h] = v
		}
	}

	return wpt
}
