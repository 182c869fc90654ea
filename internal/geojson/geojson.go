// Package geojson exports waypoints and routes as a GeoJSON
// FeatureCollection, mirroring the KML exporter's data contract.
package geojson

import (
	"github.com/ajsalasa/AirNavKML/internal/route"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Export renders waypoints as Point features and routes as LineString
// features. Positions carry [lon, lat, alt_m]; waypoints without a parseable
// position are skipped, routes need at least two positioned vertices.
func Export(points []route.Waypoint, routes []*route.Route) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for _, p := range points {
		if !p.Pos.IsValid() {
			continue
		}
		f := geojson.NewFeature(orb.Point{p.Pos.Lon, p.Pos.Lat})
		f.Properties["name"] = p.Name
		if p.Type != "" {
			f.Properties["type"] = p.Type
		}
		if p.HasAlt {
			f.Properties["alt_m"] = p.AltM
		}
		fc.Append(f)
	}

	for _, r := range routes {
		ls := make(orb.LineString, 0, len(r.Points))
		for _, p := range r.Points {
			if !p.Pos.IsValid() {
				continue
			}
			ls = append(ls, orb.Point{p.Pos.Lon, p.Pos.Lat})
		}
		if len(ls) < 2 {
			continue
		}
		f := geojson.NewFeature(ls)
		f.Properties["name"] = r.Name
		fc.Append(f)
	}

	return fc.MarshalJSON()
}
