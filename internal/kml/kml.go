// Package kml assembles KML 2.2 documents from waypoint tables and airway
// routes: styled point placemarks grouped into per-type folders, and
// LineString placemarks for the routes.
package kml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ajsalasa/AirNavKML/internal/route"
	"golang.org/x/exp/maps"
)

// AltitudeMode values accepted by KML.
const (
	ClampToGround    = "clampToGround"
	RelativeToGround = "relativeToGround"
	Absolute         = "absolute"
)

// PointOptions configures point placemark generation.
type PointOptions struct {
	AltMode     string
	FixedAltM   float64
	HasFixedAlt bool
	Extrude     bool
}

// RouteOptions configures route LineString generation.
type RouteOptions struct {
	AltMode     string
	FixedAltM   float64
	HasFixedAlt bool
	Color       string // "#RRGGBB" or KML "aabbggrr"
	Width       float64
	Extrude     bool
}

var pointStyleDefs = []struct {
	icon  string
	color string
}{
	{"http://maps.google.com/mapfiles/kml/paddle/red-circle.png", "ff0000ff"},
	{"http://maps.google.com/mapfiles/kml/paddle/grn-circle.png", "ff00ff00"},
	{"http://maps.google.com/mapfiles/kml/paddle/ylw-circle.png", "ff00ffff"},
	{"http://maps.google.com/mapfiles/kml/paddle/blu-circle.png", "ffff0000"},
}

// ColorFromHex converts "#RRGGBB" to the KML "aabbggrr" byte order. An
// 8-hex-digit value is assumed to already be aabbggrr and is passed through;
// anything else falls back to opaque red.
func ColorFromHex(hex string) string {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 8 && isHexDigits(s) {
		return strings.ToLower(s)
	}
	if len(s) != 6 || !isHexDigits(s) {
		return "ff0000ff"
	}
	rr, gg, bb := s[0:2], s[2:4], s[4:6]
	return strings.ToLower("ff" + bb + gg + rr)
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b < '0' || b > '9') && (b < 'a' || b > 'f') && (b < 'A' || b > 'F') {
			return false
		}
	}
	return true
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// Build renders the full document. Waypoints without a parseable position
// are silently skipped; routes need at least two positioned vertices.
func Build(title string, points []route.Waypoint, routes []*route.Route, popt PointOptions, ropt RouteOptions) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<kml xmlns=\"http://www.opengis.net/kml/2.2\">\n")
	b.WriteString("<Document>\n")
	fmt.Fprintf(&b, "<name>%s</name>\n", escape(title))

	b.WriteString(
		`<Style id="default"><IconStyle><color>ff0000ff</color><scale>1.1</scale>` +
			`<Icon><href>http://maps.google.com/mapfiles/kml/paddle/wht-blank.png</href></Icon>` +
			`</IconStyle><LabelStyle><scale>0.9</scale></LabelStyle></Style>` + "\n")
	fmt.Fprintf(&b, "<Style id=\"routeStyle\"><LineStyle><color>%s</color><width>%g</width></LineStyle></Style>\n",
		ColorFromHex(ropt.Color), ropt.Width)

	writePoints(&b, points, popt)
	writeRoutes(&b, routes, ropt)

	b.WriteString("</Document>\n")
	b.WriteString("</kml>\n")
	return b.String()
}

func writePoints(b *strings.Builder, points []route.Waypoint, opt PointOptions) {
	if len(points) == 0 {
		return
	}

	byType := make(map[string][]route.Waypoint)
	for _, p := range points {
		byType[p.Type] = append(byType[p.Type], p)
	}
	types := maps.Keys(byType)
	sort.Strings(types)

	styleIDs := make(map[string]string)
	if len(types) > 1 || (len(types) == 1 && types[0] != "") {
		i := 0
		for _, t := range types {
			if t == "" {
				continue
			}
			def := pointStyleDefs[i%len(pointStyleDefs)]
			sid := fmt.Sprintf("type_%d", i)
			styleIDs[t] = sid
			fmt.Fprintf(b, "<Style id=\"%s\"><IconStyle><color>%s</color><scale>1.1</scale>"+
				"<Icon><href>%s</href></Icon></IconStyle>"+
				"<LabelStyle><scale>0.9</scale></LabelStyle></Style>\n", sid, def.color, def.icon)
			i++
		}
	}

	grouped := len(styleIDs) > 0
	for _, t := range types {
		folder := grouped
		if folder {
			name := t
			if name == "" {
				name = "Sin tipo"
			}
			fmt.Fprintf(b, "<Folder><name>%s</name>\n", escape(name))
		}
		for _, p := range byType[t] {
			writePlacemark(b, p, styleIDs[t], opt)
		}
		if folder {
			b.WriteString("</Folder>\n")
		}
	}
}

func writePlacemark(b *strings.Builder, p route.Waypoint, styleID string, opt PointOptions) {
	if !p.Pos.IsValid() {
		return
	}

	altM := pointAltitude(p.HasAlt, p.AltM, opt.HasFixedAlt, opt.FixedAltM)

	style := "#default"
	if styleID != "" {
		style = "#" + styleID
	}
	extrude := ""
	if opt.Extrude {
		extrude = "<extrude>1</extrude>"
	}

	b.WriteString("<Placemark>")
	fmt.Fprintf(b, "<name>%s</name>", escape(p.Name))
	fmt.Fprintf(b, "<styleUrl>%s</styleUrl>", style)
	fmt.Fprintf(b, "<description>%s</description>", description(p.Extra))
	b.WriteString("<Point>")
	fmt.Fprintf(b, "<altitudeMode>%s</altitudeMode>", opt.AltMode)
	b.WriteString(extrude)
	fmt.Fprintf(b, "<coordinates>%.8f,%.8f,%.2f</coordinates>", p.Pos.Lon, p.Pos.Lat, altM)
	b.WriteString("</Point>")
	b.WriteString("</Placemark>\n")
}

func writeRoutes(b *strings.Builder, routes []*route.Route, opt RouteOptions) {
	for _, r := range routes {
		coords := make([]string, 0, len(r.Points))
		for _, p := range r.Points {
			if !p.Pos.IsValid() {
				continue
			}
			altM := pointAltitude(p.HasAlt, p.AltM, opt.HasFixedAlt, opt.FixedAltM)
			coords = append(coords, fmt.Sprintf("%.8f,%.8f,%.2f", p.Pos.Lon, p.Pos.Lat, altM))
		}
		if len(coords) < 2 {
			continue
		}

		extrude := ""
		if opt.Extrude {
			extrude = "<extrude>1</extrude>"
		}

		b.WriteString("<Placemark>")
		fmt.Fprintf(b, "<name>%s</name>", escape(r.Name))
		b.WriteString("<styleUrl>#routeStyle</styleUrl>")
		b.WriteString("<LineString>")
		fmt.Fprintf(b, "<altitudeMode>%s</altitudeMode>", opt.AltMode)
		b.WriteString(extrude)
		fmt.Fprintf(b, "<coordinates>%s</coordinates>", strings.Join(coords, " "))
		b.WriteString("</LineString>")
		b.WriteString("</Placemark>\n")
	}
}

func pointAltitude(hasAlt bool, altM float64, hasFixed bool, fixedM float64) float64 {
	if hasAlt {
		return altM
	}
	if hasFixed {
		return fixedM
	}
	return 0
}

// description renders the source row as the HTML key/value table Google
// Earth shows in the placemark balloon.
func description(extra map[string]string) string {
	if len(extra) == 0 {
		return ""
	}
	keys := maps.Keys(extra)
	sort.Strings(keys)

	var rows strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&rows, "<tr><th style='text-align:left;padding-right:8px'>%s</th><td>%s</td></tr>",
			escape(k), escape(extra[k]))
	}
	return "<![CDATA[<table>" + rows.String() + "</table>]]>"
}
