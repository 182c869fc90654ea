package kml

import (
	"strings"
	"testing"

	"github.com/ajsalasa/AirNavKML/internal/geo"
	"github.com/ajsalasa/AirNavKML/internal/route"
)

func TestColorFromHex(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"#00A0FF", "ffffa000"},
		{"00A0FF", "ffffa000"},
		{"#FF0000", "ff0000ff"},
		{"80FF0000", "80ff0000"}, // already aabbggrr
		{"nonsense", "ff0000ff"}, // 8 characters but not hex digits
		{"garbage", "ff0000ff"},
		{"zzzzzz", "ff0000ff"},
		{"", "ff0000ff"},
	} {
		if got := ColorFromHex(tc.in); got != tc.want {
			t.Errorf("ColorFromHex(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestBuildPointsAndRoute(t *testing.T) {
	points := []route.Waypoint{
		{Name: "TIGRE", Type: "VOR", Pos: geo.LatLon{Lat: 9.5, Lon: -84.2}, AltM: 750, HasAlt: true,
			Extra: map[string]string{"Designador": "TIGRE"}},
		{Name: "LIRIO", Type: "FIX", Pos: geo.LatLon{Lat: 10.0, Lon: -84.0}},
		{Name: "BROKEN", Pos: geo.Absent()},
	}
	routes := []*route.Route{{
		Name: "UL780",
		Points: []route.Waypoint{
			{Name: "TIGRE", Pos: geo.LatLon{Lat: 9.5, Lon: -84.2}, AltM: 5486.4, HasAlt: true},
			{Name: "LIRIO", Pos: geo.LatLon{Lat: 10.0, Lon: -84.0}, AltM: 5486.4, HasAlt: true},
		},
	}}

	doc := Build("Aerovías", points, routes,
		PointOptions{AltMode: RelativeToGround, Extrude: true},
		RouteOptions{AltMode: Absolute, Color: "#00A0FF", Width: 3})

	for _, want := range []string{
		"<name>Aerovías</name>",
		"<coordinates>-84.20000000,9.50000000,750.00</coordinates>",
		"<Folder><name>VOR</name>",
		"<Folder><name>FIX</name>",
		"<name>UL780</name>",
		"<altitudeMode>absolute</altitudeMode>",
		"<altitudeMode>relativeToGround</altitudeMode>",
		"<coordinates>-84.20000000,9.50000000,5486.40 -84.00000000,10.00000000,5486.40</coordinates>",
		"<color>ffffa000</color>",
		"<extrude>1</extrude>",
		"Designador",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	if strings.Contains(doc, "BROKEN") {
		t.Error("waypoint with absent position must be skipped")
	}
}

func TestBuildEscapesNames(t *testing.T) {
	points := []route.Waypoint{
		{Name: "A<&>B", Pos: geo.LatLon{Lat: 1, Lon: 2}},
	}
	doc := Build("T", points, nil, PointOptions{AltMode: Absolute}, RouteOptions{AltMode: Absolute, Width: 1})

	if !strings.Contains(doc, "<name>A&lt;&amp;&gt;B</name>") {
		t.Error("point name not escaped")
	}
	if strings.Contains(doc, "<name>A<&>B</name>") {
		t.Error("raw name leaked into the document")
	}
}

func TestBuildFixedAltitudeFallback(t *testing.T) {
	points := []route.Waypoint{
		{Name: "NOALT", Pos: geo.LatLon{Lat: 1, Lon: 2}},
	}
	doc := Build("T", points, nil,
		PointOptions{AltMode: RelativeToGround, FixedAltM: 750, HasFixedAlt: true},
		RouteOptions{AltMode: Absolute, Width: 1})

	if !strings.Contains(doc, "<coordinates>2.00000000,1.00000000,750.00</coordinates>") {
		t.Error("fixed altitude not applied to altitude-less point")
	}

	doc = Build("T", points, nil,
		PointOptions{AltMode: RelativeToGround},
		RouteOptions{AltMode: Absolute, Width: 1})
	if !strings.Contains(doc, "<coordinates>2.00000000,1.00000000,0.00</coordinates>") {
		t.Error("expected zero altitude without fixed fallback")
	}
}

func TestBuildShortRouteSkipped(t *testing.T) {
	routes := []*route.Route{{
		Name: "SHORT",
		Points: []route.Waypoint{
			{Name: "ONLY", Pos: geo.LatLon{Lat: 1, Lon: 2}},
			{Name: "BAD", Pos: geo.Absent()},
		},
	}}
	doc := Build("T", nil, routes, PointOptions{AltMode: Absolute}, RouteOptions{AltMode: Absolute, Width: 1})
	if strings.Contains(doc, "LineString") {
		t.Error("route with fewer than two positioned vertices must be skipped")
	}
}

func TestBuildNoTypesNoFolders(t *testing.T) {
	points := []route.Waypoint{
		{Name: "P1", Pos: geo.LatLon{Lat: 1, Lon: 2}},
		{Name: "P2", Pos: geo.LatLon{Lat: 2, Lon: 3}},
	}
	doc := Build("T", points, nil, PointOptions{AltMode: Absolute}, RouteOptions{AltMode: Absolute, Width: 1})
	if strings.Contains(doc, "<Folder>") {
		t.Error("untyped points must not be grouped into folders")
	}
	if !strings.Contains(doc, "<styleUrl>#default</styleUrl>") {
		t.Error("untyped points use the default style")
	}
}
