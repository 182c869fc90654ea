package route

import (
	"math"
	"testing"

	"github.com/ajsalasa/AirNavKML/internal/altitude"
	"github.com/ajsalasa/AirNavKML/internal/columns"
	"github.com/ajsalasa/AirNavKML/internal/geo"
)

func twoPointRoute() *Route {
	return &Route{
		Name: "UL780",
		Points: []Waypoint{
			{Name: "A", Pos: geo.LatLon{Lat: 9.93, Lon: -84.08}, AltM: 3000, HasAlt: true},
			{Name: "B", Pos: geo.LatLon{Lat: 10.5, Lon: -83.5}, AltM: 3500, HasAlt: true},
		},
	}
}

func TestLegDerivedValues(t *testing.T) {
	r := twoPointRoute()
	leg, err := r.Leg(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	brg, err := leg.Bearing()
	if err != nil {
		t.Fatalf("bearing: %v", err)
	}
	if brg < 0 || brg >= 360 {
		t.Errorf("bearing out of range: %f", brg)
	}

	gc, err := leg.Distance(GreatCircle)
	if err != nil {
		t.Fatalf("gc distance: %v", err)
	}
	rh, err := leg.Distance(Rhumb)
	if err != nil {
		t.Fatalf("rhumb distance: %v", err)
	}
	if gc <= 0 || rh < gc-1 {
		t.Errorf("expected 0 < gc <= rhumb, got gc %f rhumb %f", gc, rh)
	}

	if _, err := r.Leg(1); err == nil {
		t.Error("expected error for leg past the end")
	}
	if _, err := r.Leg(-1); err == nil {
		t.Error("expected error for negative leg index")
	}
}

func TestCorrectLegExplicitDistance(t *testing.T) {
	r := twoPointRoute()
	origin := r.Points[0].Pos

	if err := r.CorrectLeg(0, GreatCircle, 90, 100e3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := geo.DestinationGreatCircle(origin, 90, 100e3)
	if r.Points[1].Pos != want {
		t.Errorf("expected %v, got %v", want, r.Points[1].Pos)
	}
	if r.Points[1].AltM != 3500 || !r.Points[1].HasAlt {
		t.Errorf("altitude must be preserved, got %f", r.Points[1].AltM)
	}

	back := geo.GreatCircleDistance(origin, r.Points[1].Pos)
	if math.Abs(back-100e3)/100e3 > 1e-3 {
		t.Errorf("corrected leg length: expected 100km, got %f", back)
	}
}

func TestCorrectLegKeepsDistance(t *testing.T) {
	r := twoPointRoute()
	leg, _ := r.Leg(0)
	before, err := leg.Distance(Rhumb)
	if err != nil {
		t.Fatalf("distance: %v", err)
	}

	if err := r.CorrectLeg(0, Rhumb, 45, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := geo.RhumbDistance(r.Points[0].Pos, r.Points[1].Pos)
	if math.Abs(after-before)/before > 1e-3 {
		t.Errorf("distance not preserved: before %f, after %f", before, after)
	}

	brg, err := geo.InitialBearing(r.Points[0].Pos, r.Points[1].Pos)
	if err != nil {
		t.Fatalf("bearing: %v", err)
	}
	// over a short rhumb leg the initial great-circle course is close to 45
	if math.Abs(brg-45) > 0.5 {
		t.Errorf("expected course ~45, got %f", brg)
	}
}

func TestCorrectLegErrorsLeaveRouteUntouched(t *testing.T) {
	r := twoPointRoute()
	r.Points[0].Pos = geo.Absent()
	b_before := r.Points[1].Pos

	if err := r.CorrectLeg(0, GreatCircle, 90, 100e3); err == nil {
		t.Fatal("expected error for absent origin")
	}
	if r.Points[1].Pos != b_before {
		t.Error("route mutated despite error")
	}

	if err := r.CorrectLeg(5, GreatCircle, 90, 100e3); err == nil {
		t.Error("expected error for invalid leg index")
	}
}

func TestCorrectLegZeroLengthNeedsDistance(t *testing.T) {
	r := twoPointRoute()
	r.Points[1].Pos = r.Points[0].Pos

	if err := r.CorrectLeg(0, GreatCircle, 90, 0); err == nil {
		t.Error("expected error: keep-distance on a zero-length leg")
	}
	if err := r.CorrectLeg(0, GreatCircle, 90, 50e3); err != nil {
		t.Errorf("explicit distance must work on a zero-length leg: %v", err)
	}
}

func TestCreateWaypointFromCsvData(t *testing.T) {
	headers := []string{"Designador", "LATITUD", "LONGITUD", "Tipo", "Nivel"}
	mapping := columns.Detect(headers)
	row := []string{"TIGRE", "093041N", "0843012W", "VOR", "FL180"}

	wpt := CreateWaypointFromCsvData(headers, row, mapping, altitude.FlightLevel)

	if wpt.Name != "TIGRE" {
		t.Errorf("name: expected TIGRE, got %q", wpt.Name)
	}
	if wpt.Type != "VOR" {
		t.Errorf("type: expected VOR, got %q", wpt.Type)
	}
	if !wpt.Pos.IsValid() {
		t.Fatalf("position not parsed: %v", wpt.Pos)
	}
	if math.Abs(wpt.Pos.Lat-9.5114) > 1e-3 || math.Abs(wpt.Pos.Lon+84.5033) > 1e-3 {
		t.Errorf("expected (9.5114, -84.5033), got %v", wpt.Pos)
	}
	if !wpt.HasAlt || math.Abs(wpt.AltM-180*100*0.3048) > 1e-6 {
		t.Errorf("altitude: expected %f, got %f (has %v)", 180*100*0.3048, wpt.AltM, wpt.HasAlt)
	}
	if wpt.Extra["Designador"] != "TIGRE" {
		t.Errorf("extra metadata missing: %v", wpt.Extra)
	}
}

func TestCreateWaypointBadCells(t *testing.T) {
	headers := []string{"Name", "lat", "lon"}
	mapping := columns.Detect(headers)

	wpt := CreateWaypointFromCsvData(headers, []string{"X", "no", "data"}, mapping, altitude.Meters)
	if wpt.Pos.IsValid() {
		t.Errorf("expected absent position, got %v", wpt.Pos)
	}
	if wpt.HasAlt {
		t.Error("expected no altitude")
	}

	wpt = CreateWaypointFromCsvData(headers, []string{"", "9.5", "-84.2"}, mapping, altitude.Meters)
	if wpt.Name != "WPT" {
		t.Errorf("empty name must default to WPT, got %q", wpt.Name)
	}
}

func TestAudit(t *testing.T) {
	r := &Route{
		Name: "W1",
		Points: []Waypoint{
			{Name: "A", Pos: geo.LatLon{Lat: 0, Lon: 179.5}},
			{Name: "B", Pos: geo.LatLon{Lat: 0, Lon: -179.5}},
			{Name: "C", Pos: geo.LatLon{Lat: 0, Lon: -179.5}},
			{Name: "D", Pos: geo.Absent()},
		},
	}

	issues := Audit(r)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", issues)
	}
	if issues[0].Leg != 0 || issues[0].Reason != "leg crosses the antimeridian" {
		t.Errorf("leg 0: got %+v", issues[0])
	}
	if issues[1].Leg != 1 || issues[1].Reason != "zero-length leg" {
		t.Errorf("leg 1: got %+v", issues[1])
	}
	if issues[2].Leg != 2 || issues[2].Reason != "absent endpoint position" {
		t.Errorf("leg 2: got %+v", issues[2])
	}
}

func TestIsFlyable(t *testing.T) {
	if !IsFlyable(twoPointRoute()) {
		t.Error("expected a clean two-point route to be flyable")
	}

	r := twoPointRoute()
	r.Points[1].Pos = geo.Absent()
	if IsFlyable(r) {
		t.Error("single positioned point must not be flyable")
	}

	// antimeridian crossing alone is fine
	r = &Route{Points: []Waypoint{
		{Pos: geo.LatLon{Lat: 0, Lon: 179.5}},
		{Pos: geo.LatLon{Lat: 1, Lon: -179.5}},
	}}
	if !IsFlyable(r) {
		t.Error("antimeridian crossing must not make a route unflyable")
	}
}
