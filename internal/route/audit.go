package route

import (
	"fmt"
	"math"
)

// legs longer than this are almost always a mis-parsed coordinate
const excessiveLegM = 1500e3

// Issue describes a suspicious leg found by Audit.
type Issue struct {
	Leg    int
	Reason string
}

// Audit checks every leg of the route for the defects that show up when a
// source CSV mixes coordinate formats: absent endpoints, coincident points,
// implausibly long legs and antimeridian crossings (the last is legitimate
// but worth surfacing, since rhumb and great-circle legs diverge there).
func Audit(r *Route) []Issue {
	issues := make([]Issue, 0)

	for i := 0; i+1 < len(r.Points); i++ {
		from := &r.Points[i]
		to := &r.Points[i+1]

		if !from.Pos.IsValid() || !to.Pos.IsValid() {
			issues = append(issues, Issue{i, "absent endpoint position"})
			continue
		}
		if from.Pos == to.Pos {
			issues = append(issues, Issue{i, "zero-length leg"})
			continue
		}
		leg := Leg{From: from, To: to}
		if gc, err := leg.Distance(GreatCircle); err == nil && gc > excessiveLegM {
			issues = append(issues, Issue{i, fmt.Sprintf("leg length %.0f km looks excessive", gc/1000)})
		}
		if math.Abs(to.Pos.Lon-from.Pos.Lon) > 180 {
			issues = append(issues, Issue{i, "leg crosses the antimeridian"})
		}
	}

	return issues
}

// IsFlyable reports whether the route has at least two positioned points and
// no audit findings other than antimeridian crossings.
func IsFlyable(r *Route) bool {
	positioned := 0
	for i := range r.Points {
		if r.Points[i].Pos.IsValid() {
			positioned++
		}
	}
	if positioned < 2 {
		return false
	}
	for _, issue := range Audit(r) {
		if issue.Reason != "leg crosses the antimeridian" {
			return false
		}
	}
	return true
}
