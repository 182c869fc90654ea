// Package columns guesses which CSV columns hold coordinates, names,
// altitudes and types from arbitrary header rows. Detection is best-effort:
// a missing role is a valid outcome and signals the caller to ask the user
// for a manual mapping.
package columns

import "strings"

// Mapping holds the detected column headers; empty string means not found.
type Mapping struct {
	Lat      string
	Lon      string
	Combined string
	Name     string
	Altitude string
	Type     string
}

var coordKeywords = []string{"lat", "lon", "long", "coord", "wgs", "geog", "position", "pos", "location"}
var altKeywords = []string{"alt", "altura", "nivel"}
var nameExact = []string{"name", "id", "fix", "wpt", "designator", "identifier", "navaid", "aerodrome", "station"}
var typeExact = []string{"type", "tipo", "class", "category", "kind", "usage"}

// Detect maps header names to roles, case-insensitively. Explicit lat/lon
// substrings win over combined-coordinate hints; the combined column is only
// reported when lat or lon is missing.
func Detect(headers []string) Mapping {
	low := make([]string, len(headers))
	for i, h := range headers {
		low[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var m Mapping

	for i, c := range low {
		if m.Lat == "" && strings.Contains(c, "lat") {
			m.Lat = headers[i]
		}
		if m.Lon == "" && (strings.Contains(c, "lon") || strings.Contains(c, "long")) {
			m.Lon = headers[i]
		}
	}

	if m.Lat == "" || m.Lon == "" {
		for i, c := range low {
			if strings.Contains(c, "coord") || strings.Contains(c, "wgs") || strings.Contains(c, "geog") ||
				c == "position" || c == "pos" || c == "location" {
				m.Combined = headers[i]
				break
			}
		}
	}

	for i, c := range low {
		if m.Altitude == "" && containsAny(c, altKeywords) {
			m.Altitude = headers[i]
		}
		if m.Type == "" && exactMatch(c, typeExact) {
			m.Type = headers[i]
		}
	}

	for i, c := range low {
		if exactMatch(c, nameExact) {
			m.Name = headers[i]
			break
		}
	}
	if m.Name == "" {
		// first column that is clearly neither coordinate nor altitude
		for i, c := range low {
			if !containsAny(c, coordKeywords) && !containsAny(c, altKeywords) {
				m.Name = headers[i]
				break
			}
		}
	}

	return m
}

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func exactMatch(s string, keys []string) bool {
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}
