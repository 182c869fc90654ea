// Package coords parses the coordinate notations found in aeronautical CSV
// exports: plain decimals, "lat, lon" pairs, symbol/colon DMS and the compact
// DDMMSS / DDDMMSS forms. Formats are tried in a fixed order and the first
// one that succeeds wins; real-world exports mix notations within a single
// column, so graceful fallback beats strict validation here.
package coords

import (
	"strconv"
	"strings"

	"github.com/ajsalasa/AirNavKML/internal/geo"
)

// Axis disambiguates the compact-format degree width (latitudes carry two
// degree digits, longitudes three).
type Axis int

const (
	AxisLat Axis = iota
	AxisLon
)

// Value is the result of parsing one coordinate cell: either a single angle
// in decimal degrees or a full "lat, lon" pair.
type Value struct {
	IsPair bool
	Scalar float64
	Lat    float64
	Lon    float64
}

// Parse converts a textual coordinate into decimal degrees. Longitudes are
// normalized to [-180, 180). Unparseable input reports ok == false; parsing
// never panics.
func Parse(raw string, axis Axis) (Value, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, false
	}

	// decimal comma is common in the source data
	dotted := strings.ReplaceAll(s, ",", ".")

	if !endsWithHemisphere(s) {
		if v, err := strconv.ParseFloat(dotted, 64); err == nil {
			return scalar(v, axis), true
		}
	}

	if strings.Contains(s, ",") && !endsWithHemisphere(s) {
		if v, ok := parsePair(s); ok {
			return v, true
		}
	}

	if hasDMSMarkers(dotted) {
		if v, ok := parseDMS(dotted); ok {
			return scalar(v, axis), true
		}
	}

	if v, ok := parseCompact(dotted, axis); ok {
		return scalar(v, axis), true
	}

	if v, ok := parseFallback(dotted); ok {
		return scalar(v, axis), true
	}

	return Value{}, false
}

// ParseAngle is Parse restricted to a single angle; pair input is rejected.
func ParseAngle(raw string, axis Axis) (float64, bool) {
	v, ok := Parse(raw, axis)
	if !ok || v.IsPair {
		return 0, false
	}
	return v.Scalar, true
}

func scalar(v float64, axis Axis) Value {
	if axis == AxisLon {
		v = geo.NormalizeLon(v)
	}
	return Value{Scalar: v}
}

func endsWithHemisphere(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case 'N', 'S', 'E', 'W', 'n', 's', 'e', 'w':
		return true
	}
	return false
}

func hasDMSMarkers(s string) bool {
	return strings.ContainsAny(s, ":'\"") ||
		strings.ContainsRune(s, '°') || strings.ContainsRune(s, 'º') ||
		strings.ContainsRune(s, '′') || strings.ContainsRune(s, '″') ||
		strings.ContainsRune(s, '’')
}

func parsePair(s string) (Value, bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return Value{}, false
	}
	if !strings.ContainsAny(parts[0], "0123456789") || !strings.ContainsAny(parts[1], "0123456789") {
		return Value{}, false
	}
	lat, ok := ParseAngle(strings.TrimSpace(parts[0]), AxisLat)
	if !ok {
		return Value{}, false
	}
	lon, ok := ParseAngle(strings.TrimSpace(parts[1]), AxisLon)
	if !ok {
		return Value{}, false
	}
	return Value{IsPair: true, Lat: lat, Lon: lon}, true
}

// parseDMS handles "10°05'30.2"N", "10 05 30.2 N", "10:05:30" and single
// symbol-decorated values. The hemisphere letter overrides any embedded sign.
func parseDMS(s string) (float64, bool) {
	south := strings.ContainsAny(s, "SsWw")
	north := strings.ContainsAny(s, "NnEe")

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case 'N', 'S', 'E', 'W', 'n', 's', 'e', 'w':
			return -1
		case '°', 'º', '\'', '"', '′', '″', '’', ':':
			return ' '
		}
		return r
	}, s)

	toks := strings.Fields(cleaned)
	nums := make([]float64, 0, 3)
	for _, t := range toks {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		nums = append(nums, v)
	}

	var val float64
	switch len(nums) {
	case 1:
		val = nums[0]
	case 2:
		val = nums[0] + nums[1]/60.0
	case 3:
		val = nums[0] + nums[1]/60.0 + nums[2]/3600.0
	default:
		return 0, false
	}

	if south {
		val = -abs(val)
	}
	if north {
		// applied last: a stray N/E outranks an S/W earlier in the string
		val = abs(val)
	}
	return val, true
}

// parseCompact handles the aeronautical DDMMSS.S / DDDMMSS.S forms with a
// hemisphere letter attached on either side. The degree-field width is
// inferred from the digit count; seven digits are ambiguous and resolved by
// the axis hint (longitudes use three degree digits).
func parseCompact(s string, axis Axis) (float64, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))

	hemi := byte(0)
	core := ""
	if n := len(s); n > 0 && isHemiByte(s[n-1]) && allCoreBytes(strings.TrimSpace(s[:n-1])) {
		hemi = s[n-1]
		core = strings.TrimSpace(s[:n-1])
	} else if n > 0 && isHemiByte(s[0]) && allCoreBytes(strings.TrimSpace(s[1:])) {
		hemi = s[0]
		core = strings.TrimSpace(s[1:])
	} else {
		core = keepBytes(s, "0123456789.")
	}
	if core == "" {
		return 0, false
	}

	left := core
	frac := ""
	if i := strings.IndexByte(core, '.'); i >= 0 {
		left = core[:i]
		frac = core[i:]
	}
	if strings.ContainsRune(left, '.') || !allDigits(left) {
		return 0, false
	}

	degLen := 0
	switch len(left) {
	case 6:
		degLen = 2
	case 7:
		// ambiguous between DDMMSS.S and DDDMMSS; trust the axis
		if axis == AxisLon {
			degLen = 3
		} else {
			degLen = 2
		}
	case 8, 9:
		degLen = 3
	default:
		if axis == AxisLon {
			degLen = 3
		} else {
			degLen = 2
		}
	}

	if len(left) < degLen+4 {
		left = strings.Repeat("0", degLen+4-len(left)) + left
	}

	deg, err1 := strconv.ParseFloat(left[:degLen], 64)
	mm, err2 := strconv.ParseFloat(left[degLen:degLen+2], 64)
	ss, err3 := strconv.ParseFloat(left[degLen+2:degLen+4]+frac, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}

	val := deg + mm/60.0 + ss/3600.0
	if hemi == 'S' || hemi == 'W' {
		val = -val
	}
	return val, true
}

// parseFallback strips everything but digits, dot and minus and tries again.
func parseFallback(s string) (float64, bool) {
	s2 := keepBytes(s, "0123456789.-")
	if s2 == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s2, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isHemiByte(b byte) bool {
	return b == 'N' || b == 'S' || b == 'E' || b == 'W'
}

func allCoreBytes(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b < '0' || b > '9') && b != '.' {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func keepBytes(s, keep string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(keep, s[i]) >= 0 {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
