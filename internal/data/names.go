package data

import "unicode"

// SanitizeName reduces a route or waypoint name to something safe for file
// names and tags: letters, digits, hyphen and underscore survive, everything
// after an opening parenthesis or separator is cut.
func SanitizeName(s string) string {
	cleaned := ""
	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_' {
			cleaned += string(c)
		} else if c == '(' || c == '/' || c == ',' {
			break
		}
	}
	return cleaned
}
