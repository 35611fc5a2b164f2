package build

import "strings"

const defaultSoftwareVersion = "1.0.0.0"

// extractSoftwareVersion pulls the "N.N.N..." run out of a free-form
// version string by looking for a "_V", "-V" or "V" marker (checked in
// that order) and reading digits/dots until the next "_", "-" or end of
// string. Returns defaultSoftwareVersion on any parse failure.
func extractSoftwareVersion(raw string) string {
	marker, idx := findVersionMarker(raw)
	if idx < 0 {
		return defaultSoftwareVersion
	}
	start := idx + len(marker)
	end := start
	for end < len(raw) {
		c := raw[end]
		if c == '_' || c == '-' {
			break
		}
		if !isVersionChar(c) {
			return defaultSoftwareVersion
		}
		end++
	}
	version := raw[start:end]
	if version == "" || !isValidVersion(version) {
		return defaultSoftwareVersion
	}
	return version
}

func findVersionMarker(raw string) (marker string, idx int) {
	for _, m := range []string{"_V", "-V", "V"} {
		if i := strings.Index(raw, m); i >= 0 {
			return m, i
		}
	}
	return "", -1
}

func isVersionChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

func isValidVersion(v string) bool {
	if v == "" {
		return false
	}
	sawDigit := false
	for i := 0; i < len(v); i++ {
		if v[i] >= '0' && v[i] <= '9' {
			sawDigit = true
			continue
		}
		if v[i] == '.' {
			continue
		}
		return false
	}
	return sawDigit
}
