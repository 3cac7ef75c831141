package colorutil

import (
	"math"
	"strings"
)

const (
	// FallbackColor replaces missing or malformed person colors.
	FallbackColor = "#6b7280"

	// Text colors chosen against a background's relative luminance.
	TextDark  = "#000000"
	TextLight = "#ffffff"

	// Backgrounds darker than this luminance get light text.
	luminanceThreshold = 0.179

	// Luminance assumed for colors that fail to parse. Above the
	// threshold, so malformed input resolves to dark text.
	fallbackLuminance = 0.5
)

// Normalize validates a hex color and expands 3-digit shorthand to the
// canonical lowercase #rrggbb form. The second return is false when the
// input is not a usable color.
func Normalize(raw string) (string, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(trimmed) == 3 {
		expanded := make([]byte, 0, 6)
		for i := 0; i < 3; i++ {
			expanded = append(expanded, trimmed[i], trimmed[i])
		}
		trimmed = string(expanded)
	}
	if len(trimmed) != 6 {
		return "", false
	}
	trimmed = strings.ToLower(trimmed)
	for i := 0; i < len(trimmed); i++ {
		if !isHexDigit(trimmed[i]) {
			return "", false
		}
	}
	return "#" + trimmed, true
}

// RelativeLuminance computes the WCAG relative luminance of a hex color.
// Unparsable input yields the mid-range fallback rather than an error.
func RelativeLuminance(raw string) float64 {
	normalized, ok := Normalize(raw)
	if !ok {
		return fallbackLuminance
	}

	r := channel(normalized[1:3])
	g := channel(normalized[3:5])
	b := channel(normalized[5:7])

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastTextColor picks black or white text for the given background.
func ContrastTextColor(background string) string {
	if RelativeLuminance(background) < luminanceThreshold {
		return TextLight
	}
	return TextDark
}

// channel linearizes one sRGB channel given its two hex digits.
func channel(hexPair string) float64 {
	v := float64(hexByte(hexPair)) / 255.0
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func hexByte(pair string) int {
	return hexDigit(pair[0])<<4 | hexDigit(pair[1])
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return 0
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
