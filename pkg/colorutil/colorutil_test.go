package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	normalized, ok := Normalize("#3B82F6")
	assert.True(t, ok)
	assert.Equal(t, "#3b82f6", normalized)

	normalized, ok = Normalize("abc")
	assert.True(t, ok)
	assert.Equal(t, "#aabbcc", normalized)

	_, ok = Normalize("not-a-color")
	assert.False(t, ok)

	_, ok = Normalize("#12345")
	assert.False(t, ok)

	_, ok = Normalize("#12345g")
	assert.False(t, ok)

	_, ok = Normalize("")
	assert.False(t, ok)
}

func TestRelativeLuminanceExtremes(t *testing.T) {
	assert.InDelta(t, 0.0, RelativeLuminance("#000000"), 1e-9)
	assert.InDelta(t, 1.0, RelativeLuminance("#ffffff"), 1e-9)
	// Malformed input maps to the mid-range fallback.
	assert.InDelta(t, 0.5, RelativeLuminance("garbage"), 1e-9)
}

func TestContrastTextColor(t *testing.T) {
	assert.Equal(t, TextLight, ContrastTextColor("#000000"))
	assert.Equal(t, TextDark, ContrastTextColor("#ffffff"))
	// Yellow is bright despite a saturated hue.
	assert.Equal(t, TextDark, ContrastTextColor("#ffff00"))
	// Dark navy gets light text.
	assert.Equal(t, TextLight, ContrastTextColor("#1e3a8a"))
	// Never panics, always returns a defined value.
	assert.Equal(t, TextDark, ContrastTextColor("not-a-color"))
}
