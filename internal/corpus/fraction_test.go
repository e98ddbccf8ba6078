package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantMade      float64
		wantAttempted float64
	}{
		{"valid", "11/24", 11, 24},
		{"valid with spaces", " 7 / 15 ", 7, 15},
		{"decimal parts", "10.5/21", 10.5, 21},
		{"empty", "", 0, 0},
		{"placeholder", "-", 0, 0},
		{"no slash", "1124", 0, 0},
		{"non-numeric made", "x/24", 0, 0},
		{"non-numeric attempted", "11/y", 0, 0},
		{"missing attempted", "11/", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			made, attempted := ParseFraction(tt.input)
			assert.Equal(t, tt.wantMade, made)
			assert.Equal(t, tt.wantAttempted, attempted)
		})
	}
}

func TestSafeFloat(t *testing.T) {
	assert.Equal(t, 42.5, SafeFloat("42.5"))
	assert.Equal(t, 42.5, SafeFloat("  42.5  "))
	assert.Zero(t, SafeFloat(""))
	assert.Zero(t, SafeFloat("-"))
	assert.Zero(t, SafeFloat("   "))
	assert.Zero(t, SafeFloat("abc"))
	assert.Equal(t, -3.0, SafeFloat("-3"))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Ratio(6, 12), 1e-9)
	// No attempts is defined as exactly zero, never NaN.
	assert.Zero(t, Ratio(0, 0))
	assert.Zero(t, Ratio(5, 0))
	assert.Zero(t, Ratio(5, -1))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 33.68, Round2(33.6789))
	assert.Equal(t, 0.917, Round3(11.0/12.0))
}
