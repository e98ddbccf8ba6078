package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched lengths", []float32{1, 0}, []float32{1}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestNormalizeCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizeCosineSimilarity(1), 1e-9)
	assert.InDelta(t, 0.5, NormalizeCosineSimilarity(0), 1e-9)
	assert.InDelta(t, 0.0, NormalizeCosineSimilarity(-1), 1e-9)
}

func TestParseJSONArray(t *testing.T) {
	claims, err := ParseJSONArray(`["claim one", "claim two"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"claim one", "claim two"}, claims)
}

func TestParseJSONArrayWithSurroundingText(t *testing.T) {
	response := "Here are the claims:\n[\"Luka averages 33.7 points\", \"He plays for the Lakers\"]\nDone."
	claims, err := ParseJSONArray(response)
	require.NoError(t, err)
	assert.Len(t, claims, 2)
	assert.Equal(t, "Luka averages 33.7 points", claims[0])
}

func TestParseJSONArrayNoArray(t *testing.T) {
	_, err := ParseJSONArray("I could not produce a list.")
	assert.Error(t, err)
}

func TestSplitByLines(t *testing.T) {
	text := "1. First factual claim here\n- Second factual claim here\n\nok\n\"Third factual claim here\""
	lines := SplitByLines(text, 5)
	assert.Equal(t, []string{
		"First factual claim here",
		"Second factual claim here",
		"Third factual claim here",
	}, lines)
}
