// Package textutil provides text and vector helpers shared by the
// evaluation pipeline.
package textutil

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/utils/json"
)

// CosineSimilarity computes the cosine similarity of two vectors.
// The result is in [-1, 1]; mismatched or empty inputs yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NormalizeCosineSimilarity maps a cosine similarity into [0, 1].
func NormalizeCosineSimilarity(similarity float64) float64 {
	return (similarity + 1) / 2
}

var jsonArrayRegex = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseJSONArray extracts and parses the first JSON array found in s.
// Model output often wraps the array in prose or code fences, so the
// array is located by pattern rather than parsed from position zero.
func ParseJSONArray(s string) ([]string, error) {
	match := jsonArrayRegex.FindString(s)
	if match == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var result []string
	if err := json.Unmarshal([]byte(match), &result); err != nil {
		return nil, err
	}
	return result, nil
}

var listMarkerRegex = regexp.MustCompile(`^[\d\.\-\*\)]+\s*`)

// SplitByLines splits text into trimmed lines, stripping list markers and
// surrounding quotes. Lines of minLen characters or fewer are dropped.
func SplitByLines(s string, minLen int) []string {
	if minLen <= 0 {
		minLen = 5
	}

	var result []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = listMarkerRegex.ReplaceAllString(line, "")
		line = strings.Trim(line, `"'`)
		if len(line) > minLen {
			result = append(result, line)
		}
	}
	return result
}
