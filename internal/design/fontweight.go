package design

import "strconv"

// namedWeights maps named font weights to the canonical numeric scale.
var namedWeights = map[string]int{
	"ultralight": 100,
	"thin":       200,
	"light":      300,
	"regular":    400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"heavy":      800,
}

// DefaultFontWeight is used for unrecognized weights.
const DefaultFontWeight = 400

// NormalizeFontWeight converts a named weight or numeric string to the
// canonical 100–800 scale. Unrecognized values default to 400.
func NormalizeFontWeight(raw string) int {
	if w, ok := namedWeights[raw]; ok {
		return w
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 100 && n <= 800 {
		return n
	}
	return DefaultFontWeight
}
