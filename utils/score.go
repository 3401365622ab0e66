package utils

import "math"

// Heavy-metal weights for the overall safety score. Lead is weighted highest
// per its developmental toxicity; this is the single canonical set used by
// the importer, the AI analysis path, and the API.
var MetalWeights = map[string]float64{
	"Lead":    0.35,
	"Arsenic": 0.25,
	"Cadmium": 0.25,
	"Mercury": 0.15,
}

// FDA/AB 899-aligned action levels in ppb, used when a disclosure or analysis
// does not carry its own limits.
var DefaultLimits = map[string]float64{
	"Lead":    10,
	"Arsenic": 100,
	"Cadmium": 5,
	"Mercury": 2,
}

// SafetyScore computes 100 minus the weighted percent-of-limit average,
// rounded and clamped to [0,100]. Each metal contributes
// min(amount/limit, 1)*100 at its fixed weight. Metals missing from amounts
// count as zero exposure; a metal with a non-positive limit is skipped.
func SafetyScore(amounts, limits map[string]float64) float64 {
	var weighted float64
	for metal, w := range MetalWeights {
		limit := limits[metal]
		if limit <= 0 {
			limit = DefaultLimits[metal]
		}
		if limit <= 0 {
			continue
		}
		pct := math.Min(amounts[metal]/limit, 1) * 100
		if pct < 0 {
			pct = 0
		}
		weighted += pct * w
	}
	score := math.Round(100 - weighted)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
