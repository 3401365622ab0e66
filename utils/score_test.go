package utils

import "testing"

func TestSafetyScoreWorkedExample(t *testing.T) {
	amounts := map[string]float64{
		"Lead":    2,
		"Arsenic": 50,
		"Cadmium": 1,
		"Mercury": 0.5,
	}
	got := SafetyScore(amounts, DefaultLimits)
	if got != 72 {
		t.Fatalf("score = %v, want 72", got)
	}
}

func TestSafetyScoreCleanProduct(t *testing.T) {
	got := SafetyScore(map[string]float64{}, DefaultLimits)
	if got != 100 {
		t.Fatalf("score = %v, want 100 for zero exposure", got)
	}
}

func TestSafetyScoreCapsPerMetalContribution(t *testing.T) {
	// 10x over every limit must not push the score below zero; each metal
	// contribution saturates at 100% of limit.
	amounts := map[string]float64{
		"Lead":    100,
		"Arsenic": 1000,
		"Cadmium": 50,
		"Mercury": 20,
	}
	got := SafetyScore(amounts, DefaultLimits)
	if got != 0 {
		t.Fatalf("score = %v, want 0 when every metal saturates", got)
	}
}

func TestSafetyScoreFallsBackToDefaultLimits(t *testing.T) {
	amounts := map[string]float64{"Lead": 5}
	got := SafetyScore(amounts, map[string]float64{})
	// 5/10 = 50% of lead limit at weight 0.35 -> 100 - 17.5 -> 83 rounded.
	if got != 83 {
		t.Fatalf("score = %v, want 83 with default limits", got)
	}
}

func TestSafetyScoreIgnoresNegativeAmounts(t *testing.T) {
	amounts := map[string]float64{"Lead": -4}
	got := SafetyScore(amounts, DefaultLimits)
	if got != 100 {
		t.Fatalf("score = %v, want 100 for negative reading", got)
	}
}

func TestMetalWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range MetalWeights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
}
