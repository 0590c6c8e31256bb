// Package profile computes a user's longitudinal performance profile from
// their recent completed attempts: one recency-weighted 0-100 score and a
// trend per tracked dimension. Pure math; persistence lives in services.
package profile

import (
	"math"

	"pitchhub/models"
)

const (
	// recencyDecay is the per-step weight decay: the newest score carries
	// weight 1, the one before it 0.85, and so on.
	recencyDecay = 0.85

	trendWindow    = 5
	trendThreshold = 5.0

	weaknessThreshold = 70
)

// RecencyWeighted aggregates a dimension's scores (ordered oldest to
// newest) with exponentially decaying weights, so recent evidence dominates
// without discarding history.
func RecencyWeighted(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum, weightSum float64
	n := len(scores)
	for i, s := range scores {
		w := math.Pow(recencyDecay, float64(n-1-i))
		sum += s * w
		weightSum += w
	}
	return sum / weightSum
}

// ClassifyTrend compares the mean of the last five scores against the five
// preceding them. Histories too short for both windows classify as new; a
// difference of exactly the threshold is stable.
func ClassifyTrend(scores []float64) string {
	if len(scores) < trendWindow*2 {
		return models.TrendNew
	}
	recent := mean(scores[len(scores)-trendWindow:])
	previous := mean(scores[len(scores)-trendWindow*2 : len(scores)-trendWindow])
	diff := recent - previous
	switch {
	case diff > trendThreshold:
		return models.TrendImproving
	case diff < -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// IsWeakness classifies a dimension score at write time.
func IsWeakness(score int) bool {
	return score < weaknessThreshold
}

// Evaluate profiles a window of completed attempts, ordered oldest to
// newest. Attempts contributing no valid value for a dimension are skipped
// for that dimension only; dimensions with no evidence at all are omitted.
func Evaluate(attempts []models.Attempt) []models.DimensionResult {
	var results []models.DimensionResult
	for _, dim := range Dimensions {
		var scores []float64
		var last models.Attempt
		for _, a := range attempts {
			raw, ok := dim.extract(a)
			if !ok {
				continue
			}
			scores = append(scores, dim.normalize(raw))
			last = a
		}
		if len(scores) == 0 {
			continue
		}
		results = append(results, models.DimensionResult{
			Key:            dim.Key,
			Score:          int(math.Round(RecencyWeighted(scores))),
			Trend:          ClassifyTrend(scores),
			EvidenceCount:  len(scores),
			LastEvidenceAt: last.StartedAt,
		})
	}
	return results
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
