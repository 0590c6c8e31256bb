package profile

import (
	"math"
	"strconv"
	"strings"

	"pitchhub/models"
)

// Dimension keys tracked longitudinally.
const (
	DimQuestionHandling  = "question_handling"
	DimConfidence        = "confidence"
	DimProfessionalism   = "professionalism"
	DimClarity           = "clarity"
	DimTalkListenBalance = "talk_listen_balance"
	DimFillerWords       = "filler_words"
	DimResponseTime      = "response_time"
	DimEmpathy           = "empathy"
	DimObjectionHandling = "objection_handling"
	DimDeadAir           = "dead_air"
)

// extractor pulls one raw value out of an attempt, reporting whether a valid
// value was found. Each dimension's extractor is an ordered accessor chain:
// newer flat KPI keys first, then nested legacy shapes, then the score
// breakdown. Attempts with no valid value are skipped for that dimension.
type extractor func(a models.Attempt) (float64, bool)

// Dimension pairs an extractor with the normalizer that maps its raw value
// onto a 0-100 scale.
type Dimension struct {
	Key       string
	extract   extractor
	normalize func(float64) float64
}

// Dimensions is the fixed set of tracked performance dimensions.
var Dimensions = []Dimension{
	{DimQuestionHandling, firstOf(
		breakdownPercentage("question_handling", "goal_achievement"),
		metricRate("questionCompletionRate"),
	), clampDirect},
	{DimConfidence, firstOf(
		metricNumber("confidenceScore"),
		nestedNumber("responseQuality", "confidence"),
	), clampDirect},
	{DimProfessionalism, firstOf(
		metricNumber("professionalismScore"),
		nestedNumber("responseQuality", "professionalism"),
	), clampDirect},
	{DimClarity, firstOf(
		metricNumber("clarityScore"),
		nestedNumber("responseQuality", "clarity"),
		breakdownPercentage("clarity"),
	), clampDirect},
	{DimTalkListenBalance, firstOf(
		talkPercent("talkListenRatio"),
		metricNumber("userTalkPercent"),
	), talkRatioDeviation},
	{DimFillerWords, firstOf(
		metricNumber("fillerWordsPerMinute"),
		nestedNumber("speech", "fillerRate"),
	), fillerRate},
	{DimResponseTime, firstOf(
		metricNumber("avgResponseTimeMs"),
		nestedNumber("conversationFlow", "avgResponseTimeMs"),
	), responseTime},
	{DimEmpathy, firstOf(
		metricNumber("empathyCount"),
		nestedNumber("conversationFlow", "empathyCount"),
	), directCount(4)},
	{DimObjectionHandling, firstOf(
		breakdownPercentage("objections_handled"),
		metricRate("objectionSuccessRate"),
	), clampDirect},
	{DimDeadAir, firstOf(
		metricNumber("deadAirCount"),
		nestedNumber("conversationFlow", "deadAirCount"),
	), inverseCount(5)},
}

// firstOf chains accessors: the first one yielding a valid number wins.
func firstOf(accessors ...extractor) extractor {
	return func(a models.Attempt) (float64, bool) {
		for _, access := range accessors {
			if v, ok := access(a); ok {
				return v, true
			}
		}
		return 0, false
	}
}

func metricNumber(key string) extractor {
	return func(a models.Attempt) (float64, bool) {
		return asNumber(a.Metrics[key])
	}
}

// metricRate reads a 0-1 rate and rescales it to 0-100.
func metricRate(key string) extractor {
	return func(a models.Attempt) (float64, bool) {
		v, ok := asNumber(a.Metrics[key])
		if !ok {
			return 0, false
		}
		if v <= 1 {
			v *= 100
		}
		return v, true
	}
}

func nestedNumber(outer, inner string) extractor {
	return func(a models.Attempt) (float64, bool) {
		nested, ok := a.Metrics[outer].(map[string]interface{})
		if !ok {
			return 0, false
		}
		return asNumber(nested[inner])
	}
}

// talkPercent parses the leading integer of a "user:agent" ratio string.
func talkPercent(key string) extractor {
	return func(a models.Attempt) (float64, bool) {
		s, ok := a.Metrics[key].(string)
		if !ok {
			return 0, false
		}
		parts := strings.SplitN(s, ":", 2)
		pct, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, false
		}
		return float64(pct), true
	}
}

// breakdownPercentage reads the percentage of the first matching criterion
// in the attempt's score breakdown.
func breakdownPercentage(criterionIDs ...string) extractor {
	return func(a models.Attempt) (float64, bool) {
		if a.ScoreBreakdown == nil {
			return 0, false
		}
		for _, id := range criterionIDs {
			for _, cs := range a.ScoreBreakdown.CriterionScores {
				if cs.CriterionID == id {
					return float64(cs.Percentage), true
				}
			}
		}
		return 0, false
	}
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Normalizers. Each maps a raw extractor value to 0-100.

func clampDirect(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// inverseCount: maxBad or more occurrences of a bad thing scores zero.
func inverseCount(maxBad float64) func(float64) float64 {
	return func(v float64) float64 {
		return clampDirect(100 * (1 - v/maxBad))
	}
}

// directCount: maxGood or more occurrences of a good thing scores 100.
func directCount(maxGood float64) func(float64) float64 {
	return func(v float64) float64 {
		return clampDirect(100 * v / maxGood)
	}
}

// talkRatioDeviation scores distance from the ideal 50% talk share.
func talkRatioDeviation(pct float64) float64 {
	return clampDirect(100 - 2.5*math.Abs(pct-50))
}

// fillerRate scores filler words per minute; six or more per minute is zero.
func fillerRate(rate float64) float64 {
	return clampDirect(100 * (1 - rate/6))
}

// responseTime maps average latency linearly from 100 at 1000ms to 0 at
// 5000ms.
func responseTime(ms float64) float64 {
	if ms <= 1000 {
		return 100
	}
	if ms >= 5000 {
		return 0
	}
	return 100 * (5000 - ms) / 4000
}
