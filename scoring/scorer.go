// Package scoring grades a completed call. With a scenario rubric it
// evaluates each configured criterion and weight-normalizes; without one it
// falls back to a fixed-weight generic scorer with minimum-bar gating.
// Like package analysis, everything here is pure and total.
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pitchhub/models"
)

// Bucket thresholds for strengths and improvement areas.
const (
	strengthThreshold           = 80
	rubricImprovementThreshold  = 60
	genericImprovementThreshold = 70
	criticalPhraseThreshold     = 50
)

// ScoreCall scores one call. A nil rubric, or one with no criteria, selects
// the generic fallback scorer.
func ScoreCall(an models.TranscriptAnalysis, rubric *models.Rubric, turns []models.DialogueTurn, metrics models.CallMetrics) models.RubricScore {
	if rubric == nil || len(rubric.Criteria) == 0 {
		return scoreGeneric(an, metrics)
	}
	return scoreAgainstRubric(an, rubric, turns, metrics)
}

func scoreAgainstRubric(an models.TranscriptAnalysis, rubric *models.Rubric, turns []models.DialogueTurn, metrics models.CallMetrics) models.RubricScore {
	in := Input{Analysis: an, Turns: turns, Metrics: metrics}

	result := models.RubricScore{
		CriterionScores:     []models.CriterionScore{},
		CriticalFailures:    []string{},
		Strengths:           []string{},
		AreasForImprovement: []string{},
	}

	var totalWeight float64
	for _, cfg := range rubric.Criteria {
		evaluate, ok := criterionEvaluators[cfg.Kind]
		if !ok {
			continue
		}
		cs := evaluate(cfg, in)
		result.CriterionScores = append(result.CriterionScores, cs)
		result.WeightedScore += float64(cs.Percentage) * cs.Weight / 100
		totalWeight += cs.Weight

		if cfg.Kind == models.CriterionGoalAchievement && cfg.Required && !cs.Met {
			result.CriticalFailures = append(result.CriticalFailures, "Required goal not achieved: "+cs.Reasoning)
		}
		if cfg.Kind == models.CriterionRequiredPhrases && cs.Percentage < criticalPhraseThreshold {
			result.CriticalFailures = append(result.CriticalFailures, "Required phrases missed: "+cs.Reasoning)
		}

		switch {
		case cs.Percentage >= strengthThreshold:
			result.Strengths = append(result.Strengths, cs.Name)
		case cs.Percentage < rubricImprovementThreshold:
			result.AreasForImprovement = append(result.AreasForImprovement, cs.Name)
		}
	}

	if totalWeight > 0 {
		result.OverallScore = int(math.Round(result.WeightedScore / totalWeight * 100))
	}
	return result
}

// talkListenBalance buckets the trainee's share of talk time. The input is
// the "user:agent" percentage string; an unparseable ratio lands in the
// lowest bucket.
func talkListenBalance(ratio string) float64 {
	parts := strings.SplitN(ratio, ":", 2)
	userPct, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0.4
	}
	switch {
	case userPct >= 40 && userPct <= 50:
		return 1.0
	case userPct >= 35 && userPct <= 55:
		return 0.8
	case userPct >= 30 && userPct <= 60:
		return 0.6
	default:
		return 0.4
	}
}

func summarizeBucket(scores []models.CriterionScore, threshold int, above bool) []string {
	var out []string
	for _, cs := range scores {
		if above && cs.Percentage >= threshold {
			out = append(out, cs.Name)
		}
		if !above && cs.Percentage < threshold {
			out = append(out, fmt.Sprintf("%s (%d%%)", cs.Name, cs.Percentage))
		}
	}
	return out
}
