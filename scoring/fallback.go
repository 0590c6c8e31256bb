package scoring

import (
	"fmt"
	"math"

	"pitchhub/models"
)

// Generic scorer dimension weights. They sum to 100, so the overall score is
// the plain sum of the weight-scaled points without renormalizing.
const (
	weightQuestionHandling = 30.0
	weightResponseQuality  = 30.0
	weightTalkListen       = 20.0
	weightClarity          = 20.0
)

// Minimum-bar gates.
const (
	minCallDurationSeconds = 60
	minQuestionExchanges   = 3
	maxDeadAirInstances    = 2
	maxUnansweredQuestions = 2

	prematureQuestionRateCap = 0.3
	shortCallQualityCap      = 40.0
)

// scoreGeneric is the rubric-less fallback: four fixed-weight dimensions
// with critical gating applied before the dimension math.
func scoreGeneric(an models.TranscriptAnalysis, metrics models.CallMetrics) models.RubricScore {
	result := models.RubricScore{
		CriterionScores:     []models.CriterionScore{},
		CriticalFailures:    []string{},
		Strengths:           []string{},
		AreasForImprovement: []string{},
	}

	totalQuestions := len(an.AgentQuestions)
	questionRate := 1.0
	if totalQuestions > 0 {
		questionRate = 1 - float64(len(an.UnansweredQuestions))/float64(totalQuestions)
	}
	if metrics.DurationSeconds < minCallDurationSeconds {
		result.CriticalFailures = append(result.CriticalFailures,
			fmt.Sprintf("Call ended prematurely (%.0fs)", metrics.DurationSeconds))
		questionRate = math.Min(questionRate, prematureQuestionRateCap)
	}

	exchanges := totalQuestions + len(an.TraineeQuestions)
	q := an.ResponseQuality
	qualityMean := float64(q.ConfidenceScore+q.ProfessionalismScore+q.ClarityScore) / 3
	if exchanges < minQuestionExchanges {
		result.CriticalFailures = append(result.CriticalFailures,
			fmt.Sprintf("Insufficient conversation: only %d question exchanges", exchanges))
		qualityMean = math.Min(qualityMean, shortCallQualityCap)
	}

	if len(an.ConversationFlow.DeadAirInstances) > maxDeadAirInstances {
		result.CriticalFailures = append(result.CriticalFailures,
			fmt.Sprintf("Excessive dead air: %d long pauses", len(an.ConversationFlow.DeadAirInstances)))
	}
	if len(an.UnansweredQuestions) > maxUnansweredQuestions {
		result.CriticalFailures = append(result.CriticalFailures,
			fmt.Sprintf("Multiple unanswered questions: %d", len(an.UnansweredQuestions)))
	}

	balance := talkListenBalance(metrics.TalkListenRatio)
	clarity := math.Max(0, 100-10*float64(len(an.Fumbles)))

	dimensions := []models.CriterionScore{
		genericDimension("question_handling", "Question Handling", questionRate*weightQuestionHandling, weightQuestionHandling,
			fmt.Sprintf("answered %d of %d prospect questions", totalQuestions-len(an.UnansweredQuestions), totalQuestions)),
		genericDimension("response_quality", "Response Quality", qualityMean*weightResponseQuality/100, weightResponseQuality,
			fmt.Sprintf("confidence %d, professionalism %d, clarity %d", q.ConfidenceScore, q.ProfessionalismScore, q.ClarityScore)),
		genericDimension("talk_listen_balance", "Talk/Listen Balance", balance*weightTalkListen, weightTalkListen,
			"talk/listen ratio "+metrics.TalkListenRatio),
		genericDimension("clarity", "Clarity", clarity*weightClarity/100, weightClarity,
			fmt.Sprintf("%d fumbles detected", len(an.Fumbles))),
	}

	var overall float64
	for _, d := range dimensions {
		overall += d.Score
	}

	result.CriterionScores = dimensions
	result.WeightedScore = overall
	result.OverallScore = int(math.Round(overall))
	result.Strengths = append(result.Strengths, summarizeBucket(dimensions, strengthThreshold, true)...)
	result.AreasForImprovement = append(result.AreasForImprovement, summarizeBucket(dimensions, genericImprovementThreshold, false)...)
	return result
}

func genericDimension(id, name string, points, weight float64, reasoning string) models.CriterionScore {
	pct := int(math.Round(points / weight * 100))
	return models.CriterionScore{
		CriterionID: id,
		Name:        name,
		Score:       points,
		MaxScore:    weight,
		Percentage:  pct,
		Weight:      weight,
		Evidence:    []string{},
		Reasoning:   reasoning,
		Met:         pct >= genericImprovementThreshold,
	}
}
