package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"pitchhub/models"
)

// positiveOutcomeRe flags prospect turns that signal the call's goal landed.
var positiveOutcomeRe = regexp.MustCompile(`(?i)(sounds good|that works|let'?s (do it|move forward|get started)|i'?m (interested|in)|sign (me|us) up|send (me|over) the (contract|paperwork)|we have a deal)`)

// Met thresholds (percentage) per criterion kind.
const (
	goalMetThreshold       = 60
	phrasesMetThreshold    = 70
	objectionsMetThreshold = 70
	qualityMetThreshold    = 70
)

const criterionMaxScore = 10.0

// Input bundles everything a criterion evaluator may inspect.
type Input struct {
	Analysis models.TranscriptAnalysis
	Turns    []models.DialogueTurn
	Metrics  models.CallMetrics
}

type criterionEvaluator func(cfg models.CriterionConfig, in Input) models.CriterionScore

// criterionEvaluators dispatches on the criterion kind. Adding a rubric
// criterion means adding a row here, nothing else.
var criterionEvaluators = map[models.CriterionKind]criterionEvaluator{
	models.CriterionGoalAchievement:     evaluateGoalAchievement,
	models.CriterionRequiredPhrases:     evaluateRequiredPhrases,
	models.CriterionOpenQuestions:       evaluateOpenQuestions,
	models.CriterionObjectionsHandled:   evaluateObjectionsHandled,
	models.CriterionConversationQuality: evaluateConversationQuality,
}

// newCriterionScore fills the rate-derived fields so every evaluator keeps
// the percentage == round(100*score/maxScore) invariant.
func newCriterionScore(cfg models.CriterionConfig, rate float64, metThreshold int) models.CriterionScore {
	rate = math.Max(0, math.Min(1, rate))
	pct := int(math.Round(rate * 100))
	return models.CriterionScore{
		CriterionID: string(cfg.Kind),
		Name:        criterionName(cfg),
		Score:       rate * criterionMaxScore,
		MaxScore:    criterionMaxScore,
		Percentage:  pct,
		Weight:      cfg.Weight,
		Evidence:    []string{},
		Met:         pct >= metThreshold,
	}
}

func criterionName(cfg models.CriterionConfig) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return strings.ReplaceAll(string(cfg.Kind), "_", " ")
}

// evaluateGoalAchievement scores how far the trainee carried the call: the
// share of agent questions they answered, plus a bonus when the prospect
// voices a positive outcome.
func evaluateGoalAchievement(cfg models.CriterionConfig, in Input) models.CriterionScore {
	totalQuestions := len(in.Analysis.AgentQuestions)
	completionRate := 1.0
	if totalQuestions > 0 {
		completionRate = 1 - float64(len(in.Analysis.UnansweredQuestions))/float64(totalQuestions)
	}

	bonus := 0.0
	var outcomeEvidence []string
	for _, t := range in.Turns {
		if t.Role == models.RoleAgent && positiveOutcomeRe.MatchString(t.Text) {
			bonus = 1.0
			outcomeEvidence = append(outcomeEvidence, t.Text)
			break
		}
	}

	score := newCriterionScore(cfg, 0.7*completionRate+0.3*bonus, goalMetThreshold)
	score.Evidence = append(score.Evidence, outcomeEvidence...)
	score.Reasoning = fmt.Sprintf("answered %d of %d prospect questions", totalQuestions-len(in.Analysis.UnansweredQuestions), totalQuestions)
	if bonus > 0 {
		score.Reasoning += "; prospect voiced a positive outcome"
	}
	return score
}

// evaluateRequiredPhrases checks each configured phrase against the
// concatenated trainee turns, case-insensitively.
func evaluateRequiredPhrases(cfg models.CriterionConfig, in Input) models.CriterionScore {
	var sb strings.Builder
	for _, t := range in.Turns {
		if t.Role == models.RoleUser {
			sb.WriteString(strings.ToLower(t.Text))
			sb.WriteString(" ")
		}
	}
	spoken := sb.String()

	var matched, missing []string
	for _, phrase := range cfg.Phrases {
		if strings.Contains(spoken, strings.ToLower(phrase)) {
			matched = append(matched, phrase)
		} else {
			missing = append(missing, phrase)
		}
	}

	rate := 1.0
	if len(cfg.Phrases) > 0 {
		rate = float64(len(matched)) / float64(len(cfg.Phrases))
	}
	score := newCriterionScore(cfg, rate, phrasesMetThreshold)
	score.Evidence = append(score.Evidence, matched...)
	if len(missing) > 0 {
		score.Reasoning = "missing phrases: " + strings.Join(missing, ", ")
	} else {
		score.Reasoning = "all required phrases used"
	}
	return score
}

// evaluateOpenQuestions compares the trainee's question count against the
// configured minimum. Met tracks the raw count, not the clamped rate.
func evaluateOpenQuestions(cfg models.CriterionConfig, in Input) models.CriterionScore {
	minimum := cfg.MinimumCount
	if minimum <= 0 {
		minimum = 1
	}
	count := len(in.Analysis.TraineeQuestions)
	rate := math.Min(1, float64(count)/float64(minimum))

	score := newCriterionScore(cfg, rate, 0)
	score.Met = count >= minimum
	for _, q := range in.Analysis.TraineeQuestions {
		score.Evidence = append(score.Evidence, q.QuestionText)
	}
	score.Reasoning = fmt.Sprintf("asked %d open questions (minimum %d)", count, minimum)
	return score
}

// evaluateObjectionsHandled looks for configured objection keywords in agent
// turns and proxies handling effectiveness with the answered-question rate.
// No objections raised counts as fully effective.
func evaluateObjectionsHandled(cfg models.CriterionConfig, in Input) models.CriterionScore {
	var raised []string
	for _, t := range in.Turns {
		if t.Role != models.RoleAgent {
			continue
		}
		lower := strings.ToLower(t.Text)
		for _, kw := range cfg.ObjectionKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				raised = append(raised, kw)
			}
		}
	}

	effectiveness := 1.0
	if len(raised) > 0 {
		total := len(in.Analysis.AgentQuestions)
		effectiveness = 1 - float64(len(in.Analysis.UnansweredQuestions))/math.Max(1, float64(total))
	}

	score := newCriterionScore(cfg, effectiveness, objectionsMetThreshold)
	score.Evidence = append(score.Evidence, raised...)
	score.Reasoning = fmt.Sprintf("%d objections raised", len(raised))
	return score
}

// evaluateConversationQuality is the unweighted mean of five normalized
// sub-metrics: professionalism, confidence, clarity, empathy expression, and
// talk/listen balance.
func evaluateConversationQuality(cfg models.CriterionConfig, in Input) models.CriterionScore {
	q := in.Analysis.ResponseQuality
	empathy := math.Min(1, float64(in.Analysis.ConversationFlow.EmpathyCount)/2)
	balance := talkListenBalance(in.Metrics.TalkListenRatio)

	mean := (float64(q.ProfessionalismScore)/100 +
		float64(q.ConfidenceScore)/100 +
		float64(q.ClarityScore)/100 +
		empathy +
		balance) / 5

	score := newCriterionScore(cfg, mean, qualityMetThreshold)
	score.Reasoning = fmt.Sprintf(
		"professionalism %d, confidence %d, clarity %d, empathy signals %d, talk/listen %s",
		q.ProfessionalismScore, q.ConfidenceScore, q.ClarityScore,
		in.Analysis.ConversationFlow.EmpathyCount, in.Metrics.TalkListenRatio,
	)
	return score
}
