package scoring

import (
	"math"
	"strings"
	"testing"

	"pitchhub/analysis"
	"pitchhub/models"
)

func finalTurn(role, text string, ts float64) models.DialogueTurn {
	return models.DialogueTurn{Role: role, Text: text, Timestamp: ts, IsFinal: true}
}

func qualityAnalysis(confidence, professionalism, clarity, empathy int) models.TranscriptAnalysis {
	return models.TranscriptAnalysis{
		ResponseQuality: models.ResponseQualityMetrics{
			ConfidenceScore:      confidence,
			ProfessionalismScore: professionalism,
			ClarityScore:         clarity,
		},
		ConversationFlow: models.ConversationFlowMetrics{EmpathyCount: empathy},
	}
}

func TestRequiredPhrasePresent(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionRequiredPhrases, Name: "Discovery Phrases", Weight: 20, Phrases: []string{"I understand your concern"}},
	}}
	turns := []models.DialogueTurn{
		finalTurn(models.RoleUser, "Well, I Understand Your Concern about pricing, so let me walk you through it.", 1),
	}
	an := analysis.AnalyzeTranscript(turns, "")

	score := ScoreCall(an, rubric, turns, models.CallMetrics{})

	if len(score.CriterionScores) != 1 {
		t.Fatalf("Expected 1 criterion score, got %d", len(score.CriterionScores))
	}
	cs := score.CriterionScores[0]
	if cs.Percentage != 100 {
		t.Errorf("Expected 100%%, got %d", cs.Percentage)
	}
	if !cs.Met {
		t.Errorf("Expected criterion met")
	}
	if len(score.Strengths) != 1 || score.Strengths[0] != "Discovery Phrases" {
		t.Errorf("Expected phrase criterion in strengths, got %v", score.Strengths)
	}
	if score.OverallScore != 100 {
		t.Errorf("Expected overall 100, got %d", score.OverallScore)
	}
}

func TestMissingPhrasesBelowHalfIsCritical(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionRequiredPhrases, Name: "Phrases", Weight: 20, Phrases: []string{
			"i understand your concern", "what would success look like", "next steps",
		}},
	}}
	turns := []models.DialogueTurn{
		finalTurn(models.RoleUser, "Let's talk about next steps for the rollout.", 1),
	}
	an := analysis.AnalyzeTranscript(turns, "")

	score := ScoreCall(an, rubric, turns, models.CallMetrics{})

	if got := score.CriterionScores[0].Percentage; got != 33 {
		t.Errorf("Expected 33%%, got %d", got)
	}
	if len(score.CriticalFailures) != 1 {
		t.Fatalf("Expected a critical failure for missed phrases, got %v", score.CriticalFailures)
	}
	if !strings.Contains(score.CriticalFailures[0], "i understand your concern") {
		t.Errorf("Critical failure should list the missing phrases: %s", score.CriticalFailures[0])
	}
}

func TestGoalAchievementRequiredAndUnmet(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionGoalAchievement, Name: "Book a Demo", Weight: 30, Required: true},
	}}
	an := models.TranscriptAnalysis{
		AgentQuestions: []models.QuestionInstance{
			{QuestionText: "What's your budget?"},
			{QuestionText: "Who decides?"},
		},
		UnansweredQuestions: []models.QuestionInstance{
			{QuestionText: "What's your budget?"},
			{QuestionText: "Who decides?"},
		},
	}

	score := ScoreCall(an, rubric, nil, models.CallMetrics{})

	cs := score.CriterionScores[0]
	if cs.Met {
		t.Errorf("Zero completion with no outcome should be unmet, got %d%%", cs.Percentage)
	}
	if len(score.CriticalFailures) != 1 || !strings.Contains(score.CriticalFailures[0], "Required goal") {
		t.Errorf("Expected required-goal critical failure, got %v", score.CriticalFailures)
	}
}

func TestGoalAchievementPositiveOutcomeBonus(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionGoalAchievement, Name: "Book a Demo", Weight: 30},
	}}
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "Sounds good, send me the contract.", 30),
	}

	score := ScoreCall(models.TranscriptAnalysis{}, rubric, turns, models.CallMetrics{})

	if got := score.CriterionScores[0].Percentage; got != 100 {
		t.Errorf("No questions and a positive outcome should score 100%%, got %d", got)
	}
}

func TestOpenQuestionsMetTracksRawCount(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionOpenQuestions, Name: "Discovery", Weight: 20, MinimumCount: 3},
	}}
	an := models.TranscriptAnalysis{
		TraineeQuestions: []models.QuestionInstance{
			{QuestionText: "What tools do you use today?"},
			{QuestionText: "How big is the team?"},
		},
	}

	score := ScoreCall(an, rubric, nil, models.CallMetrics{})
	cs := score.CriterionScores[0]
	if cs.Percentage != 67 {
		t.Errorf("Expected 67%%, got %d", cs.Percentage)
	}
	if cs.Met {
		t.Errorf("Two questions against a minimum of three must not be met, even at a passing percentage")
	}
}

func TestObjectionsDefaultEffectiveness(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionObjectionsHandled, Name: "Objections", Weight: 15, ObjectionKeywords: []string{"too expensive"}},
	}}

	// No objection keywords in the call: effectiveness defaults to 1.0.
	score := ScoreCall(models.TranscriptAnalysis{}, rubric, nil, models.CallMetrics{})
	if got := score.CriterionScores[0].Percentage; got != 100 {
		t.Errorf("Expected 100%% with no objections raised, got %d", got)
	}
}

func TestObjectionsUseAnsweredRateProxy(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionObjectionsHandled, Name: "Objections", Weight: 15, ObjectionKeywords: []string{"too expensive"}},
	}}
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "Honestly this sounds too expensive for us.", 5),
	}
	an := models.TranscriptAnalysis{
		AgentQuestions:      make([]models.QuestionInstance, 4),
		UnansweredQuestions: make([]models.QuestionInstance, 1),
	}

	score := ScoreCall(an, rubric, turns, models.CallMetrics{})
	if got := score.CriterionScores[0].Percentage; got != 75 {
		t.Errorf("Expected 75%% effectiveness, got %d", got)
	}
}

func TestConversationQualityComposite(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionConversationQuality, Name: "Quality", Weight: 15},
	}}
	an := qualityAnalysis(80, 85, 75, 2)

	score := ScoreCall(an, rubric, nil, models.CallMetrics{TalkListenRatio: "45:55"})

	// (0.85 + 0.80 + 0.75 + 1.0 + 1.0) / 5 = 0.88
	if got := score.CriterionScores[0].Percentage; got != 88 {
		t.Errorf("Expected 88%%, got %d", got)
	}
	if !score.CriterionScores[0].Met {
		t.Errorf("88%% should meet the quality threshold")
	}
}

func TestTalkListenBalanceBuckets(t *testing.T) {
	tests := []struct {
		ratio string
		want  float64
	}{
		{"45:55", 1.0},
		{"50:50", 1.0},
		{"37:63", 0.8},
		{"55:45", 0.8},
		{"32:68", 0.6},
		{"20:80", 0.4},
		{"", 0.4},
		{"garbage", 0.4},
	}
	for _, tt := range tests {
		if got := talkListenBalance(tt.ratio); got != tt.want {
			t.Errorf("talkListenBalance(%q) = %.1f, want %.1f", tt.ratio, got, tt.want)
		}
	}
}

func TestPercentageScoreInvariant(t *testing.T) {
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionGoalAchievement, Weight: 30},
		{Kind: models.CriterionOpenQuestions, Weight: 20, MinimumCount: 3},
		{Kind: models.CriterionConversationQuality, Weight: 15},
	}}
	an := qualityAnalysis(64, 71, 58, 1)
	an.TraineeQuestions = []models.QuestionInstance{{QuestionText: "Why now?"}}

	score := ScoreCall(an, rubric, nil, models.CallMetrics{TalkListenRatio: "33:67"})

	for _, cs := range score.CriterionScores {
		want := int(math.Round(100 * cs.Score / cs.MaxScore))
		if diff := cs.Percentage - want; diff < -1 || diff > 1 {
			t.Errorf("%s: percentage %d does not match score %f/%f", cs.CriterionID, cs.Percentage, cs.Score, cs.MaxScore)
		}
		if cs.Percentage < 0 || cs.Percentage > 100 {
			t.Errorf("%s: percentage %d out of range", cs.CriterionID, cs.Percentage)
		}
	}
}

func TestWeightedAggregation(t *testing.T) {
	// One criterion at 100% weight 20, one at 0% weight 30.
	rubric := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionRequiredPhrases, Name: "A", Weight: 20, Phrases: []string{"alpha"}},
		{Kind: models.CriterionOpenQuestions, Name: "B", Weight: 30, MinimumCount: 3},
	}}
	turns := []models.DialogueTurn{finalTurn(models.RoleUser, "alpha beta gamma", 1)}

	score := ScoreCall(models.TranscriptAnalysis{}, rubric, turns, models.CallMetrics{})

	// weightedScore = (100*20 + 0*30)/100 = 20; overall = 20/50*100 = 40
	if score.WeightedScore != 20 {
		t.Errorf("Expected weighted score 20, got %f", score.WeightedScore)
	}
	if score.OverallScore != 40 {
		t.Errorf("Expected overall 40, got %d", score.OverallScore)
	}
}

func TestOverallMonotonicInCriterionPercentage(t *testing.T) {
	base := &models.Rubric{Criteria: []models.CriterionConfig{
		{Kind: models.CriterionOpenQuestions, Name: "Discovery", Weight: 20, MinimumCount: 4},
		{Kind: models.CriterionConversationQuality, Name: "Quality", Weight: 15},
	}}
	metrics := models.CallMetrics{TalkListenRatio: "45:55"}

	previous := -1
	for questions := 0; questions <= 4; questions++ {
		an := qualityAnalysis(70, 70, 70, 1)
		an.TraineeQuestions = make([]models.QuestionInstance, questions)
		score := ScoreCall(an, base, nil, metrics)
		if score.OverallScore < previous {
			t.Errorf("Overall dropped from %d to %d when a criterion improved", previous, score.OverallScore)
		}
		previous = score.OverallScore
	}
}

func TestEmptyRubricFallsBack(t *testing.T) {
	score := ScoreCall(models.TranscriptAnalysis{}, &models.Rubric{}, nil, models.CallMetrics{})
	if len(score.CriterionScores) != 4 {
		t.Errorf("Expected the 4 generic dimensions, got %d", len(score.CriterionScores))
	}
}
