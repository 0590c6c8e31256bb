package analysis

import (
	"reflect"
	"testing"

	"pitchhub/models"
)

func finalTurn(role, text string, ts float64) models.DialogueTurn {
	return models.DialogueTurn{ID: "t", Role: role, Text: text, Timestamp: ts, IsFinal: true}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	result := AnalyzeTranscript(nil, "")

	if result.TotalTurns != 0 || result.AgentTurns != 0 || result.TraineeTurns != 0 {
		t.Errorf("Expected zero turn counts, got %d/%d/%d", result.TotalTurns, result.AgentTurns, result.TraineeTurns)
	}
	if len(result.AgentQuestions) != 0 || len(result.Fumbles) != 0 {
		t.Errorf("Expected no questions or fumbles on empty transcript")
	}
	if len(result.ConversationFlow.DeadAirInstances) != 0 {
		t.Errorf("Expected no dead air on empty transcript")
	}
}

func TestNonFinalTurnsAreDiscarded(t *testing.T) {
	turns := []models.DialogueTurn{
		{Role: models.RoleAgent, Text: "What's your budget?", Timestamp: 0, IsFinal: false},
		finalTurn(models.RoleUser, "Hello there.", 1),
	}
	result := AnalyzeTranscript(turns, "")

	if result.TotalTurns != 1 {
		t.Errorf("Expected 1 final turn, got %d", result.TotalTurns)
	}
	if len(result.AgentQuestions) != 0 {
		t.Errorf("Provisional agent question should not be analyzed")
	}
}

func TestQuestionDetection(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"What's your budget?", true},
		{"could you walk me through that", true},
		{"Tell me more.", false},
		{"We use a spreadsheet today.", false},
		{"is that a problem for your team", true},
	}
	for _, tt := range tests {
		if got := isQuestion(tt.text); got != tt.want {
			t.Errorf("isQuestion(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDeflectedQuestionGoesUnanswered(t *testing.T) {
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "What's your budget?", 0),
		finalTurn(models.RoleUser, "What did you say?", 2),
	}
	result := AnalyzeTranscript(turns, "")

	if len(result.AgentQuestions) != 1 {
		t.Fatalf("Expected 1 agent question, got %d", len(result.AgentQuestions))
	}
	q := result.AgentQuestions[0]
	if q.ResponseQuality != models.ResponseDeflection {
		t.Errorf("Expected deflection, got %s", q.ResponseQuality)
	}
	if q.Answered {
		t.Errorf("Deflected question should not count as answered")
	}
	if len(result.UnansweredQuestions) != 1 {
		t.Errorf("Expected deflected question in unanswered set, got %d", len(result.UnansweredQuestions))
	}
	if q.ResponseLatencyMs != 2000 {
		t.Errorf("Expected 2000ms latency, got %.0f", q.ResponseLatencyMs)
	}
}

func TestResponseClassification(t *testing.T) {
	tests := []struct {
		name     string
		question string
		response string
		want     string
	}{
		{"complete", "What does your current process cost each month?", "Our current process cost runs two thousand each month.", models.ResponseComplete},
		{"partial by length", "What does your current process cost each month?", "It runs about two grand monthly", models.ResponsePartial},
		{"too short", "What does your current process cost each month?", "no clue", models.ResponseNone},
		{"filler start", "What does your current process cost each month?", "um, maybe a lot honestly", models.ResponseNone},
		{"deflection", "What does your current process cost each month?", "sorry, can you repeat that?", models.ResponseDeflection},
	}
	for _, tt := range tests {
		if got := classifyResponse(tt.question, tt.response); got != tt.want {
			t.Errorf("%s: classifyResponse = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestWeakResponseGoesToWeakSet(t *testing.T) {
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "What does your current process cost each month?", 0),
		finalTurn(models.RoleUser, "It runs about two grand monthly", 2),
	}
	result := AnalyzeTranscript(turns, "")

	if len(result.WeakResponses) != 1 {
		t.Fatalf("Expected 1 weak response, got %d", len(result.WeakResponses))
	}
	if !result.WeakResponses[0].Answered {
		t.Errorf("Partial responses still count as answered")
	}
	if len(result.UnansweredQuestions) != 0 {
		t.Errorf("Partial response should not be unanswered")
	}
}

func TestAnswerPairingWindow(t *testing.T) {
	// Trainee response arrives more than three turns after the question.
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "What's your budget?", 0),
		finalTurn(models.RoleAgent, "Hello?", 2),
		finalTurn(models.RoleAgent, "Are you still there?", 4),
		finalTurn(models.RoleAgent, "Hmm.", 6),
		finalTurn(models.RoleUser, "Sorry, around ten thousand dollars for the budget this year.", 8),
	}
	result := AnalyzeTranscript(turns, "")

	first := result.AgentQuestions[0]
	if first.TraineeResponse != "" {
		t.Errorf("Response outside the 3-turn window should not pair, got %q", first.TraineeResponse)
	}
	if first.ResponseQuality != models.ResponseNone {
		t.Errorf("Unpaired question should classify none, got %s", first.ResponseQuality)
	}
}

func TestFumbleDetection(t *testing.T) {
	tests := []struct {
		text         string
		wantKind     string
		wantSeverity string
	}{
		{"Um uh er I can do that.", models.FumbleFillerRepetition, models.SeverityModerate},
		{"So what I was trying to", models.FumbleIncompleteSentence, models.SeverityMinor},
		{"Wait, what did you say?", models.FumbleRepeatedQuestion, models.SeveritySevere},
		{"I think so", models.FumbleUncertainty, models.SeveritySevere},
		{"I think we could probably make that work for you.", models.FumbleUncertainty, models.SeverityModerate},
		{"Um, yeah sure we can look into scheduling something.", models.FumbleUncertainty, models.SeverityModerate},
	}
	for _, tt := range tests {
		fumbles := detectFumbles(finalTurn(models.RoleUser, tt.text, 1))
		found := false
		for _, f := range fumbles {
			if f.Kind == tt.wantKind && f.Severity == tt.wantSeverity {
				found = true
			}
		}
		if !found {
			t.Errorf("detectFumbles(%q): want %s/%s, got %+v", tt.text, tt.wantKind, tt.wantSeverity, fumbles)
		}
	}
}

func TestOneTurnCanFumbleTwice(t *testing.T) {
	fumbles := detectFumbles(finalTurn(models.RoleUser, "um uh er I think we might", 1))
	kinds := map[string]bool{}
	for _, f := range fumbles {
		kinds[f.Kind] = true
	}
	if !kinds[models.FumbleFillerRepetition] || !kinds[models.FumbleIncompleteSentence] || !kinds[models.FumbleUncertainty] {
		t.Errorf("Expected filler, incomplete, and uncertainty fumbles, got %+v", fumbles)
	}
}

func TestResponseQualityBaselines(t *testing.T) {
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "Tell me about your product.", 0),
		finalTurn(models.RoleUser, "It automates your invoice pipeline end to end.", 2),
	}
	result := AnalyzeTranscript(turns, "")

	q := result.ResponseQuality
	if q.ConfidenceScore != 80 {
		t.Errorf("Expected baseline confidence 80, got %d", q.ConfidenceScore)
	}
	if q.ProfessionalismScore != 85 {
		t.Errorf("Expected baseline professionalism 85, got %d", q.ProfessionalismScore)
	}
	if q.ClarityScore != 75 {
		t.Errorf("Expected baseline clarity 75, got %d", q.ClarityScore)
	}
}

func TestConfidenceMarkersRaiseConfidence(t *testing.T) {
	turns := []models.DialogueTurn{
		finalTurn(models.RoleUser, "Absolutely, I can help with that today.", 1),
	}
	result := AnalyzeTranscript(turns, "")

	if got := result.ResponseQuality.ConfidenceScore; got != 90 {
		t.Errorf("Expected confidence 90 with two markers, got %d", got)
	}
	if len(result.ResponseQuality.ConfidenceMarkers) != 2 {
		t.Errorf("Expected 2 confidence markers, got %v", result.ResponseQuality.ConfidenceMarkers)
	}
}

func TestDeadAirAndLatencyStats(t *testing.T) {
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "What's your budget?", 0),
		finalTurn(models.RoleUser, "Around ten thousand dollars a year for the whole budget.", 6),
		finalTurn(models.RoleAgent, "And who signs off on that?", 10),
		finalTurn(models.RoleUser, "Our finance director signs off on anything over five.", 12),
	}
	result := AnalyzeTranscript(turns, "")

	flow := result.ConversationFlow
	if len(flow.DeadAirInstances) != 1 {
		t.Fatalf("Expected 1 dead air instance, got %d", len(flow.DeadAirInstances))
	}
	if flow.DeadAirInstances[0].DurationMs != 6000 || flow.DeadAirInstances[0].StartTimestamp != 0 {
		t.Errorf("Unexpected dead air instance: %+v", flow.DeadAirInstances[0])
	}
	if flow.AvgResponseTimeMs != 4000 {
		t.Errorf("Expected avg latency 4000ms, got %.0f", flow.AvgResponseTimeMs)
	}
	if flow.MaxResponseTimeMs != 6000 {
		t.Errorf("Expected max latency 6000ms, got %.0f", flow.MaxResponseTimeMs)
	}
}

func TestAnalysisIsDeterministic(t *testing.T) {
	turns := []models.DialogueTurn{
		finalTurn(models.RoleAgent, "What's driving the change now?", 0),
		finalTurn(models.RoleUser, "Honestly, um, I think our costs keep climbing", 3),
		finalTurn(models.RoleAgent, "How much are you spending today?", 8),
		finalTurn(models.RoleUser, "I understand your concern about spending, roughly twenty thousand today.", 11),
	}

	first := AnalyzeTranscript(turns, "Jordan")
	second := AnalyzeTranscript(turns, "Jordan")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analysis is not deterministic across runs")
	}
}
