package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pitchhub/analysis"
	"pitchhub/metrics"
	"pitchhub/models"
	"pitchhub/scoring"

	"github.com/google/uuid"
)

// CallResult is what a completed call hands back to the caller: the stored
// attempt plus the full analysis and score.
type CallResult struct {
	Attempt  models.Attempt            `json:"attempt"`
	Analysis models.TranscriptAnalysis `json:"analysis"`
	Score    models.RubricScore        `json:"score"`
}

// AttemptService runs the analyze-score-persist flow for a completed call.
// Shared by the HTTP controller and the live-call websocket handler.
type AttemptService struct {
	Attempts  AttemptStore
	Scenarios ScenarioStore
	Profiler  *WeaknessProfiler
}

func NewAttemptService(attempts AttemptStore, scenarios ScenarioStore, profiler *WeaknessProfiler) *AttemptService {
	return &AttemptService{Attempts: attempts, Scenarios: scenarios, Profiler: profiler}
}

// CompleteCall analyzes and scores a finished call, persists the attempt,
// and refreshes the user's weakness profile. Analysis and scoring are total;
// only store I/O can fail here.
func (s *AttemptService) CompleteCall(ctx context.Context, orgID, userID, scenarioID string, turns []models.DialogueTurn, callMetrics models.CallMetrics) (*CallResult, error) {
	var rubric *models.Rubric
	personaName := ""
	scenarioTitle := ""
	if scenarioID != "" && s.Scenarios != nil {
		scenario, err := s.Scenarios.GetByID(ctx, scenarioID)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioID, err)
		}
		rubric = scenario.Rubric
		personaName = scenario.PersonaName
		scenarioTitle = scenario.Title
	}

	start := time.Now()
	transcriptAnalysis := analysis.AnalyzeTranscript(turns, personaName)
	score := scoring.ScoreCall(transcriptAnalysis, rubric, turns, callMetrics)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	metrics.CallsAnalyzed.Inc()

	attempt := models.Attempt{
		ID:              uuid.NewString(),
		OrgID:           orgID,
		UserID:          userID,
		ScenarioID:      scenarioID,
		ScenarioTitle:   scenarioTitle,
		Status:          models.AttemptCompleted,
		Score:           score.OverallScore,
		ScoreBreakdown:  &score,
		Metrics:         attemptMetrics(transcriptAnalysis, callMetrics),
		StartedAt:       time.Now().Add(-time.Duration(callMetrics.DurationSeconds) * time.Second),
		DurationSeconds: callMetrics.DurationSeconds,
		CreatedAt:       time.Now(),
	}
	if err := s.Attempts.Insert(ctx, attempt); err != nil {
		return nil, err
	}

	// Profile refresh failures don't invalidate the stored attempt; the next
	// refresh converges.
	if _, err := s.Profiler.Refresh(ctx, orgID, userID); err != nil {
		log.Printf("profile refresh after attempt %s failed: %v", attempt.ID, err)
	}

	return &CallResult{Attempt: attempt, Analysis: transcriptAnalysis, Score: score}, nil
}

// attemptMetrics flattens the analysis into the KPI map the profiler's
// extractors read.
func attemptMetrics(an models.TranscriptAnalysis, callMetrics models.CallMetrics) map[string]interface{} {
	fillersPerMinute := 0.0
	if callMetrics.DurationSeconds > 0 {
		fillerCount := 0
		for _, f := range an.Fumbles {
			if f.Kind == models.FumbleFillerRepetition {
				fillerCount++
			}
		}
		fillersPerMinute = float64(fillerCount) / (callMetrics.DurationSeconds / 60)
	}

	out := map[string]interface{}{
		"confidenceScore":      an.ResponseQuality.ConfidenceScore,
		"professionalismScore": an.ResponseQuality.ProfessionalismScore,
		"clarityScore":         an.ResponseQuality.ClarityScore,
		"talkListenRatio":      callMetrics.TalkListenRatio,
		"fillerWordsPerMinute": fillersPerMinute,
		"avgResponseTimeMs":    an.ConversationFlow.AvgResponseTimeMs,
		"empathyCount":         an.ConversationFlow.EmpathyCount,
		"deadAirCount":         len(an.ConversationFlow.DeadAirInstances),
	}
	if total := len(an.AgentQuestions); total > 0 {
		out["questionCompletionRate"] = 1 - float64(len(an.UnansweredQuestions))/float64(total)
	}
	for k, v := range callMetrics.KPIs {
		out[k] = v
	}
	return out
}
