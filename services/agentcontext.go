package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pitchhub/metrics"
	"pitchhub/models"
	"pitchhub/profile"
)

const (
	recentAttemptCount = 5
	trajectoryWindow   = 100
	inactivityDays     = 3
	minSpanWeeks       = 1
)

// ContextBuilder composes the on-demand coaching context for one user from
// the memory store and attempt history. Now is injectable so streak math is
// testable.
type ContextBuilder struct {
	Attempts AttemptStore
	Memory   MemoryStore
	Now      func() time.Time
}

func NewContextBuilder(attempts AttemptStore, memory MemoryStore) *ContextBuilder {
	return &ContextBuilder{Attempts: attempts, Memory: memory, Now: time.Now}
}

// Build fetches weaknesses, strengths, recent attempts, and completed
// history concurrently, then combines them in memory.
func (b *ContextBuilder) Build(ctx context.Context, orgID, userID string) (models.AgentContext, error) {
	var (
		weaknesses []models.MemoryEntry
		strengths  []models.MemoryEntry
		recent     []models.AttemptSummary
		history    []models.Attempt
		errs       [4]error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		weaknesses, errs[0] = b.Memory.Query(ctx, orgID, userID, models.MemoryWeaknessProfile, true, 0)
	}()
	go func() {
		defer wg.Done()
		strengths, errs[1] = b.Memory.Query(ctx, orgID, userID, models.MemorySkillLevel, true, 0)
	}()
	go func() {
		defer wg.Done()
		recent, errs[2] = b.Attempts.RecentSummaries(ctx, orgID, userID, recentAttemptCount)
	}()
	go func() {
		defer wg.Done()
		history, errs[3] = b.Attempts.RecentCompleted(ctx, orgID, userID, trajectoryWindow)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return models.AgentContext{}, fmt.Errorf("failed to build agent context: %w", err)
		}
	}

	// History is newest-first; trend math wants oldest-first.
	scores := make([]float64, len(history))
	timestamps := make([]time.Time, len(history))
	for i, a := range history {
		scores[len(history)-1-i] = float64(a.Score)
		timestamps[len(history)-1-i] = a.StartedAt
	}

	agentCtx := models.AgentContext{
		Weaknesses:      weaknesses,
		Strengths:       strengths,
		RecentAttempts:  recent,
		PracticePattern: buildPracticePattern(timestamps, b.Now()),
		Trajectory:      profile.ClassifyTrend(scores),
	}
	agentCtx.Insights = buildInsights(agentCtx)

	metrics.ContextBuilds.Inc()
	return agentCtx, nil
}

// buildPracticePattern summarizes practice cadence from completed-attempt
// timestamps, ordered oldest to newest.
func buildPracticePattern(timestamps []time.Time, now time.Time) models.PracticePattern {
	pattern := models.PracticePattern{TotalAttempts: len(timestamps)}
	if len(timestamps) == 0 {
		return pattern
	}
	pattern.HasAttempted = true

	first, last := timestamps[0], timestamps[len(timestamps)-1]
	weeks := last.Sub(first).Hours() / (24 * 7)
	if weeks < minSpanWeeks {
		weeks = minSpanWeeks
	}
	pattern.AttemptsPerWeek = float64(len(timestamps)) / weeks
	pattern.DaysSinceLast = int(now.Sub(last).Hours() / 24)
	pattern.CurrentStreak = currentStreak(timestamps, now)
	return pattern
}

// currentStreak counts consecutive practice days walking backward from
// today. A day without attempts breaks the streak, except today itself: an
// empty today is a no-op so a streak built through yesterday still shows.
func currentStreak(timestamps []time.Time, now time.Time) int {
	days := make(map[string]bool, len(timestamps))
	for _, ts := range timestamps {
		days[ts.Format("2006-01-02")] = true
	}

	streak := 0
	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// buildInsights renders the coaching facts as short human-readable lines.
func buildInsights(agentCtx models.AgentContext) []string {
	var insights []string

	if len(agentCtx.Weaknesses) > 0 {
		weakest := agentCtx.Weaknesses[0]
		insights = append(insights, fmt.Sprintf("Weakest area: %s (score %.0f, %s)", weakest.Key, weakest.Score, weakest.Trend))
	}
	if len(agentCtx.Strengths) > 0 {
		strongest := agentCtx.Strengths[len(agentCtx.Strengths)-1]
		insights = append(insights, fmt.Sprintf("Strongest area: %s (score %.0f)", strongest.Key, strongest.Score))
	}

	pattern := agentCtx.PracticePattern
	switch {
	case !pattern.HasAttempted:
		insights = append(insights, "No practice attempts yet")
	case pattern.DaysSinceLast > inactivityDays:
		insights = append(insights, fmt.Sprintf("No practice in %d days", pattern.DaysSinceLast))
	case pattern.CurrentStreak > 0:
		insights = append(insights, fmt.Sprintf("Active practice streak: %d days", pattern.CurrentStreak))
	}

	switch agentCtx.Trajectory {
	case models.TrendImproving:
		insights = append(insights, "Overall scores are improving")
	case models.TrendDeclining:
		insights = append(insights, "Overall scores are declining")
	}

	return insights
}
