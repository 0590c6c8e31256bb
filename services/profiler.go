package services

import (
	"context"
	"fmt"

	"pitchhub/metrics"
	"pitchhub/models"
	"pitchhub/profile"
)

const defaultProfilerWindow = 20

// WeaknessProfiler recomputes a user's dimension profile from their recent
// completed attempts and writes one memory entry per dimension. Concurrent
// runs for the same user race benignly: every write is a point upsert and
// last-write-wins is the accepted policy.
type WeaknessProfiler struct {
	Attempts AttemptStore
	Memory   MemoryStore
	Window   int
}

func NewWeaknessProfiler(attempts AttemptStore, memory MemoryStore, window int) *WeaknessProfiler {
	if window <= 0 || window > defaultProfilerWindow {
		window = defaultProfilerWindow
	}
	return &WeaknessProfiler{Attempts: attempts, Memory: memory, Window: window}
}

// Refresh recomputes and persists the profile for one user. On a write
// failure, already-written dimensions stay written; upserts are idempotent
// so the next run converges.
func (p *WeaknessProfiler) Refresh(ctx context.Context, orgID, userID string) ([]models.DimensionResult, error) {
	recent, err := p.Attempts.RecentCompleted(ctx, orgID, userID, int64(p.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt history: %w", err)
	}

	// RecentCompleted is newest-first; the profiler wants oldest-first.
	ordered := make([]models.Attempt, len(recent))
	for i, a := range recent {
		ordered[len(recent)-1-i] = a
	}

	results := profile.Evaluate(ordered)
	for _, dim := range results {
		memoryType := models.MemorySkillLevel
		staleType := models.MemoryWeaknessProfile
		if profile.IsWeakness(dim.Score) {
			memoryType, staleType = staleType, memoryType
		}

		entry := models.MemoryEntry{
			OrgID:      orgID,
			UserID:     userID,
			MemoryType: memoryType,
			Key:        dim.Key,
			Value: map[string]interface{}{
				"dimension": dim.Key,
				"score":     dim.Score,
				"trend":     dim.Trend,
			},
			Score:          float64(dim.Score),
			Trend:          dim.Trend,
			LastEvidenceAt: dim.LastEvidenceAt,
			EvidenceCount:  dim.EvidenceCount,
		}
		if err := p.Memory.Upsert(ctx, entry); err != nil {
			return results, err
		}
		// A dimension that crossed the weakness threshold since the last run
		// leaves a stale entry under the other type.
		if err := p.Memory.Delete(ctx, orgID, userID, staleType, dim.Key); err != nil {
			return results, err
		}
	}

	metrics.ProfilerRuns.Inc()
	return results, nil
}
