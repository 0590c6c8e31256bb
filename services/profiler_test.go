package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pitchhub/models"
	"pitchhub/profile"
)

// fakeMemoryStore keeps entries under the same (orgId, userId, memoryType,
// key) uniqueness the mongo store enforces.
type fakeMemoryStore struct {
	mu      sync.Mutex
	entries map[string]models.MemoryEntry
	deleted []string
}

func newFakeMemoryStore() *fakeMemoryStore {
	return &fakeMemoryStore{entries: make(map[string]models.MemoryEntry)}
}

func memoryKey(orgID, userID, memoryType, key string) string {
	return fmt.Sprintf("%s|%s|%s|%s", orgID, userID, memoryType, key)
}

func (s *fakeMemoryStore) Upsert(_ context.Context, entry models.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey(entry.OrgID, entry.UserID, entry.MemoryType, entry.Key)] = entry
	return nil
}

func (s *fakeMemoryStore) Query(_ context.Context, orgID, userID, memoryType string, _ bool, _ int64) ([]models.MemoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MemoryEntry
	for _, e := range s.entries {
		if e.OrgID == orgID && e.UserID == userID && e.MemoryType == memoryType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeMemoryStore) Delete(_ context.Context, orgID, userID, memoryType, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memoryKey(orgID, userID, memoryType, key)
	if _, ok := s.entries[k]; ok {
		delete(s.entries, k)
		s.deleted = append(s.deleted, k)
	}
	return nil
}

func (s *fakeMemoryStore) get(orgID, userID, memoryType, key string) (models.MemoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[memoryKey(orgID, userID, memoryType, key)]
	return e, ok
}

func (s *fakeMemoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// fakeAttemptStore serves a canned newest-first history.
type fakeAttemptStore struct {
	attempts []models.Attempt
}

func (s *fakeAttemptStore) Insert(_ context.Context, attempt models.Attempt) error {
	s.attempts = append([]models.Attempt{attempt}, s.attempts...)
	return nil
}

func (s *fakeAttemptStore) RecentCompleted(_ context.Context, _, _ string, limit int64) ([]models.Attempt, error) {
	if limit > 0 && int64(len(s.attempts)) > limit {
		return s.attempts[:limit], nil
	}
	return s.attempts, nil
}

func (s *fakeAttemptStore) RecentSummaries(_ context.Context, _, _ string, limit int64) ([]models.AttemptSummary, error) {
	var out []models.AttemptSummary
	for _, a := range s.attempts {
		out = append(out, models.AttemptSummary{
			ID: a.ID, ScenarioTitle: a.ScenarioTitle, Score: a.Score,
			Status: a.Status, StartedAt: a.StartedAt, DurationSeconds: a.DurationSeconds,
		})
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func confidenceAttempt(score float64, startedAt time.Time) models.Attempt {
	return models.Attempt{
		Status:    models.AttemptCompleted,
		StartedAt: startedAt,
		Metrics:   map[string]interface{}{"confidenceScore": score},
	}
}

func TestRefreshClassifiesWeaknessAndSkill(t *testing.T) {
	now := time.Now()
	attempts := &fakeAttemptStore{attempts: []models.Attempt{
		confidenceAttempt(55, now),
	}}
	memory := newFakeMemoryStore()
	profiler := NewWeaknessProfiler(attempts, memory, 20)

	results, err := profiler.Refresh(context.Background(), "org1", "user1")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 dimension, got %d", len(results))
	}

	entry, ok := memory.get("org1", "user1", models.MemoryWeaknessProfile, profile.DimConfidence)
	if !ok {
		t.Fatalf("Expected weakness entry for confidence")
	}
	if entry.Score != 55 {
		t.Errorf("Expected score 55, got %f", entry.Score)
	}
	if entry.Trend != models.TrendNew {
		t.Errorf("Expected trend new, got %q", entry.Trend)
	}

	if _, ok := memory.get("org1", "user1", models.MemorySkillLevel, profile.DimConfidence); ok {
		t.Errorf("A weak dimension must not also appear as a skill")
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	now := time.Now()
	attempts := &fakeAttemptStore{attempts: []models.Attempt{
		confidenceAttempt(85, now),
		confidenceAttempt(80, now.Add(-24*time.Hour)),
	}}
	memory := newFakeMemoryStore()
	profiler := NewWeaknessProfiler(attempts, memory, 20)

	first, err := profiler.Refresh(context.Background(), "org1", "user1")
	if err != nil {
		t.Fatalf("First refresh failed: %v", err)
	}
	countAfterFirst := memory.count()

	second, err := profiler.Refresh(context.Background(), "org1", "user1")
	if err != nil {
		t.Fatalf("Second refresh failed: %v", err)
	}
	if memory.count() != countAfterFirst {
		t.Errorf("Second run changed entry count: %d -> %d", countAfterFirst, memory.count())
	}
	if len(first) != len(second) || first[0].Score != second[0].Score {
		t.Errorf("Repeated runs over the same history diverged: %v vs %v", first, second)
	}
}

func TestRefreshReclassificationDeletesStaleEntry(t *testing.T) {
	now := time.Now()
	attempts := &fakeAttemptStore{attempts: []models.Attempt{
		confidenceAttempt(50, now),
	}}
	memory := newFakeMemoryStore()
	profiler := NewWeaknessProfiler(attempts, memory, 20)

	if _, err := profiler.Refresh(context.Background(), "org1", "user1"); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if _, ok := memory.get("org1", "user1", models.MemoryWeaknessProfile, profile.DimConfidence); !ok {
		t.Fatalf("Expected initial weakness entry")
	}

	// The user improves; the dimension crosses the threshold.
	attempts.attempts = []models.Attempt{
		confidenceAttempt(95, now.Add(2*time.Hour)),
		confidenceAttempt(95, now.Add(time.Hour)),
		confidenceAttempt(50, now),
	}
	if _, err := profiler.Refresh(context.Background(), "org1", "user1"); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if _, ok := memory.get("org1", "user1", models.MemorySkillLevel, profile.DimConfidence); !ok {
		t.Errorf("Expected the dimension reclassified as a skill")
	}
	if _, ok := memory.get("org1", "user1", models.MemoryWeaknessProfile, profile.DimConfidence); ok {
		t.Errorf("Stale weakness entry must be deleted on reclassification")
	}
}

func TestNewWeaknessProfilerCapsWindow(t *testing.T) {
	p := NewWeaknessProfiler(&fakeAttemptStore{}, newFakeMemoryStore(), 500)
	if p.Window != defaultProfilerWindow {
		t.Errorf("Expected window capped at %d, got %d", defaultProfilerWindow, p.Window)
	}
	p = NewWeaknessProfiler(&fakeAttemptStore{}, newFakeMemoryStore(), 0)
	if p.Window != defaultProfilerWindow {
		t.Errorf("Expected default window for 0, got %d", p.Window)
	}
}
