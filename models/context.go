package models

import "time"

// Trend / trajectory classifications.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
	TrendNew       = "new"
)

// DimensionResult is one tracked performance dimension after a profiler run.
type DimensionResult struct {
	Key            string    `bson:"key" json:"key"`
	Score          int       `bson:"score" json:"score"`
	Trend          string    `bson:"trend" json:"trend"`
	EvidenceCount  int       `bson:"evidenceCount" json:"evidenceCount"`
	LastEvidenceAt time.Time `bson:"lastEvidenceAt" json:"lastEvidenceAt"`
}

// PracticePattern summarizes a user's practice cadence.
type PracticePattern struct {
	TotalAttempts   int     `json:"totalAttempts"`
	AttemptsPerWeek float64 `json:"attemptsPerWeek"`
	DaysSinceLast   int     `json:"daysSinceLast"`
	CurrentStreak   int     `json:"currentStreak"`
	HasAttempted    bool    `json:"hasAttempted"`
}

// AgentContext is the on-demand coaching composite for one user. It has no
// lifecycle of its own; every request recomputes it.
type AgentContext struct {
	Weaknesses      []MemoryEntry    `json:"weaknesses"`
	Strengths       []MemoryEntry    `json:"strengths"`
	RecentAttempts  []AttemptSummary `json:"recentAttempts"`
	PracticePattern PracticePattern  `json:"practicePattern"`
	Trajectory      string           `json:"trajectory"`
	Insights        []string         `json:"insights"`
}
