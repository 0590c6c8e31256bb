package models

import "time"

// Attempt statuses.
const (
	AttemptCompleted = "completed"
	AttemptAbandoned = "abandoned"
)

// Attempt is one completed (or abandoned) practice call for a user. Metrics
// holds call-level KPIs keyed by name; older attempts may carry nested
// legacy shapes, which the profiler's extractors tolerate.
type Attempt struct {
	ID              string                 `bson:"_id" json:"id"`
	OrgID           string                 `bson:"orgId" json:"orgId"`
	UserID          string                 `bson:"userId" json:"userId"`
	ScenarioID      string                 `bson:"scenarioId,omitempty" json:"scenarioId,omitempty"`
	ScenarioTitle   string                 `bson:"scenarioTitle,omitempty" json:"scenarioTitle,omitempty"`
	Status          string                 `bson:"status" json:"status"`
	Score           int                    `bson:"score" json:"score"`
	ScoreBreakdown  *RubricScore           `bson:"scoreBreakdown,omitempty" json:"scoreBreakdown,omitempty"`
	Metrics         map[string]interface{} `bson:"metrics,omitempty" json:"metrics,omitempty"`
	StartedAt       time.Time              `bson:"startedAt" json:"startedAt"`
	DurationSeconds float64                `bson:"durationSeconds" json:"durationSeconds"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
}

// AttemptSummary is the read-side projection used in recent-history views.
type AttemptSummary struct {
	ID              string    `bson:"_id" json:"id"`
	ScenarioTitle   string    `bson:"scenarioTitle,omitempty" json:"scenarioTitle,omitempty"`
	Score           int       `bson:"score" json:"score"`
	Status          string    `bson:"status" json:"status"`
	StartedAt       time.Time `bson:"startedAt" json:"startedAt"`
	DurationSeconds float64   `bson:"durationSeconds" json:"durationSeconds"`
}
