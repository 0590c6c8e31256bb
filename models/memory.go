package models

import "time"

// Memory entry types. A dimension is classified weaknessProfile or
// skillLevel purely by its score at write time; it can move between the two
// across profiler runs.
const (
	MemoryWeaknessProfile = "weaknessProfile"
	MemorySkillLevel      = "skillLevel"
	MemoryTrajectory      = "trajectory"
	MemoryCoachingNote    = "coachingNote"
	MemoryPracticePattern = "practicePattern"
)

// MemoryEntry is one keyed coaching-memory record. Unique per
// (orgId, userId, memoryType, key); writes are last-write-wins upserts.
type MemoryEntry struct {
	OrgID          string                 `bson:"orgId" json:"orgId"`
	UserID         string                 `bson:"userId" json:"userId"`
	MemoryType     string                 `bson:"memoryType" json:"memoryType"`
	Key            string                 `bson:"key" json:"key"`
	Value          map[string]interface{} `bson:"value,omitempty" json:"value,omitempty"`
	Score          float64                `bson:"score,omitempty" json:"score,omitempty"`
	Trend          string                 `bson:"trend,omitempty" json:"trend,omitempty"`
	LastEvidenceAt time.Time              `bson:"lastEvidenceAt,omitempty" json:"lastEvidenceAt,omitempty"`
	EvidenceCount  int                    `bson:"evidenceCount" json:"evidenceCount"`
	UpdatedAt      time.Time              `bson:"updatedAt" json:"updatedAt"`
}
