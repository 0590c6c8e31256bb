package services

import (
	"context"

	"pitchhub/models"
)

// MemoryStore is the keyed coaching-memory collaborator. Uniqueness is
// enforced on (orgId, userId, memoryType, key).
type MemoryStore interface {
	Upsert(ctx context.Context, entry models.MemoryEntry) error
	Query(ctx context.Context, orgID, userID, memoryType string, ascending bool, limit int64) ([]models.MemoryEntry, error)
	Delete(ctx context.Context, orgID, userID, memoryType, key string) error
}

// AttemptStore is the attempt-history collaborator.
type AttemptStore interface {
	Insert(ctx context.Context, attempt models.Attempt) error
	RecentCompleted(ctx context.Context, orgID, userID string, limit int64) ([]models.Attempt, error)
	RecentSummaries(ctx context.Context, orgID, userID string, limit int64) ([]models.AttemptSummary, error)
}

// ScenarioStore supplies scenario rubrics.
type ScenarioStore interface {
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
}
