package db

import (
	"context"
	"fmt"

	"pitchhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AttemptStore persists practice-call attempts and serves the read-side
// history queries used by the profiler and the context aggregator.
type AttemptStore struct {
	collection *mongo.Collection
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{collection: MongoDatabase.Collection("attempts")}
}

// Insert stores one attempt record. Attempts are immutable after creation;
// re-scoring a call creates a new record.
func (s *AttemptStore) Insert(ctx context.Context, attempt models.Attempt) error {
	if _, err := s.collection.InsertOne(ctx, attempt); err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	return nil
}

// RecentCompleted returns a user's most recent completed attempts, newest
// first.
func (s *AttemptStore) RecentCompleted(ctx context.Context, orgID, userID string, limit int64) ([]models.Attempt, error) {
	opts := options.Find().SetSort(bson.M{"startedAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, bson.M{
		"orgId":  orgID,
		"userId": userID,
		"status": models.AttemptCompleted,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer cursor.Close(ctx)

	var attempts []models.Attempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, fmt.Errorf("failed to decode attempts: %w", err)
	}
	return attempts, nil
}

// RecentSummaries returns the most recent attempts (any status) projected to
// summaries, newest first.
func (s *AttemptStore) RecentSummaries(ctx context.Context, orgID, userID string, limit int64) ([]models.AttemptSummary, error) {
	opts := options.Find().
		SetSort(bson.M{"startedAt": -1}).
		SetProjection(bson.M{
			"_id":             1,
			"scenarioTitle":   1,
			"score":           1,
			"status":          1,
			"startedAt":       1,
			"durationSeconds": 1,
		})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, bson.M{"orgId": orgID, "userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []models.AttemptSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode attempt summaries: %w", err)
	}
	return summaries, nil
}
