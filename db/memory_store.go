package db

import (
	"context"
	"fmt"
	"time"

	"pitchhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MemoryStore persists coaching-memory entries, unique per
// (orgId, userId, memoryType, key). Writes are last-write-wins upserts.
type MemoryStore struct {
	collection *mongo.Collection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collection: MongoDatabase.Collection("memory_entries")}
}

// Upsert writes an entry, replacing any prior entry under the same key.
func (s *MemoryStore) Upsert(ctx context.Context, entry models.MemoryEntry) error {
	filter := bson.M{
		"orgId":      entry.OrgID,
		"userId":     entry.UserID,
		"memoryType": entry.MemoryType,
		"key":        entry.Key,
	}
	update := bson.M{
		"$set": bson.M{
			"value":          entry.Value,
			"score":          entry.Score,
			"trend":          entry.Trend,
			"lastEvidenceAt": entry.LastEvidenceAt,
			"evidenceCount":  entry.EvidenceCount,
			"updatedAt":      time.Now(),
		},
		"$setOnInsert": bson.M{
			"orgId":      entry.OrgID,
			"userId":     entry.UserID,
			"memoryType": entry.MemoryType,
			"key":        entry.Key,
			"createdAt":  time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert memory entry %s/%s: %w", entry.MemoryType, entry.Key, err)
	}
	return nil
}

// Query returns a user's entries of one memory type, sorted by score.
func (s *MemoryStore) Query(ctx context.Context, orgID, userID, memoryType string, ascending bool, limit int64) ([]models.MemoryEntry, error) {
	order := 1
	if !ascending {
		order = -1
	}
	opts := options.Find().SetSort(bson.M{"score": order})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.collection.Find(ctx, bson.M{
		"orgId":      orgID,
		"userId":     userID,
		"memoryType": memoryType,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.MemoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode memory entries: %w", err)
	}
	return entries, nil
}

// Delete removes one entry. Used when a dimension flips classification so
// the stale entry under the old type does not linger.
func (s *MemoryStore) Delete(ctx context.Context, orgID, userID, memoryType, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{
		"orgId":      orgID,
		"userId":     userID,
		"memoryType": memoryType,
		"key":        key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete memory entry %s/%s: %w", memoryType, key, err)
	}
	return nil
}
