package db

import (
	"context"
	"errors"
	"fmt"

	"pitchhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScenarioStore reads and writes practice scenarios. Scenario management is
// a collaborator surface; this store only carries what the scorer needs.
type ScenarioStore struct {
	collection *mongo.Collection
}

func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{collection: MongoDatabase.Collection("scenarios")}
}

// GetByID fetches one scenario.
func (s *ScenarioStore) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	var scenario models.Scenario
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&scenario)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("scenario not found")
		}
		return nil, fmt.Errorf("failed to find scenario: %w", err)
	}
	return &scenario, nil
}

// List returns all scenarios, newest first.
func (s *ScenarioStore) List(ctx context.Context) ([]models.Scenario, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer cursor.Close(ctx)

	var scenarios []models.Scenario
	if err := cursor.All(ctx, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to decode scenarios: %w", err)
	}
	return scenarios, nil
}

// Insert stores a scenario.
func (s *ScenarioStore) Insert(ctx context.Context, scenario models.Scenario) error {
	if _, err := s.collection.InsertOne(ctx, scenario); err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// Count returns the number of stored scenarios.
func (s *ScenarioStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{})
}
