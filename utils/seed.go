package utils

import (
	"context"
	"log"
	"time"

	"pitchhub/db"
	"pitchhub/models"

	"github.com/google/uuid"
)

// SeedScenarios inserts demo scenarios when the collection is empty so a
// fresh install has something to practice against.
func SeedScenarios() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := db.NewScenarioStore()
	count, err := store.Count(ctx)
	if err != nil {
		log.Printf("scenario seed: count failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	scenarios := []models.Scenario{
		{
			ID:          uuid.NewString(),
			Title:       "Cold Call: SaaS Budget Objection",
			Description: "A skeptical operations lead who opens with a budget objection.",
			PersonaName: "Jordan Reyes",
			Rubric: &models.Rubric{Criteria: []models.CriterionConfig{
				{Kind: models.CriterionGoalAchievement, Name: "Book a Demo", Weight: 30, Required: true},
				{Kind: models.CriterionRequiredPhrases, Name: "Discovery Phrases", Weight: 20, Phrases: []string{
					"I understand your concern",
					"what would success look like",
				}},
				{Kind: models.CriterionOpenQuestions, Name: "Discovery Questions", Weight: 20, MinimumCount: 3},
				{Kind: models.CriterionObjectionsHandled, Name: "Objection Handling", Weight: 15, ObjectionKeywords: []string{
					"too expensive", "no budget", "already have a vendor",
				}},
				{Kind: models.CriterionConversationQuality, Name: "Conversation Quality", Weight: 15},
			}},
			CreatedAt: time.Now(),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Renewal Call: Unhappy Customer",
			Description: "A churning customer frustrated by support response times.",
			PersonaName: "Sam Okafor",
			// No rubric: attempts against this scenario exercise the generic
			// fallback scorer.
			CreatedAt: time.Now(),
		},
	}

	for _, scenario := range scenarios {
		if err := store.Insert(ctx, scenario); err != nil {
			log.Printf("scenario seed: insert %q failed: %v", scenario.Title, err)
		}
	}
	log.Printf("seeded %d demo scenarios", len(scenarios))
}
