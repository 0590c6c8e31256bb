package models

import "time"

// Scenario is a practice scenario: the persona the trainee talks to and the
// rubric their performance is scored against. Full scenario management lives
// outside this service; only the fields the scorer needs are modeled here.
type Scenario struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	PersonaName string    `bson:"personaName,omitempty" json:"personaName,omitempty"`
	Rubric      *Rubric   `bson:"rubric,omitempty" json:"rubric,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
