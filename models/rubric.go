package models

// CriterionKind tags a rubric criterion variant. Each kind carries its own
// parameters on CriterionConfig; the scorer dispatches on the kind.
type CriterionKind string

const (
	CriterionGoalAchievement     CriterionKind = "goal_achievement"
	CriterionRequiredPhrases     CriterionKind = "required_phrases"
	CriterionOpenQuestions       CriterionKind = "open_questions"
	CriterionObjectionsHandled   CriterionKind = "objections_handled"
	CriterionConversationQuality CriterionKind = "conversation_quality"
)

// CriterionConfig is one configured rubric criterion. Weight is shared by
// all kinds; the remaining fields apply only to the kinds that use them.
type CriterionConfig struct {
	Kind              CriterionKind `bson:"kind" json:"kind"`
	Name              string        `bson:"name" json:"name"`
	Weight            float64       `bson:"weight" json:"weight"`
	Required          bool          `bson:"required,omitempty" json:"required,omitempty"`
	Phrases           []string      `bson:"phrases,omitempty" json:"phrases,omitempty"`
	MinimumCount      int           `bson:"minimumCount,omitempty" json:"minimumCount,omitempty"`
	ObjectionKeywords []string      `bson:"objectionKeywords,omitempty" json:"objectionKeywords,omitempty"`
}

// Rubric is a scenario-specific weighted set of criteria. A nil rubric or an
// empty criteria list selects the generic fallback scorer.
type Rubric struct {
	Criteria []CriterionConfig `bson:"criteria" json:"criteria"`
}

// CriterionScore is the evaluated result for one rubric dimension.
type CriterionScore struct {
	CriterionID string   `bson:"criterionId" json:"criterionId"`
	Name        string   `bson:"name" json:"name"`
	Score       float64  `bson:"score" json:"score"`
	MaxScore    float64  `bson:"maxScore" json:"maxScore"`
	Percentage  int      `bson:"percentage" json:"percentage"`
	Weight      float64  `bson:"weight" json:"weight"`
	Evidence    []string `bson:"evidence" json:"evidence"`
	Reasoning   string   `bson:"reasoning" json:"reasoning"`
	Met         bool     `bson:"met" json:"met"`
}

// RubricScore is the scored outcome of one call. Persisted as part of the
// attempt record; re-scoring creates a new record rather than mutating this.
type RubricScore struct {
	OverallScore        int              `bson:"overallScore" json:"overallScore"`
	WeightedScore       float64          `bson:"weightedScore" json:"weightedScore"`
	CriterionScores     []CriterionScore `bson:"criterionScores" json:"criterionScores"`
	CriticalFailures    []string         `bson:"criticalFailures" json:"criticalFailures"`
	Strengths           []string         `bson:"strengths" json:"strengths"`
	AreasForImprovement []string         `bson:"areasForImprovement" json:"areasForImprovement"`
}
