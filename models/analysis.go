package models

// Question speakers.
const (
	SpeakerAgent   = "agent"
	SpeakerTrainee = "trainee"
)

// Response quality tiers for an answered (or dodged) agent question.
const (
	ResponseComplete   = "complete"
	ResponsePartial    = "partial"
	ResponseDeflection = "deflection"
	ResponseNone       = "none"
)

// Fumble kinds and severities.
const (
	FumbleFillerRepetition   = "filler_repetition"
	FumbleIncompleteSentence = "incomplete_sentence"
	FumbleRepeatedQuestion   = "repeated_question"
	FumbleUncertainty        = "uncertainty"

	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// QuestionInstance is a detected question and, for agent questions, the
// paired trainee response.
type QuestionInstance struct {
	QuestionText      string  `bson:"questionText" json:"questionText"`
	Timestamp         float64 `bson:"timestamp" json:"timestamp"`
	Speaker           string  `bson:"speaker" json:"speaker"`
	Answered          bool    `bson:"answered" json:"answered"`
	TraineeResponse   string  `bson:"traineeResponse,omitempty" json:"traineeResponse,omitempty"`
	ResponseTimestamp float64 `bson:"responseTimestamp,omitempty" json:"responseTimestamp,omitempty"`
	ResponseQuality   string  `bson:"responseQuality,omitempty" json:"responseQuality,omitempty"`
	ResponseLatencyMs float64 `bson:"responseLatencyMs,omitempty" json:"responseLatencyMs,omitempty"`
}

// FumbleInstance is a detected verbal stumble in a trainee turn.
type FumbleInstance struct {
	Text      string  `bson:"text" json:"text"`
	Timestamp float64 `bson:"timestamp" json:"timestamp"`
	Kind      string  `bson:"kind" json:"kind"`
	Severity  string  `bson:"severity" json:"severity"`
	Context   string  `bson:"context" json:"context"`
}

// ResponseQualityMetrics aggregates 0-100 delivery scores over a call, with
// the marker phrases that moved them.
type ResponseQualityMetrics struct {
	ConfidenceScore      int      `bson:"confidenceScore" json:"confidenceScore"`
	ProfessionalismScore int      `bson:"professionalismScore" json:"professionalismScore"`
	ClarityScore         int      `bson:"clarityScore" json:"clarityScore"`
	ConfidenceMarkers    []string `bson:"confidenceMarkers" json:"confidenceMarkers"`
	EmpathySignals       []string `bson:"empathySignals" json:"empathySignals"`
}

// DeadAirInstance records an agent-to-trainee gap exceeding the dead air
// threshold. StartTimestamp is the agent turn's timestamp (seconds).
type DeadAirInstance struct {
	StartTimestamp float64 `bson:"startTimestamp" json:"startTimestamp"`
	DurationMs     float64 `bson:"durationMs" json:"durationMs"`
}

// ConversationFlowMetrics captures pacing and rapport signals.
type ConversationFlowMetrics struct {
	AcknowledgmentCount int               `bson:"acknowledgmentCount" json:"acknowledgmentCount"`
	EmpathyCount        int               `bson:"empathyCount" json:"empathyCount"`
	ValueStatementCount int               `bson:"valueStatementCount" json:"valueStatementCount"`
	AvgResponseTimeMs   float64           `bson:"avgResponseTimeMs" json:"avgResponseTimeMs"`
	MaxResponseTimeMs   float64           `bson:"maxResponseTimeMs" json:"maxResponseTimeMs"`
	DeadAirInstances    []DeadAirInstance `bson:"deadAirInstances" json:"deadAirInstances"`
}

// TranscriptAnalysis is the full behavioral analysis of one completed call.
// Produced once per call and immutable afterwards.
type TranscriptAnalysis struct {
	AgentQuestions      []QuestionInstance      `bson:"agentQuestions" json:"agentQuestions"`
	TraineeQuestions    []QuestionInstance      `bson:"traineeQuestions" json:"traineeQuestions"`
	UnansweredQuestions []QuestionInstance      `bson:"unansweredQuestions" json:"unansweredQuestions"`
	WeakResponses       []QuestionInstance      `bson:"weakResponses" json:"weakResponses"`
	Fumbles             []FumbleInstance        `bson:"fumbles" json:"fumbles"`
	ResponseQuality     ResponseQualityMetrics  `bson:"responseQuality" json:"responseQuality"`
	ConversationFlow    ConversationFlowMetrics `bson:"conversationFlow" json:"conversationFlow"`
	TotalTurns          int                     `bson:"totalTurns" json:"totalTurns"`
	AgentTurns          int                     `bson:"agentTurns" json:"agentTurns"`
	TraineeTurns        int                     `bson:"traineeTurns" json:"traineeTurns"`
}
