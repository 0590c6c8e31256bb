package models

// Speaker roles on a call. The trainee is always "user"; the simulated
// prospect persona is "agent".
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// DialogueTurn is one utterance on a call, as produced by the call-transport
// layer. Timestamps are seconds relative to call start. Turns arrive while
// transcription is still settling; only IsFinal turns are analyzed.
type DialogueTurn struct {
	ID        string  `bson:"id" json:"id"`
	Role      string  `bson:"role" json:"role"`
	Text      string  `bson:"text" json:"text"`
	Timestamp float64 `bson:"timestamp" json:"timestamp"`
	IsFinal   bool    `bson:"isFinal" json:"isFinal"`
}

// CallMetrics carries call-level KPIs computed by the transport layer.
// TalkListenRatio is a "user:agent" percentage string, e.g. "45:55".
// KPIs may be absent or partial; consumers degrade gracefully.
type CallMetrics struct {
	DurationSeconds float64                `bson:"durationSeconds" json:"durationSeconds"`
	TalkListenRatio string                 `bson:"talkListenRatio" json:"talkListenRatio"`
	KPIs            map[string]interface{} `bson:"kpis,omitempty" json:"kpis,omitempty"`
}
