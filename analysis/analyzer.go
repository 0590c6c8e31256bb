// Package analysis turns a finalized call transcript into a structured
// behavioral analysis: detected questions and how well they were answered,
// verbal fumbles, delivery quality scores, and conversation-flow metrics.
// Everything here is a pure function of its input; no I/O, no clock.
package analysis

import (
	"math"
	"strings"

	"pitchhub/models"
)

const (
	answerWindow           = 3
	deadAirThresholdMs     = 5000
	minResponseChars       = 10
	partialResponseChars   = 20
	completeResponseChars  = 30
	completeOverlapRatio   = 0.6
	fillerRunThreshold     = 3
	shortUncertaintyChars  = 20
	incompleteMinChars     = 10
)

// AnalyzeTranscript analyzes one completed call. Provisional (non-final)
// turns are discarded first. An empty transcript yields a zeroed analysis,
// never an error.
func AnalyzeTranscript(turns []models.DialogueTurn, personaName string) models.TranscriptAnalysis {
	final := make([]models.DialogueTurn, 0, len(turns))
	for _, t := range turns {
		if t.IsFinal {
			final = append(final, t)
		}
	}

	result := models.TranscriptAnalysis{
		AgentQuestions:      []models.QuestionInstance{},
		TraineeQuestions:    []models.QuestionInstance{},
		UnansweredQuestions: []models.QuestionInstance{},
		WeakResponses:       []models.QuestionInstance{},
		Fumbles:             []models.FumbleInstance{},
	}
	result.TotalTurns = len(final)

	for i, turn := range final {
		switch turn.Role {
		case models.RoleAgent:
			result.AgentTurns++
			if isQuestion(turn.Text) {
				q := pairAnswer(final, i, turn)
				result.AgentQuestions = append(result.AgentQuestions, q)
				switch q.ResponseQuality {
				case models.ResponseNone, models.ResponseDeflection:
					result.UnansweredQuestions = append(result.UnansweredQuestions, q)
				case models.ResponsePartial:
					result.WeakResponses = append(result.WeakResponses, q)
				}
			}
		case models.RoleUser:
			result.TraineeTurns++
			if isQuestion(turn.Text) {
				result.TraineeQuestions = append(result.TraineeQuestions, models.QuestionInstance{
					QuestionText: turn.Text,
					Timestamp:    turn.Timestamp,
					Speaker:      models.SpeakerTrainee,
				})
			}
			result.Fumbles = append(result.Fumbles, detectFumbles(turn)...)
		}
	}

	result.ResponseQuality = scoreResponseQuality(final, result.Fumbles)
	result.ConversationFlow = measureConversationFlow(final)
	return result
}

// isQuestion reports whether a turn reads as a question: it contains a
// question mark or opens with a question word.
func isQuestion(text string) bool {
	return strings.Contains(text, "?") || questionWordRe.MatchString(text)
}

// pairAnswer scans up to answerWindow turns past an agent question for the
// first trainee turn and classifies the response quality.
func pairAnswer(turns []models.DialogueTurn, idx int, question models.DialogueTurn) models.QuestionInstance {
	q := models.QuestionInstance{
		QuestionText:    question.Text,
		Timestamp:       question.Timestamp,
		Speaker:         models.SpeakerAgent,
		ResponseQuality: models.ResponseNone,
	}

	for j := idx + 1; j <= idx+answerWindow && j < len(turns); j++ {
		if turns[j].Role != models.RoleUser {
			continue
		}
		response := turns[j]
		q.TraineeResponse = response.Text
		q.ResponseTimestamp = response.Timestamp
		q.ResponseLatencyMs = (response.Timestamp - question.Timestamp) * 1000
		q.ResponseQuality = classifyResponse(question.Text, response.Text)
		q.Answered = q.ResponseQuality == models.ResponseComplete || q.ResponseQuality == models.ResponsePartial
		return q
	}
	return q
}

// classifyResponse grades a trainee response against the question it
// answers: deflection, none, partial, or complete.
func classifyResponse(question, response string) string {
	if deflectionRe.MatchString(response) {
		return models.ResponseDeflection
	}
	trimmed := strings.TrimSpace(response)
	if len(trimmed) < minResponseChars || fillerStartRe.MatchString(trimmed) {
		return models.ResponseNone
	}

	questionKeywords := keywords(question)
	responseWords := wordSet(response)
	overlap := 0
	for _, kw := range questionKeywords {
		if responseWords[kw] {
			overlap++
		}
	}

	if float64(overlap) >= completeOverlapRatio*float64(len(questionKeywords)) && len(trimmed) > completeResponseChars {
		return models.ResponseComplete
	}
	if overlap > 0 || len(trimmed) > partialResponseChars {
		return models.ResponsePartial
	}
	return models.ResponseNone
}

// keywords lowercases, strips punctuation, and drops stop words and words
// of two characters or fewer.
func keywords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:'\"()")
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[strings.Trim(w, ".,!?;:'\"()")] = true
	}
	return set
}

// detectFumbles finds verbal stumbles in a single trainee turn. One turn can
// contribute several fumbles of different kinds.
func detectFumbles(turn models.DialogueTurn) []models.FumbleInstance {
	var fumbles []models.FumbleInstance
	text := turn.Text
	trimmed := strings.TrimSpace(text)

	if maxFillerRun(text) >= fillerRunThreshold {
		fumbles = append(fumbles, models.FumbleInstance{
			Text:      text,
			Timestamp: turn.Timestamp,
			Kind:      models.FumbleFillerRepetition,
			Severity:  models.SeverityModerate,
			Context:   "repeated filler words in a row",
		})
	}

	if len(trimmed) > incompleteMinChars && strings.Contains(trimmed, " ") && !strings.ContainsAny(trimmed[len(trimmed)-1:], ".?!") {
		fumbles = append(fumbles, models.FumbleInstance{
			Text:      text,
			Timestamp: turn.Timestamp,
			Kind:      models.FumbleIncompleteSentence,
			Severity:  models.SeverityMinor,
			Context:   "sentence trails off without finishing",
		})
	}

	if repeatedQuestionRe.MatchString(text) {
		fumbles = append(fumbles, models.FumbleInstance{
			Text:      text,
			Timestamp: turn.Timestamp,
			Kind:      models.FumbleRepeatedQuestion,
			Severity:  models.SeveritySevere,
			Context:   "asked the prospect to repeat themselves",
		})
	}

	if fillerAffirmationRe.MatchString(text) || uncertaintyRe.MatchString(text) {
		severity := models.SeverityModerate
		if len(trimmed) < shortUncertaintyChars {
			severity = models.SeveritySevere
		}
		fumbles = append(fumbles, models.FumbleInstance{
			Text:      text,
			Timestamp: turn.Timestamp,
			Kind:      models.FumbleUncertainty,
			Severity:  severity,
			Context:   "hedging or uncertain language",
		})
	}

	return fumbles
}

// maxFillerRun returns the longest run of consecutive filler interjections.
func maxFillerRun(text string) int {
	run, best := 0, 0
	for _, w := range strings.Fields(text) {
		if fillerWordRe.MatchString(w) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// scoreResponseQuality derives 0-100 delivery scores from the detected
// fumbles and marker phrases in trainee turns.
func scoreResponseQuality(turns []models.DialogueTurn, fumbles []models.FumbleInstance) models.ResponseQualityMetrics {
	severe, fillerReps, incomplete := 0, 0, 0
	for _, f := range fumbles {
		if f.Severity == models.SeveritySevere {
			severe++
		}
		switch f.Kind {
		case models.FumbleFillerRepetition:
			fillerReps++
		case models.FumbleIncompleteSentence:
			incomplete++
		}
	}

	var confidenceMarkers, empathySignals []string
	for _, t := range turns {
		if t.Role != models.RoleUser {
			continue
		}
		confidenceMarkers = append(confidenceMarkers, matchMarkers(confidenceMarkerRules, t.Text)...)
		empathySignals = append(empathySignals, matchMarkers(empathyMarkerRules, t.Text)...)
	}

	return models.ResponseQualityMetrics{
		ConfidenceScore:      clampScore(80 - 20*severe - 5*len(fumbles) + 5*len(confidenceMarkers)),
		ProfessionalismScore: clampScore(85 - 10*fillerReps - 15*severe),
		ClarityScore:         clampScore(75 - 8*incomplete + 3*len(empathySignals)),
		ConfidenceMarkers:    confidenceMarkers,
		EmpathySignals:       empathySignals,
	}
}

// measureConversationFlow computes rapport counts over trainee turns and
// latency stats over adjacent agent-then-trainee pairs.
func measureConversationFlow(turns []models.DialogueTurn) models.ConversationFlowMetrics {
	flow := models.ConversationFlowMetrics{DeadAirInstances: []models.DeadAirInstance{}}

	for _, t := range turns {
		if t.Role != models.RoleUser {
			continue
		}
		flow.AcknowledgmentCount += len(matchMarkers(acknowledgmentMarkerRules, t.Text))
		flow.EmpathyCount += len(matchMarkers(empathyMarkerRules, t.Text))
		flow.ValueStatementCount += len(matchMarkers(valueStatementMarkerRules, t.Text))
	}

	var total float64
	var count int
	for i := 0; i+1 < len(turns); i++ {
		if turns[i].Role != models.RoleAgent || turns[i+1].Role != models.RoleUser {
			continue
		}
		latency := (turns[i+1].Timestamp - turns[i].Timestamp) * 1000
		total += latency
		count++
		flow.MaxResponseTimeMs = math.Max(flow.MaxResponseTimeMs, latency)
		if latency > deadAirThresholdMs {
			flow.DeadAirInstances = append(flow.DeadAirInstances, models.DeadAirInstance{
				StartTimestamp: turns[i].Timestamp,
				DurationMs:     latency,
			})
		}
	}
	if count > 0 {
		flow.AvgResponseTimeMs = total / float64(count)
	}
	return flow
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
