// Package websocket ingests live call turns. The transport layer streams
// provisional and final turns during a call; on end_call the accumulated
// transcript is analyzed, scored, and persisted like any HTTP-submitted
// call.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"pitchhub/models"
	"pitchhub/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message types on the live-call socket.
const (
	MessageTypeTurn    = "turn"
	MessageTypeEndCall = "end_call"
	MessageTypeResult  = "result"
	MessageTypeError   = "error"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type endCallPayload struct {
	ScenarioID string             `json:"scenarioId"`
	Metrics    models.CallMetrics `json:"metrics"`
}

// callSession accumulates turns for one in-flight call.
type callSession struct {
	id     string
	orgID  string
	userID string
	turns  []models.DialogueTurn
	mu     sync.Mutex
}

var (
	sessions   = make(map[string]*callSession)
	sessionsMu sync.Mutex
)

// LiveCallHandler upgrades the connection and runs the read loop for one
// call session.
func LiveCallHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := &callSession{
		id:     uuid.NewString(),
		orgID:  c.GetString("orgId"),
		userID: c.GetString("userId"),
	}
	sessionsMu.Lock()
	sessions[session.id] = session
	sessionsMu.Unlock()
	defer func() {
		sessionsMu.Lock()
		delete(sessions, session.id)
		sessionsMu.Unlock()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live call %s read error: %v", session.id, err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeTurn:
			var turn models.DialogueTurn
			if err := json.Unmarshal(msg.Payload, &turn); err != nil {
				sendError(conn, "invalid turn payload")
				continue
			}
			session.mu.Lock()
			session.turns = append(session.turns, turn)
			session.mu.Unlock()

		case MessageTypeEndCall:
			var payload endCallPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				sendError(conn, "invalid end_call payload")
				continue
			}
			finishCall(conn, session, payload)
			return

		default:
			sendError(conn, "unknown message type: "+msg.Type)
		}
	}
}

// finishCall runs the analyze-score-persist flow and replies with the
// result over the socket.
func finishCall(conn *websocket.Conn, session *callSession, payload endCallPayload) {
	session.mu.Lock()
	turns := make([]models.DialogueTurn, len(session.turns))
	copy(turns, session.turns)
	session.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := services.DefaultAttemptService.CompleteCall(
		ctx, session.orgID, session.userID, payload.ScenarioID, turns, payload.Metrics,
	)
	if err != nil {
		log.Printf("live call %s scoring failed: %v", session.id, err)
		sendError(conn, "failed to score call")
		return
	}

	if err := conn.WriteJSON(wsReply{Type: MessageTypeResult, Payload: result}); err != nil {
		log.Printf("live call %s result write failed: %v", session.id, err)
	}
}

type wsReply struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func sendError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(wsReply{Type: MessageTypeError, Payload: gin.H{"error": message}}); err != nil {
		log.Printf("websocket error write failed: %v", err)
	}
}
