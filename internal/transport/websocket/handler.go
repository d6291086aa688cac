package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

type ClientMessage struct {
	Type   string `json:"type"` // move | state
	Column int    `json:"column"`
}

type ServerMessage struct {
	Type    string      `json:"type"` // state | error
	State   *game.State `json:"state,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Handler lets a presentation client play one session over a socket
type Handler struct {
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

func NewHandler(sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				log.Printf("[WS] Rejected origin %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades /ws?game=<id> for an existing session
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	state, err := h.SessionManager.GetState(gameID)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(r.Context(), conn, gameID, state)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn, gameID string, initial game.State) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger; WriteControl may run alongside WriteJSON
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	if err := send(conn, ServerMessage{Type: "state", State: &initial}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error for game %s: %v", gameID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if send(conn, ServerMessage{Type: "error", Message: "Invalid JSON"}) != nil {
				return
			}
			continue
		}

		var reply ServerMessage
		switch msg.Type {
		case "move":
			state, err := h.SessionManager.PlayHumanMove(ctx, gameID, msg.Column)
			if err != nil {
				reply = ServerMessage{Type: "error", Message: err.Error()}
			} else {
				reply = ServerMessage{Type: "state", State: &state}
			}
		case "state":
			state, err := h.SessionManager.GetState(gameID)
			if err != nil {
				reply = ServerMessage{Type: "error", Message: err.Error()}
			} else {
				reply = ServerMessage{Type: "state", State: &state}
			}
		default:
			reply = ServerMessage{Type: "error", Message: "Unknown message type"}
		}

		if err := send(conn, reply); err != nil {
			log.Printf("[WS] Write error for game %s: %v", gameID, err)
			return
		}
	}
}

func send(conn *websocket.Conn, msg ServerMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
