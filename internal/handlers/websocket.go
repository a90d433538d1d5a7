package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"outvibe-backend/internal/middleware"
	"outvibe-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *services.WSHub
	accountService *services.AccountService
	store          *services.StateStore
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, accountService *services.AccountService, store *services.StateStore) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		accountService: accountService,
		store:          store,
	}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	accountID, err := middleware.ValidateWebSocketToken(token, h.accountService)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(accountID, conn)
	defer h.unregisterAndNotify(accountID)

	// Tell the partner of the current session, if any, that we're online
	ctx := r.Context()
	if session := h.store.CurrentSession(ctx, accountID); session != nil {
		h.hub.NotifyPartnerStatus(session.PartnerOf(accountID), true)
	}

	log.Info().Str("account_id", accountID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("account_id", accountID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("account_id", accountID).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "ping":
			if err := h.hub.SendToUser(accountID, services.WSMessage{Type: "pong"}); err != nil {
				log.Debug().Err(err).Str("account_id", accountID).Msg("Failed to send pong")
			}
		default:
			h.sendError(conn, "Unknown message type")
		}
	}
}

// unregisterAndNotify drops the connection and tells the session partner
// we went offline. The request context is gone by the time this runs.
func (h *WebSocketHandler) unregisterAndNotify(accountID string) {
	h.hub.Unregister(accountID)
	if session := h.store.CurrentSession(context.Background(), accountID); session != nil {
		h.hub.NotifyPartnerStatus(session.PartnerOf(accountID), false)
	}
}

// sendError sends an error message to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	data, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, data)
}
