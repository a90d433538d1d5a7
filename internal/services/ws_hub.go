package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"outvibe-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Online    *bool       `json:"online,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// WSHub manages WebSocket connections
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for an account
func (h *WSHub) Register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existingConn, exists := h.connections[accountID]; exists {
		existingConn.Close()
	}

	h.connections[accountID] = conn

	log.Info().Str("account_id", accountID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for an account
func (h *WSHub) Unregister(accountID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[accountID]; exists {
		conn.Close()
		delete(h.connections, accountID)
		log.Info().Str("account_id", accountID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific account
func (h *WSHub) SendToUser(accountID string, message WSMessage) error {
	h.mu.RLock()
	conn, exists := h.connections[accountID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("account %s is not connected", accountID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(accountID)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// IsOnline checks if an account is online
func (h *WSHub) IsOnline(accountID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[accountID]
	return exists
}

// NotifyPartnerStatus notifies the partner about online/offline status
func (h *WSHub) NotifyPartnerStatus(partnerID string, online bool) {
	if partnerID == "" || IsDemoFriend(partnerID) {
		return
	}

	message := WSMessage{
		Type:   "partner_status",
		Online: &online,
	}

	if err := h.SendToUser(partnerID, message); err != nil {
		log.Debug().
			Err(err).
			Str("account_id", partnerID).
			Msg("Failed to notify partner status")
	}
}

// NotifySessionCreated notifies a participant that a session was created
func (h *WSHub) NotifySessionCreated(accountID string, session *models.SwipeSession) error {
	message := WSMessage{
		Type:      "session_created",
		SessionID: session.ID,
		Data: map[string]interface{}{
			"users":      session.Users,
			"user_names": session.UserNames,
			"deck_size":  len(session.Images),
			"created_at": session.CreatedAt,
		},
	}
	return h.SendToUser(accountID, message)
}

// NotifySwipeRecorded notifies the partner about swipe progress
func (h *WSHub) NotifySwipeRecorded(partnerID, sessionID string, swiped, total int) {
	if IsDemoFriend(partnerID) {
		return
	}

	message := WSMessage{
		Type:      "swipe_recorded",
		SessionID: sessionID,
		Data: map[string]interface{}{
			"swiped": swiped,
			"total":  total,
		},
	}

	if err := h.SendToUser(partnerID, message); err != nil {
		log.Debug().
			Err(err).
			Str("account_id", partnerID).
			Msg("Failed to notify swipe progress")
	}
}

// NotifySessionCompleted notifies a participant that the itinerary is ready
func (h *WSHub) NotifySessionCompleted(accountID, sessionID string) {
	if IsDemoFriend(accountID) {
		return
	}

	message := WSMessage{
		Type:      "session_completed",
		SessionID: sessionID,
	}

	if err := h.SendToUser(accountID, message); err != nil {
		log.Debug().
			Err(err).
			Str("account_id", accountID).
			Msg("Failed to notify session completion")
	}
}
