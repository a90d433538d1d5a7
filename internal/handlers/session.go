package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"outvibe-backend/internal/middleware"
	"outvibe-backend/internal/models"
	"outvibe-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles swipe-session HTTP requests
type SessionHandler struct {
	sessionService *services.SessionService
	accountService *services.AccountService
	store          *services.StateStore
	wsHub          *services.WSHub
	pushService    *services.PushService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessionService *services.SessionService,
	accountService *services.AccountService,
	store *services.StateStore,
	wsHub *services.WSHub,
	pushService *services.PushService,
) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		accountService: accountService,
		store:          store,
		wsHub:          wsHub,
		pushService:    pushService,
	}
}

// DemoFriends handles GET /api/v1/demo-friends
func (h *SessionHandler) DemoFriends(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.sessionService.DemoFriends(), http.StatusOK)
}

// CreateSessionRequest represents the request body for creating a session.
// Either a demo friend ID or an inviter code plus invite ID is supplied.
type CreateSessionRequest struct {
	FriendID    string `json:"friend_id,omitempty"`
	InviterCode string `json:"inviter_code,omitempty"`
	InviteID    string `json:"invite_id,omitempty"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var session *models.SwipeSession
	var err error
	var inviterAccountID string

	switch {
	case req.FriendID != "":
		friend := h.sessionService.DemoFriend(req.FriendID)
		if friend == nil {
			respondError(w, "friend not found", http.StatusNotFound)
			return
		}
		session, err = h.sessionService.CreateSession(ctx, accountID, friend, "", "")

	case req.InviterCode != "" && req.InviteID != "":
		inviter, lookupErr := h.accountService.GetByCode(ctx, req.InviterCode)
		if lookupErr != nil {
			respondError(w, "inviter not found", http.StatusNotFound)
			return
		}
		inviterAccountID = inviter.ID
		session, err = h.sessionService.CreateSessionFromInvite(ctx, accountID, inviter.ID, req.InviteID)

	default:
		respondError(w, "friend_id or inviter_code and invite_id are required", http.StatusBadRequest)
		return
	}

	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to create session")

		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrNoActiveUser):
			statusCode = http.StatusConflict
		case errors.Is(err, services.ErrInviteExpired):
			statusCode = http.StatusGone
		case errors.Is(err, services.ErrFriendNotFound):
			statusCode = http.StatusNotFound
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	// Notify the inviter that a friend joined
	if inviterAccountID != "" {
		if h.wsHub.IsOnline(inviterAccountID) {
			if err := h.wsHub.NotifySessionCreated(inviterAccountID, session); err != nil {
				log.Error().Err(err).Str("account_id", inviterAccountID).Msg("Failed to notify inviter about session creation")
			}
		}
		if inviter, err := h.accountService.GetByID(ctx, inviterAccountID); err == nil {
			h.pushService.NotifyInviteAccepted(ctx, inviter.PushToken, session.UserNames[0])
		}
	}

	respondJSON(w, session, http.StatusOK)
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	respondJSON(w, h.store.Sessions(ctx, accountID), http.StatusOK)
}

// GetSession handles GET /api/v1/sessions/{session_id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)
	sessionID := chi.URLParam(r, "session_id")

	session := h.store.Session(ctx, accountID, sessionID)
	if session == nil {
		respondError(w, "session not found", http.StatusNotFound)
		return
	}

	respondJSON(w, session, http.StatusOK)
}

// SwipeRequest represents the request body for recording one swipe
type SwipeRequest struct {
	ImageID   string                `json:"image_id"`
	Direction models.SwipeDirection `json:"direction"`
	VibeType  string                `json:"vibe_type"`
}

// RecordSwipe handles POST /api/v1/sessions/{session_id}/swipes
func (h *SessionHandler) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)
	sessionID := chi.URLParam(r, "session_id")

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ImageID == "" {
		respondError(w, "image_id is required", http.StatusBadRequest)
		return
	}
	if req.Direction != models.SwipeLeft && req.Direction != models.SwipeRight {
		respondError(w, "direction must be left or right", http.StatusBadRequest)
		return
	}

	swipe := models.SwipeResult{
		ImageID:   req.ImageID,
		Direction: req.Direction,
		Timestamp: time.Now(),
		VibeType:  req.VibeType,
	}

	session, err := h.sessionService.RecordSwipe(ctx, accountID, sessionID, swipe)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, services.ErrNotSessionMember):
			statusCode = http.StatusForbidden
		case errors.Is(err, services.ErrSessionNotActive):
			statusCode = http.StatusConflict
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	h.wsHub.NotifySwipeRecorded(session.PartnerOf(accountID), sessionID, len(session.Swipes[accountID]), len(session.Images))

	respondJSON(w, session, http.StatusOK)
}

// CompleteSession handles POST /api/v1/sessions/{session_id}/complete
func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)
	sessionID := chi.URLParam(r, "session_id")

	session, err := h.sessionService.CompleteSession(ctx, accountID, sessionID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Str("session_id", sessionID).Msg("Failed to complete session")

		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrNoActiveUser):
			statusCode = http.StatusConflict
		case errors.Is(err, services.ErrSessionNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, services.ErrNotSessionMember):
			statusCode = http.StatusForbidden
		default:
			statusCode = http.StatusBadGateway
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	partnerID := session.PartnerOf(accountID)
	h.wsHub.NotifySessionCompleted(partnerID, sessionID)
	if !services.IsDemoFriend(partnerID) {
		if partner, err := h.accountService.GetByID(ctx, partnerID); err == nil {
			h.pushService.NotifySessionCompleted(ctx, partner.PushToken)
		}
	}

	respondJSON(w, session, http.StatusOK)
}
