package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"outvibe-backend/internal/middleware"
	"outvibe-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// InviteHandler handles invite-link HTTP requests
type InviteHandler struct {
	sessionService *services.SessionService
	accountService *services.AccountService
	store          *services.StateStore
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(sessionService *services.SessionService, accountService *services.AccountService, store *services.StateStore) *InviteHandler {
	return &InviteHandler{
		sessionService: sessionService,
		accountService: accountService,
		store:          store,
	}
}

// CreateInviteRequest represents the request body for creating an invite
type CreateInviteRequest struct {
	FriendName string `json:"friend_name"`
}

// InviteResponse carries an invite link plus the share path a friend
// uses to redeem it
type InviteResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	InviterName string `json:"inviter_name"`
	ExpiresAt   int64  `json:"expires_at"`
	Used        bool   `json:"used"`
	JoinPath    string `json:"join_path"`
}

// CreateInvite handles POST /api/v1/invites
func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FriendName == "" {
		respondError(w, "friend_name is required", http.StatusBadRequest)
		return
	}

	invite, err := h.sessionService.CreateInviteLink(ctx, accountID, req.FriendName)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveUser) {
			respondError(w, err.Error(), http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to create invite")
		respondError(w, "Failed to create invite", http.StatusInternalServerError)
		return
	}

	account, err := h.accountService.GetByID(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to load account for invite")
		respondError(w, "Failed to create invite", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("account_id", accountID).
		Str("invite_id", invite.ID).
		Msg("Invite created")

	respondJSON(w, InviteResponse{
		ID:          invite.ID,
		SessionID:   invite.SessionID,
		InviterName: invite.InviterName,
		ExpiresAt:   invite.ExpiresAt.UnixMilli(),
		Used:        invite.Used,
		JoinPath:    "/join/" + account.Code + "/" + invite.ID,
	}, http.StatusOK)
}

// ListInvites handles GET /api/v1/invites
func (h *InviteHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	respondJSON(w, h.store.Invites(ctx, accountID), http.StatusOK)
}

// ResolveInvite handles GET /api/v1/invites/{inviter_code}/{invite_id}.
// A friend's device calls this before joining to learn whether the
// invite can still be redeemed.
func (h *InviteHandler) ResolveInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inviterCode := chi.URLParam(r, "inviter_code")
	inviteID := chi.URLParam(r, "invite_id")

	inviter, err := h.accountService.GetByCode(ctx, inviterCode)
	if err != nil {
		respondError(w, "invite not found", http.StatusNotFound)
		return
	}

	invite, redeemable := h.sessionService.ResolveInvite(ctx, inviter.ID, inviteID)
	if invite == nil {
		respondError(w, "invite not found", http.StatusNotFound)
		return
	}

	respondJSON(w, map[string]interface{}{
		"inviter_name": invite.InviterName,
		"expires_at":   invite.ExpiresAt.UnixMilli(),
		"used":         invite.Used,
		"redeemable":   redeemable,
	}, http.StatusOK)
}
