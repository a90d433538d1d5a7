package handlers

import (
	"encoding/json"
	"net/http"

	"outvibe-backend/internal/middleware"
	"outvibe-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AccountHandler handles device-account HTTP requests
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, err := h.accountService.CreateAccount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create account")
		respondError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("account_id", account.ID).
		Str("code", account.Code).
		Msg("Account created")

	respondJSON(w, account, http.StatusOK)
}

// PushTokenRequest represents the request body for registering a push token
type PushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// RegisterPushToken handles PUT /api/v1/accounts/me/push-token
func (h *AccountHandler) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	var req PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.accountService.RegisterPushToken(ctx, accountID, req.PushToken); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to register push token")
		respondError(w, "Failed to register push token", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
