package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"outvibe-backend/internal/middleware"
	"outvibe-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	store          *services.StateStore
	sessionService *services.SessionService
	mediaService   *services.MediaService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(store *services.StateStore, sessionService *services.SessionService, mediaService *services.MediaService) *ProfileHandler {
	return &ProfileHandler{
		store:          store,
		sessionService: sessionService,
		mediaService:   mediaService,
	}
}

// CreateProfileRequest represents the request body for profile completion
type CreateProfileRequest struct {
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Location  string   `json:"location"`
	Gender    string   `json:"gender"`
	Interests []string `json:"interests"`
}

// CreateProfile handles POST /api/v1/profile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		respondError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Age <= 0 {
		respondError(w, "age is required", http.StatusBadRequest)
		return
	}
	if req.Location == "" {
		respondError(w, "location is required", http.StatusBadRequest)
		return
	}
	if req.Gender == "" {
		respondError(w, "gender is required", http.StatusBadRequest)
		return
	}

	user, err := h.sessionService.CreateProfile(ctx, accountID, req.Name, req.Age, req.Location, req.Gender, req.Interests)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to create profile")
		respondError(w, "Failed to create profile", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("account_id", accountID).
		Str("name", user.Name).
		Msg("Profile created")

	respondJSON(w, user, http.StatusOK)
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	user := h.store.User(ctx, accountID)
	if user == nil {
		respondError(w, "profile not found", http.StatusNotFound)
		return
	}

	respondJSON(w, user, http.StatusOK)
}

// UpdateProfile handles PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	var update services.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.store.UpdateUser(ctx, accountID, update)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveUser) {
			respondError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to update profile")
		respondError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, user, http.StatusOK)
}

// AvatarUploadRequest represents the request body for an avatar upload
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// UploadAvatar handles POST /api/v1/profile/avatar
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.mediaService.PresignAvatarUpload(ctx, accountID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to generate avatar upload URL")
		respondError(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}

	// Point the profile at the avatar's eventual location
	if _, err := h.store.UpdateUser(ctx, accountID, services.UserUpdate{AvatarURL: &response.AvatarURL}); err != nil && !errors.Is(err, services.ErrNoActiveUser) {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to store avatar URL")
	}

	respondJSON(w, response, http.StatusOK)
}

// IntroStatus handles GET /api/v1/profile/intro
func (h *ProfileHandler) IntroStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	respondJSON(w, map[string]bool{"seen": h.store.IntroSeen(ctx, accountID)}, http.StatusOK)
}

// MarkIntroSeen handles PUT /api/v1/profile/intro
func (h *ProfileHandler) MarkIntroSeen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	if err := h.store.MarkIntroSeen(ctx, accountID); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to mark intro seen")
		respondError(w, "Failed to save intro flag", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Logout handles POST /api/v1/logout
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := middleware.GetAccountID(ctx)

	if err := h.store.Logout(ctx, accountID); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to logout")
		respondError(w, "Failed to logout", http.StatusInternalServerError)
		return
	}

	log.Info().Str("account_id", accountID).Msg("Account state cleared")
	w.WriteHeader(http.StatusNoContent)
}
