package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"outvibe-backend/internal/models"
	"outvibe-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// Persisted blob keys per account
const (
	keyUser      = "user"
	keySessions  = "sessions"
	keyInvites   = "inviteLinks"
	keyIntroSeen = "hasSeenIntro"
)

const (
	// maxStoredSessions caps the session collection on disk and in memory
	maxStoredSessions = 10
	// minStoredSessions is the reduced payload for the storage-full retry
	minStoredSessions = 3
	// maxInlineImageBytes bounds inline data URLs embedded in sessions
	maxInlineImageBytes = 50000
	// fallbackImageURL replaces oversized inline image data before persisting
	fallbackImageURL = "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800&q=80"
)

// ErrNoActiveUser is returned when a profile-dependent operation is
// attempted before the account has completed a profile
var ErrNoActiveUser = errors.New("no active user")

// Blobs is the persistence surface the state store writes through
type Blobs interface {
	Get(ctx context.Context, accountID, key string) ([]byte, error)
	Set(ctx context.Context, accountID, key string, value []byte) error
	Delete(ctx context.Context, accountID string, keys ...string) error
}

// profileState is the in-memory view of one account's persisted state
type profileState struct {
	user             *models.User
	sessions         []models.SwipeSession
	invites          []models.InviteLink
	currentSessionID string
	introSeen        bool
}

// StateStore owns the per-account profile, session, and invite state. It
// loads lazily from the blob store, keeps a bounded in-memory view, and
// absorbs persistence failures: corrupted collections are discarded and
// reset, storage-full conditions degrade through one bounded retry, and
// no failure on this path ever reaches the caller as a crash.
type StateStore struct {
	mu     sync.RWMutex
	blobs  Blobs
	states map[string]*profileState
}

// NewStateStore creates a state store backed by the given blob store
func NewStateStore(blobs Blobs) *StateStore {
	return &StateStore{
		blobs:  blobs,
		states: make(map[string]*profileState),
	}
}

// state returns the loaded state for an account, reading persisted blobs
// on first access. Loading never fails the caller: a corrupted sessions
// or invites collection is deleted and reset to empty, while a corrupted
// profile blob is kept on disk and simply not surfaced.
func (s *StateStore) state(ctx context.Context, accountID string) *profileState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[accountID]; ok {
		return st
	}

	st := &profileState{}

	if data, err := s.blobs.Get(ctx, accountID, keyUser); err == nil {
		var user models.User
		if err := json.Unmarshal(data, &user); err != nil {
			log.Error().Err(err).Str("account_id", accountID).Msg("Failed to parse stored profile")
		} else {
			st.user = &user
		}
	} else if !errors.Is(err, repository.ErrBlobNotFound) {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to load profile")
	}

	if data, err := s.blobs.Get(ctx, accountID, keySessions); err == nil {
		var sessions []models.SwipeSession
		if err := json.Unmarshal(data, &sessions); err != nil {
			log.Error().Err(err).Str("account_id", accountID).Msg("Failed to parse stored sessions, clearing")
			if err := s.blobs.Delete(ctx, accountID, keySessions); err != nil {
				log.Error().Err(err).Str("account_id", accountID).Msg("Failed to clear corrupted sessions")
			}
		} else {
			// Keep only the most recent sessions on load
			if len(sessions) > maxStoredSessions {
				sessions = sessions[len(sessions)-maxStoredSessions:]
			}
			st.sessions = sessions
		}
	}

	if data, err := s.blobs.Get(ctx, accountID, keyInvites); err == nil {
		var invites []models.InviteLink
		if err := json.Unmarshal(data, &invites); err != nil {
			log.Error().Err(err).Str("account_id", accountID).Msg("Failed to parse stored invites, clearing")
			if err := s.blobs.Delete(ctx, accountID, keyInvites); err != nil {
				log.Error().Err(err).Str("account_id", accountID).Msg("Failed to clear corrupted invites")
			}
		} else {
			st.invites = invites
		}
	}

	if data, err := s.blobs.Get(ctx, accountID, keyIntroSeen); err == nil {
		st.introSeen = string(data) == "true"
	}

	s.states[accountID] = st
	return st
}

// User returns the account's profile, or nil if none has been created
func (s *StateStore) User(ctx context.Context, accountID string) *models.User {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return st.user
}

// SaveUser persists the profile and makes it the account's active user
func (s *StateStore) SaveUser(ctx context.Context, accountID string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, accountID, keyUser, data); err != nil {
		return err
	}
	st := s.state(ctx, accountID)
	s.mu.Lock()
	st.user = user
	s.mu.Unlock()
	return nil
}

// UserUpdate carries a partial profile update. Nil fields are untouched.
type UserUpdate struct {
	Name            *string                 `json:"name,omitempty"`
	Age             *int                    `json:"age,omitempty"`
	Location        *string                 `json:"location,omitempty"`
	Gender          *string                 `json:"gender,omitempty"`
	Interests       []string                `json:"interests,omitempty"`
	AvatarURL       *string                 `json:"avatar_url,omitempty"`
	PersonalityType *models.PersonalityType `json:"personality_type,omitempty"`
}

// UpdateUser merges a partial update into the active profile. Identity
// is immutable once created.
func (s *StateStore) UpdateUser(ctx context.Context, accountID string, update UserUpdate) (*models.User, error) {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	current := st.user
	s.mu.RUnlock()
	if current == nil {
		return nil, ErrNoActiveUser
	}

	updated := *current
	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.Age != nil {
		updated.Age = *update.Age
	}
	if update.Location != nil {
		updated.Location = *update.Location
	}
	if update.Gender != nil {
		updated.Gender = *update.Gender
	}
	if update.Interests != nil {
		updated.Interests = update.Interests
	}
	if update.AvatarURL != nil {
		updated.AvatarURL = *update.AvatarURL
	}
	if update.PersonalityType != nil {
		updated.PersonalityType = update.PersonalityType
	}

	if err := s.SaveUser(ctx, accountID, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Sessions returns the account's session list, most recent last
func (s *StateStore) Sessions(ctx context.Context, accountID string) []models.SwipeSession {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SwipeSession, len(st.sessions))
	copy(out, st.sessions)
	return out
}

// Session returns one session by ID, or nil if absent
func (s *StateStore) Session(ctx context.Context, accountID, sessionID string) *models.SwipeSession {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range st.sessions {
		if st.sessions[i].ID == sessionID {
			session := st.sessions[i]
			return &session
		}
	}
	return nil
}

// CurrentSession returns the account's active session view, if any
func (s *StateStore) CurrentSession(ctx context.Context, accountID string) *models.SwipeSession {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	id := st.currentSessionID
	s.mu.RUnlock()
	if id == "" {
		return nil
	}
	return s.Session(ctx, accountID, id)
}

// AppendSession adds a session to the account's list, marks it current,
// and persists the bounded collection
func (s *StateStore) AppendSession(ctx context.Context, accountID string, session models.SwipeSession) {
	st := s.state(ctx, accountID)
	s.mu.Lock()
	sessions := append(st.sessions, session)
	s.mu.Unlock()

	s.saveSessions(ctx, accountID, st, sessions)

	s.mu.Lock()
	st.currentSessionID = session.ID
	s.mu.Unlock()
}

// UpdateSession merges partial fields into the matching session record.
// A missing session ID is a no-op. The active-session view follows the
// stored record, so it refreshes automatically.
func (s *StateStore) UpdateSession(ctx context.Context, accountID, sessionID string, update models.SessionUpdate) {
	st := s.state(ctx, accountID)

	s.mu.Lock()
	sessions := make([]models.SwipeSession, len(st.sessions))
	copy(sessions, st.sessions)
	found := false
	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		found = true
		if update.Swipes != nil {
			sessions[i].Swipes = update.Swipes
		}
		if update.Status != nil {
			sessions[i].Status = *update.Status
		}
		if update.Itinerary != nil {
			sessions[i].Itinerary = *update.Itinerary
		}
		if update.PersonalityAssessments != nil {
			sessions[i].PersonalityAssessments = update.PersonalityAssessments
		}
		break
	}
	s.mu.Unlock()

	if !found {
		return
	}
	s.saveSessions(ctx, accountID, st, sessions)
}

// saveSessions persists the session collection: bounded to the most
// recent entries, oversized inline images replaced, and a storage-full
// write retried once with a reduced payload before degrading to
// memory-only state.
func (s *StateStore) saveSessions(ctx context.Context, accountID string, st *profileState, sessions []models.SwipeSession) {
	if len(sessions) > maxStoredSessions {
		sessions = sessions[len(sessions)-maxStoredSessions:]
	}
	sessions = sanitizeSessions(sessions)

	s.mu.Lock()
	st.sessions = sessions
	s.mu.Unlock()

	data, err := json.Marshal(sessions)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to marshal sessions")
		return
	}

	err = s.blobs.Set(ctx, accountID, keySessions, data)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrStorageFull) {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to save sessions")
		return
	}

	// Storage full: clear the collection and retry once with the most
	// recent few sessions. A second failure keeps state in memory only.
	log.Warn().Str("account_id", accountID).Msg("Storage full, retrying with reduced session payload")
	if err := s.blobs.Delete(ctx, accountID, keySessions); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to clear sessions for retry")
	}

	minimal := sessions
	if len(minimal) > minStoredSessions {
		minimal = minimal[len(minimal)-minStoredSessions:]
	}
	data, err = json.Marshal(minimal)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to marshal minimal sessions")
		return
	}
	if err := s.blobs.Set(ctx, accountID, keySessions, data); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to save even minimal sessions")
		return
	}

	s.mu.Lock()
	st.sessions = minimal
	s.mu.Unlock()
}

// sanitizeSessions replaces oversized inline image data with the fixed
// fallback reference so stored sessions stay bounded
func sanitizeSessions(sessions []models.SwipeSession) []models.SwipeSession {
	out := make([]models.SwipeSession, len(sessions))
	for i, session := range sessions {
		images := make([]models.GeneratedImage, len(session.Images))
		for j, img := range session.Images {
			if strings.HasPrefix(img.URL, "data:") && len(img.URL) > maxInlineImageBytes {
				img.URL = fallbackImageURL
			}
			images[j] = img
		}
		session.Images = images
		out[i] = session
	}
	return out
}

// Invites returns the account's invite links
func (s *StateStore) Invites(ctx context.Context, accountID string) []models.InviteLink {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InviteLink, len(st.invites))
	copy(out, st.invites)
	return out
}

// Invite returns one invite by ID, or nil if absent
func (s *StateStore) Invite(ctx context.Context, accountID, inviteID string) *models.InviteLink {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range st.invites {
		if st.invites[i].ID == inviteID {
			invite := st.invites[i]
			return &invite
		}
	}
	return nil
}

// AppendInvite adds an invite link and persists the invite list
func (s *StateStore) AppendInvite(ctx context.Context, accountID string, invite models.InviteLink) error {
	st := s.state(ctx, accountID)
	s.mu.Lock()
	invites := append(st.invites, invite)
	s.mu.Unlock()
	return s.saveInvites(ctx, accountID, st, invites)
}

// MarkInviteUsed flags an invite as consumed. Marking an already-used or
// nonexistent invite is a no-op, not an error.
func (s *StateStore) MarkInviteUsed(ctx context.Context, accountID, inviteID string) {
	st := s.state(ctx, accountID)

	s.mu.Lock()
	invites := make([]models.InviteLink, len(st.invites))
	copy(invites, st.invites)
	changed := false
	for i := range invites {
		if invites[i].ID == inviteID && !invites[i].Used {
			invites[i].Used = true
			changed = true
		}
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	if err := s.saveInvites(ctx, accountID, st, invites); err != nil {
		log.Error().Err(err).Str("account_id", accountID).Str("invite_id", inviteID).Msg("Failed to persist used invite")
	}
}

func (s *StateStore) saveInvites(ctx context.Context, accountID string, st *profileState, invites []models.InviteLink) error {
	data, err := json.Marshal(invites)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, accountID, keyInvites, data); err != nil {
		return err
	}
	s.mu.Lock()
	st.invites = invites
	s.mu.Unlock()
	return nil
}

// IntroSeen reports whether the onboarding introduction has been shown
func (s *StateStore) IntroSeen(ctx context.Context, accountID string) bool {
	st := s.state(ctx, accountID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return st.introSeen
}

// MarkIntroSeen persists the onboarding-shown flag
func (s *StateStore) MarkIntroSeen(ctx context.Context, accountID string) error {
	if err := s.blobs.Set(ctx, accountID, keyIntroSeen, []byte("true")); err != nil {
		return err
	}
	st := s.state(ctx, accountID)
	s.mu.Lock()
	st.introSeen = true
	s.mu.Unlock()
	return nil
}

// Logout clears all persisted state for the account and resets the
// in-memory view to empty
func (s *StateStore) Logout(ctx context.Context, accountID string) error {
	if err := s.blobs.Delete(ctx, accountID, keyUser, keySessions, keyInvites, keyIntroSeen); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.states, accountID)
	s.mu.Unlock()
	return nil
}
