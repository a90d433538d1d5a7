package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"outvibe-backend/internal/models"
	"outvibe-backend/internal/vibes"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// inviteTTL is how long an invite link stays redeemable
const inviteTTL = 24 * time.Hour

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotSessionMember = errors.New("user is not a member of this session")
	ErrSessionNotActive = errors.New("session is not active")
	ErrInviteExpired    = errors.New("invite link has expired")
	ErrFriendNotFound   = errors.New("friend not found")
)

// demoFriendPrefix marks catalog friends that have no device account
const demoFriendPrefix = "demo_friend_"

// demoFriends are ready-made partners for the single-device demo flow
var demoFriends = []models.User{
	{
		ID: "demo_friend_1", Name: "Priya Sharma", Age: 24, Location: "Mumbai", Gender: "Female",
		Interests: []string{"Food & Dining", "Shopping", "Art & Culture", "Music"}, ProfileComplete: true,
	},
	{
		ID: "demo_friend_2", Name: "Arjun Patel", Age: 28, Location: "Bangalore", Gender: "Male",
		Interests: []string{"Adventure Sports", "Nature", "Technology", "Fitness"}, ProfileComplete: true,
	},
	{
		ID: "demo_friend_3", Name: "Sneha Reddy", Age: 26, Location: "Hyderabad", Gender: "Female",
		Interests: []string{"Wellness", "Nature", "Food & Dining", "Art & Culture"}, ProfileComplete: true,
	},
	{
		ID: "demo_friend_4", Name: "Rohit Kumar", Age: 30, Location: "Delhi", Gender: "Male",
		Interests: []string{"Nightlife", "Entertainment", "Food & Dining", "Music"}, ProfileComplete: true,
	},
	{
		ID: "demo_friend_5", Name: "Kavya Nair", Age: 22, Location: "Kochi", Gender: "Female",
		Interests: []string{"Art & Culture", "Music", "Shopping", "Wellness"}, ProfileComplete: true,
	},
}

// PlanGenerator produces a joint itinerary from two personality
// assessments and their preference lists
type PlanGenerator interface {
	BuildPlan(ctx context.Context, a, b *models.PersonalityType, location string, prefsA, prefsB []string) (string, error)
}

// SessionService handles invite and swipe-session lifecycle
type SessionService struct {
	store     *StateStore
	generator PlanGenerator
}

// NewSessionService creates a new session service
func NewSessionService(store *StateStore, generator PlanGenerator) *SessionService {
	return &SessionService{
		store:     store,
		generator: generator,
	}
}

// DemoFriends returns the demo partner catalog
func (s *SessionService) DemoFriends() []models.User {
	return demoFriends
}

// DemoFriend returns a demo partner by ID, or nil
func (s *SessionService) DemoFriend(id string) *models.User {
	for i := range demoFriends {
		if demoFriends[i].ID == id {
			friend := demoFriends[i]
			return &friend
		}
	}
	return nil
}

// IsDemoFriend reports whether the user ID belongs to the demo catalog
func IsDemoFriend(userID string) bool {
	return strings.HasPrefix(userID, demoFriendPrefix)
}

// CreateProfile completes the account's profile. The profile takes the
// account's identity so sessions pair account IDs directly.
func (s *SessionService) CreateProfile(ctx context.Context, accountID, name string, age int, location, gender string, interests []string) (*models.User, error) {
	user := &models.User{
		ID:              accountID,
		Name:            name,
		Age:             age,
		Location:        location,
		Gender:          gender,
		Interests:       interests,
		ProfileComplete: true,
	}
	if err := s.store.SaveUser(ctx, accountID, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return user, nil
}

// CreateInviteLink creates a single-use invite bound to a fresh session
// identity, expiring after 24 hours. Requires an active profile.
func (s *SessionService) CreateInviteLink(ctx context.Context, accountID, friendName string) (*models.InviteLink, error) {
	user := s.store.User(ctx, accountID)
	if user == nil {
		return nil, ErrNoActiveUser
	}

	invite := models.InviteLink{
		ID:          uuid.New().String(),
		SessionID:   uuid.New().String(),
		InviterID:   user.ID,
		InviterName: user.Name,
		ExpiresAt:   time.Now().Add(inviteTTL),
		Used:        false,
	}
	if err := s.store.AppendInvite(ctx, accountID, invite); err != nil {
		return nil, fmt.Errorf("failed to save invite: %w", err)
	}

	log.Info().
		Str("invite_id", invite.ID).
		Str("inviter_id", user.ID).
		Str("friend_name", friendName).
		Msg("Invite link created")

	return &invite, nil
}

// ResolveInvite looks up an invite in the inviter's list and reports
// whether it can still be redeemed
func (s *SessionService) ResolveInvite(ctx context.Context, inviterAccountID, inviteID string) (*models.InviteLink, bool) {
	invite := s.store.Invite(ctx, inviterAccountID, inviteID)
	if invite == nil {
		return nil, false
	}
	return invite, !invite.Used && !invite.Expired(time.Now())
}

// CreateSession starts a swipe session between the account's active user
// and a friend. Both decks are generated concurrently, merged, and
// deduplicated by vibe category. When an invite is supplied, an expired
// invite rejects the creation; marking an already-used or nonexistent
// invite is a no-op. The session is appended to both participants'
// bounded session lists.
func (s *SessionService) CreateSession(ctx context.Context, accountID string, friend *models.User, inviteOwnerID, inviteID string) (*models.SwipeSession, error) {
	user := s.store.User(ctx, accountID)
	if user == nil {
		return nil, ErrNoActiveUser
	}

	if inviteID != "" {
		if invite := s.store.Invite(ctx, inviteOwnerID, inviteID); invite != nil && invite.Expired(time.Now()) {
			return nil, ErrInviteExpired
		}
	}

	session := models.SwipeSession{
		ID:        uuid.New().String(),
		Users:     [2]string{user.ID, friend.ID},
		UserNames: [2]string{user.Name, friend.Name},
		Images:    GeneratePairDecks(user, friend),
		Swipes:    make(map[string][]models.SwipeResult),
		Status:    models.SessionActive,
		CreatedAt: time.Now(),
	}

	s.store.AppendSession(ctx, accountID, session)
	if !IsDemoFriend(friend.ID) && friend.ID != accountID {
		s.store.AppendSession(ctx, friend.ID, session)
	}

	if inviteID != "" {
		s.store.MarkInviteUsed(ctx, inviteOwnerID, inviteID)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("user_id", user.ID).
		Str("friend_id", friend.ID).
		Int("deck_size", len(session.Images)).
		Msg("Swipe session created")

	return &session, nil
}

// CreateSessionFromInvite starts a session between the caller and the
// inviter whose invite is being redeemed. The inviter must have an
// active profile of their own.
func (s *SessionService) CreateSessionFromInvite(ctx context.Context, accountID, inviterAccountID, inviteID string) (*models.SwipeSession, error) {
	inviter := s.store.User(ctx, inviterAccountID)
	if inviter == nil {
		return nil, ErrFriendNotFound
	}
	return s.CreateSession(ctx, accountID, inviter, inviterAccountID, inviteID)
}

// RecordSwipe appends one swipe decision to the caller's history within
// the session and propagates the update to both participants' stored
// copies. Swipe history is append-only.
func (s *SessionService) RecordSwipe(ctx context.Context, accountID, sessionID string, swipe models.SwipeResult) (*models.SwipeSession, error) {
	session := s.store.Session(ctx, accountID, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.HasUser(accountID) {
		return nil, ErrNotSessionMember
	}
	if session.Status != models.SessionActive {
		return nil, ErrSessionNotActive
	}

	swipes := make(map[string][]models.SwipeResult, len(session.Swipes))
	for k, v := range session.Swipes {
		swipes[k] = v
	}
	swipes[accountID] = append(swipes[accountID], swipe)

	update := models.SessionUpdate{Swipes: swipes}
	s.applyToParticipants(ctx, session, update)

	return s.store.Session(ctx, accountID, sessionID), nil
}

// CompleteSession classifies both users, generates the joint itinerary,
// and transitions the session to completed. The transition happens
// exactly once: completing an already-completed session returns it
// unchanged. A generation failure leaves the session active.
func (s *SessionService) CompleteSession(ctx context.Context, accountID, sessionID string) (*models.SwipeSession, error) {
	user := s.store.User(ctx, accountID)
	if user == nil {
		return nil, ErrNoActiveUser
	}

	session := s.store.Session(ctx, accountID, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.HasUser(accountID) {
		return nil, ErrNotSessionMember
	}
	if session.Status == models.SessionCompleted {
		return session, nil
	}

	userSwipes := session.Swipes[accountID]
	userPersonality := vibes.Classify(userSwipes)

	friendID := session.PartnerOf(accountID)
	friendSwipes := session.Swipes[friendID]
	if len(friendSwipes) == 0 {
		friendSwipes = synthesizeSwipes(session.Images)
	}
	friendPersonality := vibes.Classify(friendSwipes)

	plan, err := s.generator.BuildPlan(ctx,
		userPersonality, friendPersonality,
		user.Location,
		vibes.LikedVibes(userSwipes), vibes.LikedVibes(friendSwipes),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	completed := models.SessionCompleted
	update := models.SessionUpdate{
		Status:    &completed,
		Itinerary: &plan,
		PersonalityAssessments: map[string]*models.PersonalityType{
			accountID: userPersonality,
			friendID:  friendPersonality,
		},
	}
	s.applyToParticipants(ctx, session, update)

	log.Info().
		Str("session_id", sessionID).
		Str("user_personality", userPersonality.Name).
		Str("friend_personality", friendPersonality.Name).
		Msg("Session completed")

	return s.store.Session(ctx, accountID, sessionID), nil
}

// applyToParticipants merges a session update into every participant's
// stored copy; demo friends have no stored copy, so theirs is skipped
func (s *SessionService) applyToParticipants(ctx context.Context, session *models.SwipeSession, update models.SessionUpdate) {
	for _, participant := range session.Users {
		if IsDemoFriend(participant) {
			continue
		}
		s.store.UpdateSession(ctx, participant, session.ID, update)
	}
}

// synthesizeSwipes fabricates a plausible swipe history for a partner
// who never swiped, as the demo flow requires
func synthesizeSwipes(images []models.GeneratedImage) []models.SwipeResult {
	if len(images) == 0 {
		return nil
	}
	swipes := make([]models.SwipeResult, 0, len(images))
	for range images {
		direction := models.SwipeLeft
		if rand.Float64() > 0.4 {
			direction = models.SwipeRight
		}
		pick := images[rand.Intn(len(images))]
		swipes = append(swipes, models.SwipeResult{
			ImageID:   pick.ID,
			Direction: direction,
			Timestamp: time.Now(),
			VibeType:  pick.VibeType,
		})
	}
	return swipes
}
