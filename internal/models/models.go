package models

import "time"

// Account represents an anonymous device account in the system
type Account struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Token     string    `json:"token"`
	PushToken *string   `json:"push_token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a completed outing profile owned by an account
type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Age             int              `json:"age"`
	Location        string           `json:"location"`
	Gender          string           `json:"gender"`
	Interests       []string         `json:"interests"`
	AvatarURL       string           `json:"avatar_url,omitempty"`
	PersonalityType *PersonalityType `json:"personality_type,omitempty"`
	ProfileComplete bool             `json:"profile_complete"`
}

// SessionStatus is the lifecycle state of a swipe session
type SessionStatus string

const (
	// SessionWaiting is reserved for a future invite-acceptance handshake
	// and is never produced by current flows.
	SessionWaiting   SessionStatus = "waiting"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// SwipeSession pairs exactly two users swiping on a shared image deck.
// Users and UserNames are index-aligned pairs.
type SwipeSession struct {
	ID                     string                      `json:"id"`
	Users                  [2]string                   `json:"users"`
	UserNames              [2]string                   `json:"user_names"`
	Images                 []GeneratedImage            `json:"images"`
	Swipes                 map[string][]SwipeResult    `json:"swipes"`
	Status                 SessionStatus               `json:"status"`
	Itinerary              string                      `json:"itinerary,omitempty"`
	PersonalityAssessments map[string]*PersonalityType `json:"personality_assessments,omitempty"`
	CreatedAt              time.Time                   `json:"created_at"`
}

// PartnerOf returns the other user in the session pair
func (s *SwipeSession) PartnerOf(userID string) string {
	if s.Users[0] == userID {
		return s.Users[1]
	}
	return s.Users[0]
}

// HasUser checks if a user is a member of the session
func (s *SwipeSession) HasUser(userID string) bool {
	return s.Users[0] == userID || s.Users[1] == userID
}

// SessionUpdate carries a partial update for a swipe session.
// Nil fields are left untouched by the merge.
type SessionUpdate struct {
	Swipes                 map[string][]SwipeResult    `json:"swipes,omitempty"`
	Status                 *SessionStatus              `json:"status,omitempty"`
	Itinerary              *string                     `json:"itinerary,omitempty"`
	PersonalityAssessments map[string]*PersonalityType `json:"personality_assessments,omitempty"`
}

// GeneratedImage represents one swipeable activity card
type GeneratedImage struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	VibeType    string   `json:"vibe_type"`
	Description string   `json:"description"`
	UserID      string   `json:"user_id"`
	Keywords    []string `json:"keywords"`
}

// SwipeDirection is a binary accept/reject decision
type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

// SwipeResult represents one user's decision on one image
type SwipeResult struct {
	ImageID   string         `json:"image_id"`
	Direction SwipeDirection `json:"direction"`
	Timestamp time.Time      `json:"timestamp"`
	VibeType  string         `json:"vibe_type"`
}

// VibeType is a named class of activity with age applicability
type VibeType struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AgeGroups   []string `json:"age_groups"`
	Keywords    []string `json:"keywords"`
	Places      []string `json:"places"`
}

// Preference axis values for personality archetypes
const (
	SocialIntrovert = "introvert"
	SocialExtrovert = "extrovert"
	SocialAmbivert  = "ambivert"

	AdventureLow    = "low"
	AdventureMedium = "medium"
	AdventureHigh   = "high"

	BudgetLow      = "budget"
	BudgetModerate = "moderate"
	BudgetPremium  = "premium"
)

// PersonalityType is one of a fixed set of behavioral archetypes derived
// from swipe patterns. Static reference data, never created at runtime.
type PersonalityType struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Traits              []string `json:"traits"`
	PreferredActivities []string `json:"preferred_activities"`
	SocialStyle         string   `json:"social_style"`
	AdventureLevel      string   `json:"adventure_level"`
	BudgetPreference    string   `json:"budget_preference"`
}

// InviteLink is a time-limited, single-use token authorizing a second
// user to join a session
type InviteLink struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	InviterID   string    `json:"inviter_id"`
	InviterName string    `json:"inviter_name"`
	ExpiresAt   time.Time `json:"expires_at"`
	Used        bool      `json:"used"`
}

// Expired reports whether the invite's expiry timestamp has passed
func (l *InviteLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
