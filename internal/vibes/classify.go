package vibes

import "outvibe-backend/internal/models"

// Category groups used by the classifier rules.
var (
	adventureVibes = []string{"Adventure Seeker", "Nature Lover"}
	socialVibes    = []string{"Night Owl", "Food Explorer", "Entertainment Enthusiast"}
	cultureVibes   = []string{"Culture Enthusiast", "Wellness Focused"}
	shoppingVibes  = []string{"Retail Therapy"}
)

// swipeCounts aggregates one user's swipe history for rule evaluation
type swipeCounts struct {
	total     int
	liked     int
	adventure int
	social    int
	culture   int
	shopping  int
	likedSet  map[string]bool
}

// rule is one (predicate, archetype) entry of the ordered decision list
type rule struct {
	archetype string
	matches   func(c swipeCounts) bool
}

// rules is evaluated in order; the first match wins. The ordering is the
// classifier's only tie-break policy and must not be rearranged.
var rules = []rule{
	{SocialAdventurer, func(c swipeCounts) bool {
		return c.adventure >= 2 && c.social >= 1
	}},
	{ThoughtfulExplorer, func(c swipeCounts) bool {
		return c.culture >= 2 && float64(c.liked) <= float64(c.total)*0.4
	}},
	{BalancedSeeker, func(c swipeCounts) bool {
		return c.likedSet["Wellness Focused"] && float64(c.liked) >= float64(c.total)*0.4
	}},
	{CulinarySocialite, func(c swipeCounts) bool {
		return c.likedSet["Food Explorer"] && c.social >= 1
	}},
	{FunSeeker, func(c swipeCounts) bool {
		return c.likedSet["Entertainment Enthusiast"] || c.shopping >= 1
	}},
}

// Classify derives a personality archetype from a user's swipe history.
// It is a total, deterministic function: any input, including an empty
// history, yields exactly one archetype. An empty history falls through
// to the default Peaceful Wanderer.
func Classify(swipes []models.SwipeResult) *models.PersonalityType {
	counts := count(swipes)
	for _, r := range rules {
		if r.matches(counts) {
			return PersonalityByID(r.archetype)
		}
	}
	return PersonalityByID(PeacefulWanderer)
}

func count(swipes []models.SwipeResult) swipeCounts {
	c := swipeCounts{
		total:    len(swipes),
		likedSet: make(map[string]bool),
	}
	for _, s := range swipes {
		if s.Direction != models.SwipeRight {
			continue
		}
		c.liked++
		c.likedSet[s.VibeType] = true
		if contains(adventureVibes, s.VibeType) {
			c.adventure++
		}
		if contains(socialVibes, s.VibeType) {
			c.social++
		}
		if contains(cultureVibes, s.VibeType) {
			c.culture++
		}
		if contains(shoppingVibes, s.VibeType) {
			c.shopping++
		}
	}
	return c
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// LikedVibes returns the vibe categories the user accepted, in swipe
// order, duplicates included. Used as the preference list for itinerary
// generation.
func LikedVibes(swipes []models.SwipeResult) []string {
	var liked []string
	for _, s := range swipes {
		if s.Direction == models.SwipeRight {
			liked = append(liked, s.VibeType)
		}
	}
	return liked
}
