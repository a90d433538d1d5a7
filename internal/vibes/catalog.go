package vibes

import "outvibe-backend/internal/models"

// Catalog is the static table of activity vibes. Each vibe applies to a
// set of age bands and carries the keywords used for card descriptions
// and itinerary prompting.
var Catalog = []models.VibeType{
	{
		ID:          "adventure",
		Name:        "Adventure Seeker",
		Description: "Loves outdoor activities and thrilling experiences",
		AgeGroups:   []string{"18-25", "26-35"},
		Keywords:    []string{"hiking", "rock climbing", "adventure parks", "outdoor sports", "zip lining", "kayaking"},
		Places:      []string{"national parks", "adventure centers", "climbing gyms", "hiking trails", "water sports venues"},
	},
	{
		ID:          "cultural",
		Name:        "Culture Enthusiast",
		Description: "Enjoys museums, art galleries, and cultural events",
		AgeGroups:   []string{"25-35", "36-50"},
		Keywords:    []string{"museums", "art galleries", "theaters", "cultural centers", "exhibitions", "concerts"},
		Places:      []string{"art museums", "history museums", "galleries", "concert halls", "cultural districts"},
	},
	{
		ID:          "foodie",
		Name:        "Food Explorer",
		Description: "Passionate about trying new cuisines and restaurants",
		AgeGroups:   []string{"18-25", "26-35", "36-50"},
		Keywords:    []string{"restaurants", "food markets", "cooking classes", "wine tastings", "street food", "cafes"},
		Places:      []string{"fine dining restaurants", "food halls", "farmers markets", "cooking schools", "wine bars"},
	},
	{
		ID:          "nightlife",
		Name:        "Night Owl",
		Description: "Enjoys bars, clubs, and evening entertainment",
		AgeGroups:   []string{"18-25", "26-35"},
		Keywords:    []string{"bars", "nightclubs", "live music venues", "rooftop lounges", "cocktail bars", "dance clubs"},
		Places:      []string{"nightclubs", "cocktail lounges", "live music venues", "rooftop bars", "entertainment districts"},
	},
	{
		ID:          "wellness",
		Name:        "Wellness Focused",
		Description: "Prefers relaxing and health-focused activities",
		AgeGroups:   []string{"26-35", "36-50"},
		Keywords:    []string{"spas", "yoga studios", "meditation centers", "wellness retreats", "massage", "mindfulness"},
		Places:      []string{"day spas", "yoga studios", "wellness centers", "meditation gardens", "health retreats"},
	},
	{
		ID:          "shopping",
		Name:        "Retail Therapy",
		Description: "Loves shopping and browsing markets",
		AgeGroups:   []string{"18-25", "26-35"},
		Keywords:    []string{"shopping malls", "boutiques", "markets", "vintage stores", "designer shops", "local crafts"},
		Places:      []string{"shopping centers", "boutique districts", "vintage markets", "artisan shops", "fashion districts"},
	},
	{
		ID:          "nature",
		Name:        "Nature Lover",
		Description: "Enjoys peaceful outdoor settings and natural beauty",
		AgeGroups:   []string{"18-25", "26-35", "36-50"},
		Keywords:    []string{"parks", "gardens", "beaches", "lakes", "scenic walks", "wildlife"},
		Places:      []string{"botanical gardens", "nature reserves", "beaches", "lakeshores", "scenic viewpoints"},
	},
	{
		ID:          "entertainment",
		Name:        "Entertainment Enthusiast",
		Description: "Loves movies, games, and interactive experiences",
		AgeGroups:   []string{"18-25", "26-35"},
		Keywords:    []string{"movies", "gaming", "arcades", "bowling", "mini golf", "escape rooms"},
		Places:      []string{"movie theaters", "gaming centers", "bowling alleys", "escape rooms", "entertainment complexes"},
	},
}

// Personality archetype IDs
const (
	SocialAdventurer   = "adventurous_extrovert"
	ThoughtfulExplorer = "cultural_introvert"
	BalancedSeeker     = "wellness_ambivert"
	CulinarySocialite  = "foodie_social"
	FunSeeker          = "entertainment_lover"
	PeacefulWanderer   = "nature_peaceful"
)

// Personalities is the fixed archetype set. Entries are selected by the
// classifier, never created at runtime.
var Personalities = []models.PersonalityType{
	{
		ID:                  SocialAdventurer,
		Name:                "Social Adventurer",
		Description:         "Loves trying new things with friends and meeting new people",
		Traits:              []string{"outgoing", "spontaneous", "energetic", "social"},
		PreferredActivities: []string{"group activities", "adventure sports", "nightlife", "festivals"},
		SocialStyle:         models.SocialExtrovert,
		AdventureLevel:      models.AdventureHigh,
		BudgetPreference:    models.BudgetModerate,
	},
	{
		ID:                  ThoughtfulExplorer,
		Name:                "Thoughtful Explorer",
		Description:         "Prefers meaningful experiences and quiet contemplation",
		Traits:              []string{"reflective", "curious", "artistic", "thoughtful"},
		PreferredActivities: []string{"museums", "galleries", "quiet cafes", "bookstores"},
		SocialStyle:         models.SocialIntrovert,
		AdventureLevel:      models.AdventureLow,
		BudgetPreference:    models.BudgetModerate,
	},
	{
		ID:                  BalancedSeeker,
		Name:                "Balanced Seeker",
		Description:         "Values both social connection and personal well-being",
		Traits:              []string{"balanced", "health-conscious", "mindful", "adaptable"},
		PreferredActivities: []string{"yoga", "wellness retreats", "nature walks", "healthy dining"},
		SocialStyle:         models.SocialAmbivert,
		AdventureLevel:      models.AdventureMedium,
		BudgetPreference:    models.BudgetModerate,
	},
	{
		ID:                  CulinarySocialite,
		Name:                "Culinary Socialite",
		Description:         "Bonds with others through shared dining experiences",
		Traits:              []string{"social", "curious", "appreciative", "generous"},
		PreferredActivities: []string{"fine dining", "food tours", "cooking classes", "wine tastings"},
		SocialStyle:         models.SocialExtrovert,
		AdventureLevel:      models.AdventureMedium,
		BudgetPreference:    models.BudgetPremium,
	},
	{
		ID:                  FunSeeker,
		Name:                "Fun Seeker",
		Description:         "Enjoys entertainment and playful activities",
		Traits:              []string{"playful", "competitive", "fun-loving", "energetic"},
		PreferredActivities: []string{"games", "movies", "bowling", "arcades"},
		SocialStyle:         models.SocialExtrovert,
		AdventureLevel:      models.AdventureMedium,
		BudgetPreference:    models.BudgetLow,
	},
	{
		ID:                  PeacefulWanderer,
		Name:                "Peaceful Wanderer",
		Description:         "Finds joy in natural settings and quiet moments",
		Traits:              []string{"peaceful", "contemplative", "nature-loving", "calm"},
		PreferredActivities: []string{"hiking", "gardens", "beaches", "scenic drives"},
		SocialStyle:         models.SocialIntrovert,
		AdventureLevel:      models.AdventureLow,
		BudgetPreference:    models.BudgetLow,
	},
}

// PersonalityByID returns the archetype with the given ID, or the
// default archetype if no match exists.
func PersonalityByID(id string) *models.PersonalityType {
	for i := range Personalities {
		if Personalities[i].ID == id {
			return &Personalities[i]
		}
	}
	return &Personalities[len(Personalities)-1]
}

// ByAge filters the catalog to vibes applicable to the given age.
// Ages outside all bands fall back to the youngest band.
func ByAge(age int) []models.VibeType {
	var group string
	switch {
	case age >= 18 && age <= 25:
		group = "18-25"
	case age >= 26 && age <= 35:
		group = "26-35"
	case age >= 36 && age <= 50:
		group = "36-50"
	default:
		group = "18-25"
	}

	var matched []models.VibeType
	for _, vibe := range Catalog {
		for _, g := range vibe.AgeGroups {
			if g == group {
				matched = append(matched, vibe)
				break
			}
		}
	}
	return matched
}
