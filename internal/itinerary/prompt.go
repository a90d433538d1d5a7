package itinerary

import (
	"fmt"
	"strings"

	"outvibe-backend/internal/models"
)

const systemPrompt = "You are an expert outing planner who creates detailed, personalized itineraries that perfectly balance different personality types and preferences."

// PlanParams are the derived descriptive parameters embedded in the
// generation prompt, combined from both personalities' ordinal axes.
type PlanParams struct {
	Budget    string
	Social    string
	Adventure string
}

// DeriveParams combines the preference axes of two personalities into
// the three descriptive parameters used for prompting.
func DeriveParams(a, b *models.PersonalityType) PlanParams {
	return PlanParams{
		Budget:    budgetLevel(a, b),
		Social:    socialStyle(a, b),
		Adventure: adventureDescription(a, b),
	}
}

func budgetLevel(a, b *models.PersonalityType) string {
	if a.BudgetPreference == models.BudgetPremium || b.BudgetPreference == models.BudgetPremium {
		return "moderate to premium"
	}
	if a.BudgetPreference == models.BudgetLow && b.BudgetPreference == models.BudgetLow {
		return "budget-friendly"
	}
	return "moderate"
}

func socialStyle(a, b *models.PersonalityType) string {
	if a.SocialStyle == models.SocialExtrovert || b.SocialStyle == models.SocialExtrovert {
		return "social and engaging"
	}
	return "intimate and relaxed"
}

func adventureDescription(a, b *models.PersonalityType) string {
	level := adventureRank(a.AdventureLevel)
	if r := adventureRank(b.AdventureLevel); r > level {
		level = r
	}
	switch {
	case level >= 3:
		return "adventurous and exciting"
	case level >= 2:
		return "moderately adventurous"
	default:
		return "relaxed and comfortable"
	}
}

func adventureRank(level string) int {
	switch level {
	case models.AdventureHigh:
		return 3
	case models.AdventureMedium:
		return 2
	default:
		return 1
	}
}

// SharedPreferences computes the intersection of both preference lists,
// in first-list order, without duplicates.
func SharedPreferences(prefsA, prefsB []string) []string {
	inB := make(map[string]bool, len(prefsB))
	for _, p := range prefsB {
		inB[p] = true
	}
	seen := make(map[string]bool)
	var shared []string
	for _, p := range prefsA {
		if inB[p] && !seen[p] {
			shared = append(shared, p)
			seen[p] = true
		}
	}
	return shared
}

// AllPreferences computes the union of both preference lists, preserving
// first-appearance order and removing duplicates.
func AllPreferences(prefsA, prefsB []string) []string {
	seen := make(map[string]bool)
	var all []string
	for _, p := range append(append([]string{}, prefsA...), prefsB...) {
		if !seen[p] {
			all = append(all, p)
			seen[p] = true
		}
	}
	return all
}

// BuildPrompt composes the natural-language generation request for a
// joint day-outing itinerary.
func BuildPrompt(a, b *models.PersonalityType, location string, prefsA, prefsB []string) string {
	shared := SharedPreferences(prefsA, prefsB)
	all := AllPreferences(prefsA, prefsB)
	params := DeriveParams(a, b)

	sharedText := strings.Join(shared, ", ")
	if sharedText == "" {
		sharedText = "None specifically shared"
	}

	return fmt.Sprintf(`Create a detailed day outing itinerary for two friends in %s.

Personality Types:
- Person 1: %s - %s
- Person 2: %s - %s

Shared Interests: %s
All Interests: %s

Preferences:
- Budget: %s
- Social Style: %s
- Adventure Level: %s

Please create a 6-8 hour itinerary that:
1. Balances both personalities
2. Includes 3-4 main activities
3. Suggests specific venues/locations in %s
4. Includes meal recommendations
5. Provides timing and logistics
6. Considers travel time between locations

Format as a detailed schedule with times, locations, and brief descriptions.`,
		location,
		a.Name, a.Description,
		b.Name, b.Description,
		sharedText,
		strings.Join(all, ", "),
		params.Budget,
		params.Social,
		params.Adventure,
		location,
	)
}
