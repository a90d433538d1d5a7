package itinerary

import (
	"strings"
	"testing"

	"outvibe-backend/internal/models"
)

func personality(budget, social, adventure string) *models.PersonalityType {
	return &models.PersonalityType{
		ID:               "test",
		Name:             "Test Archetype",
		Description:      "test description",
		BudgetPreference: budget,
		SocialStyle:      social,
		AdventureLevel:   adventure,
	}
}

func TestDeriveParams_Budget(t *testing.T) {
	cases := []struct {
		a, b string
		want string
	}{
		{models.BudgetPremium, models.BudgetLow, "moderate to premium"},
		{models.BudgetLow, models.BudgetPremium, "moderate to premium"},
		{models.BudgetPremium, models.BudgetPremium, "moderate to premium"},
		{models.BudgetLow, models.BudgetLow, "budget-friendly"},
		{models.BudgetModerate, models.BudgetModerate, "moderate"},
		{models.BudgetLow, models.BudgetModerate, "moderate"},
	}
	for _, tc := range cases {
		params := DeriveParams(
			personality(tc.a, models.SocialIntrovert, models.AdventureLow),
			personality(tc.b, models.SocialIntrovert, models.AdventureLow),
		)
		if params.Budget != tc.want {
			t.Fatalf("budget(%s, %s) = %q, want %q", tc.a, tc.b, params.Budget, tc.want)
		}
	}
}

func TestDeriveParams_Social(t *testing.T) {
	params := DeriveParams(
		personality(models.BudgetLow, models.SocialExtrovert, models.AdventureLow),
		personality(models.BudgetLow, models.SocialIntrovert, models.AdventureLow),
	)
	if params.Social != "social and engaging" {
		t.Fatalf("expected extrovert framing, got %q", params.Social)
	}

	params = DeriveParams(
		personality(models.BudgetLow, models.SocialIntrovert, models.AdventureLow),
		personality(models.BudgetLow, models.SocialAmbivert, models.AdventureLow),
	)
	if params.Social != "intimate and relaxed" {
		t.Fatalf("expected intimate framing, got %q", params.Social)
	}
}

func TestDeriveParams_Adventure(t *testing.T) {
	cases := []struct {
		a, b string
		want string
	}{
		{models.AdventureHigh, models.AdventureLow, "adventurous and exciting"},
		{models.AdventureLow, models.AdventureHigh, "adventurous and exciting"},
		{models.AdventureMedium, models.AdventureLow, "moderately adventurous"},
		{models.AdventureLow, models.AdventureLow, "relaxed and comfortable"},
	}
	for _, tc := range cases {
		params := DeriveParams(
			personality(models.BudgetLow, models.SocialIntrovert, tc.a),
			personality(models.BudgetLow, models.SocialIntrovert, tc.b),
		)
		if params.Adventure != tc.want {
			t.Fatalf("adventure(%s, %s) = %q, want %q", tc.a, tc.b, params.Adventure, tc.want)
		}
	}
}

func TestSharedPreferences(t *testing.T) {
	shared := SharedPreferences(
		[]string{"Night Owl", "Food Explorer", "Night Owl", "Nature Lover"},
		[]string{"Food Explorer", "Night Owl"},
	)
	if len(shared) != 2 || shared[0] != "Night Owl" || shared[1] != "Food Explorer" {
		t.Fatalf("unexpected shared preferences: %v", shared)
	}

	if shared := SharedPreferences([]string{"A"}, []string{"B"}); len(shared) != 0 {
		t.Fatalf("expected empty intersection, got %v", shared)
	}
}

func TestAllPreferences(t *testing.T) {
	all := AllPreferences(
		[]string{"Night Owl", "Food Explorer"},
		[]string{"Food Explorer", "Nature Lover"},
	)
	want := []string{"Night Owl", "Food Explorer", "Nature Lover"}
	if len(all) != len(want) {
		t.Fatalf("unexpected union: %v", all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("unexpected union order: %v", all)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	a := personality(models.BudgetPremium, models.SocialExtrovert, models.AdventureHigh)
	a.Name = "Culinary Socialite"
	a.Description = "Bonds with others through shared dining experiences"
	b := personality(models.BudgetLow, models.SocialIntrovert, models.AdventureLow)
	b.Name = "Peaceful Wanderer"
	b.Description = "Finds joy in natural settings and quiet moments"

	prompt := BuildPrompt(a, b, "Mumbai", []string{"Food Explorer"}, []string{"Nature Lover"})

	for _, fragment := range []string{
		"two friends in Mumbai",
		"Person 1: Culinary Socialite",
		"Person 2: Peaceful Wanderer",
		"Shared Interests: None specifically shared",
		"All Interests: Food Explorer, Nature Lover",
		"Budget: moderate to premium",
		"Social Style: social and engaging",
		"Adventure Level: adventurous and exciting",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}
