package services

import (
	"testing"

	"outvibe-backend/internal/models"
)

func deckImage(id, vibeType string) models.GeneratedImage {
	return models.GeneratedImage{ID: id, URL: "https://example.com/" + id + ".jpg", VibeType: vibeType}
}

func TestDeduplicateDeck(t *testing.T) {
	deck := []models.GeneratedImage{
		deckImage("a1", "Adventure Seeker"),
		deckImage("a2", "Adventure Seeker"),
		deckImage("a3", "Adventure Seeker"),
		deckImage("c1", "Culture Enthusiast"),
		deckImage("a4", "Adventure Seeker"),
		deckImage("a5", "Adventure Seeker"),
	}

	unique := DeduplicateDeck(deck)

	want := []string{"a1", "a2", "c1"}
	if len(unique) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(unique))
	}
	for i, id := range want {
		if unique[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, unique[i].ID)
		}
	}
}

func TestDeduplicateDeckPreservesOrderAcrossCategories(t *testing.T) {
	deck := []models.GeneratedImage{
		deckImage("n1", "Night Owl"),
		deckImage("f1", "Food Explorer"),
		deckImage("n2", "Night Owl"),
		deckImage("f2", "Food Explorer"),
		deckImage("n3", "Night Owl"),
	}

	unique := DeduplicateDeck(deck)

	want := []string{"n1", "f1", "n2", "f2"}
	if len(unique) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(unique))
	}
	for i, id := range want {
		if unique[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, unique[i].ID)
		}
	}
}

func TestGenerateUserImages(t *testing.T) {
	user := &models.User{ID: "acct-1", Name: "Asha", Age: 27}

	images := GenerateUserImages(user)

	if len(images) == 0 || len(images) > maxImagesPerUser {
		t.Fatalf("expected between 1 and %d images, got %d", maxImagesPerUser, len(images))
	}
	seen := make(map[string]bool)
	for _, img := range images {
		if img.ID == "" {
			t.Fatal("image must have a generated ID")
		}
		if seen[img.ID] {
			t.Fatalf("duplicate image ID %s", img.ID)
		}
		seen[img.ID] = true
		if img.UserID != "acct-1" {
			t.Fatalf("image not attributed to user: %q", img.UserID)
		}
		if img.URL == "" || img.VibeType == "" {
			t.Fatalf("incomplete image: %+v", img)
		}
	}
}

func TestGeneratePairDecksDedupesAcrossUsers(t *testing.T) {
	// Same age band produces identical vibe lists, so the merged deck
	// would double every category without the per-vibe cap.
	user := &models.User{ID: "acct-1", Name: "Asha", Age: 27}
	friend := &models.User{ID: "acct-2", Name: "Rohan", Age: 30}

	deck := GeneratePairDecks(user, friend)

	counts := make(map[string]int)
	for _, img := range deck {
		counts[img.VibeType]++
	}
	for vibeType, n := range counts {
		if n > maxImagesPerVibe {
			t.Fatalf("vibe %q appears %d times, cap is %d", vibeType, n, maxImagesPerVibe)
		}
	}

	// The caller's own deck comes first in the merge
	if deck[0].UserID != "acct-1" {
		t.Fatalf("expected the user's deck first, got image for %s", deck[0].UserID)
	}
}
