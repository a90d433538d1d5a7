package services

import (
	"sync"

	"outvibe-backend/internal/models"
	"outvibe-backend/internal/vibes"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxImagesPerUser bounds each user's generated deck
const maxImagesPerUser = 6

// maxImagesPerVibe caps same-category duplicates in the merged deck
const maxImagesPerVibe = 2

// vibeImages maps each vibe category to a stock card image
var vibeImages = map[string]string{
	"Adventure Seeker":         "https://images.unsplash.com/photo-1533692328991-08159ff19fca?w=800&q=80",
	"Culture Enthusiast":       "https://images.unsplash.com/photo-1518998053901-5348d3961a04?w=800&q=80",
	"Food Explorer":            "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800&q=80",
	"Night Owl":                "https://images.unsplash.com/photo-1566417713940-fe7c737a9ef2?w=800&q=80",
	"Retail Therapy":           "https://images.unsplash.com/photo-1555529669-e69e7aa0ba9a?w=800&q=80",
	"Wellness Focused":         "https://images.unsplash.com/photo-1545205597-3d9d02c29597?w=800&q=80",
	"Nature Lover":             "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800&q=80",
	"Entertainment Enthusiast": "https://images.unsplash.com/photo-1489599849927-2ee91cede3ba?w=800&q=80",
}

// defaultVibeImage is used when a vibe has no dedicated stock image
const defaultVibeImage = "https://images.unsplash.com/photo-1506126613408-eca07ce68773?w=800&q=80"

// GenerateUserImages builds one user's swipe deck from the vibes that
// match their age band, bounded to a handful of cards.
func GenerateUserImages(user *models.User) []models.GeneratedImage {
	userVibes := vibes.ByAge(user.Age)
	if len(userVibes) > maxImagesPerUser {
		userVibes = userVibes[:maxImagesPerUser]
	}

	images := make([]models.GeneratedImage, 0, len(userVibes))
	for _, vibe := range userVibes {
		url, ok := vibeImages[vibe.Name]
		if !ok {
			url = defaultVibeImage
		}
		images = append(images, models.GeneratedImage{
			ID:          uuid.New().String(),
			URL:         url,
			VibeType:    vibe.Name,
			Description: vibe.Description,
			UserID:      user.ID,
			Keywords:    vibe.Keywords,
		})
	}

	log.Debug().
		Str("user_id", user.ID).
		Int("images", len(images)).
		Msg("Generated swipe deck")

	return images
}

// GeneratePairDecks generates both users' decks concurrently and joins
// them, user deck first. The concurrency is a latency optimization for
// when generation goes remote, not a correctness requirement.
func GeneratePairDecks(user, friend *models.User) []models.GeneratedImage {
	var userImages, friendImages []models.GeneratedImage

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		userImages = GenerateUserImages(user)
	}()
	go func() {
		defer wg.Done()
		friendImages = GenerateUserImages(friend)
	}()
	wg.Wait()

	return DeduplicateDeck(append(userImages, friendImages...))
}

// DeduplicateDeck caps same-category duplicates in a merged deck,
// preserving insertion order: once a vibe category already has the
// maximum number of images, further cards of that category are dropped.
func DeduplicateDeck(images []models.GeneratedImage) []models.GeneratedImage {
	counts := make(map[string]int)
	unique := make([]models.GeneratedImage, 0, len(images))
	for _, img := range images {
		if counts[img.VibeType] >= maxImagesPerVibe {
			continue
		}
		counts[img.VibeType]++
		unique = append(unique, img)
	}
	return unique
}
