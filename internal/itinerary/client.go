package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"outvibe-backend/internal/models"
)

// Message is one entry of the generation request conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateRequest struct {
	Messages []Message `json:"messages"`
}

type generateResponse struct {
	Completion string `json:"completion"`
}

// Client calls the external text-generation service. The client does not
// retry and enforces no timeout of its own; cancellation and deadlines
// belong to the caller's context.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a generation client for the given endpoint base URL
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// BuildPlan generates a joint itinerary for two personalities and their
// swipe-derived preferences. Network failures and non-2xx responses
// surface as a single error to the caller.
func (c *Client) BuildPlan(ctx context.Context, a, b *models.PersonalityType, location string, prefsA, prefsB []string) (string, error) {
	prompt := BuildPrompt(a, b, location, prefsA, prefsB)
	return c.Generate(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
}

// Generate submits a message list to the generation service and returns
// the completion text.
func (c *Client) Generate(ctx context.Context, messages []Message) (string, error) {
	reqBody, err := json.Marshal(generateRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/text/llm/", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("generation service returned status %s", resp.Status)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	return genResp.Completion, nil
}
